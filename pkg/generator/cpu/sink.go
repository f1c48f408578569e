package cpu

import (
	"sync"
	"sync/atomic"

	"github.com/Amr-9/ZeroHunter/pkg/generator"
)

// resultSink collects matches under a single mutex and raises the stop flag
// once the target is reached. The flag itself is read without the lock.
type resultSink struct {
	mu       sync.Mutex
	matches  []generator.Match
	target   int
	observe  generator.Observer
	poisoned bool

	stop  atomic.Bool
	found atomic.Int64
}

func newResultSink(target int, observe generator.Observer) *resultSink {
	return &resultSink{
		matches: make([]generator.Match, 0, target),
		target:  target,
		observe: observe,
	}
}

// Record appends m and raises the stop flag if the target is reached. The
// size check and the flag store happen in the same critical section.
//
// If the observer panics the sink is poisoned: the stop flag is raised, the
// panic keeps unwinding into the caller, and every later Record is a no-op.
func (s *resultSink) Record(m generator.Match) {
	s.mu.Lock()
	completed := false
	defer func() {
		if !completed {
			s.poisoned = true
			s.stop.Store(true)
		}
		s.mu.Unlock()
	}()

	if s.poisoned {
		completed = true
		return
	}

	s.matches = append(s.matches, m)
	s.found.Store(int64(len(s.matches)))
	if len(s.matches) >= s.target {
		s.stop.Store(true)
	}
	if s.observe != nil {
		s.observe(m)
	}
	completed = true
}

// Stop raises the termination flag without recording anything.
func (s *resultSink) Stop() {
	s.stop.Store(true)
}

// Stopped reports whether workers should exit.
func (s *resultSink) Stopped() bool {
	return s.stop.Load()
}

// Found returns the number of matches recorded so far.
func (s *resultSink) Found() int {
	return int(s.found.Load())
}

// Poisoned reports whether a fault happened inside Record.
func (s *resultSink) Poisoned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.poisoned
}

// Matches returns a copy of the recorded matches in arrival order.
func (s *resultSink) Matches() []generator.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]generator.Match, len(s.matches))
	copy(out, s.matches)
	return out
}

package cpu

import "sync/atomic"

// workSource hands out unique, increasing candidates to all workers.
// One atomic add per candidate; no locks.
type workSource struct {
	next  atomic.Uint64
	start uint64
}

func newWorkSource(start uint64) *workSource {
	s := &workSource{start: start}
	s.next.Store(start)
	return s
}

// Next returns a candidate that no other caller has received.
func (s *workSource) Next() uint64 {
	return s.next.Add(1) - 1
}

// Issued returns how many candidates have been handed out.
func (s *workSource) Issued() uint64 {
	return s.next.Load() - s.start
}

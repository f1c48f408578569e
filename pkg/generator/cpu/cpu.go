package cpu

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Amr-9/ZeroHunter/pkg/generator"
	"github.com/Amr-9/ZeroHunter/pkg/generator/digest"
)

// CPUGenerator implements the Generator interface using CPU-based goroutines.
// Workers share one atomic candidate counter and one result sink.
type CPUGenerator struct {
	workers int                 // Number of concurrent workers
	log     logrus.FieldLogger  // Diagnostic logger
	run     atomic.Pointer[run] // Search in progress, for Stats
}

// run is the state of a single Search call.
type run struct {
	source    *workSource
	sink      *resultSink
	startTime time.Time
	endTime   atomic.Int64 // UnixNano once finished, 0 while running
}

// NewCPUGenerator creates a new CPU-based generator.
// If workers is 0, it defaults to the number of CPU cores.
// A nil logger discards diagnostics.
func NewCPUGenerator(workers int, log logrus.FieldLogger) *CPUGenerator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &CPUGenerator{
		workers: workers,
		log:     log,
	}
}

// Name returns the implementation name.
func (g *CPUGenerator) Name() string {
	return "CPU"
}

// Workers returns the default worker count.
func (g *CPUGenerator) Workers() int {
	return g.workers
}

// Stats returns the current performance statistics.
func (g *CPUGenerator) Stats() generator.Stats {
	r := g.run.Load()
	if r == nil {
		return generator.Stats{}
	}

	end := time.Now()
	if ns := r.endTime.Load(); ns != 0 {
		end = time.Unix(0, ns)
	}
	attempts := r.source.Issued()
	elapsed := end.Sub(r.startTime).Seconds()

	var hashRate float64
	if elapsed > 0 {
		hashRate = float64(attempts) / elapsed
	}

	return generator.Stats{
		Attempts:    attempts,
		HashRate:    hashRate,
		ElapsedSecs: elapsed,
		Found:       r.sink.Found(),
	}
}

// Search runs workers until config.TargetCount matches are recorded.
//
// Workers check the stop flag once per candidate, before hashing, so up to
// workers-1 extra matches can land after the target is reached. The result
// set is in arrival order, not candidate order.
func (g *CPUGenerator) Search(ctx context.Context, config *generator.Config, observe generator.Observer) ([]generator.Match, error) {
	if config == nil || config.TargetCount < 1 {
		return nil, fmt.Errorf("%w: target count must be at least 1", generator.ErrInvalidConfig)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", generator.ErrCancelled, err)
	}

	workers := g.workers
	if config.Workers > 0 {
		workers = config.Workers
	}
	start := config.Start
	if start == 0 {
		start = 1
	}

	// One hasher per worker; they carry scratch buffers.
	hashers := make([]*digest.Hasher, workers)
	for i := range hashers {
		h, err := digest.New(config.Algorithm)
		if err != nil {
			return nil, err
		}
		hashers[i] = h
	}
	if n := hashers[0].HexLen(); config.ZeroCount < 0 || config.ZeroCount > n {
		return nil, fmt.Errorf("%w: zero count %d outside 0-%d for %s", generator.ErrInvalidConfig, config.ZeroCount, n, config.Algorithm)
	}
	matcher := digest.NewMatcher(config.ZeroCount)

	r := &run{
		source:    newWorkSource(start),
		sink:      newResultSink(config.TargetCount, observe),
		startTime: time.Now(),
	}
	g.run.Store(r)

	log := g.log.WithFields(logrus.Fields{
		"workers":   workers,
		"zeros":     config.ZeroCount,
		"target":    config.TargetCount,
		"algorithm": config.Algorithm.String(),
		"start":     start,
	})
	log.Debug("search started")

	// Cancellation feeds the same flag the workers already poll.
	stopOnCancel := context.AfterFunc(ctx, r.sink.Stop)
	defer stopOnCancel()

	var group errgroup.Group
	for i := 0; i < workers; i++ {
		id, h := i, hashers[i]
		group.Go(func() error {
			return g.worker(id, r, h, matcher)
		})
	}
	err := group.Wait()
	r.endTime.Store(time.Now().UnixNano())

	stats := g.Stats()
	log = log.WithFields(logrus.Fields{
		"attempts": stats.Attempts,
		"elapsed":  time.Duration(stats.ElapsedSecs * float64(time.Second)).Round(time.Millisecond),
	})

	if err != nil {
		log.WithError(err).WithField("poisoned", r.sink.Poisoned()).Error("search aborted")
		return nil, err
	}

	matches := r.sink.Matches()
	if len(matches) < config.TargetCount {
		log.WithField("found", len(matches)).Warn("search cancelled")
		return matches, fmt.Errorf("%w after %d of %d matches: %w",
			generator.ErrCancelled, len(matches), config.TargetCount, context.Cause(ctx))
	}

	log.WithField("found", len(matches)).Info("search finished")
	return matches, nil
}

// worker pulls candidates until the stop flag is raised. A panic is turned
// into a FaultError and stops every other worker.
func (g *CPUGenerator) worker(id int, r *run, h *digest.Hasher, matcher *digest.Matcher) (err error) {
	inSink := false
	defer func() {
		if v := recover(); v != nil {
			r.sink.Stop()
			err = &generator.FaultError{Worker: id, Value: v, HeldLock: inSink}
		}
	}()

	for !r.sink.Stopped() {
		candidate := r.source.Next()
		sum := h.Sum(candidate)
		if matcher.Matches(sum) {
			inSink = true
			r.sink.Record(generator.Match{Candidate: candidate, Digest: string(sum)})
			inSink = false
		}
	}
	return nil
}

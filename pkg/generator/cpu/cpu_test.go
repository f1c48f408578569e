package cpu

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Amr-9/ZeroHunter/pkg/generator"
)

func search(t *testing.T, g *CPUGenerator, cfg *generator.Config) []generator.Match {
	t.Helper()
	matches, err := g.Search(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Search(%+v): %v", *cfg, err)
	}
	return matches
}

func TestSearchCardinalityBound(t *testing.T) {
	workers := runtime.NumCPU()
	if workers < 2 {
		workers = 4
	}
	g := NewCPUGenerator(workers, nil)

	matches := search(t, g, &generator.Config{ZeroCount: 3, TargetCount: 5})

	if len(matches) < 5 || len(matches) > 5+workers-1 {
		t.Fatalf("got %d matches, want between 5 and %d", len(matches), 5+workers-1)
	}
	for _, m := range matches {
		if !strings.HasSuffix(m.Digest, "000") {
			t.Errorf("match %s does not end with 000", m)
		}
	}
}

func TestSearchMinimalCase(t *testing.T) {
	g := NewCPUGenerator(0, nil)
	matches := search(t, g, &generator.Config{ZeroCount: 1, TargetCount: 1})
	if len(matches) < 1 {
		t.Fatal("expected at least one match")
	}
	if !strings.HasSuffix(matches[0].Digest, "0") {
		t.Errorf("match %s does not end with 0", matches[0])
	}
}

func TestSearchUniqueCandidates(t *testing.T) {
	g := NewCPUGenerator(8, nil)
	matches := search(t, g, &generator.Config{ZeroCount: 2, TargetCount: 10})

	seen := make(map[uint64]bool, len(matches))
	for _, m := range matches {
		if seen[m.Candidate] {
			t.Fatalf("candidate %d recorded twice", m.Candidate)
		}
		seen[m.Candidate] = true
	}
}

func TestSearchSingleWorkerIsOrdered(t *testing.T) {
	g := NewCPUGenerator(1, nil)
	matches := search(t, g, &generator.Config{ZeroCount: 3, TargetCount: 3})

	want := []uint64{4163, 11848, 12843}
	if len(matches) != len(want) {
		t.Fatalf("got %d matches, want exactly %d with one worker", len(matches), len(want))
	}
	for i, m := range matches {
		if m.Candidate != want[i] {
			t.Errorf("match %d = %d, want %d", i, m.Candidate, want[i])
		}
	}
}

func TestSearchStartValue(t *testing.T) {
	g := NewCPUGenerator(1, nil)
	matches := search(t, g, &generator.Config{ZeroCount: 3, TargetCount: 1, Start: 4164})
	if matches[0].Candidate != 11848 {
		t.Errorf("first match from 4164 = %d, want 11848", matches[0].Candidate)
	}
}

func TestSearchFixture(t *testing.T) {
	g := NewCPUGenerator(1, nil)
	matches := search(t, g, &generator.Config{ZeroCount: 5, TargetCount: 1, Start: 828000})
	got := matches[0]
	if got.Candidate != 828028 || got.Digest != "d95f19b5269418c0d4479fa61b8e7696aa8df197082b431a65ff37595c100000" {
		t.Errorf("got %s, want 828028 fixture", got)
	}
}

func TestSearchEveryAlgorithm(t *testing.T) {
	for _, alg := range generator.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			g := NewCPUGenerator(2, nil)
			matches := search(t, g, &generator.Config{ZeroCount: 2, TargetCount: 2, Algorithm: alg})
			for _, m := range matches {
				if !strings.HasSuffix(m.Digest, "00") {
					t.Errorf("match %s does not end with 00", m)
				}
			}
		})
	}
}

func TestSearchObserverSeesArrivalOrder(t *testing.T) {
	g := NewCPUGenerator(4, nil)

	var mu sync.Mutex
	var observed []generator.Match
	matches, err := g.Search(context.Background(), &generator.Config{ZeroCount: 2, TargetCount: 6}, func(m generator.Match) {
		mu.Lock()
		observed = append(observed, m)
		mu.Unlock()
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(observed) != len(matches) {
		t.Fatalf("observed %d matches, returned %d", len(observed), len(matches))
	}
	for i := range matches {
		if observed[i] != matches[i] {
			t.Errorf("position %d: observed %s, returned %s", i, observed[i], matches[i])
		}
	}
}

func TestSearchObserverPanicIsFatal(t *testing.T) {
	g := NewCPUGenerator(4, nil)

	matches, err := g.Search(context.Background(), &generator.Config{ZeroCount: 1, TargetCount: 5}, func(generator.Match) {
		panic("observer exploded")
	})
	if !errors.Is(err, generator.ErrWorkerFault) {
		t.Fatalf("err = %v, want ErrWorkerFault", err)
	}
	var fault *generator.FaultError
	if !errors.As(err, &fault) {
		t.Fatalf("err = %T, want *FaultError", err)
	}
	if !fault.HeldLock {
		t.Error("fault inside the observer should report HeldLock")
	}
	if matches != nil {
		t.Errorf("partial matches should be discarded, got %d", len(matches))
	}
}

func TestSearchCancel(t *testing.T) {
	g := NewCPUGenerator(2, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Ten trailing zeros will not turn up within the timeout.
	matches, err := g.Search(ctx, &generator.Config{ZeroCount: 10, TargetCount: 1}, nil)
	if !errors.Is(err, generator.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want it to wrap DeadlineExceeded", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
	if g.Stats().Attempts == 0 {
		t.Error("expected some attempts before cancellation")
	}
}

func TestSearchAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCPUGenerator(1, nil).Search(ctx, &generator.Config{ZeroCount: 1, TargetCount: 1}, nil)
	if !errors.Is(err, generator.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestSearchInvalidConfig(t *testing.T) {
	g := NewCPUGenerator(1, nil)
	if _, err := g.Search(context.Background(), nil, nil); !errors.Is(err, generator.ErrInvalidConfig) {
		t.Errorf("nil config: err = %v, want ErrInvalidConfig", err)
	}
	if _, err := g.Search(context.Background(), &generator.Config{ZeroCount: 1}, nil); !errors.Is(err, generator.ErrInvalidConfig) {
		t.Errorf("zero target: err = %v, want ErrInvalidConfig", err)
	}
	if _, err := g.Search(context.Background(), &generator.Config{ZeroCount: 41, TargetCount: 1, Algorithm: generator.Hash160}, nil); !errors.Is(err, generator.ErrInvalidConfig) {
		t.Errorf("unreachable zero count: err = %v, want ErrInvalidConfig", err)
	}
	cfg := &generator.Config{ZeroCount: 1, TargetCount: 1, Algorithm: generator.Algorithm(42)}
	if _, err := g.Search(context.Background(), cfg, nil); !errors.Is(err, generator.ErrUnknownAlgorithm) {
		t.Errorf("bad algorithm: err = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestStats(t *testing.T) {
	g := NewCPUGenerator(2, nil)
	if s := g.Stats(); s.Attempts != 0 || s.Found != 0 {
		t.Errorf("stats before search = %+v, want zero", s)
	}
	matches := search(t, g, &generator.Config{ZeroCount: 2, TargetCount: 3})

	s := g.Stats()
	if s.Found != len(matches) {
		t.Errorf("Found = %d, want %d", s.Found, len(matches))
	}
	var maxCandidate uint64
	for _, m := range matches {
		if m.Candidate > maxCandidate {
			maxCandidate = m.Candidate
		}
	}
	if s.Attempts < maxCandidate {
		t.Errorf("Attempts = %d, want at least %d", s.Attempts, maxCandidate)
	}
	if s.ElapsedSecs <= 0 {
		t.Errorf("ElapsedSecs = %v, want > 0", s.ElapsedSecs)
	}
	// frozen once the search returned
	if again := g.Stats(); again.ElapsedSecs != s.ElapsedSecs {
		t.Errorf("elapsed moved after search finished: %v -> %v", s.ElapsedSecs, again.ElapsedSecs)
	}
}

func TestName(t *testing.T) {
	var g generator.Generator = NewCPUGenerator(0, nil)
	if g.Name() != "CPU" {
		t.Errorf("Name() = %q", g.Name())
	}
	if NewCPUGenerator(0, nil).Workers() != runtime.NumCPU() {
		t.Error("default workers should be NumCPU")
	}
}

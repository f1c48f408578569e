package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrWorkerFault reports a worker that terminated abnormally. The result
	// set of that search is discarded.
	ErrWorkerFault = errors.New("worker fault")

	// ErrCancelled reports a search stopped by its context before the target
	// count was reached.
	ErrCancelled = errors.New("search cancelled")

	// ErrInvalidConfig reports a configuration the engine cannot run.
	ErrInvalidConfig = errors.New("invalid search config")

	// ErrUnknownAlgorithm reports an unsupported digest algorithm name.
	ErrUnknownAlgorithm = errors.New("unknown digest algorithm")
)

// FaultError carries the details of a worker fault.
type FaultError struct {
	Worker   int  // Index of the faulting worker
	Value    any  // Recovered panic value
	HeldLock bool // True if the fault happened inside the result critical section
}

func (e *FaultError) Error() string {
	where := "while hashing"
	if e.HeldLock {
		where = "while holding the result lock"
	}
	return fmt.Sprintf("worker %d failed %s: %v", e.Worker, where, e.Value)
}

// Unwrap lets errors.Is match ErrWorkerFault.
func (e *FaultError) Unwrap() error {
	return ErrWorkerFault
}

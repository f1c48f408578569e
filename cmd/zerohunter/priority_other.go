//go:build !unix && !windows

package main

import (
	"errors"
	"runtime"
)

// On other platforms priority is left to the operating system.
func setHighPriority() error {
	return errors.New("process priority is not supported on " + runtime.GOOS)
}

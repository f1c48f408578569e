//go:build unix

package main

import "golang.org/x/sys/unix"

// highNice is the niceness requested by --high-priority. Negative values
// normally need root or CAP_SYS_NICE; without them the call fails and the
// search runs at normal priority.
const highNice = -10

// setHighPriority lowers the niceness of the current process.
func setHighPriority() error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, highNice)
}

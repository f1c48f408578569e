//go:build windows

package main

import "golang.org/x/sys/windows"

// setHighPriority sets the current process to high priority, falling back to
// above normal. REALTIME is never used since it can freeze the system.
func setHighPriority() error {
	handle := windows.CurrentProcess()
	if err := windows.SetPriorityClass(handle, windows.HIGH_PRIORITY_CLASS); err != nil {
		return windows.SetPriorityClass(handle, windows.ABOVE_NORMAL_PRIORITY_CLASS)
	}
	return nil
}

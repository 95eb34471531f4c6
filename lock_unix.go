//go:build !windows

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// acquireInstanceLock takes a non-blocking flock on a file in the temp dir.
// The kernel releases it when the process dies, so a crash never leaves a
// stale lock. The returned file must stay open for the lock's lifetime.
func acquireInstanceLock() (*os.File, error) {
	path := filepath.Join(os.TempDir(), "dictate.lock")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("another instance of dictate is already running")
	}
	fmt.Fprintf(f, "%d\n", os.Getpid())
	return f, nil
}

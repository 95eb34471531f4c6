//go:build windows

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// acquireInstanceLock opens the lock file exclusively. Windows keeps the
// handle locked against concurrent opens with delete sharing disabled, so a
// second instance fails until this process exits.
func acquireInstanceLock() (*os.File, error) {
	path := filepath.Join(os.TempDir(), "dictate.lock")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		if removeErr := os.Remove(path); removeErr == nil {
			// Stale lock from a dead process; retry once.
			if f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644); err == nil {
				fmt.Fprintf(f, "%d\n", os.Getpid())
				return f, nil
			}
		}
		return nil, fmt.Errorf("another instance of dictate is already running")
	}
	fmt.Fprintf(f, "%d\n", os.Getpid())
	return f, nil
}

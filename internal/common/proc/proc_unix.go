//go:build unix

package proc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// procRoot is where the process table is read from
var procRoot = "/proc"

// pollInterval is how often WaitExit probes the process
var pollInterval = 250 * time.Millisecond

// Find returns the running processes whose executable matches one of names.
// Systems without a /proc filesystem report no processes.
func Find(names ...string) ([]Process, error) {
	if len(names) == 0 {
		return nil, nil
	}

	entries, err := os.ReadDir(procRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var found []Process
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || !entry.IsDir() {
			continue
		}
		comm, err := os.ReadFile(filepath.Join(procRoot, entry.Name(), "comm"))
		if err != nil {
			continue
		}
		exe := strings.TrimSpace(string(comm))
		if matchName(exe, names) {
			found = append(found, Process{PID: pid, Name: exe})
		}
	}
	return found, nil
}

// WaitExit blocks until the process exits or max elapses
func WaitExit(ctx context.Context, pid int, max time.Duration) error {
	deadline := time.Now().Add(max)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if !alive(pid) {
			return nil
		}
		if !time.Now().Before(deadline) {
			return ErrWaitTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// alive probes pid with signal 0; EPERM means it exists under another user
func alive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

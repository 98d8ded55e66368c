//go:build windows

package proc

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Find returns the running processes whose executable matches one of names
func Find(names ...string) ([]Process, error) {
	if len(names) == 0 {
		return nil, nil
	}

	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("process snapshot: %w", err)
	}
	defer windows.CloseHandle(snap)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	var found []Process
	for err = windows.Process32First(snap, &entry); err == nil; err = windows.Process32Next(snap, &entry) {
		exe := windows.UTF16ToString(entry.ExeFile[:])
		if matchName(exe, names) {
			found = append(found, Process{PID: int(entry.ProcessID), Name: exe})
		}
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return found, fmt.Errorf("walking processes: %w", err)
	}
	return found, nil
}

// WaitExit blocks until the process exits or max elapses
func WaitExit(ctx context.Context, pid int, max time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h, err := windows.OpenProcess(windows.SYNCHRONIZE, false, uint32(pid))
	if err != nil {
		// already gone
		return nil
	}
	defer windows.CloseHandle(h)

	ev, err := windows.WaitForSingleObject(h, uint32(max.Milliseconds()))
	if err != nil {
		return fmt.Errorf("waiting for pid %d: %w", pid, err)
	}
	if ev != windows.WAIT_OBJECT_0 {
		return ErrWaitTimeout
	}
	return nil
}

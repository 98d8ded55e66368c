// Package proc finds running processes by executable name and waits for
// them to exit. It is used to detect installer helpers that are still
// finalizing a package operation.
package proc

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrWaitTimeout is returned when a process outlives the allowed wait
var ErrWaitTimeout = errors.New("timed out waiting for process to exit")

// Process identifies one running process
type Process struct {
	PID  int
	Name string
}

// matchName reports whether an executable name matches any of names,
// ignoring case and a trailing ".exe".
func matchName(exe string, names []string) bool {
	base := normalizeName(exe)
	for _, name := range names {
		if base == normalizeName(name) {
			return true
		}
	}
	return false
}

func normalizeName(name string) string {
	name = strings.ToLower(filepath.Base(strings.TrimSpace(name)))
	return strings.TrimSuffix(name, ".exe")
}

package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

var (
	ErrToolNotFound = errors.New("package manager executable not found")
	ErrToolFailed   = errors.New("package manager could not be started")
)

// ToolRunner executes the external package manager
type ToolRunner struct {
	path      string
	extraArgs []string
	lookPath  func(string) (string, error)
}

// NewToolRunner creates a ToolRunner for the given executable name or path.
// The executable is resolved on every call so a tool installed mid-session
// (e.g. by bootstrap) is picked up.
func NewToolRunner(path string, extraArgs ...string) *ToolRunner {
	return &ToolRunner{
		path:      path,
		extraArgs: extraArgs,
		lookPath:  exec.LookPath,
	}
}

// Path returns the configured executable name or path
func (r *ToolRunner) Path() string {
	return r.path
}

// Available checks if the executable can be located
func (r *ToolRunner) Available() bool {
	_, err := r.lookPath(r.path)
	return err == nil
}

// Run executes the tool and returns its combined output and exit code.
// Only a failure to launch the process is returned as an error.
func (r *ToolRunner) Run(ctx context.Context, args ...string) (*Result, error) {
	resolved, err := r.lookPath(r.path)
	if err != nil {
		return nil, errors.Join(ErrToolNotFound, err)
	}

	fullArgs := append(append([]string{}, args...), r.extraArgs...)
	cmd := exec.CommandContext(ctx, resolved, fullArgs...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()
	err = cmd.Run()
	result := &Result{
		Args:     fullArgs,
		Output:   out.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, errors.Join(ErrToolFailed, err)
	}

	return result, nil
}

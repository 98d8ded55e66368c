package runner

import (
	"context"
	"time"
)

// Executor defines the interface for invoking the external package manager.
// This interface allows for mocking tool invocations in tests.
type Executor interface {
	// Run invokes the tool with the given arguments and blocks until it exits
	Run(ctx context.Context, args ...string) (*Result, error)

	// Available reports whether the tool executable can be located
	Available() bool

	// Path returns the configured tool name or path
	Path() string
}

// Result holds the captured outcome of one tool invocation.
// A non-zero ExitCode is not an error: callers re-query state instead.
type Result struct {
	Args     []string
	Output   string // stdout and stderr, interleaved as written
	ExitCode int
	Duration time.Duration
}

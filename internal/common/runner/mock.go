package runner

import (
	"context"
	"sync"
)

// MockRunner implements Executor for testing.
// RunFunc controls behavior; every invocation is recorded in Calls.
type MockRunner struct {
	RunFunc       func(args ...string) (*Result, error)
	AvailableFunc func() bool
	path          string

	mu    sync.Mutex
	calls [][]string
}

// NewMockRunner creates a new MockRunner reporting the given tool path
func NewMockRunner(path string) *MockRunner {
	return &MockRunner{
		path: path,
	}
}

// Run records the call and delegates to RunFunc
func (m *MockRunner) Run(ctx context.Context, args ...string) (*Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]string{}, args...))
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(args...)
	}
	return &Result{Args: args}, nil
}

// Available reports true unless AvailableFunc says otherwise
func (m *MockRunner) Available() bool {
	if m.AvailableFunc != nil {
		return m.AvailableFunc()
	}
	return true
}

// Path returns the mock tool path
func (m *MockRunner) Path() string {
	return m.path
}

// Calls returns a copy of the recorded invocations
func (m *MockRunner) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CalledWith reports whether any invocation used subcommand as its first argument
func (m *MockRunner) CalledWith(subcommand string) bool {
	for _, call := range m.Calls() {
		if len(call) > 0 && call[0] == subcommand {
			return true
		}
	}
	return false
}

// Ensure MockRunner implements Executor interface
var _ Executor = (*MockRunner)(nil)

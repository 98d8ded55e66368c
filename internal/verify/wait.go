package verify

import (
	"context"
	"time"

	"github.com/obentoo/wingetkit/internal/common/proc"
)

// Waiter blocks between two verification passes
type Waiter interface {
	Wait(ctx context.Context) error
}

// NoWait re-checks immediately
type NoWait struct{}

// Wait returns at once
func (NoWait) Wait(ctx context.Context) error { return nil }

// WaiterFunc adapts a function to Waiter
type WaiterFunc func(ctx context.Context) error

// Wait calls f
func (f WaiterFunc) Wait(ctx context.Context) error { return f(ctx) }

// HelperWaiter waits for running installer helper processes to exit, or
// sleeps a fixed interval when none is running.
type HelperWaiter struct {
	Names    []string      // helper executable names
	Interval time.Duration // fallback sleep
	MaxWait  time.Duration // upper bound on waiting for helpers

	find     func(names ...string) ([]proc.Process, error)
	waitExit func(ctx context.Context, pid int, max time.Duration) error
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewHelperWaiter creates a HelperWaiter backed by the host process table
func NewHelperWaiter(names []string, interval, maxWait time.Duration) *HelperWaiter {
	return &HelperWaiter{
		Names:    names,
		Interval: interval,
		MaxWait:  maxWait,
		find:     proc.Find,
		waitExit: proc.WaitExit,
		sleep:    sleepContext,
	}
}

// Wait blocks until every running helper exits, bounded by MaxWait in
// total, or sleeps Interval if no helper is running.
func (w *HelperWaiter) Wait(ctx context.Context) error {
	helpers, err := w.find(w.Names...)
	if err != nil || len(helpers) == 0 {
		return w.sleep(ctx, w.Interval)
	}

	deadline := time.Now().Add(w.MaxWait)
	for _, p := range helpers {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return proc.ErrWaitTimeout
		}
		if err := w.waitExit(ctx, p.PID, remaining); err != nil {
			return err
		}
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

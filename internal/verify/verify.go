// Package verify confirms the effect of a mutating package operation by
// re-querying the package manager, waiting once for installer helpers to
// finish when the first check disagrees.
package verify

import (
	"context"

	"github.com/obentoo/wingetkit/internal/report"
)

// Lister queries current package state
type Lister interface {
	List(ctx context.Context, id string) ([]report.PackageRecord, error)
	ListUpgrades(ctx context.Context) ([]report.PackageRecord, error)
}

// Check reports whether the expected state holds
type Check func(ctx context.Context) (bool, error)

// Outcome describes one verification
type Outcome struct {
	Confirmed bool
	Retries   int   // extra verification passes performed: 0 or 1
	WaitErr   error // non-nil when the wait between passes failed
}

// Verifier runs a check, waits at most once, and runs it again
type Verifier struct {
	waiter Waiter
}

// New creates a Verifier with the given wait strategy. A nil waiter
// re-checks immediately.
func New(waiter Waiter) *Verifier {
	if waiter == nil {
		waiter = NoWait{}
	}
	return &Verifier{waiter: waiter}
}

// Confirm evaluates check, and when it does not hold, waits and evaluates
// it exactly once more. An error from the final pass is returned.
func (v *Verifier) Confirm(ctx context.Context, check Check) (Outcome, error) {
	ok, err := check(ctx)
	if err == nil && ok {
		return Outcome{Confirmed: true}, nil
	}

	out := Outcome{Retries: 1}
	out.WaitErr = v.waiter.Wait(ctx)

	ok, err = check(ctx)
	if err != nil {
		return out, err
	}
	out.Confirmed = ok
	return out, nil
}

// Installed holds when listing id returns a matching record
func Installed(l Lister, id string) Check {
	return func(ctx context.Context) (bool, error) {
		records, err := l.List(ctx, id)
		if err != nil {
			return false, err
		}
		return report.Contains(records, id), nil
	}
}

// Removed holds when listing id returns no matching record
func Removed(l Lister, id string) Check {
	return func(ctx context.Context) (bool, error) {
		records, err := l.List(ctx, id)
		if err != nil {
			return false, err
		}
		return !report.Contains(records, id), nil
	}
}

// Upgraded holds when id no longer appears among available upgrades
func Upgraded(l Lister, id string) Check {
	return func(ctx context.Context) (bool, error) {
		records, err := l.ListUpgrades(ctx)
		if err != nil {
			return false, err
		}
		return !report.Contains(records, id), nil
	}
}

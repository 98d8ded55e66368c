package pkgops

import (
	"context"
	"fmt"
	"time"

	"github.com/obentoo/wingetkit/internal/report"
	"github.com/obentoo/wingetkit/internal/verify"
)

// Install installs id. A package that is already installed is reported as
// a skipped success unless force is set.
func (m *Manager) Install(ctx context.Context, id string, force bool) OperationResult {
	op := m.begin(ActionInstall, id)
	if err := m.requireTool(); err != nil {
		return m.fail(op, err)
	}

	if !force {
		present, err := verify.Installed(m, id)(ctx)
		if err != nil {
			return m.fail(op, err)
		}
		if present {
			m.log.Info("[%s] %s is already installed", op.Tag(), id)
			return m.skip(op)
		}
	}

	args := []string{"install", "--id", id, "--exact", flagPackageAgreements}
	if force {
		args = append(args, "--force")
	}
	return m.mutate(ctx, op, args, verify.Installed(m, id))
}

// Uninstall removes id. A package that is not installed is reported as a
// skipped success unless force is set.
func (m *Manager) Uninstall(ctx context.Context, id string, force bool) OperationResult {
	op := m.begin(ActionUninstall, id)
	if err := m.requireTool(); err != nil {
		return m.fail(op, err)
	}

	if !force {
		present, err := verify.Installed(m, id)(ctx)
		if err != nil {
			return m.fail(op, err)
		}
		if !present {
			m.log.Info("[%s] %s is not installed", op.Tag(), id)
			return m.skip(op)
		}
	}

	args := []string{"uninstall", "--id", id, "--exact"}
	if force {
		args = append(args, "--force")
	}
	return m.mutate(ctx, op, args, verify.Removed(m, id))
}

// Upgrade upgrades id when it appears among pending upgrades, and reports
// a skipped success otherwise.
func (m *Manager) Upgrade(ctx context.Context, id string) OperationResult {
	op := m.begin(ActionUpgrade, id)
	if err := m.requireTool(); err != nil {
		return m.fail(op, err)
	}

	upgrades, err := m.ListUpgrades(ctx)
	if err != nil {
		return m.fail(op, err)
	}
	if !report.Contains(upgrades, id) {
		m.log.Info("[%s] No upgrade available for %s", op.Tag(), id)
		return m.skip(op)
	}
	return m.upgrade(ctx, op)
}

// UpgradeAll snapshots the pending upgrades once and upgrades each package
// in order. A failure does not stop the remaining upgrades.
func (m *Manager) UpgradeAll(ctx context.Context) (BatchSummary, error) {
	var summary BatchSummary
	if err := m.requireTool(); err != nil {
		m.log.Error("%v", err)
		return summary, err
	}

	upgrades, err := m.ListUpgrades(ctx)
	if err != nil {
		m.log.Error("Failed to list upgrades: %v", err)
		return summary, err
	}
	if len(upgrades) == 0 {
		m.log.Info("All packages are up to date")
		return summary, nil
	}

	m.log.Info("Upgrading %d package(s)", len(upgrades))
	for _, rec := range upgrades {
		op := m.begin(ActionUpgrade, rec.ID)
		summary.Add(m.upgrade(ctx, op))
	}

	m.log.Info("Upgrade finished: %d succeeded, %d failed", summary.SuccessCount, summary.FailureCount)
	return summary, nil
}

func (m *Manager) upgrade(ctx context.Context, op OperationResult) OperationResult {
	args := []string{"upgrade", "--id", op.TargetID, "--exact", flagPackageAgreements}
	return m.mutate(ctx, op, args, verify.Upgraded(m, op.TargetID))
}

// mutate runs a mutating command and confirms its effect with check.
// The exit code is recorded but only check decides success.
func (m *Manager) mutate(ctx context.Context, op OperationResult, args []string, check verify.Check) OperationResult {
	args = append(args, m.sourceArgs()...)
	args = append(args, flagSourceAgreements, flagNoInteractivity)

	m.log.Info("[%s] Running %s %s", op.Tag(), op.Action, op.TargetID)
	res, err := m.exec.Run(ctx, args...)
	if err != nil {
		return m.fail(op, err)
	}
	op.RawOutput = res.Output
	op.ExitCode = res.ExitCode
	m.logOutput(op.Tag(), res.Output)
	if res.ExitCode != 0 {
		m.log.Debug("[%s] %s exited with code %d", op.Tag(), m.exec.Path(), res.ExitCode)
	}

	outcome, err := m.verifier.Confirm(ctx, check)
	op.AttemptedRetries = outcome.Retries
	if outcome.WaitErr != nil {
		m.log.Warn("[%s] Waiting for installer helpers: %v", op.Tag(), outcome.WaitErr)
	}
	if err != nil {
		return m.fail(op, fmt.Errorf("%w: verifying %s of %s: %w", ErrNotConfirmed, op.Action, op.TargetID, err))
	}
	if !outcome.Confirmed {
		return m.fail(op, fmt.Errorf("%w: %s %s", ErrNotConfirmed, op.Action, op.TargetID))
	}

	op.Succeeded = true
	op.Duration = time.Since(op.start)
	m.log.Info("[%s] %s %s succeeded", op.Tag(), op.Action, op.TargetID)
	return op
}

func (m *Manager) begin(action Action, id string) OperationResult {
	return OperationResult{RunID: m.newID(), TargetID: id, Action: action, start: time.Now()}
}

func (m *Manager) skip(op OperationResult) OperationResult {
	op.Succeeded = true
	op.Skipped = true
	op.Duration = time.Since(op.start)
	return op
}

func (m *Manager) fail(op OperationResult, err error) OperationResult {
	op.Err = err
	op.Duration = time.Since(op.start)
	m.log.Error("[%s] %s %s failed: %v", op.Tag(), op.Action, op.TargetID, err)
	return op
}

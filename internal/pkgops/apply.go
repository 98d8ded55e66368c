package pkgops

import (
	"context"

	"github.com/obentoo/wingetkit/internal/manifest"
)

// Apply brings the package set in line with mf: every listed package is
// installed and every absent one removed, one at a time. Failures do not
// stop the remaining operations.
func (m *Manager) Apply(ctx context.Context, mf *manifest.Manifest) (BatchSummary, error) {
	var summary BatchSummary
	if err := m.requireTool(); err != nil {
		m.log.Error("%v", err)
		return summary, err
	}

	mgr := m.Scoped(mf.Source)
	mgr.log.Info("Applying manifest: %d package(s) present, %d absent", len(mf.Packages), len(mf.Absent))

	for _, pkg := range mf.Packages {
		summary.Add(mgr.Install(ctx, pkg.ID, pkg.Force))
	}
	for _, id := range mf.Absent {
		summary.Add(mgr.Uninstall(ctx, id, false))
	}

	mgr.log.Info("Apply finished: %d succeeded, %d failed", summary.SuccessCount, summary.FailureCount)
	return summary, nil
}

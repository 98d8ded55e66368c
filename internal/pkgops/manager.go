// Package pkgops drives the external package manager: it queries installed
// packages and pending upgrades, and runs install, uninstall and upgrade
// operations whose effect is confirmed by querying state again.
package pkgops

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/obentoo/wingetkit/internal/common/logger"
	"github.com/obentoo/wingetkit/internal/common/runner"
	"github.com/obentoo/wingetkit/internal/report"
	"github.com/obentoo/wingetkit/internal/verify"
)

// Agreement flags suppress the tool's interactive prompts
const (
	flagSourceAgreements  = "--accept-source-agreements"
	flagPackageAgreements = "--accept-package-agreements"
	flagNoInteractivity   = "--disable-interactivity"
)

// Manager runs package operations through an Executor
type Manager struct {
	exec     runner.Executor
	verifier *verify.Verifier
	log      *logger.Logger
	source   string
	newID    func() uuid.UUID
}

// Option configures a Manager
type Option func(*Manager)

// WithVerifier sets the verifier used after mutating operations
func WithVerifier(v *verify.Verifier) Option {
	return func(m *Manager) { m.verifier = v }
}

// WithLogger sets the logger; the default logger is used otherwise
func WithLogger(l *logger.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithSource restricts every query and operation to one package source
func WithSource(source string) Option {
	return func(m *Manager) { m.source = source }
}

// New creates a Manager. Without WithVerifier, checks are repeated
// immediately with no wait in between.
func New(exec runner.Executor, opts ...Option) *Manager {
	m := &Manager{
		exec:     exec,
		verifier: verify.New(nil),
		log:      logger.Default(),
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Scoped returns a copy of m restricted to source. An empty source
// returns m unchanged.
func (m *Manager) Scoped(source string) *Manager {
	if source == "" {
		return m
	}
	c := *m
	c.source = source
	return &c
}

// IsAvailable reports whether the package manager can be located
func (m *Manager) IsAvailable() bool {
	return m.exec.Available()
}

// Version returns the version string the package manager reports
func (m *Manager) Version(ctx context.Context) (string, error) {
	if err := m.requireTool(); err != nil {
		return "", err
	}
	res, err := m.exec.Run(ctx, "--version")
	if err != nil {
		return "", err
	}
	lines := report.FilterNoise(res.Output)
	if len(lines) == 0 {
		return "", fmt.Errorf("%s --version printed nothing", m.exec.Path())
	}
	return strings.TrimSpace(lines[len(lines)-1]), nil
}

// List returns installed packages. A non-empty id narrows the query to
// that exact identifier.
func (m *Manager) List(ctx context.Context, id string) ([]report.PackageRecord, error) {
	args := []string{"list"}
	if id != "" {
		args = append(args, "--id", id, "--exact")
	}
	rep, err := m.query(ctx, args...)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return rep.Records, nil
	}

	var out []report.PackageRecord
	for _, rec := range rep.Records {
		if report.MatchID(rec.ID, id) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ListUpgrades returns installed packages with a newer version available
func (m *Manager) ListUpgrades(ctx context.Context) ([]report.PackageRecord, error) {
	rep, err := m.query(ctx, "upgrade")
	if err != nil {
		return nil, err
	}
	return rep.Records, nil
}

// FindPrefix returns installed packages whose identifier starts with prefix
func (m *Manager) FindPrefix(ctx context.Context, prefix string) ([]report.PackageRecord, error) {
	records, err := m.List(ctx, "")
	if err != nil {
		return nil, err
	}
	return report.FilterPrefix(records, prefix), nil
}

// query runs a read-only subcommand and parses its report. Output that
// cannot be parsed is an error wrapping report.ErrUnparseable, never an
// empty listing.
func (m *Manager) query(ctx context.Context, args ...string) (*report.Report, error) {
	if err := m.requireTool(); err != nil {
		return nil, err
	}
	args = append(args, m.sourceArgs()...)
	args = append(args, flagSourceAgreements)

	res, err := m.exec.Run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", m.exec.Path(), args[0], err)
	}

	rep := report.ParseReport(res.Output)
	switch rep.Status {
	case report.StatusParseFailure:
		m.log.Warn("Could not parse output of '%s': %v", strings.Join(args, " "), rep.Err)
		m.logOutput("query", res.Output)
		if rep.Err != nil {
			return nil, fmt.Errorf("%s %s: %w: %w", m.exec.Path(), args[0], report.ErrUnparseable, rep.Err)
		}
		return nil, fmt.Errorf("%s %s: %w", m.exec.Path(), args[0], report.ErrUnparseable)
	case report.StatusEmpty:
		m.log.Debug("'%s' returned no packages", strings.Join(args, " "))
	default:
		m.log.Debug("'%s' returned %d package(s)", strings.Join(args, " "), len(rep.Records))
	}
	return rep, nil
}

func (m *Manager) sourceArgs() []string {
	if m.source == "" {
		return nil
	}
	return []string{"--source", m.source}
}

func (m *Manager) requireTool() error {
	if !m.exec.Available() {
		return fmt.Errorf("%w: %s", runner.ErrToolNotFound, m.exec.Path())
	}
	return nil
}

// logOutput records the readable lines of raw tool output
func (m *Manager) logOutput(tag, output string) {
	for _, line := range report.FilterNoise(output) {
		m.log.Detail("[%s] | %s", tag, line)
	}
}

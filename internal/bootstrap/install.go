package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/obentoo/wingetkit/internal/common/logger"
	"github.com/obentoo/wingetkit/internal/common/runner"
	"github.com/obentoo/wingetkit/internal/report"
)

// Installer registers a downloaded app package with the system
type Installer struct {
	shell runner.Executor
	log   *logger.Logger
}

// NewInstaller creates an Installer that runs Add-AppxPackage through shell,
// normally runner.NewToolRunner("powershell").
func NewInstaller(shell runner.Executor, log *logger.Logger) *Installer {
	if log == nil {
		log = logger.Default()
	}
	return &Installer{shell: shell, log: log}
}

// Install registers the bundle at path. A non-zero exit code is an error
// here, as there is no package listing to confirm the result against yet.
func (i *Installer) Install(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}

	command := "Add-AppxPackage -Path " + quotePS(abs)
	i.log.Info("Installing %s", abs)
	res, err := i.shell.Run(ctx, "-NoProfile", "-NonInteractive", "-Command", command)
	if err != nil {
		i.log.Error("Could not run %s: %v", i.shell.Path(), err)
		return err
	}
	for _, line := range report.FilterNoise(res.Output) {
		i.log.Detail("[bootstrap] | %s", line)
	}
	if res.ExitCode != 0 {
		i.log.Error("Installer exited with code %d", res.ExitCode)
		return fmt.Errorf("%w: exit code %d", ErrInstallFailed, res.ExitCode)
	}
	i.log.Info("Installed %s", filepath.Base(abs))
	return nil
}

// quotePS quotes s as a PowerShell single-quoted string
func quotePS(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

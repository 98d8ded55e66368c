package main

import (
	"fmt"
	"os"

	"github.com/obentoo/wingetkit/internal/common/config"
	"github.com/obentoo/wingetkit/internal/common/logger"
	"github.com/obentoo/wingetkit/internal/common/output"
	"github.com/obentoo/wingetkit/internal/common/runner"
	"github.com/obentoo/wingetkit/internal/pkgops"
	"github.com/obentoo/wingetkit/internal/verify"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	noColor    bool
	configPath string

	// cfg is loaded once before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wingetkit",
	Short: "Automate the winget package manager",
	Long: `wingetkit drives the winget package manager non-interactively.

It lists installed packages and pending upgrades, and installs, upgrades or
removes packages, confirming every change by querying winget again. Every
run is recorded in a rotating log file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor || !output.IsTerminal() {
			output.NoColor()
		}
		if cmd.Name() == "completion" {
			return
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			logger.Error("loading config: %v", err)
			os.Exit(1)
		}

		logPath, err := cfg.LogPath()
		if err != nil {
			logger.Warn("Could not determine log path: %v", err)
			return
		}
		if err := logger.Default().EnableFileLogging(logPath, cfg.LogMaxBytes(), cfg.RotateLogOnStart()); err != nil {
			logger.Warn("File logging disabled: %v", err)
			return
		}
		logger.Debug("Logging to %s", logPath)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Default().Close()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
}

// newManager builds a Manager from the loaded configuration
func newManager() *pkgops.Manager {
	exec := runner.NewToolRunner(cfg.Tool.Path, cfg.Tool.ExtraArgs...)
	waiter := verify.NewHelperWaiter(cfg.Verify.HelperProcesses, cfg.WaitInterval(), cfg.MaxHelperWait())
	return pkgops.New(exec,
		pkgops.WithVerifier(verify.New(waiter)),
		pkgops.WithSource(cfg.Tool.Source),
	)
}

// requireTool exits when the package manager cannot be located
func requireTool(mgr *pkgops.Manager) {
	if mgr.IsAvailable() {
		return
	}
	logger.Error("%s not found in PATH; run 'wingetkit bootstrap' to install it", cfg.Tool.Path)
	exit(1)
}

// exit closes the log file before terminating
func exit(code int) {
	logger.Default().Close()
	os.Exit(code)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

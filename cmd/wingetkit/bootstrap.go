package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/obentoo/wingetkit/internal/bootstrap"
	"github.com/obentoo/wingetkit/internal/common/httpclient"
	"github.com/obentoo/wingetkit/internal/common/logger"
	"github.com/obentoo/wingetkit/internal/common/output"
	"github.com/obentoo/wingetkit/internal/common/runner"
	"github.com/spf13/cobra"
)

var (
	bootstrapURL  string
	bootstrapDest string
	bootstrapKeep bool
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Download and install the package manager",
	Long: `Download the App Installer bundle that provides winget and register it
with Add-AppxPackage. The download is retried on network and server errors;
an incomplete download is removed.`,
	Args: cobra.NoArgs,
	Run:  runBootstrap,
}

func init() {
	bootstrapCmd.Flags().StringVar(&bootstrapURL, "url", "", "Installer URL (default from config)")
	bootstrapCmd.Flags().StringVar(&bootstrapDest, "dest", "", "Download directory (default: system temp dir)")
	bootstrapCmd.Flags().BoolVar(&bootstrapKeep, "keep", false, "Keep the installer after a successful install")
	rootCmd.AddCommand(bootstrapCmd)
}

func runBootstrap(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	mgr := newManager()
	if mgr.IsAvailable() {
		if v, err := mgr.Version(ctx); err == nil {
			output.PrintInfo("%s %s is already installed", cfg.Tool.Path, v)
			return
		}
	}

	url := bootstrapURL
	if url == "" {
		url = cfg.Bootstrap.URL
	}
	dir := bootstrapDest
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "wingetkit")
	}
	dest := filepath.Join(dir, cfg.Bootstrap.FileName)

	policy := httpclient.DefaultRetryPolicy()
	policy.MaxRetries = cfg.Bootstrap.Retries
	var progress io.Writer = os.Stderr
	if quiet {
		progress = nil
	}

	dl := bootstrap.NewDownloader(httpclient.New(policy), progress, logger.Default())
	if err := dl.Download(ctx, url, dest); err != nil {
		logger.Error("%v", err)
		exit(1)
	}

	inst := bootstrap.NewInstaller(runner.NewToolRunner("powershell"), logger.Default())
	if err := inst.Install(ctx, dest); err != nil {
		logger.Error("%v", err)
		output.PrintInfo("The installer was kept at %s", dest)
		exit(1)
	}
	if !bootstrapKeep {
		if err := os.Remove(dest); err != nil {
			logger.Debug("Could not remove %s: %v", dest, err)
		}
	}

	v, err := mgr.Version(ctx)
	if err != nil {
		output.PrintWarning("Installed, but %s is not yet on PATH; open a new terminal", cfg.Tool.Path)
		return
	}
	output.PrintSuccess("Installed %s %s", cfg.Tool.Path, v)
}

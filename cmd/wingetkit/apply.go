package main

import (
	"context"

	"github.com/obentoo/wingetkit/internal/common/logger"
	"github.com/obentoo/wingetkit/internal/manifest"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <manifest.toml>",
	Short: "Install and remove packages to match a manifest",
	Long: `Read a TOML manifest of wanted and unwanted packages, install every
wanted package that is missing and uninstall every unwanted one that is
present. Failures are reported at the end and do not stop the run.

Manifest format:

  source = "winget"
  absent = ["Example.Unwanted"]

  [[packages]]
  id = "Git.Git"

  [[packages]]
  id = "Microsoft.PowerToys"
  force = true`,
	Args: cobra.ExactArgs(1),
	Run:  runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) {
	mf, err := manifest.Load(args[0])
	if err != nil {
		logger.Error("%v", err)
		exit(1)
	}

	mgr := newManager()
	requireTool(mgr)

	summary, err := mgr.Apply(context.Background(), mf)
	if err != nil {
		logger.Error("%v", err)
		exit(1)
	}
	printSummary("apply", summary)
	if !summary.OK() {
		exit(1)
	}
}

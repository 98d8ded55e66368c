package main

import (
	"context"

	"github.com/obentoo/wingetkit/internal/common/logger"
	"github.com/spf13/cobra"
)

var upgradeAll bool

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [id]",
	Short: "Upgrade one package or all of them",
	Long: `Upgrade a single package, or with --all every package that has a newer
version available. With --all the list of pending upgrades is taken once at
the start and each package is upgraded in turn; a failure does not stop the
remaining upgrades.`,
	Example: `  wingetkit upgrade Git.Git
  wingetkit upgrade --all`,
	Args: cobra.MaximumNArgs(1),
	Run:  runUpgrade,
}

func init() {
	upgradeCmd.Flags().BoolVarP(&upgradeAll, "all", "a", false, "Upgrade every package with an available upgrade")
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) {
	if upgradeAll == (len(args) == 1) {
		logger.Error("specify either a package id or --all")
		exit(1)
	}

	mgr := newManager()
	requireTool(mgr)
	ctx := context.Background()

	if !upgradeAll {
		if !printResult(mgr.Upgrade(ctx, args[0])) {
			exit(1)
		}
		return
	}

	summary, err := mgr.UpgradeAll(ctx)
	if err != nil {
		logger.Error("%v", err)
		exit(1)
	}
	printSummary("upgrade", summary)
	if !summary.OK() {
		exit(1)
	}
}

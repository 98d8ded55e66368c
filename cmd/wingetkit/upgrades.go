package main

import (
	"context"

	"github.com/obentoo/wingetkit/internal/common/logger"
	"github.com/spf13/cobra"
)

var upgradesJSON bool

var upgradesCmd = &cobra.Command{
	Use:   "upgrades",
	Short: "List packages with a newer version available",
	Long:  `List installed packages for which the package manager offers a newer version.`,
	Args:  cobra.NoArgs,
	Run:   runUpgrades,
}

func init() {
	upgradesCmd.Flags().BoolVar(&upgradesJSON, "json", false, "Print records as JSON")
	rootCmd.AddCommand(upgradesCmd)
}

func runUpgrades(cmd *cobra.Command, args []string) {
	mgr := newManager()
	requireTool(mgr)

	records, err := mgr.ListUpgrades(context.Background())
	if err != nil {
		logger.Error("%v", err)
		exit(1)
	}
	if err := printRecords(records, true, upgradesJSON); err != nil {
		logger.Error("%v", err)
		exit(1)
	}
}

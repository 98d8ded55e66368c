package main

import (
	"context"

	"github.com/spf13/cobra"
)

var uninstallForce bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <id>",
	Short: "Uninstall a package",
	Long: `Uninstall the package with the given identifier and confirm it is no
longer listed. A package that is not installed is reported as nothing to do
unless --force is given.`,
	Args: cobra.ExactArgs(1),
	Run:  runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallForce, "force", "f", false, "Run the uninstaller even if the package is not listed")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) {
	mgr := newManager()
	requireTool(mgr)

	if !printResult(mgr.Uninstall(context.Background(), args[0], uninstallForce)) {
		exit(1)
	}
}

package main

import (
	"context"

	"github.com/spf13/cobra"
)

var installForce bool

var installCmd = &cobra.Command{
	Use:   "install <id>",
	Short: "Install a package",
	Long: `Install the package with the given identifier and confirm it is listed
afterwards. An already installed package is left alone unless --force is
given.`,
	Example: `  wingetkit install Git.Git
  wingetkit install Mozilla.Firefox --force`,
	Args: cobra.ExactArgs(1),
	Run:  runInstall,
}

func init() {
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Reinstall even if already installed")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) {
	mgr := newManager()
	requireTool(mgr)

	if !printResult(mgr.Install(context.Background(), args[0], installForce)) {
		exit(1)
	}
}

package main

import (
	"context"

	"github.com/obentoo/wingetkit/internal/common/logger"
	"github.com/obentoo/wingetkit/internal/report"
	"github.com/spf13/cobra"
)

var (
	listPrefix bool
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list [id]",
	Short: "List installed packages",
	Long: `List installed packages. With an id, only the package whose identifier
matches it exactly (ignoring case) is shown; with --prefix, every package
whose identifier starts with it.`,
	Example: `  wingetkit list
  wingetkit list Git.Git
  wingetkit list Microsoft. --prefix --json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listPrefix, "prefix", false, "Match identifiers by prefix")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print records as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	mgr := newManager()
	requireTool(mgr)
	ctx := context.Background()

	var id string
	if len(args) == 1 {
		id = args[0]
	}
	if listPrefix && id == "" {
		logger.Error("--prefix requires an identifier prefix")
		exit(1)
	}

	var (
		records []report.PackageRecord
		err     error
	)
	if listPrefix {
		records, err = mgr.FindPrefix(ctx, id)
	} else {
		records, err = mgr.List(ctx, id)
	}
	if err != nil {
		logger.Error("%v", err)
		exit(1)
	}

	if err := printRecords(records, false, listJSON); err != nil {
		logger.Error("%v", err)
		exit(1)
	}
	if id != "" && !listPrefix && len(records) == 0 {
		exit(1)
	}
}

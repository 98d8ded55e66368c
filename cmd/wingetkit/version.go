package main

import (
	"context"
	"fmt"

	"github.com/obentoo/wingetkit/internal/common/logger"
	"github.com/obentoo/wingetkit/internal/common/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		toolVersion, err := newManager().Version(context.Background())
		if err != nil {
			logger.Debug("%v", err)
		}
		fmt.Println(version.Info(toolVersion))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

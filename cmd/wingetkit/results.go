package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/obentoo/wingetkit/internal/common/logger"
	"github.com/obentoo/wingetkit/internal/common/output"
	"github.com/obentoo/wingetkit/internal/pkgops"
	"github.com/obentoo/wingetkit/internal/report"
)

// printResult reports one operation and returns whether it succeeded
func printResult(res pkgops.OperationResult) bool {
	pkg := output.FormatPackage(res.TargetID, "")
	switch {
	case res.Skipped:
		output.PrintInfo("%s: nothing to do for %s", res.Action, pkg)
	case res.Succeeded:
		output.PrintSuccess("%s %s (%s)", res.Action, pkg, res.Duration.Round(time.Millisecond))
	default:
		output.PrintError("%s %s: %v", res.Action, pkg, res.Err)
		if path := logger.Default().FilePath(); path != "" && res.RawOutput != "" {
			output.PrintInfo("Tool output was recorded in %s", path)
		}
	}
	return res.Succeeded
}

// printSummary reports every failed item and the totals
func printSummary(verb string, summary pkgops.BatchSummary) {
	for _, res := range summary.Failed() {
		output.PrintError("%s %s: %v", res.Action, output.FormatPackage(res.TargetID, ""), res.Err)
	}
	if !quiet {
		fmt.Println(output.FormatSummary(verb, summary.SuccessCount, summary.FailureCount))
	}
}

// printRecords writes records as a table, or as JSON when asJSON is set
func printRecords(records []report.PackageRecord, upgrades, asJSON bool) error {
	if asJSON {
		if records == nil {
			records = []report.PackageRecord{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	if len(records) == 0 {
		output.PrintInfo("No packages found")
		return nil
	}
	output.PrintRecords(os.Stdout, records, upgrades)
	return nil
}

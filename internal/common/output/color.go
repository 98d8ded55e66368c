package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/obentoo/wingetkit/internal/report"
)

var (
	// Package state colors
	Installed  = color.New(color.FgGreen)
	Upgradable = color.New(color.FgYellow)
	Removed    = color.New(color.FgRed)
	Skipped    = color.New(color.FgCyan)
	Unknown    = color.New(color.FgMagenta)

	// Message colors
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Dim     = color.New(color.Faint)

	// Structural colors
	Header  = color.New(color.FgWhite, color.Bold)
	Package = color.New(color.FgBlue, color.Bold)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// ForceColor enables color output even when not a TTY
func ForceColor() {
	color.NoColor = false
}

// IsTerminal returns true if stdout is a terminal
func IsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// StateColor returns the color for a package state label
func StateColor(state string) *color.Color {
	switch state {
	case "Installed":
		return Installed
	case "Upgradable":
		return Upgradable
	case "Removed":
		return Removed
	case "Skipped":
		return Skipped
	case "Unknown":
		return Unknown
	default:
		return color.New(color.Reset)
	}
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Printf("⚠ "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	Info.Printf("→ "+format+"\n", args...)
}

// FormatState formats a state label with its color
func FormatState(state string) string {
	return StateColor(state).Sprintf("[%s]", state)
}

// FormatPackage formats a package identifier, with its version when known
func FormatPackage(id, version string) string {
	if version != "" {
		return Package.Sprintf("%s@%s", id, version)
	}
	return Package.Sprint(id)
}

// PrintRecords writes records as an aligned table. Widths are measured in
// terminal cells so CJK names stay aligned. When upgrades is set the
// Available column is shown and highlighted.
func PrintRecords(w io.Writer, records []report.PackageRecord, upgrades bool) {
	headers := []string{"Name", "Id", "Version"}
	if upgrades {
		headers = append(headers, "Available")
	}
	headers = append(headers, "Source")

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{r.Name, r.ID, r.InstalledVersion}
		if upgrades {
			row = append(row, r.AvailableVersion)
		}
		rows = append(rows, append(row, r.Source))
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	for i, h := range headers {
		Header.Fprint(w, runewidth.FillRight(h, widths[i]+1))
		if i == len(headers)-1 {
			fmt.Fprintln(w)
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			padded := runewidth.FillRight(cell, widths[i]+1)
			switch {
			case i == 1:
				Package.Fprint(w, padded)
			case upgrades && i == 3:
				Upgradable.Fprint(w, padded)
			default:
				fmt.Fprint(w, padded)
			}
		}
		fmt.Fprintln(w)
	}
}

// FormatSummary renders the outcome counts of a batch operation
func FormatSummary(verb string, succeeded, failed int) string {
	if failed == 0 {
		return Success.Sprintf("%s: %d succeeded", verb, succeeded)
	}
	return fmt.Sprintf("%s: %s, %s", verb,
		Success.Sprintf("%d succeeded", succeeded),
		Error.Sprintf("%d failed", failed))
}

// Box prints a boxed message
func Box(title, content string) {
	fmt.Println()
	Header.Println("┌─ " + title + " ─")
	fmt.Println("│")
	fmt.Println("│  " + content)
	fmt.Println("│")
	Header.Println("└────────────────")
	fmt.Println()
}

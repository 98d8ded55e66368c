package report

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// percentPattern matches progress lines such as "  45%"
	percentPattern = regexp.MustCompile(`\d+(\.\d+)?\s*%`)
	// transferPattern matches download counters such as "1.50 MB / 3.00 MB"
	transferPattern = regexp.MustCompile(`(?i)[\d.]+\s*[KMG]?B\s*/\s*[\d.]+\s*[KMG]?B`)
)

// FilterNoise reduces raw tool output to the lines worth keeping in a log:
// blank lines, spinner frames, progress bars and percentage or transfer
// counters are dropped and control characters are removed.
func FilterNoise(text string) []string {
	var kept []string
	for _, line := range normalizeLines(text) {
		line = strings.TrimSpace(stripControl(line))
		if line == "" || (isSpinner(line) && !isSeparator(line)) || isProgress(line) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// isProgress reports whether a line is a progress indicator
func isProgress(line string) bool {
	for _, r := range line {
		// block elements are used to draw progress bars
		if r >= '▀' && r <= '▟' {
			return true
		}
	}
	return percentPattern.MatchString(line) || transferPattern.MatchString(line)
}

// stripControl removes ANSI escape sequences and non-printable characters
func stripControl(line string) string {
	line = ansiPattern.ReplaceAllString(line, "")
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, line)
}

// ansiPattern matches CSI escape sequences
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

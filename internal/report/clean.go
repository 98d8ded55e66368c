package report

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// artifacts maps known rendering debris to its intended text. The first
// entry is "…" decoded through the OEM code page.
var artifacts = strings.NewReplacer(
	"ΓÇª", "…",
	"\u00a0", " ",
	"\ufeff", "",
)

// normalizeLines splits text into lines and resolves carriage-return
// overprinting, keeping only what a terminal would finally show.
func normalizeLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if i := strings.LastIndexByte(line, '\r'); i >= 0 {
			line = line[i+1:]
		}
		lines = append(lines, strings.TrimPrefix(line, "\ufeff"))
	}
	return lines
}

// isSeparator reports whether a line is a row of dashes
func isSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= 3 && strings.Trim(trimmed, "-") == ""
}

// isSpinner reports whether a line holds only progress spinner frames
func isSpinner(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && strings.Trim(trimmed, `-\|/ `) == ""
}

// isDecoration reports whether r is a glyph the tool draws in front of values
func isDecoration(r rune) bool {
	switch r {
	case '…', '»', '•', '·', '>', '*':
		return true
	}
	return unicode.Is(unicode.So, r)
}

// cleanField trims a sliced column value of padding and rendering debris
func cleanField(s string) string {
	s = artifacts.Replace(s)
	s = strings.Map(func(r rune) rune {
		if r == utf8.RuneError || unicode.Is(unicode.Cf, r) {
			return -1
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	s = strings.TrimLeftFunc(s, isDecoration)
	return strings.TrimSpace(s)
}

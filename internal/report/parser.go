// Package report parses the column-aligned tables printed by the package
// manager's "list" and "upgrade" commands.
//
// A report looks like:
//
//	Name      Id        Version  Available  Source
//	-------------------------------------------------
//	Foo App   Foo.App   1.0      2.0        winget
//
// Column offsets are taken from the header once per report and reused for
// every row, so rows are sliced exactly as the tool aligned them.
package report

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PackageRecord is one row of a report
type PackageRecord struct {
	Name             string `json:"name"`
	ID               string `json:"id"`
	InstalledVersion string `json:"installedVersion,omitempty"`
	AvailableVersion string `json:"availableVersion,omitempty"`
	Source           string `json:"source,omitempty"`
}

// Status classifies what a report turned out to contain
type Status int

const (
	// StatusEmpty means the tool reported no matching packages
	StatusEmpty Status = iota
	// StatusParseFailure means the text did not have the header/separator shape
	StatusParseFailure
	// StatusRows means at least one record was parsed
	StatusRows
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusParseFailure:
		return "parse-failure"
	case StatusRows:
		return "rows"
	default:
		return "unknown"
	}
}

// Report is the parsed form of one tool invocation's output
type Report struct {
	Status  Status
	Columns Columns
	Records []PackageRecord
	Err     error // set for StatusParseFailure when the header was rejected
}

// emptyMarkers are phrases the tool prints instead of a table
var emptyMarkers = []string{
	"no installed package found",
	"no package found matching",
	"no applicable update",
	"no applicable upgrade",
	"no available upgrade",
	"no newer package versions",
}

// Parse returns the records of a report. Text without a table yields nil;
// use ParseReport to tell an empty system from unparseable output.
func Parse(text string) []PackageRecord {
	return ParseReport(text).Records
}

// ParseReport parses report text and classifies the outcome
func ParseReport(text string) *Report {
	lines := normalizeLines(text)

	sep := -1
	for i, line := range lines {
		if isSeparator(line) {
			sep = i
			break
		}
	}

	if sep < 0 {
		return &Report{Status: classifyTableless(lines)}
	}
	if sep == 0 {
		return &Report{Status: StatusParseFailure, Err: ErrMalformedHeader}
	}

	cols, err := ComputeColumns(lines[sep-1])
	if err != nil {
		return &Report{Status: StatusParseFailure, Err: err}
	}

	rep := &Report{Status: StatusEmpty, Columns: cols}
	for _, line := range lines[sep+1:] {
		// a blank line ends the table; anything after it is a trailer
		// or a second table of explicitly-targeted packages
		if strings.TrimSpace(line) == "" {
			if len(rep.Records) > 0 {
				break
			}
			continue
		}
		if isSeparator(line) {
			continue
		}
		if rec, ok := cols.Split(line); ok {
			rep.Records = append(rep.Records, rec)
		}
	}

	if len(rep.Records) > 0 {
		rep.Status = StatusRows
	}
	return rep
}

// classifyTableless decides between "tool said nothing matched" and
// "output had an unexpected shape"
func classifyTableless(lines []string) Status {
	blank := true
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, marker := range emptyMarkers {
			if strings.Contains(lower, marker) {
				return StatusEmpty
			}
		}
		if strings.TrimSpace(line) != "" && !isSpinner(line) {
			blank = false
		}
	}
	if blank {
		return StatusEmpty
	}
	return StatusParseFailure
}

// MatchID reports whether a record identifier equals target.
// Identifiers are compared case-insensitively, as the tool does.
func MatchID(id, target string) bool {
	return id != "" && strings.EqualFold(id, target)
}

// HasPrefixID reports whether id starts with prefix, case-insensitively
func HasPrefixID(id, prefix string) bool {
	for _, want := range prefix {
		got, size := utf8.DecodeRuneInString(id)
		if size == 0 || !equalFoldRune(got, want) {
			return false
		}
		id = id[size:]
	}
	return true
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// Find returns the first record whose identifier matches target
func Find(records []PackageRecord, target string) (PackageRecord, bool) {
	for _, rec := range records {
		if MatchID(rec.ID, target) {
			return rec, true
		}
	}
	return PackageRecord{}, false
}

// Contains reports whether any record matches target
func Contains(records []PackageRecord, target string) bool {
	_, ok := Find(records, target)
	return ok
}

// FilterPrefix returns the records whose identifier starts with prefix
func FilterPrefix(records []PackageRecord, prefix string) []PackageRecord {
	var out []PackageRecord
	for _, rec := range records {
		if HasPrefixID(rec.ID, prefix) {
			out = append(out, rec)
		}
	}
	return out
}

package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

var (
	// ErrMalformedHeader is returned when a header line cannot be mapped to columns
	ErrMalformedHeader = errors.New("malformed report header")
	// ErrUnparseable marks output that is neither a table nor a known empty result
	ErrUnparseable = errors.New("unrecognized package manager output")
)

// minSourceWidth is how far past the Source column a row must reach
// to be considered a real data row.
const minSourceWidth = 5

// Columns is the column-offset table of one report, measured in display cells.
// Name always starts at 0. A negative offset marks an absent column.
type Columns struct {
	ID        int
	Version   int
	Available int
	Source    int
}

// ComputeColumns derives the column table from a header line.
// Labels are taken positionally (Name, Id, Version, Available, Source) so
// localized headers work; each label is located by first occurrence after
// the previous one.
func ComputeColumns(header string) (Columns, error) {
	labels := strings.Fields(header)
	if len(labels) < 3 || len(labels) > 5 {
		return Columns{}, fmt.Errorf("%w: expected 3 to 5 labels, got %d", ErrMalformedHeader, len(labels))
	}

	offsets := make([]int, 0, len(labels))
	pos := 0
	for _, label := range labels {
		idx := strings.Index(header[pos:], label)
		if idx < 0 {
			return Columns{}, fmt.Errorf("%w: label %q not found", ErrMalformedHeader, label)
		}
		offsets = append(offsets, runewidth.StringWidth(header[:pos+idx]))
		pos += idx + len(label)
	}

	if offsets[1] <= 0 {
		return Columns{}, fmt.Errorf("%w: Id column overlaps Name", ErrMalformedHeader)
	}

	cols := Columns{ID: offsets[1], Version: offsets[2], Available: -1, Source: -1}
	switch len(labels) {
	case 5:
		cols.Available = offsets[3]
		cols.Source = offsets[4]
	case 4:
		// "list" omits Available when nothing is upgradable
		if strings.EqualFold(labels[3], "Available") {
			cols.Available = offsets[3]
		} else {
			cols.Source = offsets[3]
		}
	}
	return cols, nil
}

// MinWidth is the shortest row, in display cells, that can hold a record
func (c Columns) MinWidth() int {
	if c.Source >= 0 {
		return c.Source + minSourceWidth
	}
	if c.Available >= 0 {
		return c.Available + 1
	}
	return c.Version + 1
}

// Split slices one data row into a record using the column table.
// It returns false when the row is too short or has no identifier.
func (c Columns) Split(line string) (PackageRecord, bool) {
	if runewidth.StringWidth(line) < c.MinWidth() {
		return PackageRecord{}, false
	}

	versionEnd := c.nextStart(c.Available, c.Source)
	rec := PackageRecord{
		Name:             cleanField(cut(line, 0, c.ID)),
		ID:               cleanField(cut(line, c.ID, c.Version)),
		InstalledVersion: cleanField(cut(line, c.Version, versionEnd)),
	}
	if c.Available >= 0 {
		rec.AvailableVersion = cleanField(cut(line, c.Available, c.nextStart(c.Source)))
	}
	if c.Source >= 0 {
		rec.Source = cleanField(cut(line, c.Source, -1))
	}

	if rec.ID == "" {
		return PackageRecord{}, false
	}
	return rec, true
}

// nextStart returns the first present offset, or -1 for end of line
func (c Columns) nextStart(candidates ...int) int {
	for _, off := range candidates {
		if off >= 0 {
			return off
		}
	}
	return -1
}

// cut returns the runes of line whose starting display cell lies in [from, to).
// A negative to means end of line.
func cut(line string, from, to int) string {
	var b strings.Builder
	cell := 0
	for _, r := range line {
		if to >= 0 && cell >= to {
			break
		}
		if cell >= from {
			b.WriteRune(r)
		}
		cell += runewidth.RuneWidth(r)
	}
	return b.String()
}

// Package manifest loads the desired package set used by "wingetkit apply".
//
// A manifest is a TOML file:
//
//	source = "winget"            # optional, restricts every operation
//	absent = ["Example.Unwanted"] # packages to uninstall
//
//	[[packages]]
//	id = "Git.Git"
//
//	[[packages]]
//	id = "Microsoft.PowerToys"
//	force = true                  # reinstall even if present
package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrManifestNotFound is returned when the manifest file does not exist
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrMissingID is returned when a package entry has no id
	ErrMissingID = errors.New("missing required field: id")
	// ErrDuplicateID is returned when an id is listed twice
	ErrDuplicateID = errors.New("duplicate package id")
	// ErrConflict is returned when an id is both wanted and absent
	ErrConflict = errors.New("package listed as both present and absent")
	// ErrUnknownKey is returned for keys the manifest format does not define
	ErrUnknownKey = errors.New("unknown manifest key")
)

// Package is one package that must be installed
type Package struct {
	ID    string `toml:"id"`
	Force bool   `toml:"force,omitempty"`
}

// Manifest is the desired state of the package set
type Manifest struct {
	Source   string    `toml:"source,omitempty"`
	Packages []Package `toml:"packages"`
	Absent   []string  `toml:"absent,omitempty"`
}

// Load reads and validates a manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest data
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, undecoded[0].String())
	}

	for i := range m.Packages {
		m.Packages[i].ID = strings.TrimSpace(m.Packages[i].ID)
	}
	for i := range m.Absent {
		m.Absent[i] = strings.TrimSpace(m.Absent[i])
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks ids are present and unique. Ids compare
// case-insensitively, as the package manager treats them.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool)
	for i, pkg := range m.Packages {
		if pkg.ID == "" {
			return fmt.Errorf("packages[%d]: %w", i, ErrMissingID)
		}
		key := strings.ToLower(pkg.ID)
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, pkg.ID)
		}
		seen[key] = true
	}

	absent := make(map[string]bool)
	for i, id := range m.Absent {
		if id == "" {
			return fmt.Errorf("absent[%d]: %w", i, ErrMissingID)
		}
		key := strings.ToLower(id)
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrConflict, id)
		}
		if absent[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		absent[key] = true
	}
	return nil
}

// Len returns the number of operations the manifest describes
func (m *Manifest) Len() int {
	return len(m.Packages) + len(m.Absent)
}

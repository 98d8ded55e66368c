package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	data := `
source = "winget"
absent = ["Example.Unwanted"]

[[packages]]
id = "Git.Git"

[[packages]]
id = " Microsoft.PowerToys "
force = true
`
	m, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &Manifest{
		Source: "winget",
		Packages: []Package{
			{ID: "Git.Git"},
			{ID: "Microsoft.PowerToys", Force: true},
		},
		Absent: []string{"Example.Unwanted"},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "missing id",
			data:    "[[packages]]\nforce = true\n",
			wantErr: ErrMissingID,
		},
		{
			name:    "duplicate id differing in case",
			data:    "[[packages]]\nid = \"Git.Git\"\n[[packages]]\nid = \"git.git\"\n",
			wantErr: ErrDuplicateID,
		},
		{
			name:    "present and absent",
			data:    "absent = [\"Git.Git\"]\n[[packages]]\nid = \"Git.Git\"\n",
			wantErr: ErrConflict,
		},
		{
			name:    "duplicate absent",
			data:    "absent = [\"A.B\", \"a.b\"]\n",
			wantErr: ErrDuplicateID,
		},
		{
			name:    "empty absent entry",
			data:    "absent = [\"  \"]\n",
			wantErr: ErrMissingID,
		},
		{
			name:    "unknown key",
			data:    "[[packages]]\nid = \"Git.Git\"\nversion = \"2.0\"\n",
			wantErr: ErrUnknownKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseInvalidTOML(t *testing.T) {
	if _, err := Parse([]byte("[[packages]\nid=")); err == nil {
		t.Error("Parse() should fail on invalid TOML")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packages.toml")

	if _, err := Load(path); !errors.Is(err, ErrManifestNotFound) {
		t.Errorf("Load() missing file error = %v, want ErrManifestNotFound", err)
	}

	if err := os.WriteFile(path, []byte("[[packages]]\nid = \"Git.Git\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(m.Packages) != 1 || m.Packages[0].ID != "Git.Git" {
		t.Errorf("Load() = %+v", m)
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genToolPath generates executable names and absolute paths
func genToolPath() gopter.Gen {
	return gen.RegexMatch(`^(/[a-z][a-z0-9/]{0,20}/)?winget[a-z]{0,4}$`)
}

// genSource generates package source names, including none
func genSource() gopter.Gen {
	return gen.OneConstOf("", "winget", "msstore")
}

// genConfig generates valid Config structs with defaults applied
func genConfig() gopter.Gen {
	return gopter.CombineGens(
		genToolPath(),
		genSource(),
		gen.IntRange(1, 100),
		gen.IntRange(1, 60),
		gen.IntRange(1, 3600),
		gen.Bool(),
	).Map(func(values []interface{}) *Config {
		rotate := values[5].(bool)
		cfg := &Config{
			Tool: ToolConfig{
				Path:   values[0].(string),
				Source: values[1].(string),
			},
			Log: LogConfig{
				MaxSizeMB:     values[2].(int),
				RotateOnStart: &rotate,
			},
			Verify: VerifyConfig{
				WaitSeconds:          values[3].(int),
				MaxHelperWaitSeconds: values[4].(int),
			},
		}
		cfg.applyDefaults()
		return cfg
	})
}

// TestConfigRoundTrip tests that saving and loading preserves every field
func TestConfigRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Config YAML round-trip preserves data", prop.ForAll(
		func(cfg *Config) bool {
			tmpDir, err := os.MkdirTemp("", "config-test-*")
			if err != nil {
				t.Logf("Failed to create temp dir: %v", err)
				return false
			}
			defer os.RemoveAll(tmpDir)

			configPath := filepath.Join(tmpDir, "config.yaml")

			if err := cfg.SaveTo(configPath); err != nil {
				t.Logf("Failed to save config: %v", err)
				return false
			}

			loaded, err := LoadFrom(configPath)
			if err != nil {
				t.Logf("Failed to load config: %v", err)
				return false
			}

			return reflect.DeepEqual(cfg, loaded)
		},
		genConfig(),
	))

	properties.TestingRun(t)
}

// TestMissingConfigFileCreatesDefault tests that missing config file creates default
func TestMissingConfigFileCreatesDefault(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "subdir", "config.yaml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Tool.Path != DefaultToolPath {
		t.Errorf("Expected tool path %q, got: %s", DefaultToolPath, cfg.Tool.Path)
	}
	if cfg.WaitInterval() != 5*time.Second {
		t.Errorf("Expected 5s wait interval, got: %v", cfg.WaitInterval())
	}
	if !reflect.DeepEqual(cfg.Verify.HelperProcesses, DefaultHelperProcesses) {
		t.Errorf("Expected default helper processes, got: %v", cfg.Verify.HelperProcesses)
	}
	if !cfg.RotateLogOnStart() {
		t.Error("Expected log rotation on start by default")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Expected config file to be created")
	}
}

// TestPartialConfigGetsDefaults tests that unset fields are filled on load
func TestPartialConfigGetsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `tool:
  path: C:\Tools\winget.exe
  source: winget
log:
  max_size_mb: 1
  rotate_on_start: false
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Tool.Path != `C:\Tools\winget.exe` {
		t.Errorf("Tool.Path = %q", cfg.Tool.Path)
	}
	if cfg.Tool.Source != "winget" {
		t.Errorf("Tool.Source = %q", cfg.Tool.Source)
	}
	if cfg.LogMaxBytes() != 1024*1024 {
		t.Errorf("LogMaxBytes() = %d", cfg.LogMaxBytes())
	}
	if cfg.RotateLogOnStart() {
		t.Error("RotateLogOnStart() = true, want false")
	}
	if cfg.MaxHelperWait() != 600*time.Second {
		t.Errorf("MaxHelperWait() = %v", cfg.MaxHelperWait())
	}
	if cfg.Bootstrap.URL != DefaultBootstrapURL {
		t.Errorf("Bootstrap.URL = %q", cfg.Bootstrap.URL)
	}
}

func TestLoadRejectsNegativeValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"negative log size", "log:\n  max_size_mb: -1\n", ErrInvalidLogSize},
		{"negative wait", "verify:\n  wait_seconds: -3\n", ErrInvalidWaitTime},
		{"negative helper wait", "verify:\n  max_helper_wait_seconds: -3\n", ErrInvalidWaitTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFrom(configPath)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFrom() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("tool: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("LoadFrom() should fail on invalid YAML")
	}
}

func TestValidateEmptyToolPath(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != ErrToolPathNotSet {
		t.Errorf("Validate() = %v, want ErrToolPathNotSet", err)
	}
}

func TestConfigPathsHonourXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	paths, err := ConfigPaths()
	if err != nil {
		t.Fatalf("ConfigPaths() error = %v", err)
	}
	if paths[0] != filepath.Join(xdg, "wingetkit", "config.yaml") {
		t.Errorf("first path = %q", paths[0])
	}
	if !strings.HasSuffix(paths[1], filepath.Join(".wingetkit", "config.yaml")) {
		t.Errorf("legacy path = %q", paths[1])
	}
}

func TestLogPath(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	cfg := Default()
	path, err := cfg.LogPath()
	if err != nil {
		t.Fatalf("LogPath() error = %v", err)
	}
	if path != filepath.Join(state, "wingetkit", "logs", "wingetkit.log") {
		t.Errorf("LogPath() = %q", path)
	}

	cfg.Log.Path = "~/wk.log"
	path, err = cfg.LogPath()
	if err != nil {
		t.Fatalf("LogPath() error = %v", err)
	}
	if strings.HasPrefix(path, "~") || !strings.HasSuffix(path, "wk.log") {
		t.Errorf("LogPath() = %q, want expanded home", path)
	}
}

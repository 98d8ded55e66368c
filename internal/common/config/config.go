package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/obentoo/wingetkit/internal/common/logger"
	"gopkg.in/yaml.v3"
)

var (
	ErrToolPathNotSet  = errors.New("tool path is not configured")
	ErrInvalidLogSize  = errors.New("log.max_size_mb must not be negative")
	ErrInvalidWaitTime = errors.New("verify wait durations must not be negative")
)

// Default values applied to unset fields
const (
	DefaultToolPath          = "winget"
	DefaultLogMaxSizeMB      = 5
	DefaultWaitSeconds       = 5
	DefaultMaxHelperWait     = 600
	DefaultBootstrapRetries  = 3
	DefaultBootstrapURL      = "https://aka.ms/getwinget"
	DefaultBootstrapFileName = "Microsoft.DesktopAppInstaller.msixbundle"
)

// DefaultHelperProcesses are installer helpers that may still be finalizing
// a package operation after the tool itself returns.
var DefaultHelperProcesses = []string{"AppInstallerCLI", "WindowsPackageManagerServer"}

// Config represents the application configuration.
// It is loaded once at startup and passed to every component.
type Config struct {
	Tool      ToolConfig      `yaml:"tool"`
	Log       LogConfig       `yaml:"log"`
	Verify    VerifyConfig    `yaml:"verify"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

// ToolConfig describes the external package manager
type ToolConfig struct {
	Path      string   `yaml:"path"`                 // executable name or absolute path
	Source    string   `yaml:"source,omitempty"`     // restrict queries to one source
	ExtraArgs []string `yaml:"extra_args,omitempty"` // appended to every invocation
}

// LogConfig holds log file settings
type LogConfig struct {
	Path          string `yaml:"path,omitempty"`
	MaxSizeMB     int    `yaml:"max_size_mb"`
	RotateOnStart *bool  `yaml:"rotate_on_start,omitempty"`
}

// VerifyConfig controls post-operation verification
type VerifyConfig struct {
	WaitSeconds          int      `yaml:"wait_seconds"`
	HelperProcesses      []string `yaml:"helper_processes"`
	MaxHelperWaitSeconds int      `yaml:"max_helper_wait_seconds"`
}

// BootstrapConfig controls downloading the package manager installer
type BootstrapConfig struct {
	URL      string `yaml:"url"`
	FileName string `yaml:"file_name"`
	Retries  int    `yaml:"retries"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills unset fields
func (c *Config) applyDefaults() {
	if c.Tool.Path == "" {
		c.Tool.Path = DefaultToolPath
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if c.Log.RotateOnStart == nil {
		rotate := true
		c.Log.RotateOnStart = &rotate
	}
	if c.Verify.WaitSeconds == 0 {
		c.Verify.WaitSeconds = DefaultWaitSeconds
	}
	if c.Verify.HelperProcesses == nil {
		c.Verify.HelperProcesses = append([]string{}, DefaultHelperProcesses...)
	}
	if c.Verify.MaxHelperWaitSeconds == 0 {
		c.Verify.MaxHelperWaitSeconds = DefaultMaxHelperWait
	}
	if c.Bootstrap.URL == "" {
		c.Bootstrap.URL = DefaultBootstrapURL
	}
	if c.Bootstrap.FileName == "" {
		c.Bootstrap.FileName = DefaultBootstrapFileName
	}
	if c.Bootstrap.Retries == 0 {
		c.Bootstrap.Retries = DefaultBootstrapRetries
	}
}

// Validate checks the configuration for values no component can use
func (c *Config) Validate() error {
	if c.Tool.Path == "" {
		return ErrToolPathNotSet
	}
	if c.Log.MaxSizeMB < 0 {
		return ErrInvalidLogSize
	}
	if c.Verify.WaitSeconds < 0 || c.Verify.MaxHelperWaitSeconds < 0 {
		return ErrInvalidWaitTime
	}
	return nil
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/wingetkit/config.yaml (XDG standard - priority)
// 2. ~/.wingetkit/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Check XDG_CONFIG_HOME first, fallback to ~/.config
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "wingetkit", "config.yaml"),
		filepath.Join(home, ".wingetkit", "config.yaml"),
	}, nil
}

// FindConfigPath returns the first existing config file path
// Returns the default path if no config file exists yet
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return paths[0], nil
}

// Load reads configuration from the first available config file
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path.
// A missing file is created with defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if saveErr := cfg.SaveTo(path); saveErr != nil {
				return nil, saveErr
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LogPath returns the configured log file path, expanding "~"
func (c *Config) LogPath() (string, error) {
	if c.Log.Path == "" {
		return logger.DefaultLogPath()
	}
	return expandHome(c.Log.Path)
}

// LogMaxBytes returns the rotation threshold in bytes
func (c *Config) LogMaxBytes() int64 {
	return int64(c.Log.MaxSizeMB) * 1024 * 1024
}

// RotateLogOnStart reports whether the log is rotated at process start
func (c *Config) RotateLogOnStart() bool {
	return c.Log.RotateOnStart == nil || *c.Log.RotateOnStart
}

// WaitInterval is the fixed pause before re-verifying when no helper runs
func (c *Config) WaitInterval() time.Duration {
	return time.Duration(c.Verify.WaitSeconds) * time.Second
}

// MaxHelperWait bounds how long verification waits for helper processes
func (c *Config) MaxHelperWait() time.Duration {
	return time.Duration(c.Verify.MaxHelperWaitSeconds) * time.Second
}

// expandHome expands a leading "~" to the user's home directory
func expandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

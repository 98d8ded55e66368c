package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func findCommand(name string) *cobra.Command {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func TestCommandsExist(t *testing.T) {
	for _, name := range []string{"list", "upgrades", "install", "uninstall", "upgrade", "apply", "bootstrap", "version", "completion"} {
		t.Run(name, func(t *testing.T) {
			cmd := findCommand(name)
			if cmd == nil {
				t.Fatalf("%s subcommand should exist", name)
			}
			if cmd.Short == "" {
				t.Errorf("%s should have a short description", name)
			}
			if cmd.Run == nil {
				t.Errorf("%s should have a Run function", name)
			}
		})
	}
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		command string
		flag    string
	}{
		{"list", "prefix"},
		{"list", "json"},
		{"upgrades", "json"},
		{"install", "force"},
		{"uninstall", "force"},
		{"upgrade", "all"},
		{"bootstrap", "url"},
		{"bootstrap", "dest"},
		{"bootstrap", "keep"},
	}

	for _, tt := range tests {
		t.Run(tt.command+" --"+tt.flag, func(t *testing.T) {
			cmd := findCommand(tt.command)
			if cmd == nil {
				t.Fatalf("%s subcommand should exist", tt.command)
			}
			if cmd.Flags().Lookup(tt.flag) == nil {
				t.Errorf("%s should have --%s flag", tt.command, tt.flag)
			}
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "quiet", "no-color", "config"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("root command should have --%s flag", name)
		}
	}
}

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		command string
		args    []string
		wantErr bool
	}{
		{"install", nil, true},
		{"install", []string{"Git.Git"}, false},
		{"install", []string{"Git.Git", "Mozilla.Firefox"}, true},
		{"uninstall", nil, true},
		{"list", nil, false},
		{"list", []string{"Git.Git"}, false},
		{"list", []string{"a", "b"}, true},
		{"upgrade", nil, false},
		{"upgrade", []string{"a", "b"}, true},
		{"apply", nil, true},
		{"upgrades", []string{"x"}, true},
		{"completion", []string{"powershell"}, false},
		{"completion", []string{"cmd"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.command+" "+strings.Join(tt.args, " "), func(t *testing.T) {
			cmd := findCommand(tt.command)
			if cmd == nil {
				t.Fatalf("%s subcommand should exist", tt.command)
			}
			err := cmd.ValidateArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArgs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestApplyUsageDescribesManifest(t *testing.T) {
	if !strings.Contains(applyCmd.Long, "[[packages]]") {
		t.Error("apply help should show the manifest format")
	}
}

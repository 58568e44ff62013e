package main

import (
	"os"
	"testing"
)

func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{
			name:     "no args",
			args:     []string{"lzip"},
			expected: false,
		},
		{
			name:     "compress command",
			args:     []string{"lzip", "compress"},
			expected: true,
		},
		{
			name:     "dict command",
			args:     []string{"lzip", "dict"},
			expected: true,
		},
		{
			name:     "serve command",
			args:     []string{"lzip", "serve"},
			expected: true,
		},
		{
			name:     "help flag",
			args:     []string{"lzip", "--help"},
			expected: true,
		},
		{
			name:     "version flag",
			args:     []string{"lzip", "--version"},
			expected: true,
		},
		{
			name:     "unknown arg is not CLI",
			args:     []string{"lzip", "explain monads to me"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			result := isCLIMode()

			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestIsHelpOrVersion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{
			name:     "no args",
			args:     []string{"lzip"},
			expected: false,
		},
		{
			name:     "help flag",
			args:     []string{"lzip", "--help"},
			expected: true,
		},
		{
			name:     "short help flag",
			args:     []string{"lzip", "-h"},
			expected: true,
		},
		{
			name:     "version flag",
			args:     []string{"lzip", "--version"},
			expected: true,
		},
		{
			name:     "help subcommand",
			args:     []string{"lzip", "help"},
			expected: true,
		},
		{
			name:     "compress command is not help",
			args:     []string{"lzip", "compress"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			result := isHelpOrVersion()

			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestForcedMode(t *testing.T) {
	t.Setenv("LZIP_MODE", "  MCP ")
	if got := forcedMode(); got != "mcp" {
		t.Errorf("forcedMode() = %q, want mcp", got)
	}

	t.Setenv("LZIP_MODE", "")
	if got := forcedMode(); got != "" {
		t.Errorf("forcedMode() = %q, want empty", got)
	}
}

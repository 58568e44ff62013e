package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/db"
	"github.com/ezixen/lzip/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"compress": true, "expand": true, "batch": true,
	"dict": true, "templates": true,
	"history": true, "stats": true, "purge": true,
	"serve": true, "mcp": true,
	"version": true, "help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// forcedMode returns the LZIP_MODE override: "cli", "mcp", "gui", or "".
func forcedMode() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv("LZIP_MODE")))
}

func main() {
	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".lzip")

	database, err := db.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	db.ConfigurePool(database, cfg)

	switch forcedMode() {
	case "mcp":
		if err := mcp.Run(database, cfg, Version); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	case "gui":
		if err := runServe(database, cfg, cfg.WebBind, cfg.WebPort); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// CLI mode: known subcommand
	if isCLIMode() || forcedMode() == "cli" {
		app := newCLIApp(database, cfg)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// No args + interactive terminal → REPL
	if len(os.Args) < 2 && isTerminal() {
		runREPL(database, cfg)
		return
	}

	// Unknown argument + terminal → treat the whole argument list as
	// text to compress. Pasting a prompt directly is the common case.
	if len(os.Args) >= 2 && isTerminal() {
		app := newCLIApp(database, cfg)
		args := append([]string{os.Args[0], "compress"}, os.Args[1:]...)
		if err := app.Run(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// MCP server mode (default: piped stdin, no recognized command)
	if err := mcp.Run(database, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

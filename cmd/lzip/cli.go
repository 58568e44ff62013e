package main

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ezixen/lzip/internal/clipboard"
	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/dict"
	"github.com/ezixen/lzip/internal/errors"
	"github.com/ezixen/lzip/internal/mcp"
	"github.com/ezixen/lzip/internal/ops"
	"github.com/ezixen/lzip/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "lzip",
		Usage:   "Prompt shorthand compressor",
		Version: Version,
		Commands: []*cli.Command{
			compressCmd(db, cfg),
			expandCmd(db, cfg),
			batchCmd(db, cfg),
			dictCmd(),
			templatesCmd(),
			historyCmd(db),
			statsCmd(db),
			purgeCmd(db),
			serveCmd(db, cfg),
			mcpCmd(db, cfg),
			versionCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// copyFlags are shared by compress and expand.
func copyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "Output JSON instead of a report"},
		&cli.BoolFlag{Name: "copy", Usage: "Copy the result to the clipboard"},
		&cli.BoolFlag{Name: "no-copy", Usage: "Do not copy the result to the clipboard"},
	}
}

// compressCmd creates the compress command.
func compressCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "compress",
		Usage:     "Compress prompt text into shorthand (args or stdin)",
		ArgsUsage: "[text...]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{Name: "aggressive", Aliases: []string{"a"}, Usage: "Strip articles and weak qualifiers"},
		}, copyFlags()...),
		Action: func(c *cli.Context) error {
			text, err := textFromArgsOrStdin(c)
			if err != nil {
				return outputError(err)
			}

			input := ops.CompressInput{Text: text, Source: "cli"}
			if c.IsSet("aggressive") {
				aggressive := c.Bool("aggressive")
				input.Aggressive = &aggressive
			}

			output, err := ops.Compress(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			copied := maybeCopy(c, cfg, output.Compressed)

			if c.Bool("json") {
				return outputJSON(output)
			}

			printCompressReport(output, copied)
			return nil
		},
	}
}

// expandCmd creates the expand command.
func expandCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "expand",
		Usage:     "Expand shorthand back into prose (args or stdin)",
		ArgsUsage: "[text...]",
		Flags:     copyFlags(),
		Action: func(c *cli.Context) error {
			text, err := textFromArgsOrStdin(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Expand(c.Context, db, cfg, ops.ExpandInput{
				Text:   text,
				Source: "cli",
			})
			if err != nil {
				return outputError(err)
			}

			copied := maybeCopy(c, cfg, output.Expanded)

			if c.Bool("json") {
				return outputJSON(output)
			}

			printExpandReport(output, copied)
			return nil
		},
	}
}

// batchCmd creates the batch command.
func batchCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Compress multiple prompts (one per line from a file or stdin)",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "aggressive", Aliases: []string{"a"}, Usage: "Strip articles and weak qualifiers"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON instead of a report"},
		},
		Action: func(c *cli.Context) error {
			var reader io.Reader = os.Stdin
			if c.NArg() > 0 {
				f, err := os.Open(c.Args().First())
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				defer f.Close()
				reader = f
			} else if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("prompts must come from a file argument or piped stdin"))
			}

			prompts, err := readLines(reader)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			input := ops.BatchInput{Prompts: prompts, Source: "cli"}
			if c.IsSet("aggressive") {
				aggressive := c.Bool("aggressive")
				input.Aggressive = &aggressive
			}

			output, err := ops.Batch(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(output)
			}

			printBatchReport(output)
			return nil
		},
	}
}

// dictCmd creates the dict command.
func dictCmd() *cli.Command {
	return &cli.Command{
		Name:      "dict",
		Usage:     "Browse the operator dictionary",
		ArgsUsage: "[category]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tag", Aliases: []string{"t"}, Usage: "Look up a single tag or alias"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON instead of a table"},
		},
		Action: func(c *cli.Context) error {
			if tag := c.String("tag"); tag != "" {
				token, err := dict.LookupToken(tag)
				if err != nil {
					return outputError(err)
				}
				entry, _ := dict.Get(token)
				if c.Bool("json") {
					return outputJSON(entry)
				}
				fmt.Printf("%-12s %-14s %-10s %s\n", entry.Marker(), entry.Tag, entry.Category, entry.Description)
				return nil
			}

			entries := dict.Entries()
			if c.NArg() > 0 {
				category := dict.Category(dict.Normalize(c.Args().First()))
				entries = dict.EntriesByCategory(category)
				if len(entries) == 0 {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("unknown category %q", c.Args().First())))
				}
			}

			if c.Bool("json") {
				return outputJSON(map[string]any{
					"entries": entries,
					"symbols": dict.Symbols(),
				})
			}

			for _, e := range entries {
				fmt.Printf("%-12s %-14s %-10s %s\n", e.Marker(), e.Tag, e.Category, e.Description)
			}
			if c.NArg() == 0 {
				fmt.Println()
				for _, s := range dict.Symbols() {
					fmt.Printf("%-12s %s\n", s.Glyph, s.Meaning)
				}
			}
			return nil
		},
	}
}

// templatesCmd creates the templates command.
func templatesCmd() *cli.Command {
	return &cli.Command{
		Name:      "templates",
		Usage:     "List shorthand templates, or fill one by name",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "set", Aliases: []string{"s"}, Usage: "Placeholder value as KEY=value (repeatable)"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON instead of text"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				if c.Bool("json") {
					return outputJSON(map[string]any{"templates": dict.Templates()})
				}
				for _, t := range dict.Templates() {
					fmt.Printf("%-18s %s\n", t.Name, t.Description)
				}
				return nil
			}

			name := c.Args().First()
			tmpl, ok := dict.GetTemplate(name)
			if !ok {
				return outputError(errors.NewNotFound(name))
			}

			values, err := parseKeyValues(c.StringSlice("set"))
			if err != nil {
				return outputError(err)
			}

			if len(values) == 0 {
				if c.Bool("json") {
					return outputJSON(tmpl)
				}
				fmt.Println(tmpl.Body)
				if ph := tmpl.Placeholders(); len(ph) > 0 {
					fmt.Printf("\nPlaceholders: %s\n", strings.Join(ph, ", "))
				}
				return nil
			}

			filled := tmpl.Fill(values)
			if c.Bool("json") {
				return outputJSON(map[string]any{"name": tmpl.Name, "filled": filled})
			}
			fmt.Println(filled)
			return nil
		},
	}
}

// historyCmd creates the history command.
func historyCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded translations, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "direction", Aliases: []string{"d"}, Usage: "Filter: compress|expand"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultHistoryLimit, Usage: "Page size"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Entries to skip"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON instead of a table"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.History(c.Context, db, ops.HistoryInput{
				Direction: c.String("direction"),
				Limit:     c.Int("limit"),
				Offset:    c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(output)
			}

			if len(output.Entries) == 0 {
				fmt.Println("No recorded translations.")
				return nil
			}
			for _, e := range output.Entries {
				fmt.Printf("%s  [%s]  %6.1f%%  %s\n",
					e.ID, ops.FormatDirection(e.Direction), e.SavingsPercent, firstLine(e.OutputText, 60))
			}
			fmt.Printf("\n%d of %d entries\n", len(output.Entries), output.Pagination.Total)
			return nil
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Aggregate statistics over recorded translations",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output JSON instead of a report"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Stats(c.Context, db)
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(output)
			}

			fmt.Printf("Translations:  %d (%d compress, %d expand)\n",
				output.Total, output.Compressions, output.Expansions)
			fmt.Printf("Tokens in:     %d\n", output.TokensIn)
			fmt.Printf("Tokens out:    %d\n", output.TokensOut)
			fmt.Printf("Tokens saved:  %d\n", output.TokensSaved)
			fmt.Printf("Avg savings:   %.1f%%\n", output.AvgSavings)
			return nil
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Permanently delete recorded translations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "older-than", Usage: "Only delete entries older than this (e.g., 7d)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PurgeInput{}
			if v := c.String("older-than"); v != "" {
				days, err := parseDuration(v)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input.OlderThanDays = &days
			}

			output, err := ops.Purge(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			fmt.Println(output.Message)
			return nil
		},
	}
}

// serveCmd creates the serve command (local web UI).
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the local web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			bind := c.String("bind")
			if bind == "" {
				bind = cfg.WebBind
			}
			port := c.Int("port")
			if port == 0 {
				port = cfg.WebPort
			}
			return runServe(db, cfg, bind, port)
		},
	}
}

// mcpCmd creates the mcp command (explicit stdio server start).
func mcpCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP stdio server",
		Action: func(c *cli.Context) error {
			return mcp.Run(db, cfg, Version)
		},
	}
}

// versionCmd creates the version command.
func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(c *cli.Context) error {
			fmt.Printf("lzip %s\n", Version)
			return nil
		},
	}
}

// runServe starts the web UI server.
func runServe(db *sql.DB, cfg *config.Config, bind string, port int) error {
	srv := web.NewServer(db, cfg, Version, bind, port)
	return web.Run(srv)
}

// Report printers

// printCompressReport renders a human-readable compression report.
func printCompressReport(output *ops.CompressOutput, copied bool) {
	fmt.Println(output.Compressed)
	fmt.Println()
	fmt.Printf("Words:   %d → %d\n", output.OriginalWords, output.CompressedWords)
	fmt.Printf("Tokens:  ~%d → ~%d\n", output.OriginalTokens, output.CompressedTokens)
	fmt.Printf("Savings: %.1f%%\n", output.SavingsPercent)
	if copied {
		fmt.Println("Copied to clipboard.")
	}
}

// printExpandReport renders a human-readable expansion report.
func printExpandReport(output *ops.ExpandOutput, copied bool) {
	fmt.Println(output.Expanded)
	fmt.Println()
	fmt.Printf("Tokens: ~%d → ~%d\n", output.OriginalTokens, output.ExpandedTokens)
	if copied {
		fmt.Println("Copied to clipboard.")
	}
}

// printBatchReport renders a human-readable batch report.
func printBatchReport(output *ops.BatchOutput) {
	for _, item := range output.Items {
		fmt.Printf("[%d] %s\n", item.Index+1, item.Compressed)
	}
	fmt.Println()
	fmt.Printf("Prompts: %d\n", len(output.Items))
	fmt.Printf("Tokens:  ~%d → ~%d\n", output.TotalOriginalTokens, output.TotalCompressedTokens)
	fmt.Printf("Savings: %.1f%%\n", output.TotalSavingsPercent)
}

// Helpers

// textFromArgsOrStdin returns the input text: positional args joined with
// spaces, or piped stdin when no args were given.
func textFromArgsOrStdin(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}
	if !stdinHasData() {
		return "", errors.NewInvalidRequest("text must come from arguments or piped stdin")
	}
	text, err := readStdin()
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return text, nil
}

// maybeCopy copies text to the clipboard when enabled. A clipboard
// failure is reported on stderr but never fails the command.
func maybeCopy(c *cli.Context, cfg *config.Config, text string) bool {
	if c.Bool("no-copy") {
		return false
	}
	if !c.Bool("copy") && !clipboard.ShouldAutoCopy(cfg) {
		return false
	}
	if err := clipboard.Copy(text); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return false
	}
	return true
}

// outputJSON pretty-prints v as JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if lzipErr, ok := err.(*errors.LZIPError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", lzipErr.Code, lzipErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// readLines reads non-blank lines from r.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// parseKeyValues parses repeated KEY=value assignments.
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid assignment %q, expected KEY=value", pair))
		}
		values[strings.TrimSpace(key)] = val
	}
	return values, nil
}

// parseDuration parses "7d" format to days.
func parseDuration(s string) (int, error) {
	if numStr, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration must be non-negative")
		}
		return days, nil
	}
	return 0, fmt.Errorf("duration must end with 'd' (days), e.g., 7d")
}

// firstLine returns the first line of s, truncated to n runes.
func firstLine(s string, n int) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n]) + "…"
	}
	return s
}

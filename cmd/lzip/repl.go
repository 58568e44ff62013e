package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/ezixen/lzip/internal/clipboard"
	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/dict"
	"github.com/ezixen/lzip/internal/ops"
)

const replBanner = `
  L-ZIP %s — prompt shorthand compressor

  Paste a prompt to compress it. Finish multi-line input with a blank line.
  Commands: expand <text>, dict [category], templates [name],
            history, stats, help, exit
`

// runREPL runs the interactive loop. Plain text compresses; a leading
// keyword dispatches to the matching command.
func runREPL(db *sql.DB, cfg *config.Config) {
	fmt.Printf(replBanner, Version)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("lzip> ")
		input, ok := readMultiline(scanner)
		if !ok {
			fmt.Println()
			return
		}
		if input == "" {
			continue
		}

		keyword, rest, _ := strings.Cut(input, " ")
		switch strings.ToLower(keyword) {
		case "exit", "quit":
			return
		case "help":
			fmt.Printf(replBanner, Version)
		case "expand":
			replExpand(ctx, db, cfg, strings.TrimSpace(rest))
		case "dict":
			replDict(strings.TrimSpace(rest))
		case "templates":
			replTemplates(strings.TrimSpace(rest))
		case "history":
			replHistory(ctx, db)
		case "stats":
			replStats(ctx, db)
		default:
			replCompress(ctx, db, cfg, input)
		}
	}
}

// readMultiline collects lines until a blank line or EOF. Returns false
// only on EOF with no input (Ctrl-D at the prompt).
func readMultiline(scanner *bufio.Scanner) (string, bool) {
	var lines []string
	sawInput := false
	for scanner.Scan() {
		sawInput = true
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	if !sawInput {
		return "", false
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), true
}

func replCompress(ctx context.Context, db *sql.DB, cfg *config.Config, text string) {
	output, err := ops.Compress(ctx, db, cfg, ops.CompressInput{Text: text, Source: "repl"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}

	copied := false
	if clipboard.ShouldAutoCopy(cfg) {
		copied = clipboard.Copy(output.Compressed) == nil
	}
	printCompressReport(output, copied)
}

func replExpand(ctx context.Context, db *sql.DB, cfg *config.Config, text string) {
	if text == "" {
		fmt.Println("usage: expand <shorthand>")
		return
	}
	output, err := ops.Expand(ctx, db, cfg, ops.ExpandInput{Text: text, Source: "repl"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}

	copied := false
	if clipboard.ShouldAutoCopy(cfg) {
		copied = clipboard.Copy(output.Expanded) == nil
	}
	printExpandReport(output, copied)
}

func replDict(category string) {
	entries := dict.Entries()
	if category != "" {
		entries = dict.EntriesByCategory(dict.Category(dict.Normalize(category)))
		if len(entries) == 0 {
			fmt.Printf("unknown category %q\n", category)
			return
		}
	}
	for _, e := range entries {
		fmt.Printf("%-12s %-14s %-10s %s\n", e.Marker(), e.Tag, e.Category, e.Description)
	}
}

func replTemplates(name string) {
	if name == "" {
		for _, t := range dict.Templates() {
			fmt.Printf("%-18s %s\n", t.Name, t.Description)
		}
		return
	}
	tmpl, ok := dict.GetTemplate(name)
	if !ok {
		fmt.Printf("unknown template %q\n", name)
		return
	}
	fmt.Println(tmpl.Body)
	if ph := tmpl.Placeholders(); len(ph) > 0 {
		fmt.Printf("\nPlaceholders: %s\n", strings.Join(ph, ", "))
	}
}

func replHistory(ctx context.Context, db *sql.DB) {
	output, err := ops.History(ctx, db, ops.HistoryInput{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(output.Entries) == 0 {
		fmt.Println("No recorded translations.")
		return
	}
	for _, e := range output.Entries {
		fmt.Printf("[%s]  %6.1f%%  %s\n",
			ops.FormatDirection(e.Direction), e.SavingsPercent, firstLine(e.OutputText, 60))
	}
}

func replStats(ctx context.Context, db *sql.DB) {
	output, err := ops.Stats(ctx, db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	fmt.Printf("Translations:  %d (%d compress, %d expand)\n",
		output.Total, output.Compressions, output.Expansions)
	fmt.Printf("Tokens saved:  %d\n", output.TokensSaved)
	fmt.Printf("Avg savings:   %.1f%%\n", output.AvgSavings)
}

package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/engine"
	"github.com/ezixen/lzip/internal/errors"
)

// CompressInput contains parameters for the Compress operation.
type CompressInput struct {
	Text       string // required
	Aggressive *bool  // optional, overrides config default
	Source     string // caller surface: "cli", "repl", "mcp", "web"
}

// CompressOutput contains the result of the Compress operation.
type CompressOutput struct {
	engine.Result

	// HistoryID is the ULID of the recorded history entry,
	// empty when history is disabled.
	HistoryID string `json:"history_id,omitempty"`
}

// Compress translates natural-language prompt text into shorthand.
func Compress(ctx context.Context, database *sql.DB, cfg *config.Config, input CompressInput) (*CompressOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.NewEmptyInput()
	}
	if err := checkInputSize(cfg, input.Text); err != nil {
		return nil, err
	}

	opts := engine.Options{Aggressive: resolveAggressive(cfg, input.Aggressive)}
	result := engine.Compress(input.Text, opts)

	id, err := recordTranslation(database, cfg, "compress", input.Source, result.Original, result.Compressed)
	if err != nil {
		return nil, err
	}

	return &CompressOutput{Result: result, HistoryID: id}, nil
}

// checkInputSize enforces the configured maximum input size.
func checkInputSize(cfg *config.Config, text string) error {
	max := config.DefaultConfig().MaxInputChars
	if cfg != nil && cfg.MaxInputChars > 0 {
		max = cfg.MaxInputChars
	}
	if n := len([]rune(text)); n > max {
		return errors.NewInputTooLarge(max, n)
	}
	return nil
}

// resolveAggressive picks the effective aggressive setting: explicit
// per-call override wins, otherwise the config default.
func resolveAggressive(cfg *config.Config, override *bool) bool {
	if override != nil {
		return *override
	}
	return cfg != nil && cfg.Aggressive
}

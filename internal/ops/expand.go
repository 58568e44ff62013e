package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/engine"
	"github.com/ezixen/lzip/internal/errors"
)

// ExpandInput contains parameters for the Expand operation.
type ExpandInput struct {
	Text   string // required, shorthand text
	Source string // caller surface: "cli", "repl", "mcp", "web"
}

// ExpandOutput contains the result of the Expand operation.
type ExpandOutput struct {
	Original       string `json:"original"`
	Expanded       string `json:"expanded"`
	OriginalTokens int    `json:"original_tokens"`
	ExpandedTokens int    `json:"expanded_tokens"`

	// HistoryID is the ULID of the recorded history entry,
	// empty when history is disabled.
	HistoryID string `json:"history_id,omitempty"`
}

// Expand translates shorthand back into readable prose.
func Expand(ctx context.Context, database *sql.DB, cfg *config.Config, input ExpandInput) (*ExpandOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.NewEmptyInput()
	}
	if err := checkInputSize(cfg, input.Text); err != nil {
		return nil, err
	}

	expanded := engine.Expand(input.Text)

	id, err := recordTranslation(database, cfg, "expand", input.Source, input.Text, expanded)
	if err != nil {
		return nil, err
	}

	return &ExpandOutput{
		Original:       input.Text,
		Expanded:       expanded,
		OriginalTokens: engine.EstimateTokens(input.Text),
		ExpandedTokens: engine.EstimateTokens(expanded),
		HistoryID:      id,
	}, nil
}

package ops

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/engine"
	"github.com/ezixen/lzip/internal/errors"
)

// BatchInput contains parameters for the Batch operation.
type BatchInput struct {
	Prompts    []string // required, at most MaxBatchPrompts entries
	Aggressive *bool    // optional, overrides config default
	Source     string   // caller surface: "cli", "repl", "mcp", "web"
}

// BatchItem is the result for a single prompt in a batch.
type BatchItem struct {
	Index int `json:"index"`
	engine.Result
}

// BatchOutput contains the results and aggregate totals of a batch.
type BatchOutput struct {
	Items []BatchItem `json:"items"`

	TotalOriginalTokens   int     `json:"total_original_tokens"`
	TotalCompressedTokens int     `json:"total_compressed_tokens"`
	TotalSavingsPercent   float64 `json:"total_savings_percent"`
}

// Batch compresses multiple prompts in one call. Blank prompts are
// skipped rather than failing the whole batch; the surviving items keep
// their original indices.
func Batch(ctx context.Context, database *sql.DB, cfg *config.Config, input BatchInput) (*BatchOutput, error) {
	if len(input.Prompts) == 0 {
		return nil, errors.NewEmptyInput()
	}
	if len(input.Prompts) > MaxBatchPrompts {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("at most %d prompts per batch", MaxBatchPrompts))
	}

	opts := engine.Options{Aggressive: resolveAggressive(cfg, input.Aggressive)}

	out := &BatchOutput{}
	for i, prompt := range input.Prompts {
		if strings.TrimSpace(prompt) == "" {
			continue
		}
		if err := checkInputSize(cfg, prompt); err != nil {
			return nil, err
		}

		result := engine.Compress(prompt, opts)
		out.Items = append(out.Items, BatchItem{Index: i, Result: result})
		out.TotalOriginalTokens += result.OriginalTokens
		out.TotalCompressedTokens += result.CompressedTokens

		if _, err := recordTranslation(database, cfg, "compress", input.Source, result.Original, result.Compressed); err != nil {
			return nil, err
		}
	}

	if len(out.Items) == 0 {
		return nil, errors.NewEmptyInput()
	}

	out.TotalSavingsPercent = engine.SavingsPercent(out.TotalOriginalTokens, out.TotalCompressedTokens)

	return out, nil
}

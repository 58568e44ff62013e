// Package ops implements the core operations shared by the CLI, the MCP
// server, and the web UI. Each operation is a pure function taking the
// database, config, and a typed input, returning a typed output.
package ops

import (
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/db"
	"github.com/ezixen/lzip/internal/engine"
)

// Pagination limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
	MaxBatchPrompts     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// recordTranslation stores a translation in history and trims old entries.
// A nil database or disabled history is a no-op: the caller already has
// the translation result.
func recordTranslation(database *sql.DB, cfg *config.Config, direction, source, input, output string) (string, error) {
	if database == nil || (cfg != nil && cfg.DisableHistory) {
		return "", nil
	}

	id, err := generateULID()
	if err != nil {
		return "", err
	}

	inTokens := engine.EstimateTokens(input)
	outTokens := engine.EstimateTokens(output)

	t := &db.Translation{
		ID:             id,
		Direction:      direction,
		InputText:      input,
		OutputText:     output,
		InputChars:     len([]rune(input)),
		OutputChars:    len([]rune(output)),
		InputTokens:    inTokens,
		OutputTokens:   outTokens,
		SavingsPercent: engine.SavingsPercent(inTokens, outTokens),
		Source:         source,
		CreatedAt:      time.Now().Unix(),
	}

	if err := db.InsertTranslation(database, t); err != nil {
		return "", err
	}

	limit := 0
	if cfg != nil {
		limit = cfg.HistoryLimit
	}
	if _, err := db.TrimTranslations(database, limit); err != nil {
		return "", err
	}

	return id, nil
}

package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ezixen/lzip/internal/db"
	"github.com/ezixen/lzip/internal/errors"
)

// HistoryInput contains parameters for the History operation.
type HistoryInput struct {
	Direction string // optional filter: "compress" or "expand"
	Limit     int    // default DefaultHistoryLimit, max MaxHistoryLimit
	Offset    int
}

// HistoryOutput contains a page of recorded translations.
type HistoryOutput struct {
	Entries    []*db.Translation `json:"entries"`
	Pagination Pagination        `json:"pagination"`
}

// History lists recorded translations, newest first.
func History(ctx context.Context, database *sql.DB, input HistoryInput) (*HistoryOutput, error) {
	if input.Direction != "" && input.Direction != "compress" && input.Direction != "expand" {
		return nil, errors.NewInvalidRequest("direction must be one of: compress, expand")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	entries, total, err := db.ListTranslations(database, input.Direction, limit, offset)
	if err != nil {
		return nil, err
	}

	return &HistoryOutput{
		Entries: entries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(entries) < total,
			Total:   total,
		},
	}, nil
}

// GetTranslation fetches a single recorded translation by ID.
func GetTranslation(ctx context.Context, database *sql.DB, id string) (*db.Translation, error) {
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	return db.GetTranslationByID(database, id)
}

// FormatDirection renders a direction tag for human-readable listings.
func FormatDirection(direction string) string {
	switch direction {
	case "compress":
		return "C"
	case "expand":
		return "E"
	default:
		return fmt.Sprintf("?%s", direction)
	}
}

package ops

import (
	"context"
	"database/sql"

	"github.com/ezixen/lzip/internal/db"
)

// StatsOutput contains aggregate statistics over recorded translations.
type StatsOutput struct {
	*db.TranslationStats

	// TokensSaved is the net token reduction across compress calls;
	// negative when expansions dominate.
	TokensSaved int `json:"tokens_saved"`
}

// Stats computes aggregate history statistics.
func Stats(ctx context.Context, database *sql.DB) (*StatsOutput, error) {
	stats, err := db.GetStats(database)
	if err != nil {
		return nil, err
	}

	return &StatsOutput{
		TranslationStats: stats,
		TokensSaved:      stats.TokensIn - stats.TokensOut,
	}, nil
}

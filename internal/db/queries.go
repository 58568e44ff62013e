package db

import (
	"database/sql"

	"github.com/ezixen/lzip/internal/errors"
)

// Translation is a single recorded compress or expand call.
type Translation struct {
	ID             string  `json:"id"`
	Direction      string  `json:"direction"` // "compress" or "expand"
	InputText      string  `json:"input_text"`
	OutputText     string  `json:"output_text"`
	InputChars     int     `json:"input_chars"`
	OutputChars    int     `json:"output_chars"`
	InputTokens    int     `json:"input_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	SavingsPercent float64 `json:"savings_percent"`
	Source         string  `json:"source,omitempty"` // "cli", "repl", "mcp", "web"
	CreatedAt      int64   `json:"created_at"`
}

// InsertTranslation stores a new translation record.
func InsertTranslation(db *sql.DB, t *Translation) error {
	source := toNullString(t.Source)

	query := `
		INSERT INTO translations (
			id, direction, input_text, output_text,
			input_chars, output_chars, input_tokens, output_tokens,
			savings_percent, source, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		t.ID, t.Direction, t.InputText, t.OutputText,
		t.InputChars, t.OutputChars, t.InputTokens, t.OutputTokens,
		t.SavingsPercent, source, t.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// GetTranslationByID retrieves a translation by its ULID.
func GetTranslationByID(db *sql.DB, id string) (*Translation, error) {
	query := `
		SELECT id, direction, input_text, output_text,
			input_chars, output_chars, input_tokens, output_tokens,
			savings_percent, source, created_at
		FROM translations
		WHERE id = ?
	`

	row := db.QueryRow(query, id)
	t, err := scanTranslation(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return t, nil
}

// ListTranslations returns translations ordered newest-first.
// If direction is non-empty, only matching records are returned.
// Returns the page plus the total count of matching records.
func ListTranslations(db *sql.DB, direction string, limit, offset int) ([]*Translation, int, error) {
	countQuery := "SELECT COUNT(*) FROM translations"
	listQuery := `
		SELECT id, direction, input_text, output_text,
			input_chars, output_chars, input_tokens, output_tokens,
			savings_percent, source, created_at
		FROM translations
	`

	var args []any
	if direction != "" {
		countQuery += " WHERE direction = ?"
		listQuery += " WHERE direction = ?"
		args = append(args, direction)
	}
	listQuery += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"

	var total int
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := db.Query(listQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var results []*Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return results, total, nil
}

// TranslationStats holds aggregate statistics over recorded translations.
type TranslationStats struct {
	Total        int     `json:"total"`
	Compressions int     `json:"compressions"`
	Expansions   int     `json:"expansions"`
	TokensIn     int     `json:"tokens_in"`
	TokensOut    int     `json:"tokens_out"`
	AvgSavings   float64 `json:"avg_savings_percent"`
	OldestAt     int64   `json:"oldest_at,omitempty"`
	NewestAt     int64   `json:"newest_at,omitempty"`
}

// GetStats computes aggregate statistics over all recorded translations.
// AvgSavings covers compress records only; expansions always grow the text.
func GetStats(db *sql.DB) (*TranslationStats, error) {
	stats := &TranslationStats{}

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN direction = 'compress' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN direction = 'expand' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(AVG(CASE WHEN direction = 'compress' THEN savings_percent END), 0),
			COALESCE(MIN(created_at), 0),
			COALESCE(MAX(created_at), 0)
		FROM translations
	`

	err := db.QueryRow(query).Scan(
		&stats.Total, &stats.Compressions, &stats.Expansions,
		&stats.TokensIn, &stats.TokensOut, &stats.AvgSavings,
		&stats.OldestAt, &stats.NewestAt,
	)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return stats, nil
}

// PurgeTranslations deletes recorded translations.
// If olderThan > 0, only records with created_at < olderThan are deleted;
// otherwise all records are deleted. Returns the number of deleted rows.
func PurgeTranslations(db *sql.DB, olderThan int64) (int, error) {
	query := "DELETE FROM translations"
	var args []any
	if olderThan > 0 {
		query += " WHERE created_at < ?"
		args = append(args, olderThan)
	}

	result, err := db.Exec(query, args...)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	return int(affected), nil
}

// TrimTranslations deletes the oldest records beyond the retention limit.
// Returns the number of deleted rows. A limit <= 0 means no trimming.
func TrimTranslations(db *sql.DB, limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	query := `
		DELETE FROM translations
		WHERE id NOT IN (
			SELECT id FROM translations
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)
	`

	result, err := db.Exec(query, limit)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	return int(affected), nil
}

// scanner abstracts sql.Row and sql.Rows for scanTranslation.
type scanner interface {
	Scan(dest ...any) error
}

// scanTranslation scans a translation row in SELECT column order.
func scanTranslation(row scanner) (*Translation, error) {
	t := &Translation{}
	var source sql.NullString

	err := row.Scan(
		&t.ID, &t.Direction, &t.InputText, &t.OutputText,
		&t.InputChars, &t.OutputChars, &t.InputTokens, &t.OutputTokens,
		&t.SavingsPercent, &source, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if source.Valid {
		t.Source = source.String
	}

	return t, nil
}

// toNullString converts a string to sql.NullString (empty = NULL).
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

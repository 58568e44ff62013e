package ops

import (
	"context"
	"fmt"
	"testing"

	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/errors"
)

func TestHistory_Pagination(t *testing.T) {
	database := newTestDB(t)
	cfg := config.DefaultConfig()

	for i := 0; i < 5; i++ {
		_, err := Compress(context.Background(), database, cfg, CompressInput{
			Text: fmt.Sprintf("Summarize article number %d", i),
		})
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}
	}

	page, err := History(context.Background(), database, HistoryInput{Limit: 2})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(page.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(page.Entries))
	}
	if page.Pagination.Total != 5 {
		t.Errorf("Total = %d, want 5", page.Pagination.Total)
	}
	if !page.Pagination.HasMore {
		t.Error("HasMore should be true on first page")
	}

	last, err := History(context.Background(), database, HistoryInput{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(last.Entries) != 1 {
		t.Errorf("len(Entries) = %d, want 1 on last page", len(last.Entries))
	}
	if last.Pagination.HasMore {
		t.Error("HasMore should be false on last page")
	}
}

func TestHistory_DirectionFilter(t *testing.T) {
	database := newTestDB(t)
	cfg := config.DefaultConfig()

	if _, err := Compress(context.Background(), database, cfg, CompressInput{Text: "Summarize this article"}); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if _, err := Expand(context.Background(), database, cfg, ExpandInput{Text: "ACT:Teacher"}); err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	page, err := History(context.Background(), database, HistoryInput{Direction: "expand"})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(page.Entries) != 1 || page.Entries[0].Direction != "expand" {
		t.Errorf("Entries = %+v, want single expand entry", page.Entries)
	}
}

func TestHistory_InvalidDirection(t *testing.T) {
	database := newTestDB(t)

	_, err := History(context.Background(), database, HistoryInput{Direction: "sideways"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestHistory_LimitClamped(t *testing.T) {
	database := newTestDB(t)

	page, err := History(context.Background(), database, HistoryInput{Limit: 10000})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if page.Pagination.Limit != MaxHistoryLimit {
		t.Errorf("Limit = %d, want clamped to %d", page.Pagination.Limit, MaxHistoryLimit)
	}

	page, err = History(context.Background(), database, HistoryInput{})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if page.Pagination.Limit != DefaultHistoryLimit {
		t.Errorf("Limit = %d, want default %d", page.Pagination.Limit, DefaultHistoryLimit)
	}
}

func TestGetTranslation(t *testing.T) {
	database := newTestDB(t)

	output, err := Compress(context.Background(), database, config.DefaultConfig(), CompressInput{Text: "Summarize this article"})
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	entry, err := GetTranslation(context.Background(), database, output.HistoryID)
	if err != nil {
		t.Fatalf("GetTranslation failed: %v", err)
	}
	if entry.ID != output.HistoryID {
		t.Errorf("ID = %q, want %q", entry.ID, output.HistoryID)
	}

	if _, err := GetTranslation(context.Background(), database, ""); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("empty id error = %v, want INVALID_REQUEST", err)
	}
	if _, err := GetTranslation(context.Background(), database, "01JNOPE"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing id error = %v, want NOT_FOUND", err)
	}
}

func TestFormatDirection(t *testing.T) {
	if got := FormatDirection("compress"); got != "C" {
		t.Errorf("FormatDirection(compress) = %q", got)
	}
	if got := FormatDirection("expand"); got != "E" {
		t.Errorf("FormatDirection(expand) = %q", got)
	}
	if got := FormatDirection("odd"); got != "?odd" {
		t.Errorf("FormatDirection(odd) = %q", got)
	}
}

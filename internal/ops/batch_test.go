package ops

import (
	"context"
	"testing"

	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/db"
	"github.com/ezixen/lzip/internal/errors"
)

func TestBatch_Basic(t *testing.T) {
	database := newTestDB(t)
	cfg := config.DefaultConfig()

	output, err := Batch(context.Background(), database, cfg, BatchInput{
		Prompts: []string{
			"You are a helpful AI assistant that provides detailed answers",
			"Summarize this article",
		},
		Source: "cli",
	})
	if err != nil {
		t.Fatalf("Batch failed: %v", err)
	}

	if len(output.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(output.Items))
	}
	if output.Items[0].Index != 0 || output.Items[1].Index != 1 {
		t.Errorf("indices = %d, %d", output.Items[0].Index, output.Items[1].Index)
	}
	if output.TotalOriginalTokens <= output.TotalCompressedTokens {
		t.Errorf("totals = %d -> %d, want reduction", output.TotalOriginalTokens, output.TotalCompressedTokens)
	}
	if output.TotalSavingsPercent <= 0 {
		t.Errorf("TotalSavingsPercent = %v", output.TotalSavingsPercent)
	}

	// Each item recorded in history
	_, total, err := db.ListTranslations(database, "compress", 10, 0)
	if err != nil {
		t.Fatalf("ListTranslations failed: %v", err)
	}
	if total != 2 {
		t.Errorf("history has %d entries, want 2", total)
	}
}

func TestBatch_BlankPromptsSkipped(t *testing.T) {
	database := newTestDB(t)

	output, err := Batch(context.Background(), database, config.DefaultConfig(), BatchInput{
		Prompts: []string{"Summarize this article", "   ", "Explain recursion"},
	})
	if err != nil {
		t.Fatalf("Batch failed: %v", err)
	}

	if len(output.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(output.Items))
	}
	// Surviving items keep their original positions
	if output.Items[0].Index != 0 || output.Items[1].Index != 2 {
		t.Errorf("indices = %d, %d, want 0, 2", output.Items[0].Index, output.Items[1].Index)
	}
}

func TestBatch_Empty(t *testing.T) {
	database := newTestDB(t)

	cases := [][]string{
		nil,
		{},
		{"", "  ", "\n"},
	}
	for _, prompts := range cases {
		_, err := Batch(context.Background(), database, config.DefaultConfig(), BatchInput{Prompts: prompts})
		if !errors.Is(err, errors.ErrEmptyInput) {
			t.Errorf("Batch(%q) error = %v, want EMPTY_INPUT", prompts, err)
		}
	}
}

func TestBatch_TooManyPrompts(t *testing.T) {
	database := newTestDB(t)

	prompts := make([]string, MaxBatchPrompts+1)
	for i := range prompts {
		prompts[i] = "Summarize this article"
	}

	_, err := Batch(context.Background(), database, config.DefaultConfig(), BatchInput{Prompts: prompts})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestBatch_OversizedPrompt(t *testing.T) {
	database := newTestDB(t)
	cfg := config.DefaultConfig()
	cfg.MaxInputChars = 10

	_, err := Batch(context.Background(), database, cfg, BatchInput{
		Prompts: []string{"short", "this one is well past the limit"},
	})
	if !errors.Is(err, errors.ErrInputTooLarge) {
		t.Errorf("error = %v, want INPUT_TOO_LARGE", err)
	}
}

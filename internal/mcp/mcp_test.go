package mcp

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/db"
	"github.com/ezixen/lzip/internal/errors"
)

// testSetup creates a temporary database and config for testing.
func testSetup(t *testing.T) (*sql.DB, *config.Config, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}

	cfg := config.DefaultConfig()

	cleanup := func() {
		database.Close()
	}

	return database, cfg, cleanup
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestHandleCompress(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name: "compress valid text",
			args: map[string]any{
				"text": "You are a helpful AI assistant that provides detailed answers",
			},
			wantError: false,
		},
		{
			name:      "compress without text",
			args:      map[string]any{},
			wantError: true,
			errorCode: "EMPTY_INPUT",
		},
		{
			name: "compress blank text",
			args: map[string]any{
				"text": "   ",
			},
			wantError: true,
			errorCode: "EMPTY_INPUT",
		},
		{
			name: "compress with aggressive flag",
			args: map[string]any{
				"text":       "Just explain recursion",
				"aggressive": true,
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleCompress(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else if result.IsError {
				t.Errorf("expected success, got error: %v", extractErrorMessage(result))
			}
		})
	}
}

func TestHandleCompress_Payload(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg)

	result, err := h.HandleCompress(context.Background(), makeRequest(map[string]any{
		"text": "You are a helpful AI assistant that provides detailed answers",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %v", extractErrorMessage(result))
	}

	payload := decodePayload(t, result)
	if payload["compressed"] != "ACT:Helpful_AI_Assistant OUT:Detailed+Answers" {
		t.Errorf("compressed = %v", payload["compressed"])
	}
	if payload["history_id"] == "" {
		t.Error("history_id missing from payload")
	}
}

func TestHandleExpand(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg)

	result, err := h.HandleExpand(context.Background(), makeRequest(map[string]any{
		"text": "ACT:Teacher OBJ:Explain_Recursion",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %v", extractErrorMessage(result))
	}

	payload := decodePayload(t, result)
	if payload["expanded"] != "Act as teacher Objective: explain recursion" {
		t.Errorf("expanded = %v", payload["expanded"])
	}

	errResult, err := h.HandleExpand(context.Background(), makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !errResult.IsError {
		t.Error("expected error result for missing text")
	}
	assertErrorCode(t, errResult, "EMPTY_INPUT")
}

func TestHandleBatch(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg)
	ctx := context.Background()

	result, err := h.HandleBatch(ctx, makeRequest(map[string]any{
		"prompts": []any{"Summarize this article", "Explain recursion"},
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %v", extractErrorMessage(result))
	}

	payload := decodePayload(t, result)
	items, ok := payload["items"].([]any)
	if !ok || len(items) != 2 {
		t.Errorf("items = %v, want 2 entries", payload["items"])
	}

	errResult, err := h.HandleBatch(ctx, makeRequest(map[string]any{"prompts": []any{}}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, errResult, "EMPTY_INPUT")
}

func TestHandleDictionary(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name:      "full dictionary",
			args:      map[string]any{},
			wantError: false,
		},
		{
			name:      "lookup by tag",
			args:      map[string]any{"tag": "role"},
			wantError: false,
		},
		{
			name:      "lookup unknown tag",
			args:      map[string]any{"tag": "no-such-tag"},
			wantError: true,
			errorCode: "UNKNOWN_OPERATOR",
		},
		{
			name:      "list by category",
			args:      map[string]any{"category": "universal"},
			wantError: false,
		},
		{
			name:      "unknown category",
			args:      map[string]any{"category": "imaginary"},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleDictionary(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else if result.IsError {
				t.Errorf("expected success, got error: %v", extractErrorMessage(result))
			}
		})
	}
}

func TestHandleTemplates(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg)
	ctx := context.Background()

	// Listing
	result, err := h.HandleTemplates(ctx, makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %v", extractErrorMessage(result))
	}

	// Fill with values
	result, err = h.HandleTemplates(ctx, makeRequest(map[string]any{
		"name": "code_review",
		"values": map[string]any{
			"LANG": "Go",
		},
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %v", extractErrorMessage(result))
	}

	// Unknown template
	result, err = h.HandleTemplates(ctx, makeRequest(map[string]any{"name": "no-such-template"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestHandleHistoryAndStats(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg)
	ctx := context.Background()

	if _, err := h.HandleCompress(ctx, makeRequest(map[string]any{
		"text": "Summarize this article",
	})); err != nil {
		t.Fatalf("compress failed: %v", err)
	}

	result, err := h.HandleHistory(ctx, makeRequest(map[string]any{"limit": float64(10)}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %v", extractErrorMessage(result))
	}
	payload := decodePayload(t, result)
	entries, ok := payload["entries"].([]any)
	if !ok || len(entries) != 1 {
		t.Errorf("entries = %v, want 1 entry", payload["entries"])
	}

	result, err = h.HandleStats(ctx, makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload = decodePayload(t, result)
	if payload["total"] != float64(1) {
		t.Errorf("total = %v, want 1", payload["total"])
	}

	result, err = h.HandleHistory(ctx, makeRequest(map[string]any{"direction": "sideways"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandlePurge(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg)
	ctx := context.Background()

	if _, err := h.HandleCompress(ctx, makeRequest(map[string]any{
		"text": "Summarize this article",
	})); err != nil {
		t.Fatalf("compress failed: %v", err)
	}

	result, err := h.HandlePurge(ctx, makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %v", extractErrorMessage(result))
	}
	payload := decodePayload(t, result)
	if payload["purged"] != float64(1) {
		t.Errorf("purged = %v, want 1", payload["purged"])
	}

	result, err = h.HandlePurge(ctx, makeRequest(map[string]any{"older_than_days": float64(-1)}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestServerRegistration(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	s := NewServer(database, cfg, "test")
	tools := s.ListTools()
	if tools == nil {
		t.Fatal("expected tools to be registered, got nil")
	}

	expectedTools := []string{
		"lzip_compress",
		"lzip_expand",
		"lzip_batch",
		"lzip_dictionary",
		"lzip_templates",
		"lzip_history",
		"lzip_stats",
		"lzip_purge",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(expectedTools))
	}

	for _, name := range expectedTools {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing registered tool: %s", name)
		}
	}
}

func TestServerRegistration_WithDisabledTools(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTools = []string{"lzip_purge", "lzip_batch"}

	s := NewServer(database, cfg, "test")
	tools := s.ListTools()

	if len(tools) != len(toolRegistry)-2 {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(toolRegistry)-2)
	}
	for _, name := range cfg.DisabledTools {
		if _, ok := tools[name]; ok {
			t.Errorf("disabled tool still registered: %s", name)
		}
	}
}

func TestServerRegistration_UnknownDisabledToolWarns(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTools = []string{"lzip_purge", "bogus_tool"}

	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(os.Stderr)

	s := NewServer(database, cfg, "test")

	if !strings.Contains(logBuf.String(), "bogus_tool") {
		t.Errorf("expected warning naming bogus_tool, got: %q", logBuf.String())
	}
	if _, ok := s.ListTools()["lzip_purge"]; ok {
		t.Error("known disabled tool still registered")
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"lzip_compress", "bogus", "lzip_stats", "other"})
	if len(unknown) != 2 {
		t.Fatalf("unknown = %v, want 2 entries", unknown)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != len(toolRegistry) {
		t.Errorf("len(names) = %d, want %d", len(names), len(toolRegistry))
	}
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			t.Errorf("unexpected tool name: %s", name)
		}
	}
}

func TestErrorResult_InternalDoesNotExposeDetails(t *testing.T) {
	err := errors.NewInternal(fmt.Errorf("sqlite: disk I/O error at /var/lib/lzip.db"))
	err.Details = map[string]any{"path": "/var/lib/lzip.db"}
	result := errorResult(err)

	var payload map[string]any
	text := result.Content[0].(mcp.TextContent)
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	errorObj := payload["error"].(map[string]any)
	if _, ok := errorObj["details"]; ok {
		t.Error("internal error payload should not carry details")
	}
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if len(result.Content) == 0 {
		t.Errorf("no content in error result")
		return
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Errorf("content is not TextContent")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Errorf("failed to unmarshal error payload: %v", err)
		return
	}

	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}

	if code, _ := errorObj["code"].(string); code != expectedCode {
		t.Errorf("error code = %q, want %q", code, expectedCode)
	}
}

func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}

// decodePayload unmarshals the JSON text content of a success result.
func decodePayload(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("content is not TextContent")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	return payload
}

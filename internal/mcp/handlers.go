package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/dict"
	"github.com/ezixen/lzip/internal/errors"
	"github.com/ezixen/lzip/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// CompressRequest represents the arguments for lzip_compress.
type CompressRequest struct {
	Text       string `json:"text"`
	Aggressive *bool  `json:"aggressive,omitempty"`
}

// ExpandRequest represents the arguments for lzip_expand.
type ExpandRequest struct {
	Text string `json:"text"`
}

// BatchRequest represents the arguments for lzip_batch.
type BatchRequest struct {
	Prompts    []string `json:"prompts"`
	Aggressive *bool    `json:"aggressive,omitempty"`
}

// DictionaryRequest represents the arguments for lzip_dictionary.
type DictionaryRequest struct {
	Category string `json:"category,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

// TemplatesRequest represents the arguments for lzip_templates.
type TemplatesRequest struct {
	Name   string            `json:"name,omitempty"`
	Values map[string]string `json:"values,omitempty"`
}

// HistoryRequest represents the arguments for lzip_history.
type HistoryRequest struct {
	Direction string `json:"direction,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// PurgeRequest represents the arguments for lzip_purge.
type PurgeRequest struct {
	OlderThanDays *int `json:"older_than_days,omitempty"`
}

// Handler implementations

// HandleCompress handles the lzip_compress tool call.
func (h *Handlers) HandleCompress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CompressRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Compress(ctx, h.db, h.cfg, ops.CompressInput{
		Text:       input.Text,
		Aggressive: input.Aggressive,
		Source:     "mcp",
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExpand handles the lzip_expand tool call.
func (h *Handlers) HandleExpand(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExpandRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Expand(ctx, h.db, h.cfg, ops.ExpandInput{
		Text:   input.Text,
		Source: "mcp",
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleBatch handles the lzip_batch tool call.
func (h *Handlers) HandleBatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BatchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Batch(ctx, h.db, h.cfg, ops.BatchInput{
		Prompts:    input.Prompts,
		Aggressive: input.Aggressive,
		Source:     "mcp",
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDictionary handles the lzip_dictionary tool call.
func (h *Handlers) HandleDictionary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DictionaryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.Tag != "" {
		token, err := dict.LookupToken(input.Tag)
		if err != nil {
			return errorResult(err), nil
		}
		entry, _ := dict.Get(token)
		return successResult(entry)
	}

	if input.Category != "" {
		entries := dict.EntriesByCategory(dict.Category(dict.Normalize(input.Category)))
		if len(entries) == 0 {
			return errorResult(errors.NewInvalidRequest("unknown category: " + input.Category)), nil
		}
		return successResult(map[string]any{"entries": entries})
	}

	return successResult(map[string]any{
		"entries": dict.Entries(),
		"symbols": dict.Symbols(),
	})
}

// HandleTemplates handles the lzip_templates tool call.
func (h *Handlers) HandleTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TemplatesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.Name == "" {
		return successResult(map[string]any{"templates": dict.Templates()})
	}

	tmpl, ok := dict.GetTemplate(input.Name)
	if !ok {
		return errorResult(errors.NewNotFound(input.Name)), nil
	}

	if len(input.Values) == 0 {
		return successResult(tmpl)
	}

	return successResult(map[string]any{
		"name":   tmpl.Name,
		"filled": tmpl.Fill(input.Values),
	})
}

// HandleHistory handles the lzip_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.History(ctx, h.db, ops.HistoryInput{
		Direction: input.Direction,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStats handles the lzip_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Stats(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePurge handles the lzip_purge tool call.
func (h *Handlers) HandlePurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PurgeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Purge(ctx, h.db, ops.PurgeInput{
		OlderThanDays: input.OlderThanDays,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if lzipErr, ok := err.(*errors.LZIPError); ok {
		errorObj := map[string]any{
			"code":    lzipErr.Code,
			"message": lzipErr.Message,
			"status":  lzipErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if lzipErr.Code != errors.ErrInternal && lzipErr.Details != nil {
			errorObj["details"] = lzipErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

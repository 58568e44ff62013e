package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Descriptions are what MCP clients surface to the
// model, so they stay short and action-oriented.

var compressToolDef = mcp.NewTool("lzip_compress",
	mcp.WithDescription("Compress a natural-language prompt into token-efficient shorthand. Returns the shorthand plus word/token counts and savings percent."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Prompt text to compress"),
	),
	mcp.WithBoolean("aggressive",
		mcp.Description("Strip articles and weak qualifiers for extra savings"),
	),
)

var expandToolDef = mcp.NewTool("lzip_expand",
	mcp.WithDescription("Expand shorthand back into readable prose. Unknown tokens pass through unchanged."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Shorthand text to expand"),
	),
)

var batchToolDef = mcp.NewTool("lzip_batch",
	mcp.WithDescription("Compress up to 100 prompts in one call. Returns per-prompt results plus aggregate token totals."),
	mcp.WithArray("prompts",
		mcp.Required(),
		mcp.Description("Prompt texts to compress"),
		mcp.WithStringItems(),
	),
	mcp.WithBoolean("aggressive",
		mcp.Description("Strip articles and weak qualifiers for extra savings"),
	),
)

var dictionaryToolDef = mcp.NewTool("lzip_dictionary",
	mcp.WithDescription("Browse the operator dictionary. Filter by category, or look up a single tag (case-insensitive) to get its token."),
	mcp.WithString("category",
		mcp.Description("Filter by category: universal, code, image, video, audio, writing, analysis"),
	),
	mcp.WithString("tag",
		mcp.Description("Look up a single operator tag or alias"),
	),
)

var templatesToolDef = mcp.NewTool("lzip_templates",
	mcp.WithDescription("List shorthand templates, or fill one by name. Placeholder values not supplied stay verbatim in the output."),
	mcp.WithString("name",
		mcp.Description("Template name to fetch or fill"),
	),
	mcp.WithObject("values",
		mcp.Description("Placeholder values keyed by placeholder name"),
	),
)

var historyToolDef = mcp.NewTool("lzip_history",
	mcp.WithDescription("List recorded translations, newest first. Filter by direction and paginate with limit/offset."),
	mcp.WithString("direction",
		mcp.Description("Filter: compress or expand"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Page size (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Number of entries to skip"),
	),
)

var statsToolDef = mcp.NewTool("lzip_stats",
	mcp.WithDescription("Aggregate statistics over recorded translations: counts, token totals, average savings."),
)

var purgeToolDef = mcp.NewTool("lzip_purge",
	mcp.WithDescription("Permanently delete recorded translations, optionally only entries older than N days."),
	mcp.WithNumber("older_than_days",
		mcp.Description("Only delete entries recorded more than this many days ago"),
	),
)

package mcp

import "github.com/mark3labs/mcp-go/mcp"

// lookupTermTool defines the lookup_term MCP tool.
var lookupTermTool = mcp.NewTool("lookup_term",
	mcp.WithDescription("Get the full glossary entry for a term, by key (term-3) or by any of its names or aliases."),
	mcp.WithString("term",
		mcp.Required(),
		mcp.Description("Term key, name or alias"),
	),
)

// searchGlossaryTool defines the search_glossary MCP tool.
var searchGlossaryTool = mcp.NewTool("search_glossary",
	mcp.WithDescription("Search the glossary. Matches a case-insensitive substring against every text field of each term."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search text; empty lists every term"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 20)"),
	),
)

// annotateTextTool defines the annotate_text MCP tool.
var annotateTextTool = mcp.NewTool("annotate_text",
	mcp.WithDescription("Wrap every glossary term found in an HTML fragment with a focusable marker span."),
	mcp.WithString("html",
		mcp.Required(),
		mcp.Description("HTML body fragment to annotate"),
	),
)

// findTermsTool defines the find_terms MCP tool.
var findTermsTool = mcp.NewTool("find_terms",
	mcp.WithDescription("List the glossary terms mentioned in plain text, with byte offsets."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Plain text to scan"),
	),
)

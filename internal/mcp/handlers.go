package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/termlink/internal/glossary"
)

// handleLookupTerm resolves a key, name or alias to its glossary entry.
func (s *Server) handleLookupTerm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: term"), nil
	}

	term, ok := s.resolve(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no glossary entry for %q", name)), nil
	}
	return mcp.NewToolResultText(formatTerm(term)), nil
}

func (s *Server) resolve(name string) (*glossary.Term, bool) {
	if term, ok := s.reg.Lookup(name); ok {
		return term, true
	}
	if key, ok := s.idx.Lookup(name); ok {
		return s.reg.Lookup(key)
	}
	return nil, false
}

// handleSearchGlossary lists terms matching a query.
func (s *Server) handleSearchGlossary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	terms := s.reg.Search(query)
	if len(terms) == 0 {
		return mcp.NewToolResultText("No matching terms."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d/%d terms", len(terms), s.reg.Len()))
	if len(terms) > limit {
		sb.WriteString(fmt.Sprintf(" (showing %d)", limit))
		terms = terms[:limit]
	}
	sb.WriteString(":\n\n")
	for _, t := range terms {
		sb.WriteString(fmt.Sprintf("- **%s** (%s) `%s`: %s\n", t.Name, t.Alias, t.Key, t.Plain))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleAnnotateText marks glossary terms in an HTML fragment.
func (s *Server) handleAnnotateText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fragment, err := request.RequireString("html")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: html"), nil
	}

	out, _, err := s.ann.AnnotateHTML(fragment)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("annotate failed: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

// handleFindTerms lists the term matches in plain text.
func (s *Server) handleFindTerms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	var sb strings.Builder
	count := 0
	for m := range s.idx.FindMatches(text) {
		term, ok := s.reg.Lookup(m.Key)
		if !ok {
			continue
		}
		count++
		sb.WriteString(fmt.Sprintf("- [%d:%d] %q -> %s `%s`: %s\n", m.Start, m.End, m.Text, term.Name, term.Key, term.Plain))
	}
	if count == 0 {
		return mcp.NewToolResultText("No glossary terms found."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d term mentions:\n\n%s", count, sb.String())), nil
}

// formatTerm renders a full glossary entry as markdown.
func formatTerm(t *glossary.Term) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s", t.Name))
	if t.Alias != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", t.Alias))
	}
	sb.WriteString("\n\n")

	rows := []struct{ label, value string }{
		{"Key", t.Key},
		{"Level", t.Level},
		{"一句话", t.Plain},
		{"详细解释", t.Detail},
		{"例子", t.Example},
		{"初中类比", t.Analogy},
		{"常见迷糊点", t.Mistake},
		{"本页对应", t.Scene},
		{"Code", t.Code},
	}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", r.label, r.value))
	}
	return sb.String()
}

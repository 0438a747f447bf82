package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/termlink/internal/annotate"
	"github.com/ziadkadry99/termlink/internal/glossary"
	"github.com/ziadkadry99/termlink/internal/trigger"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes glossary tools.
type Server struct {
	reg *glossary.Registry
	idx *trigger.Index
	ann *annotate.Annotator
	mcp *server.MCPServer
}

// NewServer creates a new MCP server over the given glossary.
func NewServer(reg *glossary.Registry, idx *trigger.Index, ann *annotate.Annotator) *Server {
	s := &Server{
		reg: reg,
		idx: idx,
		ann: ann,
	}

	s.mcp = server.NewMCPServer(
		"termlink",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(lookupTermTool, s.handleLookupTerm)
	s.mcp.AddTool(searchGlossaryTool, s.handleSearchGlossary)
	s.mcp.AddTool(annotateTextTool, s.handleAnnotateText)
	s.mcp.AddTool(findTermsTool, s.handleFindTerms)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

// Package mcp exposes documentation extraction over the Model Context
// Protocol, so agent tooling can query a workspace's public API surface
// without shelling out to the CLI.
package mcp

import (
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/tsdocgen/pkg/docs"
	"github.com/gnana997/tsdocgen/pkg/workspace"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for tsdocgen, exposing extraction and
// rendering tools over a shared incremental builder.
type Server struct {
	mcpServer *server.MCPServer
	builder   *workspace.Builder
	config    workspace.Config
	logger    *slog.Logger

	// lastEntries holds the result of the most recent extraction so
	// get_entry can answer without re-building.
	mu          sync.Mutex
	lastEntries []docs.DocEntry
}

// NewServer creates an MCP server backed by the given builder.
func NewServer(builder *workspace.Builder, config workspace.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{builder: builder, config: config, logger: logger}

	s.mcpServer = server.NewMCPServer(
		"tsdocgen",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(s.loggingMiddleware()),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: extractDocsTool(), Handler: s.handleExtractDocs},
		server.ServerTool{Tool: renderDocsTool(), Handler: s.handleRenderDocs},
		server.ServerTool{Tool: getEntryTool(), Handler: s.handleGetEntry},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

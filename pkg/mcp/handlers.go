package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/tsdocgen/pkg/docs"
	"github.com/gnana997/tsdocgen/pkg/render"
)

func (s *Server) handleExtractDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := request.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries, err := s.extract(root)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal entries: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleRenderDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := request.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries, err := s.extract(root)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(render.Markdown(entries)), nil
}

func (s *Server) handleGetEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries := s.snapshot()
	if root := request.GetString("root", ""); root != "" {
		entries, err = s.extract(root)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if entries == nil {
		return mcp.NewToolResultError("no extraction available yet: pass root or call extract_docs first"), nil
	}

	entry, found := findEntry(entries, name)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("no entry named %q", name)), nil
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal entry: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// extract builds the workspace and records the result for get_entry.
func (s *Server) extract(root string) ([]docs.DocEntry, error) {
	entries, err := s.builder.BuildDir(root, s.config)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastEntries = entries
	s.mu.Unlock()

	s.logger.Debug("extracted workspace", "root", root, "entries", len(entries))
	return entries, nil
}

func (s *Server) snapshot() []docs.DocEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEntries
}

// findEntry searches top-level entries first, then class methods.
func findEntry(entries []docs.DocEntry, name string) (docs.DocEntry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	for _, e := range entries {
		for _, m := range e.Methods {
			if m.Name == name {
				return m, true
			}
		}
	}
	return docs.DocEntry{}, false
}

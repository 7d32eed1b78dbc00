package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// loggingMiddleware returns a ToolHandlerMiddleware that records every
// tool call: name, duration, and whether the handler reported an error.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, req)
			elapsed := time.Since(start)

			isError := err != nil || (result != nil && result.IsError)
			s.logger.Info("tool call",
				"tool", req.Params.Name,
				"duration_ms", elapsed.Milliseconds(),
				"is_error", isError)

			return result, err
		}
	}
}

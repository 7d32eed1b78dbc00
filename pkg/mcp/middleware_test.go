package mcp

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tsdocgen/pkg/workspace"
)

func testServerWithLog(t *testing.T, buf *bytes.Buffer) *Server {
	t.Helper()
	builder, err := workspace.NewBuilder(workspace.BuilderConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = builder.Close() })
	return NewServer(builder, workspace.DefaultConfig(), slog.New(slog.NewTextHandler(buf, nil)))
}

func TestLoggingMiddleware_RecordsToolCall(t *testing.T) {
	var buf bytes.Buffer
	s := testServerWithLog(t, &buf)

	next := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}

	result, err := s.loggingMiddleware()(next)(context.Background(), makeRequest("extract_docs", nil))
	require.NoError(t, err)
	assert.Equal(t, "ok", resultText(t, result))

	log := buf.String()
	assert.Contains(t, log, "tool call")
	assert.Contains(t, log, "tool=extract_docs")
	assert.Contains(t, log, "is_error=false")
}

func TestLoggingMiddleware_RecordsErrorResult(t *testing.T) {
	var buf bytes.Buffer
	s := testServerWithLog(t, &buf)

	next := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("boom"), nil
	}

	result, err := s.loggingMiddleware()(next)(context.Background(), makeRequest("get_entry", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, buf.String(), "is_error=true")
}

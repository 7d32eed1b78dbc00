package mcp

import "github.com/mark3labs/mcp-go/mcp"

func extractDocsTool() mcp.Tool {
	return mcp.NewTool("extract_docs",
		mcp.WithDescription("Extract documentation entries for every exported declaration under a directory. Returns a JSON array of entries in file and source order."),
		mcp.WithString("root",
			mcp.Required(),
			mcp.Description("Workspace root directory to scan"),
		),
	)
}

func renderDocsTool() mcp.Tool {
	return mcp.NewTool("render_docs",
		mcp.WithDescription("Extract and render the documentation for a directory as a single Markdown document."),
		mcp.WithString("root",
			mcp.Required(),
			mcp.Description("Workspace root directory to scan"),
		),
	)
}

func getEntryTool() mcp.Tool {
	return mcp.NewTool("get_entry",
		mcp.WithDescription("Look up a single documentation entry by name from the most recent extraction. Pass root to (re)extract first."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Declaration name to look up (class methods match by method name)"),
		),
		mcp.WithString("root",
			mcp.Description("Workspace root directory; omitted means the last extracted result is used"),
		),
	)
}

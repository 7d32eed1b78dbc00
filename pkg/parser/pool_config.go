package parser

import (
	"github.com/gnana997/tsdocgen/pkg/util"
)

// getDefaultPoolSize returns the default pool size based on CPU count.
//
// Delegates to util.GetOptimalPoolSize() so the parser pool and any
// concurrent consumers (watcher, MCP server) agree on sizing.
func getDefaultPoolSize() int {
	return util.GetOptimalPoolSize()
}

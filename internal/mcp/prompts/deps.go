// Package prompts contains MCP prompt implementations for recall search.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	SearchWaitMs int
}

// educhain-mcp: educational content MCP server
//
// Generates multiple-choice questions, a lesson plan and flashcards for a
// fixed topic, caches them as JSON files and serves them to any MCP host
// over stdio.
//
// Usage:
//
//	educhain-mcp generate   # Generate and cache content
//	educhain-mcp serve      # Start MCP server (stdio transport)
//	educhain-mcp version    # Print the version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

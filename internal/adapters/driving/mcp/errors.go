// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Epic Search. It enables AI assistants to run searches and submit feedback
// through the same services the CLI and TUI use.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

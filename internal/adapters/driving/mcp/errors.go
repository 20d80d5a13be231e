// Package mcp provides an MCP (Model Context Protocol) server adapter for mashruteh.
// It lets AI assistants search the constitution, ask the chat assistant and
// read saved conversations.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrToolUnavailable is returned by tools whose backing service is not configured.
	ErrToolUnavailable = errors.New("mcp: tool unavailable")
)

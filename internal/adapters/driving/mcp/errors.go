// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants extract document text and generate study guides
// from local files.
package mcp

import "errors"

// ErrMissingExtractionService is returned when the extraction service is not provided.
var ErrMissingExtractionService = errors.New("mcp: extraction service is required")

// ErrGenerationUnavailable is returned by generate_study_guide when no session
// factory is configured.
var ErrGenerationUnavailable = errors.New("mcp: study guide generation is not configured")

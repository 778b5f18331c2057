package mcp

import (
	"context"

	"github.com/custodia-labs/studybuddy/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Extraction turns documents into text.
	Extraction driving.ExtractionService

	// NewSession creates a fresh session for one generate_study_guide call.
	// It fails when no model can be created, e.g. a missing API key.
	// Optional: without it only extract_text works.
	NewSession func(ctx context.Context) (driving.Session, error)
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Extraction == nil {
		return ErrMissingExtractionService
	}
	return nil
}

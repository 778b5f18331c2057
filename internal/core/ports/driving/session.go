package driving

import (
	"context"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

// SessionState is a point-in-time copy of the session for renderers.
type SessionState struct {
	// Document is the selected document, zero if none.
	Document domain.Document

	// Processing is true while a pipeline is running.
	Processing bool

	// Guide is the last generated guide, nil if none.
	Guide *domain.StudyGuide

	// Error is the user-facing message of the last failure, empty if none.
	Error string
}

// Session holds the state of one user's upload and generation.
// It runs at most one extraction and generation pipeline at a time.
type Session interface {
	// Select records the document for the next generation.
	// A document whose MIME type is not accepted is rejected and the
	// current state is left untouched.
	Select(doc domain.Document) error

	// Generate runs extraction then generation on the selected document.
	Generate(ctx context.Context) (*domain.StudyGuide, error)

	// Reset clears the selection, guide and error.
	Reset()

	// Snapshot returns the current state.
	Snapshot() SessionState
}

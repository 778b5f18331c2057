package driven

import (
	"context"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

// Extractor turns the raw bytes of one document format into plain text.
// Each extractor handles one or more formats (e.g., PDF, DOCX).
type Extractor interface {
	// SupportedFormats returns the formats this extractor handles.
	SupportedFormats() []domain.Format

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract returns the text content of data.
	// A parse failure is returned as a plain error; the caller classifies it.
	Extract(ctx context.Context, data []byte) (string, error)
}

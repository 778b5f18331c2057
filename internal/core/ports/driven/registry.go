package driven

import (
	"context"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

// ExtractorRegistry selects the appropriate extractor for a format.
// It maintains a priority-ordered list of extractors per format.
type ExtractorRegistry interface {
	// Extract runs the best matching extractor for format.
	// Returns domain.ErrUnsupportedFormat if none is registered.
	Extract(ctx context.Context, format domain.Format, data []byte) (string, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedFormats returns all formats that can be extracted.
	SupportedFormats() []domain.Format
}

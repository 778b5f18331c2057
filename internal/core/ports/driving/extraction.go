package driving

import (
	"context"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

// ExtractionService turns a selected document into plain text.
type ExtractionService interface {
	// Extract reads the document once and returns its non-empty text.
	// Failures are *domain.Failure values of kind ErrUnsupportedFormat,
	// ErrReadFailure, ErrParseFailure or ErrValidationFailure.
	Extract(ctx context.Context, doc domain.Document) (string, error)

	// SupportedFormats returns the formats that have a registered extractor.
	SupportedFormats() []domain.Format
}

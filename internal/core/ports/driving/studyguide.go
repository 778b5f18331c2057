package driving

import (
	"context"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

// StudyGuideService generates a study guide from document text.
type StudyGuideService interface {
	// Generate makes a single model call and returns a validated guide.
	// Empty text fails with ErrValidationFailure; every model, decode or
	// validation problem fails with ErrGenerationFailure.
	Generate(ctx context.Context, text string) (*domain.StudyGuide, error)
}

package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driving"
	"github.com/custodia-labs/studybuddy/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.Session = (*Session)(nil)

// Session holds the presentation state shared by the TUI, the CLI and the
// watcher: the selected document, the in-flight flag, the last guide and
// the last error.
type Session struct {
	extractor driving.ExtractionService
	generator driving.StudyGuideService

	mu         sync.Mutex
	doc        domain.Document
	processing bool
	guide      *domain.StudyGuide
	errMsg     string
}

// NewSession creates a session over the extraction and generation services.
func NewSession(extractor driving.ExtractionService, generator driving.StudyGuideService) *Session {
	return &Session{
		extractor: extractor,
		generator: generator,
	}
}

// Select records doc for the next generation and clears the previous result.
// A document with an unaccepted MIME type leaves the state untouched.
func (s *Session) Select(doc domain.Document) error {
	if _, ok := domain.FormatFromMIMEType(doc.MIMEType); !ok {
		logger.Debug("rejected %s: unsupported MIME type %q", doc.Name, doc.MIMEType)
		return domain.NewFailure(domain.ErrUnsupportedFormat, domain.MsgUnsupportedFile, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.guide = nil
	s.errMsg = ""
	return nil
}

// Generate extracts the selected document and generates a guide from it.
// Only one pipeline runs at a time; a concurrent call fails with
// domain.ErrGenerationInProgress.
func (s *Session) Generate(ctx context.Context) (*domain.StudyGuide, error) {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return nil, domain.ErrGenerationInProgress
	}
	if s.doc.IsZero() {
		s.errMsg = domain.MsgNoFileSelected
		s.mu.Unlock()
		return nil, domain.NewFailure(domain.ErrValidationFailure, domain.MsgNoFileSelected, nil)
	}
	doc := s.doc
	s.processing = true
	s.guide = nil
	s.errMsg = ""
	s.mu.Unlock()

	guide, err := s.run(ctx, doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = false
	if err != nil {
		s.errMsg = domain.UserMessage(err)
		return nil, err
	}
	s.guide = guide
	return guide, nil
}

func (s *Session) run(ctx context.Context, doc domain.Document) (*domain.StudyGuide, error) {
	logger.Section("Study Guide")
	logger.Info("document %s (%s)", doc.Name, doc.ID)

	text, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		logFailure("extraction failed", doc, err)
		return nil, err
	}

	guide, err := s.generator.Generate(ctx, text)
	if err != nil {
		logger.Debug("generation failed for %s: %v", doc.Name, err)
		return nil, err
	}
	return guide, nil
}

func logFailure(msg string, doc domain.Document, err error) {
	cause := err.Error()
	var f *domain.Failure
	if errors.As(err, &f) {
		cause = f.Cause()
	}
	logger.Error(msg,
		zap.String("document", doc.Name),
		zap.String("id", doc.ID),
		zap.String("cause", cause),
	)
}

// Reset clears the selection, guide and error.
// It does not interrupt a running pipeline.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = domain.Document{}
	s.guide = nil
	s.errMsg = ""
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() driving.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return driving.SessionState{
		Document:   s.doc,
		Processing: s.processing,
		Guide:      s.guide,
		Error:      s.errMsg,
	}
}

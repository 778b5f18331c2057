package mcp

import (
	"context"
	"io"
	"sync"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driving"
)

// mockExtractionService is a mock implementation of driving.ExtractionService.
// It returns the document bytes as text unless err is set.
type mockExtractionService struct {
	formats []domain.Format
	err     error
}

func (m *mockExtractionService) Extract(_ context.Context, doc domain.Document) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	rc, err := doc.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	return string(data), err
}

func (m *mockExtractionService) SupportedFormats() []domain.Format {
	return m.formats
}

// mockSession is a mock implementation of driving.Session.
type mockSession struct {
	mu        sync.Mutex
	selected  domain.Document
	guide     *domain.StudyGuide
	selectErr error
	err       error
}

func (m *mockSession) Select(doc domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selectErr != nil {
		return m.selectErr
	}
	m.selected = doc
	return nil
}

func (m *mockSession) Generate(_ context.Context) (*domain.StudyGuide, error) {
	return m.guide, m.err
}

func (m *mockSession) Reset() {}

func (m *mockSession) Snapshot() driving.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return driving.SessionState{Document: m.selected, Guide: m.guide}
}

func sessionFactory(s driving.Session, err error) func(context.Context) (driving.Session, error) {
	return func(context.Context) (driving.Session, error) {
		return s, err
	}
}

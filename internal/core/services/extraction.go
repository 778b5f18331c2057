package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driving"
	"github.com/custodia-labs/studybuddy/internal/logger"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractionService = (*ExtractionService)(nil)

// ExtractionService resolves a document's format and runs its extractor.
type ExtractionService struct {
	registry driven.ExtractorRegistry
}

// NewExtractionService creates a new extraction service.
func NewExtractionService(registry driven.ExtractorRegistry) *ExtractionService {
	return &ExtractionService{registry: registry}
}

// Extract returns the text content of doc.
// The format is resolved from the name before any bytes are read.
func (s *ExtractionService) Extract(ctx context.Context, doc domain.Document) (string, error) {
	format, ext, ok := domain.FormatFromName(doc.Name)
	if !ok {
		return "", domain.NewFailure(
			domain.ErrUnsupportedFormat,
			fmt.Sprintf("Unsupported file type: .%s", ext),
			nil,
		)
	}

	data, err := readAll(doc)
	if err != nil {
		return "", domain.NewFailure(domain.ErrReadFailure, domain.MsgReadFailure, err)
	}
	logger.Debug("extracting %s (%s, %d bytes)", doc.Name, format, len(data))

	text, err := s.registry.Extract(ctx, format, data)
	if err != nil {
		return "", classifyExtractError(format, ext, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", domain.NewFailure(domain.ErrValidationFailure, domain.MsgEmptyText, nil)
	}

	logger.Debug("extracted %d characters from %s", len([]rune(text)), doc.Name)
	return text, nil
}

// SupportedFormats returns the formats that have a registered extractor.
func (s *ExtractionService) SupportedFormats() []domain.Format {
	return s.registry.SupportedFormats()
}

func readAll(doc domain.Document) ([]byte, error) {
	rc, err := doc.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func classifyExtractError(format domain.Format, ext string, err error) error {
	if errors.Is(err, domain.ErrUnsupportedFormat) {
		return domain.NewFailure(
			domain.ErrUnsupportedFormat,
			fmt.Sprintf("Unsupported file type: .%s", ext),
			err,
		)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	msg := domain.MsgReadFailure
	switch format {
	case domain.FormatPDF:
		msg = domain.MsgPDFParseFailure
	case domain.FormatDOCX:
		msg = domain.MsgDOCXParseFailure
	}
	return domain.NewFailure(domain.ErrParseFailure, msg, err)
}

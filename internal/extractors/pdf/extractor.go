package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
	"github.com/custodia-labs/studybuddy/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents using pdfcpu.
//
// Each page contributes its text runs joined by single spaces and closed by
// an empty end-of-page run, then a newline. No layout is reconstructed and
// scanned pages yield no text.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedFormats returns the formats this extractor handles.
func (e *Extractor) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatPDF}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract returns the text of pages 1..N in order.
// Encrypted or corrupt documents fail when pdfcpu reads them.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}

	var out strings.Builder
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		runs := pageRuns(pdfCtx, pageNr)
		out.WriteString(strings.Join(append(runs, ""), " "))
		out.WriteByte('\n')
	}

	logger.Debug("pdf: %d pages, %d bytes of text", pdfCtx.PageCount, out.Len())
	return out.String(), nil
}

// pageRuns returns the text runs of one page. A page whose content cannot
// be read counts as a page without text.
func pageRuns(pdfCtx *model.Context, pageNr int) []string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		logger.Debug("pdf: page %d has no readable content: %v", pageNr, err)
		return nil
	}
	if r == nil {
		return nil
	}
	content, err := io.ReadAll(r)
	if err != nil || len(content) == 0 {
		return nil
	}
	return TextRuns(content)
}

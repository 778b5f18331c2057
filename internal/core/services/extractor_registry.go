package services

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
)

// Ensure ExtractorRegistry implements the interface.
var _ driven.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry dispatches extraction to the highest priority
// extractor registered for a format.
type ExtractorRegistry struct {
	mu         sync.RWMutex
	extractors map[domain.Format][]driven.Extractor
}

// NewExtractorRegistry creates a registry holding the given extractors.
func NewExtractorRegistry(extractors ...driven.Extractor) *ExtractorRegistry {
	r := &ExtractorRegistry{
		extractors: make(map[domain.Format][]driven.Extractor),
	}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor for each of its formats.
func (r *ExtractorRegistry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range extractor.SupportedFormats() {
		list := append(r.extractors[f], extractor)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.extractors[f] = list
	}
}

// Extract runs the preferred extractor for format.
func (r *ExtractorRegistry) Extract(ctx context.Context, format domain.Format, data []byte) (string, error) {
	r.mu.RLock()
	list := r.extractors[format]
	r.mu.RUnlock()

	if len(list) == 0 {
		return "", domain.ErrUnsupportedFormat
	}
	return list[0].Extract(ctx, data)
}

// SupportedFormats returns the registered formats in display order.
func (r *ExtractorRegistry) SupportedFormats() []domain.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Format
	for _, f := range domain.Formats() {
		if len(r.extractors[f]) > 0 {
			out = append(out, f)
		}
	}
	return out
}

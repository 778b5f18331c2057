// Package watch runs study guide generation for files dropped into a folder.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/studybuddy/internal/adapters/driving/render"
	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driving"
	"github.com/custodia-labs/studybuddy/internal/logger"
)

// DefaultSettle is how long a file must go without writes before it is processed.
const DefaultSettle = 500 * time.Millisecond

// Config holds watcher configuration.
type Config struct {
	// Dir is the folder to watch. Subfolders are not watched.
	Dir string

	// Session runs each pipeline. Files are processed one at a time.
	Session driving.Session

	// Out receives one rendered guide, or one error line, per file.
	Out io.Writer

	// Format selects the guide rendering (default: text).
	Format render.Format

	// Settle overrides DefaultSettle.
	Settle time.Duration
}

// Watcher turns files created in a folder into study guides.
type Watcher struct {
	cfg     Config
	fs      *fsnotify.Watcher
	pending map[string]time.Time
}

// New creates a watcher for cfg.Dir.
func New(cfg Config) (*Watcher, error) {
	if cfg.Session == nil {
		return nil, errors.New("watch: session is required")
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Format == "" {
		cfg.Format = render.FormatText
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}

	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", cfg.Dir)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	if err := fs.Add(cfg.Dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch: add %s: %w", cfg.Dir, err)
	}

	return &Watcher{
		cfg:     cfg,
		fs:      fs,
		pending: make(map[string]time.Time),
	}, nil
}

// Run processes files until ctx is cancelled. Events and pipelines share
// this goroutine, so at most one pipeline runs at a time.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	tick := time.NewTicker(w.cfg.Settle / 2)
	defer tick.Stop()

	logger.Info("watching %s", w.cfg.Dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.observe(event, time.Now())
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", zap.Error(err))
		case now := <-tick.C:
			for _, path := range w.due(now) {
				if ctx.Err() != nil {
					return nil
				}
				w.process(ctx, path)
			}
		}
	}
}

// Close stops watching without waiting for Run to return.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// observe records a create or write on a supported file and pushes its
// deadline back, so a file still being copied is not read half-written.
func (w *Watcher) observe(event fsnotify.Event, now time.Time) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			delete(w.pending, event.Name)
		}
		return
	}
	if !Accepts(event.Name) {
		return
	}
	w.pending[event.Name] = now.Add(w.cfg.Settle)
}

// due removes and returns the pending files whose deadline has passed, oldest first.
func (w *Watcher) due(now time.Time) []string {
	var ready []string
	for path, deadline := range w.pending {
		if !now.Before(deadline) {
			ready = append(ready, path)
		}
	}
	sort.Slice(ready, func(i, j int) bool {
		return w.pending[ready[i]].Before(w.pending[ready[j]])
	})
	for _, path := range ready {
		delete(w.pending, path)
	}
	return ready
}

// process runs one file through the session and writes the result.
func (w *Watcher) process(ctx context.Context, path string) {
	name := filepath.Base(path)

	doc, err := domain.NewFileDocument(uuid.NewString(), path)
	if err != nil {
		// Removed or replaced by a directory before it settled.
		logger.Debug("skipping %s: %v", name, err)
		return
	}

	var guide *domain.StudyGuide
	if err = w.cfg.Session.Select(doc); err == nil {
		guide, err = w.cfg.Session.Generate(ctx)
	}
	if err != nil {
		fmt.Fprintf(w.cfg.Out, "%s: %s\n", name, domain.UserMessage(err))
		return
	}

	if w.cfg.Format == render.FormatText {
		fmt.Fprintf(w.cfg.Out, "# %s\n\n", name)
	}
	if err := render.Write(w.cfg.Out, guide, w.cfg.Format); err != nil {
		logger.Error("write study guide", zap.String("document", name), zap.Error(err))
	}
	if w.cfg.Format == render.FormatText {
		fmt.Fprintln(w.cfg.Out)
	}
}

// Accepts reports whether path names a supported document that is not
// hidden or an editor lock file.
func Accepts(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	_, _, ok := domain.FormatFromName(name)
	return ok
}

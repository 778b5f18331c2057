package domain

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Document is a named byte blob selected for study guide generation.
// It is created at selection time, consumed once by extraction and then discarded.
type Document struct {
	// ID correlates log lines for one pipeline run.
	ID string

	// Name is the file name, used to resolve the format by extension.
	Name string

	// MIMEType is the declared content type, checked at selection time.
	MIMEType string

	// Size is the byte length, when known.
	Size int64

	open func() (io.ReadCloser, error)
}

// NewDocument creates a document backed by an opener.
func NewDocument(id, name, mimeType string, size int64, open func() (io.ReadCloser, error)) Document {
	return Document{
		ID:       id,
		Name:     name,
		MIMEType: mimeType,
		Size:     size,
		open:     open,
	}
}

// NewBytesDocument creates an in-memory document.
func NewBytesDocument(id, name, mimeType string, data []byte) Document {
	return NewDocument(id, name, mimeType, int64(len(data)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// NewFileDocument creates a document for a file on disk.
// The MIME type is declared from the extension; the file is opened lazily.
func NewFileDocument(id, path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, err
	}
	if info.IsDir() {
		return Document{}, ErrInvalidInput
	}
	name := filepath.Base(path)
	return NewDocument(id, name, MIMETypeForName(name), info.Size(), func() (io.ReadCloser, error) {
		return os.Open(path) //nolint:gosec // path chosen by the user
	}), nil
}

// Open returns a reader over the document bytes.
func (d Document) Open() (io.ReadCloser, error) {
	if d.open == nil {
		return nil, ErrInvalidInput
	}
	return d.open()
}

// IsZero reports whether no document is set.
func (d Document) IsZero() bool {
	return d.Name == "" && d.open == nil
}

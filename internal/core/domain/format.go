package domain

import (
	"path/filepath"
	"strings"
)

// Format is the declared format of a document.
type Format string

// Accepted document formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// MIME types accepted at selection time.
const (
	MIMEText     = "text/plain"
	MIMEMarkdown = "text/markdown"
	MIMEPDF      = "application/pdf"
	MIMEDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var extensionFormats = map[string]Format{
	".txt":  FormatText,
	".md":   FormatMarkdown,
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
}

var mimeFormats = map[string]Format{
	MIMEText:     FormatText,
	MIMEMarkdown: FormatMarkdown,
	MIMEPDF:      FormatPDF,
	MIMEDOCX:     FormatDOCX,
}

// Formats returns all accepted formats in display order.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatPDF, FormatDOCX}
}

// IsValid returns true if the format is recognised.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatMarkdown, FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f Format) String() string {
	return string(f)
}

// Extension returns the canonical file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatMarkdown:
		return ".md"
	case FormatPDF:
		return ".pdf"
	case FormatDOCX:
		return ".docx"
	default:
		return ""
	}
}

// MIMEType returns the MIME type declared for the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatText:
		return MIMEText
	case FormatMarkdown:
		return MIMEMarkdown
	case FormatPDF:
		return MIMEPDF
	case FormatDOCX:
		return MIMEDOCX
	default:
		return ""
	}
}

// Extensions returns the accepted file extensions, including the dot.
func Extensions() []string {
	formats := Formats()
	exts := make([]string, len(formats))
	for i, f := range formats {
		exts[i] = f.Extension()
	}
	return exts
}

// FormatFromName maps a file name to its format by extension.
// The second return value is the lower-cased extension without the dot,
// which callers use in error messages.
func FormatFromName(name string) (Format, string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	f, ok := extensionFormats[ext]
	return f, strings.TrimPrefix(ext, "."), ok
}

// FormatFromMIMEType maps a declared MIME type to its format.
// Parameters such as "; charset=utf-8" are ignored.
func FormatFromMIMEType(mimeType string) (Format, bool) {
	base, _, _ := strings.Cut(mimeType, ";")
	f, ok := mimeFormats[strings.ToLower(strings.TrimSpace(base))]
	return f, ok
}

// MIMETypeForName returns the declared MIME type for a file name,
// or "application/octet-stream" when the extension is not accepted.
func MIMETypeForName(name string) string {
	if f, _, ok := FormatFromName(name); ok {
		return f.MIMEType()
	}
	return "application/octet-stream"
}

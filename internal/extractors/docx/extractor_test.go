package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
)

// createTestDOCX creates a minimal DOCX file in memory.
func createTestDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func wrapBody(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`
}

func TestExtractor_ImplementsInterface(t *testing.T) {
	var _ driven.Extractor = New()
}

func TestExtractor_Metadata(t *testing.T) {
	e := New()
	assert.Equal(t, []domain.Format{domain.FormatDOCX}, e.SupportedFormats())
	assert.Equal(t, 50, e.Priority())
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "single paragraph",
			body:     `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`,
			expected: "Hello World\n\n",
		},
		{
			name: "runs joined within paragraph",
			body: `<w:p><w:r><w:t xml:space="preserve">Cell </w:t></w:r>` +
				`<w:r><w:rPr><w:b/></w:rPr><w:t>biology</w:t></w:r></w:p>`,
			expected: "Cell biology\n\n",
		},
		{
			name:     "paragraphs separated by blank line",
			body:     `<w:p><w:r><w:t>One</w:t></w:r></w:p><w:p><w:r><w:t>Two</w:t></w:r></w:p>`,
			expected: "One\n\nTwo\n\n",
		},
		{
			name:     "tabs and breaks",
			body:     `<w:p><w:r><w:t>Term</w:t><w:tab/><w:t>Definition</w:t><w:br/><w:t>Next</w:t></w:r></w:p>`,
			expected: "Term\tDefinition\nNext\n\n",
		},
		{
			name: "tab stops in paragraph properties",
			body: `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
				`<w:r><w:t>Indented</w:t></w:r></w:p>`,
			expected: "Indented\n\n",
		},
		{
			name:     "empty paragraph",
			body:     `<w:p/><w:p><w:r><w:t>After</w:t></w:r></w:p>`,
			expected: "\n\nAfter\n\n",
		},
		{
			name: "table cells",
			body: `<w:tbl><w:tr><w:tc><w:p><w:r><w:t>A1</w:t></w:r></w:p></w:tc>` +
				`<w:tc><w:p><w:r><w:t>B1</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`,
			expected: "A1\n\nB1\n\n",
		},
		{
			name:     "escaped characters",
			body:     `<w:p><w:r><w:t>x &lt; y &amp;&amp; z</w:t></w:r></w:p>`,
			expected: "x < y && z\n\n",
		},
		{
			name:     "ignores instruction text",
			body:     `<w:p><w:r><w:instrText>PAGE</w:instrText><w:t>Body</w:t></w:r></w:p>`,
			expected: "Body\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := createTestDOCX(t, wrapBody(tt.body))

			text, err := New().Extract(context.Background(), data)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestExtract_NotAZip(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("this is not a docx"))
	assert.Error(t, err)
}

func TestExtract_MissingDocumentPart(t *testing.T) {
	_, err := New().Extract(context.Background(), createTestDOCX(t, ""))
	assert.ErrorIs(t, err, ErrNoDocumentPart)
}

func TestExtract_MalformedXML(t *testing.T) {
	data := createTestDOCX(t, wrapBody(`<w:p><w:r><w:t>Unclosed</w:r></w:p>`))

	_, err := New().Extract(context.Background(), data)

	assert.Error(t, err)
}

func TestExtract_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, createTestDOCX(t, wrapBody(`<w:p/>`)))

	assert.ErrorIs(t, err, context.Canceled)
}

package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleFormatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists supported formats", func(t *testing.T) {
		ports := &Ports{Extraction: &mockExtractionService{
			formats: []domain.Format{domain.FormatPDF, domain.FormatMarkdown},
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleFormatsResource(ctx, makeReadResourceRequest(formatsURI))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, formatsURI, result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []formatInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		assert.Equal(t, []formatInfo{
			{Format: "pdf", Extension: ".pdf", MIMEType: domain.MIMEPDF},
			{Format: "markdown", Extension: ".md", MIMEType: domain.MIMEMarkdown},
		}, infos)
	})

	t.Run("no formats gives empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Extraction: &mockExtractionService{}})
		require.NoError(t, err)

		result, err := server.handleFormatsResource(ctx, makeReadResourceRequest(formatsURI))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

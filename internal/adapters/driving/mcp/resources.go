package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for server resources.
	uriScheme = "studybuddy://"

	formatsURI = uriScheme + "formats"
)

// formatInfo describes one accepted document format.
type formatInfo struct {
	Format    string `json:"format"`
	Extension string `json:"extension"`
	MIMEType  string `json:"mimeType"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         formatsURI,
		Name:        "formats",
		Description: "Document formats the study guide tools accept",
		MIMEType:    "application/json",
	}, s.handleFormatsResource)
}

// handleFormatsResource lists the formats that have a registered extractor.
func (s *Server) handleFormatsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	formats := s.ports.Extraction.SupportedFormats()

	infos := make([]formatInfo, len(formats))
	for i, f := range formats {
		infos[i] = formatInfo{
			Format:    f.String(),
			Extension: f.Extension(),
			MIMEType:  f.MIMEType(),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling formats: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

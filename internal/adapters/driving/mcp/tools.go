package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driving"
	"github.com/custodia-labs/studybuddy/internal/logger"
)

// PathInput is the input schema for tools that take a local file.
type PathInput struct {
	Path string `json:"path" jsonschema:"path of a .pdf, .docx, .md or .txt file on the local machine"`
}

// ExtractTextOutput is the output schema for the extract_text tool.
type ExtractTextOutput struct {
	Text       string `json:"text"`
	Characters int    `json:"characters"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_text",
		Description: "Extract the plain text of a local PDF, DOCX, Markdown or text file",
	}, s.handleExtractText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "generate_study_guide",
		Description: "Generate a study guide from a local file: flashcards, multiple choice, " +
			"fill in the blanks, what is this called, definitions, programming questions and a 30-minute exam",
	}, s.handleGenerateStudyGuide)
}

// handleExtractText handles the extract_text tool invocation.
func (s *Server) handleExtractText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PathInput,
) (*mcp.CallToolResult, ExtractTextOutput, error) {
	doc, err := openDocument(input.Path)
	if err != nil {
		return nil, ExtractTextOutput{}, err
	}

	text, err := s.ports.Extraction.Extract(ctx, doc)
	if err != nil {
		return nil, ExtractTextOutput{}, err
	}

	return nil, ExtractTextOutput{
		Text:       text,
		Characters: len([]rune(text)),
	}, nil
}

// handleGenerateStudyGuide runs one selection and generation pipeline on its
// own session, so concurrent calls never share state.
func (s *Server) handleGenerateStudyGuide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PathInput,
) (*mcp.CallToolResult, domain.StudyGuide, error) {
	if s.ports.NewSession == nil {
		return nil, domain.StudyGuide{}, ErrGenerationUnavailable
	}

	doc, err := openDocument(input.Path)
	if err != nil {
		return nil, domain.StudyGuide{}, err
	}

	session, err := s.ports.NewSession(ctx)
	if err != nil {
		return nil, domain.StudyGuide{}, err
	}

	guide, err := generate(ctx, session, doc)
	if err != nil {
		return nil, domain.StudyGuide{}, err
	}
	return nil, *guide, nil
}

func generate(ctx context.Context, session driving.Session, doc domain.Document) (*domain.StudyGuide, error) {
	if err := session.Select(doc); err != nil {
		return nil, err
	}
	return session.Generate(ctx)
}

// openDocument resolves path to an absolute file and wraps it as a document.
func openDocument(path string) (domain.Document, error) {
	if path == "" {
		return domain.Document{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	doc, err := domain.NewFileDocument(uuid.NewString(), abs)
	if err != nil {
		logger.Debug("mcp: cannot open %s: %v", abs, err)
		return domain.Document{}, domain.NewFailure(domain.ErrReadFailure, domain.MsgReadFailure, err)
	}
	return doc, nil
}

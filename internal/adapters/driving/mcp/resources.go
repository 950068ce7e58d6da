package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for studydeck resources.
	uriScheme = "studydeck://"

	markdownMIME = "text/markdown"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "Files loaded into the session",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	if s.ports.Export == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "summary",
		Name:        "summary",
		Description: "The last generated summary",
		MIMEType:    markdownMIME,
	}, s.handleExportResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "concepts",
		Name:        "key-concepts",
		Description: "The last generated key concepts table",
		MIMEType:    markdownMIME,
	}, s.handleExportResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "transcript",
		Name:        "transcript",
		Description: "Questions and answers so far",
		MIMEType:    markdownMIME,
	}, s.handleExportResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sections/{index}/analysis",
		Name:        "section-analysis",
		Description: "The analysis of one section",
		MIMEType:    markdownMIME,
	}, s.handleExportResource)
}

// handleSourcesResource returns the loaded sources without their text.
func (s *Server) handleSourcesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var infos []SourceOutput
	_ = s.withSession(func(sess *domain.Session) error { //nolint:errcheck // never fails
		infos = make([]SourceOutput, 0, len(sess.Sources()))
		for _, src := range sess.Sources() {
			infos = append(infos, toSourceOutput(src))
		}
		return nil
	})

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleExportResource serves stored results as Markdown exports.
func (s *Server) handleExportResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI

	var artifact *domain.Artifact
	err := s.withSession(func(sess *domain.Session) error {
		var err error
		switch strings.TrimPrefix(uri, uriScheme) {
		case "summary":
			artifact, err = s.ports.Export.Summary(sess)
		case "concepts":
			artifact, err = s.ports.Export.KeyConcepts(sess)
		case "transcript":
			artifact, err = s.ports.Export.Transcript(sess)
		default:
			index := extractSectionIndex(uri)
			if index < 1 {
				return domain.ErrNotFound
			}
			artifact, err = s.ports.Export.Analysis(sess, index)
		}
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: markdownMIME,
			Text:     string(artifact.Data),
		}},
	}, nil
}

// extractSectionIndex extracts N from studydeck://sections/N/analysis.
// Returns 0 when the URI does not match.
func extractSectionIndex(uri string) int {
	const prefix = uriScheme + "sections/"
	const suffix = "/analysis"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return 0
	}

	n, err := strconv.Atoi(strings.TrimSuffix(uri, suffix))
	if err != nil {
		return 0
	}
	return n
}

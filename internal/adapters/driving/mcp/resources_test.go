package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/services"
)

func TestExtractSectionIndex(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected int
	}{
		{"valid analysis URI", "studydeck://sections/3/analysis", 3},
		{"two digits", "studydeck://sections/12/analysis", 12},
		{"invalid prefix", "file://sections/3/analysis", 0},
		{"missing suffix", "studydeck://sections/3", 0},
		{"not a number", "studydeck://sections/x/analysis", 0},
		{"empty URI", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractSectionIndex(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func newExportServer(t *testing.T) *Server {
	t.Helper()
	ports := newTestPorts()
	ports.Export = services.NewExportService()
	return newTestServer(t, ports)
}

func TestServer_handleSourcesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("empty session returns empty list", func(t *testing.T) {
		server := newTestServer(t, nil)

		result, err := server.handleSourcesResource(ctx, makeReadResourceRequest("studydeck://sources"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("lists loaded sources without text", func(t *testing.T) {
		server := newTestServer(t, nil)
		server.Session().AddSource(domain.NewSource("src-1", "lecture.pdf", domain.SourceKindPDF, "secret body", 3))

		result, err := server.handleSourcesResource(ctx, makeReadResourceRequest("studydeck://sources"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "src-1")
		assert.Contains(t, result.Contents[0].Text, "lecture.pdf")
		assert.Contains(t, result.Contents[0].Text, `"pages": 3`)
		assert.NotContains(t, result.Contents[0].Text, "secret body")
	})
}

func TestServer_handleExportResource(t *testing.T) {
	ctx := context.Background()

	t.Run("summary", func(t *testing.T) {
		server := newExportServer(t)
		server.Session().AddSource(domain.NewSource("s1", "a.txt", domain.SourceKindText, "text", 0))
		server.Session().SetSummary("Short summary.")

		result, err := server.handleExportResource(ctx, makeReadResourceRequest("studydeck://summary"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "# Summary")
		assert.Contains(t, result.Contents[0].Text, "Short summary.")
		assert.Equal(t, markdownMIME, result.Contents[0].MIMEType)
	})

	t.Run("key concepts", func(t *testing.T) {
		server := newExportServer(t)
		server.Session().SetKeyConcepts("| Concept | Simplified definition |")

		result, err := server.handleExportResource(ctx, makeReadResourceRequest("studydeck://concepts"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "# Key Concepts")
	})

	t.Run("section analysis", func(t *testing.T) {
		server := newExportServer(t)
		server.Session().SetSections([]domain.Section{{Index: 2, Title: "Mitosis", StartUnit: 3, EndUnit: 6}})
		server.Session().SetAnalysis(2, "Cells split.")

		result, err := server.handleExportResource(ctx, makeReadResourceRequest("studydeck://sections/2/analysis"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "Section 2: Mitosis")
		assert.Contains(t, result.Contents[0].Text, "Cells split.")
	})

	t.Run("missing result is not found", func(t *testing.T) {
		server := newExportServer(t)

		_, err := server.handleExportResource(ctx, makeReadResourceRequest("studydeck://transcript"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Resource not found")
	})

	t.Run("bad section URI is not found", func(t *testing.T) {
		server := newExportServer(t)

		_, err := server.handleExportResource(ctx, makeReadResourceRequest("studydeck://sections/zero/analysis"))

		require.Error(t, err)
	})
}

// Package libreoffice converts presentation packages to PDF with a headless
// LibreOffice (soffice) process.
package libreoffice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// Ensure Renderer implements the interface.
var _ driven.DeckRenderer = (*Renderer)(nil)

// DefaultBinary is the LibreOffice command-line entry point.
const DefaultBinary = "soffice"

// RenderError carries the renderer's diagnostic output. It matches
// domain.ErrRenderFailed with errors.Is.
type RenderError struct {
	Output string
	Err    error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("%v: %v", domain.ErrRenderFailed, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *RenderError) Unwrap() []error {
	return []error{domain.ErrRenderFailed, e.Err}
}

// Renderer runs soffice through a CommandRunner.
type Renderer struct {
	runner driven.CommandRunner
	binary string
}

// New creates a renderer. An empty binary uses DefaultBinary.
func New(runner driven.CommandRunner, binary string) *Renderer {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Renderer{runner: runner, binary: binary}
}

// RenderPDF writes deck to a temporary directory, converts it and returns
// the PDF bytes. The directory is removed on success and on failure.
func (r *Renderer) RenderPDF(ctx context.Context, deck []byte) ([]byte, error) {
	if len(deck) == 0 {
		return nil, &RenderError{Err: errors.New("empty deck")}
	}

	dir, err := os.MkdirTemp("", "studydeck-render-*")
	if err != nil {
		return nil, &RenderError{Err: fmt.Errorf("create temp dir: %w", err)}
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "deck.pptx")
	if err := os.WriteFile(input, deck, 0600); err != nil {
		return nil, &RenderError{Err: fmt.Errorf("write deck: %w", err)}
	}

	logger.Debug("Rendering deck to PDF in %s", dir)
	out, err := r.runner.Run(ctx, r.binary,
		"--headless", "--norestore",
		"-env:UserInstallation=file://"+filepath.ToSlash(filepath.Join(dir, "profile")),
		"--convert-to", "pdf",
		"--outdir", dir,
		input,
	)
	if err != nil {
		return nil, &RenderError{Output: string(out), Err: err}
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "deck.pdf"))
	if err != nil {
		return nil, &RenderError{Output: string(out), Err: errors.New("no PDF produced")}
	}
	return pdf, nil
}

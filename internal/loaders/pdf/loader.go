// Package pdf extracts page text from PDF files using the poppler
// pdftotext tool.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// ErrToolMissing indicates the pdftotext binary is not installed.
// See InstallInstructions.
var ErrToolMissing = errors.New("pdftotext not found")

// Loader reads PDFs by shelling out to pdftotext. pdftotext separates
// pages with form feed characters, which map directly onto the
// page-per-Document contract.
type Loader struct {
	runner driven.CommandRunner
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// New creates a PDF loader using the system pdftotext binary.
func New() *Loader {
	return &Loader{runner: execRunner{}}
}

// NewWithRunner creates a PDF loader with a custom command runner.
// Used in tests to avoid requiring pdftotext.
func NewWithRunner(runner driven.CommandRunner) *Loader {
	return &Loader{runner: runner}
}

// Load extracts one Document per page, in page order.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	out, err := l.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", path, "-")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", path, ErrToolMissing)
		}
		return nil, fmt.Errorf("pdftotext %s: %w", path, err)
	}

	// pdftotext emits a trailing form feed after the last page.
	raw := strings.TrimSuffix(string(out), "\f")
	pages := strings.Split(raw, "\f")

	docs := make([]domain.Document, 0, len(pages))
	for i, page := range pages {
		docs = append(docs, domain.Document{
			Source:  path,
			Page:    i + 1,
			Content: page,
		})
	}
	return docs, nil
}

// InstallInstructions returns guidance for missing pdftotext binaries.
func InstallInstructions() string {
	return strings.Join([]string{
		"pdftotext is required for PDF extraction.",
		"  macOS:  brew install poppler",
		"  Debian: apt install poppler-utils",
	}, "\n")
}

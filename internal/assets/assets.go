// Package assets provides the embedded certificate layout data and a
// fallback template, with optional filesystem overrides so a template
// revision does not require a rebuild.
package assets

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed layout.yaml
var layoutYAML []byte

//go:embed template.pdf
var templatePDF []byte

// Loader resolves the layout document and the certificate template.
type Loader interface {
	// Layout returns the YAML layout document.
	Layout() ([]byte, error)
	// Template returns the certificate template PDF.
	Template() ([]byte, error)
}

// EmbeddedLoader serves the assets compiled into the binary. The embedded
// template is a blank page used by tests and dry runs; production runs point
// a FilesystemLoader at the official template file.
type EmbeddedLoader struct{}

// NewEmbeddedLoader returns a loader backed by the embedded assets.
func NewEmbeddedLoader() *EmbeddedLoader { return &EmbeddedLoader{} }

// Layout returns the embedded layout document.
func (*EmbeddedLoader) Layout() ([]byte, error) { return layoutYAML, nil }

// Template returns the embedded fallback template.
func (*EmbeddedLoader) Template() ([]byte, error) { return templatePDF, nil }

// FilesystemLoader overrides embedded assets with files on disk. An empty
// path falls back to the embedded asset, so the template and the layout can
// be overridden independently.
type FilesystemLoader struct {
	LayoutPath   string
	TemplatePath string

	embedded EmbeddedLoader
}

// NewFilesystemLoader returns a loader reading from the given paths, either
// of which may be empty to use the embedded asset.
func NewFilesystemLoader(layoutPath, templatePath string) *FilesystemLoader {
	return &FilesystemLoader{LayoutPath: layoutPath, TemplatePath: templatePath}
}

// Layout returns the layout document from LayoutPath, or the embedded one.
func (l *FilesystemLoader) Layout() ([]byte, error) {
	return l.read(l.LayoutPath, l.embedded.Layout)
}

// Template returns the template from TemplatePath, or the embedded one.
func (l *FilesystemLoader) Template() ([]byte, error) {
	return l.read(l.TemplatePath, l.embedded.Template)
}

func (l *FilesystemLoader) read(path string, fallback func() ([]byte, error)) ([]byte, error) {
	if path == "" {
		return fallback()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", path, err)
	}
	return data, nil
}

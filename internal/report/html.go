package report

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/csv-inspector/internal/utils"
)

const (
	// HTMLFileName is the rendered report written when HTML output is on.
	HTMLFileName = "report.html"
	// ReportTemplate is the template file looked up in the template directory.
	ReportTemplate = "report.html.tmpl"
)

// ErrTemplateNotFound is returned when the requested template file does not exist.
var ErrTemplateNotFound = errors.New("template not found")

//go:embed templates/*.tmpl
var embedded embed.FS

// TemplateRenderer renders a named template with the given data.
type TemplateRenderer interface {
	Render(name string, data any) (string, error)
}

// FSRenderer renders html/template files from a file system.
type FSRenderer struct {
	fsys fs.FS
	desc string
}

// NewFSRenderer returns a renderer reading templates from dir, or from the
// built-in templates when dir is empty.
func NewFSRenderer(dir string) *FSRenderer {
	if dir == "" {
		sub, _ := fs.Sub(embedded, "templates")
		return &FSRenderer{fsys: sub, desc: "built-in templates"}
	}
	return &FSRenderer{fsys: os.DirFS(dir), desc: dir}
}

func (r *FSRenderer) Render(name string, data any) (string, error) {
	if _, err := fs.Stat(r.fsys, name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s in %s", ErrTemplateNotFound, name, r.desc)
		}
		return "", err
	}
	tmpl, err := template.New(name).ParseFS(r.fsys, name)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderHTMLReport renders the report template and writes report.html into outDir.
func RenderHTMLReport(r TemplateRenderer, d ReportData, outDir string) (string, error) {
	html, err := r.Render(ReportTemplate, newReportView(d))
	if err != nil {
		return "", renderErr(HTMLFileName, err)
	}
	path := filepath.Join(outDir, HTMLFileName)
	if err := utils.SafeWriteFile(path, []byte(html)); err != nil {
		return "", renderErr(HTMLFileName, err)
	}
	return path, nil
}

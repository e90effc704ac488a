// Package web carries the HTML templates rendered by the site.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	IndexTemplate = "index.html"
	LoginTemplate = "login.html"
	AdminTemplate = "admin.html"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Templates parses the page templates. When viewsDir is set and holds an
// index.html, templates are read from there instead of the binary, so the
// site can be restyled without a rebuild.
func Templates(viewsDir string) (*template.Template, error) {
	source, err := templateFS(viewsDir)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("").ParseFS(source, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	for _, name := range []string{IndexTemplate, LoginTemplate, AdminTemplate} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("template %s missing", name)
		}
	}
	return tmpl, nil
}

func templateFS(viewsDir string) (fs.FS, error) {
	if viewsDir != "" {
		if _, err := os.Stat(filepath.Join(viewsDir, IndexTemplate)); err == nil {
			return os.DirFS(viewsDir), nil
		}
	}
	return fs.Sub(embeddedTemplates, "templates")
}

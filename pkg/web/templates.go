package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/aum-search/aum-web/pkg/models"
)

const (
	IndexTemplate = "index.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageData is what the search page renders: the submitted query and, after
// a submission, the relayed backend response.
type PageData struct {
	Query    string
	Response *models.QueryResponse
}

type TemplateManager struct {
	templates *template.Template
}

func NewTemplateManager() (*TemplateManager, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("unable to parse templates: %w", err)
	}

	return &TemplateManager{templates: tmpl}, nil
}

func (tm *TemplateManager) Render(w io.Writer, name string, data *PageData) error {
	if err := tm.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("unable to render template %s: %w", name, err)
	}
	return nil
}

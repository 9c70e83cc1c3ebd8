package view

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/bonevet/inventory/internal/shared"
	"github.com/bonevet/inventory/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	Header      Header
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Data        any
}

// PageData assembles TemplateData for a request path. The page title and
// header greeting are derived from the path and the signed-in user's name.
func PageData(path, userName, csrfToken string, flash *shared.FlashMessage, data any) TemplateData {
	header := NewHeader(path, userName)
	return TemplateData{
		Title:       header.Title,
		Header:      header,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: path,
		Data:        data,
	}
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006 15:04")
		},
		"formatDay": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates,
		"templates/partials/*.html",
		"templates/pages/*.html",
		"templates/pages/*/*.html",
	)
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

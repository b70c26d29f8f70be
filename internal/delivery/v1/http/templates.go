package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/DRSN-tech/storefront/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Имена страниц, по одному файлу в templates/.
const (
	tmplHome         = "home"
	tmplListing      = "listing"
	tmplDetail       = "detail"
	tmplCart         = "cart"
	tmplCheckout     = "checkout"
	tmplConfirmation = "confirmation"
	tmplError        = "error"
)

// pageData - данные, общие для всех страниц.
type pageData struct {
	Title   string
	Banner  string
	Notice  string
	Status  int
	Message string
	Missing []string
	Failure *view.FailureView
	View    any
	Forms   map[string]*Form
}

type templates struct {
	pages map[string]*template.Template
}

// newTemplates собирает для каждой страницы отдельный набор: общий layout и содержимое.
func newTemplates() (*templates, error) {
	names := []string{tmplHome, tmplListing, tmplDetail, tmplCart, tmplCheckout, tmplConfirmation, tmplError}

	t := &templates{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		tmpl, err := template.New(name).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		t.pages[name] = tmpl
	}

	return t, nil
}

// render исполняет шаблон в буфер, чтобы ошибка шаблона не оставила полуответ.
func (t *templates) render(w http.ResponseWriter, status int, name string, data *pageData) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

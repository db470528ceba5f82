package controllers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

// render executes a page template through the shared layout. The page is
// buffered so a template fault never leaks a half-written response.
func render(w http.ResponseWriter, status int, tmpl *template.Template, data interface{}) {
	body, err := renderBytes(tmpl, data)
	if err != nil {
		log.Error().Err(err).Msg("template render failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// renderBytes executes a page template into a byte slice, for the page cache
func renderBytes(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ErrorController serves the not-found and server-error pages
type ErrorController struct {
	templates map[string]*template.Template
	sessions  sessionReader
}

// NewErrorController creates a new ErrorController
func NewErrorController(templates map[string]*template.Template, sessions sessionReader) *ErrorController {
	return &ErrorController{templates: templates, sessions: sessions}
}

type errorData struct {
	Viewer string
	Path   string
}

// NotFound renders the 404 page
func (ec *ErrorController) NotFound(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ec.sessions.CurrentUser(r)
	render(w, http.StatusNotFound, ec.templates["not_found"], errorData{
		Viewer: viewer,
		Path:   r.URL.Path,
	})
}

// ServerError renders the 500 page
func (ec *ErrorController) ServerError(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ec.sessions.CurrentUser(r)
	render(w, http.StatusInternalServerError, ec.templates["server_error"], errorData{
		Viewer: viewer,
		Path:   r.URL.Path,
	})
}

// sessionReader is the slice of the session manager controllers read from
type sessionReader interface {
	CurrentUser(r *http.Request) (string, bool)
}

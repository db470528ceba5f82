// Package views embeds and parses the HTML templates.
package views

import (
	"embed"
	"html/template"
)

//go:embed *.html shared/*.html
var files embed.FS

// Load parses all templates. Every page template defines "content" and is
// rendered through the shared layout.
func Load() map[string]*template.Template {
	pages := map[string][]string{
		"index":        {"index.html", "shared/post.html"},
		"group":        {"group.html", "shared/post.html"},
		"follow":       {"follow.html", "shared/post.html"},
		"profile":      {"profile.html", "shared/post.html"},
		"post":         {"post.html"},
		"post_form":    {"post_form.html"},
		"comment_form": {"comment_form.html"},
		"login":        {"login.html"},
		"signup":       {"signup.html"},
		"not_found":    {"404.html"},
		"server_error": {"500.html"},
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, sources := range pages {
		sources = append([]string{"layout.html"}, sources...)
		templates[name] = template.Must(template.ParseFS(files, sources...))
	}
	return templates
}

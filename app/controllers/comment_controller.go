package controllers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"postcard/app/repositories"
	"postcard/app/services"
)

// CommentController handles adding comments to posts
type CommentController struct {
	comments  *services.CommentService
	sessions  sessionReader
	templates map[string]*template.Template
	errors    *ErrorController
}

// NewCommentController creates a new CommentController
func NewCommentController(
	comments *services.CommentService,
	sessions sessionReader,
	templates map[string]*template.Template,
	errors *ErrorController,
) *CommentController {
	return &CommentController{
		comments:  comments,
		sessions:  sessions,
		templates: templates,
		errors:    errors,
	}
}

type commentFormData struct {
	Viewer string
	Error  string
}

// New serves the comment form and attaches the comment on submit, then
// returns to the post page
func (cc *CommentController) New(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		viewer, _ := cc.sessions.CurrentUser(r)
		render(w, http.StatusOK, cc.templates["comment_form"], commentFormData{Viewer: viewer})
		return
	}
	cc.Create(w, r)
}

// Create attaches a comment to the post and returns to its page. The post
// page itself posts here, as does the comment form.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, _ := strconv.Atoi(vars["id"])
	viewer, _ := cc.sessions.CurrentUser(r)

	if _, err := cc.comments.AddComment(viewer, postID, r.FormValue("text")); err != nil {
		if err == repositories.ErrNotFound {
			cc.errors.NotFound(w, r)
			return
		}
		render(w, http.StatusOK, cc.templates["comment_form"], commentFormData{
			Viewer: viewer,
			Error:  "the comment text must not be empty",
		})
		return
	}
	http.Redirect(w, r, "/"+vars["username"]+"/"+vars["id"]+"/", http.StatusFound)
}

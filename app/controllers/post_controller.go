package controllers

import (
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"postcard/app/models"
	"postcard/app/repositories"
	"postcard/app/services"
)

// maxUploadBytes bounds the multipart form size for post uploads
const maxUploadBytes = 10 << 20

// PostController handles creating, viewing and editing posts, and serves
// their image attachments
type PostController struct {
	posts     *services.PostService
	comments  *services.CommentService
	postRepo  repositories.PostRepository
	mediaRepo repositories.MediaRepository
	sessions  sessionReader
	templates map[string]*template.Template
	errors    *ErrorController
}

// NewPostController creates a new PostController
func NewPostController(
	posts *services.PostService,
	comments *services.CommentService,
	postRepo repositories.PostRepository,
	mediaRepo repositories.MediaRepository,
	sessions sessionReader,
	templates map[string]*template.Template,
	errors *ErrorController,
) *PostController {
	return &PostController{
		posts:     posts,
		comments:  comments,
		postRepo:  postRepo,
		mediaRepo: mediaRepo,
		sessions:  sessions,
		templates: templates,
		errors:    errors,
	}
}

type postFormData struct {
	Viewer string
	Post   *models.Post
	Error  string
}

// postForm pulls the text, group and image fields out of a multipart form.
// A missing or empty group field means no group.
func postForm(r *http.Request) (text string, groupID int, upload []byte, err error) {
	if err = r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", 0, nil, err
	}
	text = r.FormValue("text")
	if g := r.FormValue("group"); g != "" {
		groupID, err = strconv.Atoi(g)
		if err != nil {
			return "", 0, nil, err
		}
	}
	file, _, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return text, groupID, nil, nil
	}
	if err != nil {
		return "", 0, nil, err
	}
	defer file.Close()
	upload, err = io.ReadAll(file)
	if err != nil {
		return "", 0, nil, err
	}
	return text, groupID, upload, nil
}

// New serves the new-post form and creates the post on submit. A freshly
// created post redirects to the home feed, though the cached feed page may
// keep showing the old content until its TTL runs out.
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	viewer, _ := pc.sessions.CurrentUser(r)

	if r.Method == http.MethodGet {
		render(w, http.StatusOK, pc.templates["post_form"], postFormData{Viewer: viewer})
		return
	}

	text, groupID, upload, err := postForm(r)
	if err != nil {
		render(w, http.StatusOK, pc.templates["post_form"], postFormData{
			Viewer: viewer,
			Error:  "could not read the submitted form",
		})
		return
	}
	if _, err := pc.posts.CreatePost(viewer, text, groupID, upload); err != nil {
		render(w, http.StatusOK, pc.templates["post_form"], postFormData{
			Viewer: viewer,
			Post:   &models.Post{Text: text, GroupID: groupID},
			Error:  formError(err),
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

type postPageData struct {
	Viewer   string
	Post     *models.Post
	Count    int
	Comments []*models.Comment
}

// View serves a single post with its comments and the author's post count
func (pc *PostController) View(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, _ := strconv.Atoi(vars["id"])
	viewer, _ := pc.sessions.CurrentUser(r)

	post, err := pc.posts.GetPost(vars["username"], postID)
	if err == repositories.ErrNotFound {
		pc.errors.NotFound(w, r)
		return
	}
	if err != nil {
		pc.errors.ServerError(w, r)
		return
	}
	count, err := pc.postRepo.CountByAuthor(post.Author)
	if err != nil {
		pc.errors.ServerError(w, r)
		return
	}
	comments, err := pc.comments.ListPostComments(post.ID)
	if err != nil {
		pc.errors.ServerError(w, r)
		return
	}
	render(w, http.StatusOK, pc.templates["post"], postPageData{
		Viewer:   viewer,
		Post:     post,
		Count:    count,
		Comments: comments,
	})
}

// Edit serves the edit form for a post and applies the changes on submit.
// Anyone who is not the author is sent back to the post page untouched.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, _ := strconv.Atoi(vars["id"])
	username := vars["username"]
	viewer, _ := pc.sessions.CurrentUser(r)

	post, err := pc.posts.GetPost(username, postID)
	if err == repositories.ErrNotFound {
		pc.errors.NotFound(w, r)
		return
	}
	if err != nil {
		pc.errors.ServerError(w, r)
		return
	}
	postURL := "/" + username + "/" + strconv.Itoa(postID) + "/"
	if viewer != post.Author {
		http.Redirect(w, r, postURL, http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		render(w, http.StatusOK, pc.templates["post_form"], postFormData{Viewer: viewer, Post: post})
		return
	}

	text, groupID, upload, err := postForm(r)
	if err != nil {
		render(w, http.StatusOK, pc.templates["post_form"], postFormData{
			Viewer: viewer,
			Post:   post,
			Error:  "could not read the submitted form",
		})
		return
	}
	if _, err := pc.posts.EditPost(viewer, postID, text, groupID, upload); err != nil {
		post.Text = text
		post.GroupID = groupID
		render(w, http.StatusOK, pc.templates["post_form"], postFormData{
			Viewer: viewer,
			Post:   post,
			Error:  formError(err),
		})
		return
	}
	http.Redirect(w, r, postURL, http.StatusFound)
}

// ServeMedia streams a stored image attachment
func (pc *PostController) ServeMedia(w http.ResponseWriter, r *http.Request) {
	blob, err := pc.mediaRepo.Get(mux.Vars(r)["id"])
	if err == repositories.ErrNotFound {
		pc.errors.NotFound(w, r)
		return
	}
	if err != nil {
		pc.errors.ServerError(w, r)
		return
	}
	w.Header().Set("Content-Type", blob.ContentType)
	w.Write(blob.Data)
}

// formError maps a service error to a message fit for the form page
func formError(err error) string {
	if errors.Is(err, services.ErrInvalidPost) {
		return "the post could not be published: " + err.Error()
	}
	return "could not save the post"
}

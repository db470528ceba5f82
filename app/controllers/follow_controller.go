package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"postcard/app/repositories"
	"postcard/app/services"
)

// FollowController handles following and unfollowing authors
type FollowController struct {
	follows  *services.FollowService
	sessions sessionReader
	errors   *ErrorController
}

// NewFollowController creates a new FollowController
func NewFollowController(follows *services.FollowService, sessions sessionReader, errors *ErrorController) *FollowController {
	return &FollowController{follows: follows, sessions: sessions, errors: errors}
}

// Follow subscribes the viewer to an author's posts and returns to the
// author's profile. Trying to follow yourself changes nothing.
func (fc *FollowController) Follow(w http.ResponseWriter, r *http.Request) {
	author := mux.Vars(r)["username"]
	viewer, _ := fc.sessions.CurrentUser(r)

	err := fc.follows.Follow(viewer, author)
	if err == repositories.ErrNotFound {
		fc.errors.NotFound(w, r)
		return
	}
	if err != nil && err != services.ErrSelfFollow {
		fc.errors.ServerError(w, r)
		return
	}
	http.Redirect(w, r, "/"+author+"/", http.StatusFound)
}

// Unfollow drops the viewer's subscription to an author and returns to the
// author's profile
func (fc *FollowController) Unfollow(w http.ResponseWriter, r *http.Request) {
	author := mux.Vars(r)["username"]
	viewer, _ := fc.sessions.CurrentUser(r)

	err := fc.follows.Unfollow(viewer, author)
	if err == repositories.ErrNotFound {
		fc.errors.NotFound(w, r)
		return
	}
	if err != nil {
		fc.errors.ServerError(w, r)
		return
	}
	http.Redirect(w, r, "/"+author+"/", http.StatusFound)
}

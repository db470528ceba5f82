package controllers

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"postcard/app/cache"
	"postcard/app/models"
	"postcard/app/repositories"
	"postcard/app/services"
)

// FeedController serves the home feed, group feeds, the follow feed and
// author profiles
type FeedController struct {
	feeds     *services.FeedService
	follows   *services.FollowService
	pages     *cache.PageCache
	sessions  sessionReader
	templates map[string]*template.Template
	errors    *ErrorController
}

// NewFeedController creates a new FeedController
func NewFeedController(
	feeds *services.FeedService,
	follows *services.FollowService,
	pages *cache.PageCache,
	sessions sessionReader,
	templates map[string]*template.Template,
	errors *ErrorController,
) *FeedController {
	return &FeedController{
		feeds:     feeds,
		follows:   follows,
		pages:     pages,
		sessions:  sessions,
		templates: templates,
		errors:    errors,
	}
}

// pageNumber reads the ?page= query parameter, defaulting to the first page.
// Out-of-range values are clamped later, during pagination.
func pageNumber(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

type feedData struct {
	Viewer string
	Page   *services.Page
}

// Index serves the home feed. Rendered pages are cached for the configured
// TTL, so a new post may not show up here until the cache entry expires. The
// cache key carries the viewer because the chrome differs when logged in.
func (fc *FeedController) Index(w http.ResponseWriter, r *http.Request) {
	viewer, _ := fc.sessions.CurrentUser(r)
	number := pageNumber(r)

	key := fmt.Sprintf("page:index:%s:%d", viewer, number)
	if body, ok := fc.pages.Get(key); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body)
		return
	}

	page, err := fc.feeds.HomePage(number)
	if err != nil {
		fc.errors.ServerError(w, r)
		return
	}
	body, err := renderBytes(fc.templates["index"], feedData{Viewer: viewer, Page: page})
	if err != nil {
		log.Error().Err(err).Msg("index render failed")
		fc.errors.ServerError(w, r)
		return
	}
	fc.pages.Set(key, body)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

type groupData struct {
	Viewer string
	Group  *models.Group
	Page   *services.Page
}

// GroupPosts serves the feed of a single group
func (fc *FeedController) GroupPosts(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	viewer, _ := fc.sessions.CurrentUser(r)

	group, page, err := fc.feeds.GroupPage(slug, pageNumber(r))
	if err == repositories.ErrNotFound {
		fc.errors.NotFound(w, r)
		return
	}
	if err != nil {
		fc.errors.ServerError(w, r)
		return
	}
	render(w, http.StatusOK, fc.templates["group"], groupData{
		Viewer: viewer,
		Group:  group,
		Page:   page,
	})
}

// FollowIndex serves the feed of posts by authors the viewer follows
func (fc *FeedController) FollowIndex(w http.ResponseWriter, r *http.Request) {
	viewer, _ := fc.sessions.CurrentUser(r)

	page, err := fc.feeds.FollowPage(viewer, pageNumber(r))
	if err != nil {
		fc.errors.ServerError(w, r)
		return
	}
	render(w, http.StatusOK, fc.templates["follow"], feedData{Viewer: viewer, Page: page})
}

type profileData struct {
	Viewer    string
	Author    *models.User
	Page      *services.Page
	Count     int
	Following bool
}

// Profile serves an author page with their posts and post count
func (fc *FeedController) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	viewer, _ := fc.sessions.CurrentUser(r)

	author, page, count, err := fc.feeds.ProfilePage(username, pageNumber(r))
	if err == repositories.ErrNotFound {
		fc.errors.NotFound(w, r)
		return
	}
	if err != nil {
		fc.errors.ServerError(w, r)
		return
	}

	following := false
	if viewer != "" && viewer != username {
		following, err = fc.follows.IsFollowing(viewer, username)
		if err != nil {
			fc.errors.ServerError(w, r)
			return
		}
	}
	render(w, http.StatusOK, fc.templates["profile"], profileData{
		Viewer:    viewer,
		Author:    author,
		Page:      page,
		Count:     count,
		Following: following,
	})
}

package routes

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"postcard/app/auth"
	"postcard/app/cache"
	"postcard/app/models"
	"postcard/app/repositories"
)

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type testApp struct {
	router   *mux.Router
	deps     Deps
	sessions *auth.SessionManager
	pages    *cache.PageCache
}

func setupTestApp(t *testing.T) *testApp {
	db := setupTestDB(t)
	deps := Deps{
		Posts:    repositories.NewBadgerPostRepository(db),
		Comments: repositories.NewBadgerCommentRepository(db),
		Groups:   repositories.NewBadgerGroupRepository(db),
		Follows:  repositories.NewBadgerFollowRepository(db),
		Users:    repositories.NewBadgerUserRepository(db),
		Media:    repositories.NewBadgerMediaRepository(db),
	}
	pages, err := cache.NewPageCache(time.Minute)
	require.NoError(t, err)
	sessions := auth.NewSessionManager([]byte("test-secret"), deps.Users)
	return &testApp{
		router:   Setup(deps, pages, sessions),
		deps:     deps,
		sessions: sessions,
		pages:    pages,
	}
}

func (app *testApp) createUser(t *testing.T, username string) {
	user := &models.User{Username: username}
	require.NoError(t, user.SetPassword("secret-"+username))
	require.NoError(t, app.deps.Users.Create(user))
}

// sessionCookie returns a valid session cookie for username
func (app *testApp) sessionCookie(username string) *http.Cookie {
	w := httptest.NewRecorder()
	app.sessions.Login(w, username)
	return w.Result().Cookies()[0]
}

// get performs a GET as username; an empty username means anonymous
func (app *testApp) get(path, username string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if username != "" {
		req.AddCookie(app.sessionCookie(username))
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

// postForm performs a urlencoded POST as username
func (app *testApp) postForm(path, username string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if username != "" {
		req.AddCookie(app.sessionCookie(username))
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

// submitPost submits the post form as username, with an optional group and
// image, and returns the response
func (app *testApp) submitPost(t *testing.T, path, username, text string, groupID int, image []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("text", text))
	if groupID != 0 {
		require.NoError(t, form.WriteField("group", strconv.Itoa(groupID)))
	}
	if image != nil {
		part, err := form.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.AddCookie(app.sessionCookie(username))
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

// publish creates a post through the form and returns it
func (app *testApp) publish(t *testing.T, username, text string, groupID int, image []byte) *models.Post {
	w := app.submitPost(t, "/new/", username, text, groupID, image)
	require.Equal(t, http.StatusFound, w.Code)

	posts, err := app.deps.Posts.ListByAuthor(username)
	require.NoError(t, err)
	for _, post := range posts {
		if post.Text == text {
			return post
		}
	}
	t.Fatalf("post %q not stored", text)
	return nil
}

func pngBytes(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

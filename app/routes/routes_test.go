package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postcard/app/auth"
)

func TestSignupAndLogin(t *testing.T) {
	app := setupTestApp(t)

	t.Run("signup creates the account and logs in", func(t *testing.T) {
		w := app.postForm("/auth/signup/", "", url.Values{
			"username": {"sarah"},
			"password": {"sekrit"},
		})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.SessionCookie, cookies[0].Name)
	})

	t.Run("signup with a taken username redisplays the form", func(t *testing.T) {
		w := app.postForm("/auth/signup/", "", url.Values{
			"username": {"sarah"},
			"password": {"other"},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "taken")
	})

	t.Run("login with the right password sets a session", func(t *testing.T) {
		w := app.postForm("/auth/login/", "", url.Values{
			"username": {"sarah"},
			"password": {"sekrit"},
			"next":     {"/new/"},
		})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/new/", w.Header().Get("Location"))
	})

	t.Run("login with a wrong password redisplays the form", func(t *testing.T) {
		w := app.postForm("/auth/login/", "", url.Values{
			"username": {"sarah"},
			"password": {"nope"},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "wrong username or password")
	})

	t.Run("a foreign next target falls back to the home feed", func(t *testing.T) {
		w := app.postForm("/auth/login/", "", url.Values{
			"username": {"sarah"},
			"password": {"sekrit"},
			"next":     {"https://example.com/"},
		})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("logout clears the session", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/auth/logout/", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(app.sessionCookie("sarah"))
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusFound, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("the login form carries the next target", func(t *testing.T) {
		w := app.get("/auth/login/?next=/new/", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `value="/new/"`)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupTestApp(t)

	app.get("/", "")
	w := app.get("/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "postcard_http_requests_total")
}

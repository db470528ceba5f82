// Package auth provides the cookie session layer. Sessions are stateless:
// the cookie carries the username plus an HMAC signature, so no session
// storage is needed.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"postcard/app/models"
	"postcard/app/repositories"
)

const (
	// SessionCookie is the name of the session cookie
	SessionCookie = "postcard_session"
	// LoginPath is where unauthenticated requests to protected routes land
	LoginPath = "/auth/login/"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// SessionManager issues and verifies session cookies
type SessionManager struct {
	secret []byte
	users  repositories.UserRepository
}

// NewSessionManager creates a SessionManager signing cookies with secret
func NewSessionManager(secret []byte, users repositories.UserRepository) *SessionManager {
	return &SessionManager{secret: secret, users: users}
}

func (m *SessionManager) sign(username string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(username))
	return hex.EncodeToString(mac.Sum(nil))
}

// Authenticate checks a username/password pair against the user store
func (m *SessionManager) Authenticate(username, password string) (*models.User, error) {
	user, err := m.users.GetByUsername(username)
	if err == repositories.ErrNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login sets the session cookie for username on the response
func (m *SessionManager) Login(w http.ResponseWriter, username string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    username + ":" + m.sign(username),
		Path:     "/",
		HttpOnly: true,
	})
}

// Logout clears the session cookie
func (m *SessionManager) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// CurrentUser returns the authenticated username for the request, if any
func (m *SessionManager) CurrentUser(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	username, signature, found := strings.Cut(cookie.Value, ":")
	if !found || username == "" {
		return "", false
	}
	if !hmac.Equal([]byte(signature), []byte(m.sign(username))) {
		return "", false
	}
	return username, true
}

// RequireLogin wraps a handler, redirecting unauthenticated requests to the
// login page with the original path preserved in the next parameter.
func (m *SessionManager) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.CurrentUser(r); !ok {
			http.Redirect(w, r, LoginPath+"?next="+r.URL.Path, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

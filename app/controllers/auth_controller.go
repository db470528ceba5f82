package controllers

import (
	"html/template"
	"net/http"
	"strings"

	"postcard/app/auth"
	"postcard/app/models"
	"postcard/app/repositories"
)

// AuthController handles signup, login and logout
type AuthController struct {
	sessions  *auth.SessionManager
	userRepo  repositories.UserRepository
	templates map[string]*template.Template
}

// NewAuthController creates a new AuthController
func NewAuthController(sessions *auth.SessionManager, userRepo repositories.UserRepository, templates map[string]*template.Template) *AuthController {
	return &AuthController{
		sessions:  sessions,
		userRepo:  userRepo,
		templates: templates,
	}
}

type loginData struct {
	Viewer string
	Next   string
	Error  string
}

// nextPath returns a safe local redirect target from the next parameter,
// falling back to the home feed
func nextPath(raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return "/"
}

// Login serves the login form and starts a session on submit. A successful
// login returns to the page the viewer came from, via the next parameter.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, http.StatusOK, ac.templates["login"], loginData{Next: r.URL.Query().Get("next")})
		return
	}

	next := r.FormValue("next")
	username := r.FormValue("username")
	if _, err := ac.sessions.Authenticate(username, r.FormValue("password")); err != nil {
		render(w, http.StatusOK, ac.templates["login"], loginData{
			Next:  next,
			Error: "wrong username or password",
		})
		return
	}
	ac.sessions.Login(w, username)
	http.Redirect(w, r, nextPath(next), http.StatusFound)
}

// Logout ends the session and returns to the home feed
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.sessions.Logout(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

type signupData struct {
	Viewer string
	Error  string
}

// Signup serves the registration form and creates the account on submit,
// logging the new user straight in
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, http.StatusOK, ac.templates["signup"], signupData{})
		return
	}

	user := &models.User{Username: r.FormValue("username")}
	if err := user.SetPassword(r.FormValue("password")); err != nil {
		render(w, http.StatusOK, ac.templates["signup"], signupData{Error: "that password cannot be used"})
		return
	}
	if err := user.Validate(); err != nil {
		render(w, http.StatusOK, ac.templates["signup"], signupData{Error: "that username cannot be used"})
		return
	}
	err := ac.userRepo.Create(user)
	if err == repositories.ErrExists {
		render(w, http.StatusOK, ac.templates["signup"], signupData{Error: "that username is taken"})
		return
	}
	if err != nil {
		render(w, http.StatusOK, ac.templates["signup"], signupData{Error: "could not create the account"})
		return
	}
	ac.sessions.Login(w, user.Username)
	http.Redirect(w, r, "/", http.StatusFound)
}

package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"postcard/app/auth"
	"postcard/app/cache"
	"postcard/app/controllers"
	"postcard/app/metrics"
	"postcard/app/middleware"
	"postcard/app/repositories"
	"postcard/app/services"
	"postcard/app/views"
)

// Deps carries the storage interfaces the router is built on. Any backend
// that satisfies them plugs in here.
type Deps struct {
	Posts    repositories.PostRepository
	Comments repositories.CommentRepository
	Groups   repositories.GroupRepository
	Follows  repositories.FollowRepository
	Users    repositories.UserRepository
	Media    repositories.MediaRepository
}

// Setup defines the application's routes and returns a router
func Setup(deps Deps, pages *cache.PageCache, sessions *auth.SessionManager) *mux.Router {
	router := mux.NewRouter()

	templates := views.Load()

	feedService := services.NewFeedService(deps.Posts, deps.Groups, deps.Follows, deps.Users)
	postService := services.NewPostService(deps.Posts, deps.Groups, deps.Media)
	commentService := services.NewCommentService(deps.Comments, deps.Posts)
	followService := services.NewFollowService(deps.Follows, deps.Users)

	errorController := controllers.NewErrorController(templates, sessions)
	feedController := controllers.NewFeedController(feedService, followService, pages, sessions, templates, errorController)
	postController := controllers.NewPostController(postService, commentService, deps.Posts, deps.Media, sessions, templates, errorController)
	commentController := controllers.NewCommentController(commentService, sessions, templates, errorController)
	followController := controllers.NewFollowController(followService, sessions, errorController)
	authController := controllers.NewAuthController(sessions, deps.Users, templates)

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer(errorController.ServerError))
	router.Use(middleware.Metrics)

	router.NotFoundHandler = http.HandlerFunc(errorController.NotFound)

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// Feeds
	router.HandleFunc("/", feedController.Index).Methods("GET")
	router.HandleFunc("/group/{slug}/", feedController.GroupPosts).Methods("GET")
	router.Handle("/follow/", sessions.RequireLogin(http.HandlerFunc(feedController.FollowIndex))).Methods("GET")

	// Posts
	router.Handle("/new/", sessions.RequireLogin(http.HandlerFunc(postController.New))).Methods("GET", "POST")
	router.HandleFunc("/media/{id}", postController.ServeMedia).Methods("GET")

	// Accounts
	accounts := router.PathPrefix("/auth").Subrouter()
	accounts.HandleFunc("/login/", authController.Login).Methods("GET", "POST")
	accounts.HandleFunc("/logout/", authController.Logout).Methods("GET", "POST")
	accounts.HandleFunc("/signup/", authController.Signup).Methods("GET", "POST")

	// Author pages. These catch-alls go last so the fixed routes above win.
	router.HandleFunc("/{username}/", feedController.Profile).Methods("GET")
	router.Handle("/{username}/follow/", sessions.RequireLogin(http.HandlerFunc(followController.Follow))).Methods("GET", "POST")
	router.Handle("/{username}/unfollow/", sessions.RequireLogin(http.HandlerFunc(followController.Unfollow))).Methods("GET", "POST")
	router.HandleFunc("/{username}/{id:[0-9]+}/", postController.View).Methods("GET")
	router.Handle("/{username}/{id:[0-9]+}/", sessions.RequireLogin(http.HandlerFunc(commentController.Create))).Methods("POST")
	router.Handle("/{username}/{id:[0-9]+}/edit", sessions.RequireLogin(http.HandlerFunc(postController.Edit))).Methods("GET", "POST")
	router.Handle("/{username}/{id:[0-9]+}/comment/", sessions.RequireLogin(http.HandlerFunc(commentController.New))).Methods("GET", "POST")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}

package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parlor-dev/parlor/internal/middleware"
	"github.com/parlor-dev/parlor/internal/setup"
)

// New creates and configures a mux router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestId)
	r.Use(middleware.Metrics)

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	// setup CORS for frontend
	r.Use(handlers.CORS(
		handlers.AllowedOrigins(deps.Config.Public.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	))

	r.Use(middleware.SecurityHeaders(deps.Config.Public.SecureCookies))

	// Wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler
	needAuth := middleware.NeedAuth(deps.Jwt)

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Auth routes
	v1.HandleFunc("/auth/register", h.Register).Methods("POST")
	v1.HandleFunc("/auth/login", h.Login).Methods("POST")
	v1.HandleFunc("/auth/logout", needAuth(h.Logout)).Methods("POST")
	v1.HandleFunc("/users/me", needAuth(h.Me)).Methods("GET")
	v1.HandleFunc("/users/me", needAuth(h.DeleteMe)).Methods("DELETE")

	// Categories
	v1.HandleFunc("/categories", h.GetCategories).Methods("GET")
	v1.HandleFunc("/categories", needAuth(h.CreateCategory)).Methods("POST")
	v1.HandleFunc("/categories/{category}", h.GetCategory).Methods("GET")
	v1.HandleFunc("/categories/{category}", needAuth(h.UpdateCategory)).Methods("PUT")
	v1.HandleFunc("/categories/{category}", needAuth(h.DeleteCategory)).Methods("DELETE")
	v1.HandleFunc("/categories/{category}/boards", h.GetBoardsByCategory).Methods("GET")

	// Boards
	v1.HandleFunc("/boards", needAuth(h.CreateBoard)).Methods("POST")
	v1.HandleFunc("/boards/{board}", h.GetBoard).Methods("GET")
	v1.HandleFunc("/boards/{board}", needAuth(h.UpdateBoard)).Methods("PUT")
	v1.HandleFunc("/boards/{board}", needAuth(h.DeleteBoard)).Methods("DELETE")
	v1.HandleFunc("/boards/{board}/threads", h.GetThreadsByBoard).Methods("GET")

	// Threads
	v1.HandleFunc("/threads", needAuth(h.CreateThread)).Methods("POST")
	v1.HandleFunc("/threads/{thread}", h.GetThread).Methods("GET")
	v1.HandleFunc("/threads/{thread}", needAuth(h.UpdateThread)).Methods("PUT")
	v1.HandleFunc("/threads/{thread}", needAuth(h.DeleteThread)).Methods("DELETE")

	// Posts
	v1.HandleFunc("/posts", needAuth(h.CreatePost)).Methods("POST")
	v1.HandleFunc("/posts/{post}", h.GetPost).Methods("GET")
	v1.HandleFunc("/posts/{post}", needAuth(h.UpdatePost)).Methods("PUT")
	v1.HandleFunc("/posts/{post}", needAuth(h.DeletePost)).Methods("DELETE")

	return r
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/acebook-go/acebook-be/internal/api/handlers"
	"github.com/acebook-go/acebook-be/internal/auth"
	"github.com/acebook-go/acebook-be/internal/services"
	"github.com/acebook-go/acebook-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, tokens *auth.TokenService, userService services.UserServiceProvider, postService services.PostServiceProvider, uploadDir string, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	postHandler := handlers.NewPostHandler(postService, tokens, hub)
	uploadHandler := handlers.NewUploadHandler(uploadDir, tokens)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// Public endpoints: signup, login, live feed, uploaded images.
	r.Post("/users", userHandler.Signup)
	r.Post("/tokens", userHandler.Login)
	r.Get("/ws", wsHandler.Serve)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Everything below requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(tokens.Middleware())

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Post("/", postHandler.Create)
		})

		r.Post("/uploads", uploadHandler.Upload)
	})

	return r
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/acebook-go/acebook-be/internal/auth"
	"github.com/acebook-go/acebook-be/internal/models"
	"github.com/acebook-go/acebook-be/internal/services"
	ws "github.com/acebook-go/acebook-be/internal/websocket"
)

// PostHandler handles HTTP requests for the post feed.
type PostHandler struct {
	service services.PostServiceProvider
	tokens  *auth.TokenService
	hub     *ws.Hub
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider, tokens *auth.TokenService, hub *ws.Hub) *PostHandler {
	return &PostHandler{service: service, tokens: tokens, hub: hub}
}

// PostPayload defines the structure for post creation requests.
type PostPayload struct {
	Message   string `json:"message"`
	Image     string `json:"image"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Create persists a new post for the authenticated user and answers with
// the created post plus a renewed token.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user id from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload PostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.service.CreatePost(userID, payload.FirstName, payload.LastName, payload.Message, payload.Image)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			http.Error(w, validationErr.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create post")
		http.Error(w, "Failed to create post", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Issue(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to renew token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	if h.hub != nil {
		h.hub.Broadcast <- ws.NewPostCreatedMessage(post)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"post":  post,
		"token": token,
	})
}

// List returns posts plus a renewed token. By default it returns every
// post in insertion order; with ?profile=true it returns only the
// authenticated caller's posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user id from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var posts []models.Post
	var err error
	if r.URL.Query().Get("profile") == "true" {
		posts, err = h.service.GetPostsByUser(userID)
	} else {
		posts, err = h.service.GetAllPosts()
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list posts")
		http.Error(w, "Failed to list posts", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Issue(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to renew token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"posts": posts,
		"token": token,
	})
}

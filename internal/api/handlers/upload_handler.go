package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/acebook-go/acebook-be/internal/auth"
)

// maxUploadBytes caps the size of a single image upload.
const maxUploadBytes = 10 << 20 // 10 MiB

// UploadHandler handles image uploads for posts.
type UploadHandler struct {
	uploadDir string
	tokens    *auth.TokenService
}

// NewUploadHandler creates a new UploadHandler saving files under uploadDir.
func NewUploadHandler(uploadDir string, tokens *auth.TokenService) *UploadHandler {
	return &UploadHandler{uploadDir: uploadDir, tokens: tokens}
}

// Upload stores a multipart "image" file under a uuid-prefixed name and
// returns the public path plus a renewed token. The client attaches the
// path to a subsequent post.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user id from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// uuid prefix keeps uploads from clobbering each other while the
	// original name stays visible in the path.
	name := uuid.New().String() + filepath.Base(header.Filename)
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create upload file")
		http.Error(w, "Failed to store image", http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to write upload file")
		http.Error(w, "Failed to store image", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Issue(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to renew token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"image": "/uploads/" + name,
		"token": token,
	})
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acebook-go/acebook-be/internal/api"
	"github.com/acebook-go/acebook-be/internal/auth"
	ws "github.com/acebook-go/acebook-be/internal/websocket"
)

func TestUpload(t *testing.T) {
	uploadDir := t.TempDir()
	tokens := auth.NewTokenService(testSecret)
	hub := ws.NewHub()
	go hub.Run()
	router := api.NewRouter(hub, tokens, &mockUserService{}, &mockPostService{}, uploadDir, []string{"http://localhost:3000"})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "smiley.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+backdatedToken(t, tokens, "user-1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, strings.HasPrefix(resp["image"], "/uploads/"))
	assert.True(t, strings.HasSuffix(resp["image"], "smiley.png"))
	assert.NotEmpty(t, resp["token"])

	// The file landed in the upload directory under the returned name.
	name := strings.TrimPrefix(resp["image"], "/uploads/")
	data, err := os.ReadFile(filepath.Join(uploadDir, name))
	require.NoError(t, err)
	assert.Equal(t, "not-really-a-png", string(data))
}

func TestUpload_WithoutToken(t *testing.T) {
	router, _, _ := newTestRouter(t, &mockPostService{})

	req := httptest.NewRequest(http.MethodPost, "/uploads", bytes.NewBufferString("ignored"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpload_MissingFile(t *testing.T) {
	router, tokens, _ := newTestRouter(t, &mockPostService{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+backdatedToken(t, tokens, "user-1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

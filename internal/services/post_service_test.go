package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acebook-go/acebook-be/internal/database"
	"github.com/acebook-go/acebook-be/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPostService_CreateAndListAll(t *testing.T) {
	svc := NewPostService(newTestDB(t))

	first, err := svc.CreatePost("user-a", "test", "test", "I love all my children equally", "")
	require.NoError(t, err)
	_, err = svc.CreatePost("user-a", "test", "test", "I've never cared for GOB", "")
	require.NoError(t, err)
	_, err = svc.CreatePost("user-b", "test", "test", "howdy!", "/uploads/smiley.png")
	require.NoError(t, err)

	posts, err := svc.GetAllPosts()
	require.NoError(t, err)
	require.Len(t, posts, 3)

	// Insertion order, not store-incidental order.
	assert.Equal(t, "I love all my children equally", posts[0].Message)
	assert.Equal(t, "I've never cared for GOB", posts[1].Message)
	assert.Equal(t, "howdy!", posts[2].Message)

	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, "/uploads/smiley.png", posts[2].Image)
	assert.Empty(t, posts[0].Image)
}

func TestPostService_GetPostsByUser(t *testing.T) {
	svc := NewPostService(newTestDB(t))

	_, err := svc.CreatePost("user-a", "", "", "mine", "")
	require.NoError(t, err)
	_, err = svc.CreatePost("user-b", "", "", "someone else's", "")
	require.NoError(t, err)
	_, err = svc.CreatePost("user-a", "", "", "also mine", "")
	require.NoError(t, err)

	posts, err := svc.GetPostsByUser("user-a")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "mine", posts[0].Message)
	assert.Equal(t, "also mine", posts[1].Message)
}

func TestPostService_RejectsEmptyMessage(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)

	_, err := svc.CreatePost("user-a", "", "", "", "")
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)

	// Nothing reached the store.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count))
	assert.Zero(t, count)
}

func TestPostService_EmptyStore(t *testing.T) {
	svc := NewPostService(newTestDB(t))

	posts, err := svc.GetAllPosts()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

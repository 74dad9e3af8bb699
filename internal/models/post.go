package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Post represents a message published to the feed. The author's name is
// denormalized onto the record so the feed renders without a join back to
// the users table; UserID is a weak reference used for profile filtering.
type Post struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Message   string `json:"message"`
	Image     string `json:"image,omitempty"`
	DateTime  int64  `json:"dateTime"` // epoch milliseconds
}

// ValidationError reports a missing required field on a record under
// construction.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// NewPost builds a Post, assigning its id and creation time. UserID and
// Message are required; a post without them never reaches the store.
func NewPost(userID, firstName, lastName, message, image string) (Post, error) {
	if userID == "" {
		return Post{}, &ValidationError{Field: "userId"}
	}
	if message == "" {
		return Post{}, &ValidationError{Field: "message"}
	}
	return Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Message:   message,
		Image:     image,
		DateTime:  time.Now().UnixMilli(),
	}, nil
}

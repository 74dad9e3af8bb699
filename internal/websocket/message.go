package websocket

import (
	"encoding/json"

	"github.com/acebook-go/acebook-be/internal/models"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewPostCreatedMessage encodes a freshly created post for broadcast.
func NewPostCreatedMessage(post models.Post) []byte {
	data, _ := json.Marshal(Message{Action: "post_created", Payload: post})
	return data
}

package services

import (
	"database/sql"

	"github.com/acebook-go/acebook-be/internal/models"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	CreatePost(userID, firstName, lastName, message, image string) (models.Post, error)
	GetAllPosts() ([]models.Post, error)
	GetPostsByUser(userID string) ([]models.Post, error)
}

// PostService provides business logic for the post feed.
type PostService struct {
	db *sql.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

// CreatePost validates and persists a new post. Validation happens before
// the insert, so an invalid post never touches the store.
func (s *PostService) CreatePost(userID, firstName, lastName, message, image string) (models.Post, error) {
	post, err := models.NewPost(userID, firstName, lastName, message, image)
	if err != nil {
		return models.Post{}, err
	}

	stmt, err := s.db.Prepare("INSERT INTO posts(id, user_id, first_name, last_name, message, image, date_time) VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Post{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(post.ID, post.UserID, post.FirstName, post.LastName, post.Message, post.Image, post.DateTime)
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// GetAllPosts returns every post in insertion order.
func (s *PostService) GetAllPosts() ([]models.Post, error) {
	rows, err := s.db.Query("SELECT id, user_id, first_name, last_name, message, image, date_time FROM posts ORDER BY seq ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// GetPostsByUser returns the given user's posts in insertion order.
func (s *PostService) GetPostsByUser(userID string) ([]models.Post, error) {
	rows, err := s.db.Query("SELECT id, user_id, first_name, last_name, message, image, date_time FROM posts WHERE user_id = ? ORDER BY seq ASC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		var firstName, lastName, image sql.NullString
		if err := rows.Scan(&post.ID, &post.UserID, &firstName, &lastName, &post.Message, &image, &post.DateTime); err != nil {
			return nil, err
		}
		post.FirstName = firstName.String
		post.LastName = lastName.String
		post.Image = image.String
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

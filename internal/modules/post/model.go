package post

import (
	"time"

	"github.com/google/uuid"
)

// Post is an item in the social feed.
type Post struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url,omitempty"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is a reply on a post.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest is the payload for publishing a post.
type CreatePostRequest struct {
	Body     string `json:"body"`
	ImageURL string `json:"image_url,omitempty"`
}

// CreateCommentRequest is the payload for commenting on a post.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// LikeResponse is returned by the like toggle endpoint.
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

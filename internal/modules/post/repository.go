package post

import "context"

// Repository defines data access for posts, comments, and likes.
type Repository interface {
	// CreatePost persists a new post.
	CreatePost(ctx context.Context, p *Post) error

	// GetPostByID retrieves a post with its like count.
	GetPostByID(ctx context.Context, id string) (*Post, error)

	// ListRecent returns the newest posts, up to limit.
	ListRecent(ctx context.Context, limit int) ([]*Post, error)

	// DeletePost removes a post and its comments/likes.
	DeletePost(ctx context.Context, id string) error

	// CreateComment persists a comment on a post.
	CreateComment(ctx context.Context, c *Comment) error

	// ListComments returns a post's comments, oldest first.
	ListComments(ctx context.Context, postID string) ([]*Comment, error)

	// ToggleLike adds or removes userID's like. Returns the new liked state
	// and the post's like count.
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, count int, err error)
}

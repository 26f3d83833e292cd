package post

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/sokoline/sokoline-backend/internal/apperr"
)

// feedLimit caps the recent-feed page size.
const feedLimit = 50

// Service defines social feed business logic.
type Service interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	ListRecent(ctx context.Context) ([]*Post, error)
	DeletePost(ctx context.Context, callerID uuid.UUID, id string) error
	AddComment(ctx context.Context, authorID uuid.UUID, postID string, req CreateCommentRequest) (*Comment, error)
	ListComments(ctx context.Context, postID string) ([]*Comment, error)
	ToggleLike(ctx context.Context, callerID uuid.UUID, postID string) (*LikeResponse, error)
}

type service struct {
	repo Repository
}

// NewService creates a new post service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreatePost(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*Post, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalid, "body is required")
	}

	p := &Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	}
	if err := s.repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetPost(ctx context.Context, id string) (*Post, error) {
	p, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.Wrap(apperr.ErrNotFound, "post %s not found", id)
		}
		return nil, err
	}
	return p, nil
}

func (s *service) ListRecent(ctx context.Context) ([]*Post, error) {
	return s.repo.ListRecent(ctx, feedLimit)
}

func (s *service) DeletePost(ctx context.Context, callerID uuid.UUID, id string) error {
	p, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != callerID {
		return apperr.Wrap(apperr.ErrForbidden, "only the author may delete a post")
	}
	return s.repo.DeletePost(ctx, id)
}

func (s *service) AddComment(ctx context.Context, authorID uuid.UUID, postID string, req CreateCommentRequest) (*Comment, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalid, "body is required")
	}

	p, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	c := &Comment{
		ID:       uuid.New(),
		PostID:   p.ID,
		AuthorID: authorID,
		Body:     req.Body,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListComments(ctx context.Context, postID string) ([]*Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, postID)
}

func (s *service) ToggleLike(ctx context.Context, callerID uuid.UUID, postID string) (*LikeResponse, error) {
	p, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, count, err := s.repo.ToggleLike(ctx, p.ID.String(), callerID.String())
	if err != nil {
		return nil, err
	}
	return &LikeResponse{Liked: liked, LikeCount: count}, nil
}

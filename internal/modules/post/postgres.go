package post

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL post repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const postColumns = `p.id, p.author_id, p.body, p.image_url,
       (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count,
       p.created_at, p.updated_at`

func (r *postgresRepo) CreatePost(ctx context.Context, p *Post) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (id, author_id, body, image_url)
		VALUES ($1,$2,$3,$4)`,
		p.ID, p.AuthorID, p.Body, p.ImageURL)
	return err
}

func (r *postgresRepo) GetPostByID(ctx context.Context, id string) (*Post, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	return scanPost(r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts p WHERE p.id=$1`, uid))
}

func (r *postgresRepo) ListRecent(ctx context.Context, limit int) ([]*Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts p ORDER BY p.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postgresRepo) DeletePost(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id)
	return err
}

func (r *postgresRepo) CreateComment(ctx context.Context, c *Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO post_comments (id, post_id, author_id, body)
		VALUES ($1,$2,$3,$4)`,
		c.ID, c.PostID, c.AuthorID, c.Body)
	return err
}

func (r *postgresRepo) ListComments(ctx context.Context, postID string) ([]*Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, post_id, author_id, body, created_at
		FROM post_comments WHERE post_id=$1 ORDER BY created_at ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *postgresRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id=$1 AND user_id=$2`, postID, userID)
	if err != nil {
		return false, 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}

	liked := false
	if deleted == 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_likes (post_id, user_id) VALUES ($1,$2)`, postID, userID)
		if err != nil {
			return false, 0, err
		}
		liked = true
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM post_likes WHERE post_id=$1`, postID).Scan(&count)
	if err != nil {
		return false, 0, err
	}

	return liked, count, tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*Post, error) {
	p := &Post{}
	err := row.Scan(&p.ID, &p.AuthorID, &p.Body, &p.ImageURL, &p.LikeCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

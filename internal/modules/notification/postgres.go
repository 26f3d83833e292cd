package notification

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL notification repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, n *Notification) error {
	var refID interface{}
	if n.ReferenceID != nil {
		refID = *n.ReferenceID
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, type, body, reference_id, read)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		n.ID, n.UserID, n.Type, n.Body, refID, n.Read)
	return err
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]*Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, type, body, reference_id, read, created_at
		FROM notifications WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		n := &Notification{}
		var refID sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Body, &refID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		if refID.Valid {
			uid, err := uuid.Parse(refID.String)
			if err == nil {
				n.ReferenceID = &uid
			}
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *postgresRepo) MarkRead(ctx context.Context, id string, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read=TRUE WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

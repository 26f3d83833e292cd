package payout

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL payout repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const payoutColumns = `id, order_id, seller_id, amount, currency, status,
       payout_reference, notes, processed_at, created_at, updated_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Payout, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	return scanPayout(r.db.QueryRowContext(ctx,
		`SELECT `+payoutColumns+` FROM seller_payouts WHERE id=$1`, uid))
}

func (r *postgresRepo) ListBySeller(ctx context.Context, sellerID string) ([]*Payout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+payoutColumns+` FROM seller_payouts WHERE seller_id=$1 ORDER BY created_at DESC`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []*Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}
	return payouts, rows.Err()
}

func (r *postgresRepo) MarkProcessed(ctx context.Context, id string, reference, notes string) (bool, error) {
	now := time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE seller_payouts
		SET status=$1, payout_reference=$2, notes=$3, processed_at=$4, updated_at=$4
		WHERE id=$5 AND status=$6`,
		StatusProcessed, reference, notes, now, id, StatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayout(row rowScanner) (*Payout, error) {
	p := &Payout{}
	var reference, notes sql.NullString
	var processedAt sql.NullTime
	err := row.Scan(
		&p.ID, &p.OrderID, &p.SellerID, &p.Amount, &p.Currency, &p.Status,
		&reference, &notes, &processedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.PayoutReference = reference.String
	p.Notes = notes.String
	if processedAt.Valid {
		p.ProcessedAt = &processedAt.Time
	}
	return p, nil
}

package payment

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL payment repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListByOrder(ctx context.Context, orderID string) ([]*Transaction, error) {
	uid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, sql.ErrNoRows
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, provider, reference, amount, currency, verified_at, created_at
		FROM payment_transactions WHERE order_id=$1 ORDER BY created_at ASC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *postgresRepo) GetByReference(ctx context.Context, reference string) (*Transaction, error) {
	return scanTransaction(r.db.QueryRowContext(ctx, `
		SELECT id, order_id, provider, reference, amount, currency, verified_at, created_at
		FROM payment_transactions WHERE reference=$1`, reference))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*Transaction, error) {
	t := &Transaction{}
	var orderID sql.NullString
	err := row.Scan(&t.ID, &orderID, &t.Provider, &t.Reference, &t.Amount, &t.Currency, &t.VerifiedAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if orderID.Valid {
		uid, err := uuid.Parse(orderID.String)
		if err == nil {
			t.OrderID = &uid
		}
	}
	return t, nil
}

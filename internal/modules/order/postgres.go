package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id, buyer_id, seller_id, product_id, quantity, unit_price, total_price,
       currency, status, payment_status, payment_method, payment_reference,
       delivery_status, shipping_address, created_at, updated_at`

// CreateFromCheckout inserts the order, records the payment transaction, and
// decrements product stock, all in one transaction. Stock is floored at zero.
func (r *postgresRepo) CreateFromCheckout(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, buyer_id, seller_id, product_id, quantity, unit_price, total_price,
		   currency, status, payment_status, payment_method, payment_reference,
		   delivery_status, shipping_address)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		o.ID, o.BuyerID, o.SellerID, o.ProductID, o.Quantity, o.UnitPrice, o.TotalPrice,
		o.Currency, o.Status, o.PaymentStatus, o.PaymentMethod, o.PaymentReference,
		o.DeliveryStatus, o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO payment_transactions (id, order_id, provider, reference, amount, currency, verified_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		uuid.New(), o.ID, o.PaymentMethod, o.PaymentReference, o.TotalPrice, o.Currency, time.Now())
	if err != nil {
		return fmt.Errorf("insert payment transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE products
		SET stock_quantity = GREATEST(stock_quantity - $1, 0),
		    is_available   = (GREATEST(stock_quantity - $1, 0) > 0),
		    updated_at     = $2
		WHERE id = $3`,
		o.Quantity, time.Now(), o.ProductID)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	return scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, uid))
}

func (r *postgresRepo) GetOrderByPaymentReference(ctx context.Context, reference string) (*Order, error) {
	return scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE payment_reference=$1`, reference))
}

func (r *postgresRepo) UpdateStatusIf(ctx context.Context, id string, expected, next Status, delivery DeliveryStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status=$1, delivery_status=$2, updated_at=$3
		WHERE id=$4 AND status=$5`,
		next, delivery, time.Now(), id, expected)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ConfirmDelivery sets delivery_status=delivered and creates the seller's
// pending payout. The payouts table has a unique constraint on order_id; a
// conflict means delivery was already confirmed.
func (r *postgresRepo) ConfirmDelivery(ctx context.Context, o *Order) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO seller_payouts (id, order_id, seller_id, amount, currency, status)
		VALUES ($1,$2,$3,$4,$5,'pending')
		ON CONFLICT (order_id) DO NOTHING`,
		uuid.New(), o.ID, o.SellerID, o.TotalPrice, o.Currency)
	if err != nil {
		return false, fmt.Errorf("insert payout: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET delivery_status=$1, updated_at=$2 WHERE id=$3`,
		DeliveryDelivered, time.Now(), o.ID)
	if err != nil {
		return false, fmt.Errorf("update delivery status: %w", err)
	}

	return true, tx.Commit()
}

func (r *postgresRepo) ListByBuyer(ctx context.Context, buyerID string) ([]*Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE buyer_id=$1 ORDER BY created_at DESC`, buyerID)
}

func (r *postgresRepo) ListBySeller(ctx context.Context, sellerID string) ([]*Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE seller_id=$1 ORDER BY created_at DESC`, sellerID)
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	err := row.Scan(
		&o.ID, &o.BuyerID, &o.SellerID, &o.ProductID, &o.Quantity, &o.UnitPrice, &o.TotalPrice,
		&o.Currency, &o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.PaymentReference,
		&o.DeliveryStatus, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

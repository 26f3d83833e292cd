package product

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, seller_id, name, description, price, currency, stock_quantity, is_available, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.SellerID, p.Name, p.Description, p.Price, p.Currency,
		p.StockQuantity, p.IsAvailable, p.ImageURL)
	return err
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	p := &Product{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, seller_id, name, description, price, currency, stock_quantity, is_available, image_url, created_at, updated_at
		FROM products WHERE id=$1`, uid).Scan(
		&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Currency,
		&p.StockQuantity, &p.IsAvailable, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context, sellerID string) ([]*Product, error) {
	query := `SELECT id, seller_id, name, description, price, currency, stock_quantity, is_available, image_url, created_at, updated_at
	          FROM products`
	args := []interface{}{}
	if sellerID != "" {
		query += ` WHERE seller_id=$1`
		args = append(args, sellerID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(
			&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Currency,
			&p.StockQuantity, &p.IsAvailable, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) SetStock(ctx context.Context, id string, qty int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock_quantity=$1, is_available=($1 > 0), updated_at=$2 WHERE id=$3`,
		qty, time.Now(), id)
	return err
}

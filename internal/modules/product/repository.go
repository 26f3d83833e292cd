package product

import "context"

// Repository defines data access for marketplace products.
type Repository interface {
	// CreateProduct persists a new listing.
	CreateProduct(ctx context.Context, p *Product) error

	// GetProductByID retrieves a listing by UUID.
	GetProductByID(ctx context.Context, id string) (*Product, error)

	// ListProducts returns listings, optionally filtered by seller.
	ListProducts(ctx context.Context, sellerID string) ([]*Product, error)

	// SetStock sets an absolute stock level. Negative values are rejected
	// upstream; the column has a CHECK (stock_quantity >= 0).
	SetStock(ctx context.Context, id string, qty int) error
}

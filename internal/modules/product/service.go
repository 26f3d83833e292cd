package product

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/sokoline/sokoline-backend/internal/apperr"
)

// Service defines marketplace listing business logic.
type Service interface {
	// CreateProduct lists a new product owned by sellerID.
	CreateProduct(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*Product, error)

	// GetProduct retrieves a listing by UUID.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// ListProducts returns listings, optionally filtered by seller.
	ListProducts(ctx context.Context, sellerID string) ([]*Product, error)

	// UpdateStock sets a product's stock level. Only the seller may call it.
	UpdateStock(ctx context.Context, callerID uuid.UUID, productID string, qty int) error
}

type service struct {
	repo Repository
}

// NewService creates a new product service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProduct(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalid, "name is required")
	}
	if req.Price <= 0 {
		return nil, apperr.Wrap(apperr.ErrInvalid, "price must be greater than 0")
	}
	if req.StockQuantity < 0 {
		return nil, apperr.Wrap(apperr.ErrInvalid, "stock_quantity must not be negative")
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "NGN"
	}

	p := &Product{
		ID:            uuid.New(),
		SellerID:      sellerID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Currency:      currency,
		StockQuantity: req.StockQuantity,
		IsAvailable:   req.StockQuantity > 0,
		ImageURL:      req.ImageURL,
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.Wrap(apperr.ErrNotFound, "product %s not found", id)
		}
		return nil, err
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, sellerID string) ([]*Product, error) {
	return s.repo.ListProducts(ctx, sellerID)
}

func (s *service) UpdateStock(ctx context.Context, callerID uuid.UUID, productID string, qty int) error {
	if qty < 0 {
		return apperr.Wrap(apperr.ErrInvalid, "quantity must not be negative")
	}

	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if p.SellerID != callerID {
		return apperr.Wrap(apperr.ErrForbidden, "only the seller may update stock")
	}

	return s.repo.SetStock(ctx, productID, qty)
}

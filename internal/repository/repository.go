package repository

import (
	"context"
	"errors"

	"github.com/flamesco/shopfront/internal/domain"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidID       = errors.New("invalid identifier")

	// ErrWriteConflict is returned when a versioned cart write lost the race
	// against a concurrent mutation of the same cart document.
	ErrWriteConflict = errors.New("cart write conflict")
)

// CatalogRepository reads products and categories. The catalog is never
// written by the cart or checkout engines.
type CatalogRepository interface {
	ListProducts(ctx context.Context, category, search string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CartRepository defines the interface for cart data operations
// Consumers define this interface, not the MongoDB implementation
type CartRepository interface {
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	InsertCart(ctx context.Context, cart *domain.Cart) error
	// ReplaceItems writes the whole line sequence, guarded by the version the
	// caller read. A stale version yields ErrWriteConflict.
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem, expectedVersion int64) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
}

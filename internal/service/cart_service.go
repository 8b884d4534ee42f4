package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/flamesco/shopfront/internal/cache"
	"github.com/flamesco/shopfront/internal/domain"
	"github.com/flamesco/shopfront/internal/repository"
	"golang.org/x/sync/singleflight"
)

// maxWriteAttempts bounds the retry loop around versioned cart writes.
const maxWriteAttempts = 3

type CartService struct {
	repo    repository.CartRepository
	catalog repository.CatalogRepository
	cache   cache.CartCache    // optional, may be nil
	sfg     singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, catalog repository.CatalogRepository, cache cache.CartCache) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
		cache:   cache,
	}
}

// GetCart returns the cart for the given id, creating an empty one if it does
// not exist yet. Cart ids are opaque strings supplied by the caller.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(cartID, func() (interface{}, error) {

		if s.cache != nil {
			cart, err := s.cache.Get(ctx, cartID)
			if err == nil {
				return cart, nil // cart is in cache
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				log.Printf("cache get error: %v \n", err) // log cache error but continue
			}
		}

		cart, errGet := s.repo.GetCart(ctx, cartID)
		if errors.Is(errGet, repository.ErrCartNotFound) {
			fresh := &domain.Cart{CartID: cartID}
			errIns := s.repo.InsertCart(ctx, fresh)
			if errIns != nil && !errors.Is(errIns, repository.ErrWriteConflict) {
				return nil, errIns
			}
			// Re-read: covers both our insert and a concurrent one that won.
			return s.repo.GetCart(ctx, cartID)
		}
		if errGet != nil {
			return nil, errGet
		}

		if s.cache != nil {
			go func() {
				if errSet := s.cache.Set(context.Background(), cartID, cart); errSet != nil {
					log.Printf("cache set error: %v \n", errSet)
				}
			}()
		}

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// LoadCart reads an existing cart without the implicit create of GetCart.
func (s *CartService) LoadCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.repo.GetCart(ctx, cartID)
}

// AddItem merges the requested product+size into the cart, incrementing the
// quantity of an existing line or appending a new one with price/title/image
// snapshots taken from the product's current state. The cart is created if
// it does not exist yet.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, size domain.Size, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	// Canonical hex form, so merge matching never depends on caller casing.
	canonicalID := product.ID.Hex()

	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		cart, errGet := s.repo.GetCart(ctx, cartID)
		if errors.Is(errGet, repository.ErrCartNotFound) {
			fresh := &domain.Cart{
				CartID: cartID,
				Items:  []domain.CartItem{newLineItem(product, canonicalID, size, quantity)},
			}
			errIns := s.repo.InsertCart(ctx, fresh)
			if errors.Is(errIns, repository.ErrWriteConflict) {
				lastErr = errIns
				continue
			}
			if errIns != nil {
				return nil, errIns
			}
			s.invalidateCache(cartID)
			return s.repo.GetCart(ctx, cartID)
		}
		if errGet != nil {
			return nil, errGet
		}

		items := make([]domain.CartItem, len(cart.Items))
		copy(items, cart.Items)
		if idx := cart.FindItem(canonicalID, size); idx >= 0 {
			items[idx].Quantity += quantity
		} else {
			items = append(items, newLineItem(product, canonicalID, size, quantity))
		}

		errWrite := s.repo.ReplaceItems(ctx, cartID, items, cart.Version)
		if errors.Is(errWrite, repository.ErrWriteConflict) {
			lastErr = errWrite
			continue
		}
		if errWrite != nil {
			return nil, errWrite
		}

		s.invalidateCache(cartID)
		return s.repo.GetCart(ctx, cartID)
	}

	return nil, fmt.Errorf("add item gave up after %d attempts: %w", maxWriteAttempts, lastErr)
}

// UpdateItem sets the matching line's quantity to an absolute value.
// Quantity zero drops the line; there is no separate delete state.
// Unlike AddItem the cart must already exist.
func (s *CartService) UpdateItem(ctx context.Context, cartID, productID string, size domain.Size, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		cart, errGet := s.repo.GetCart(ctx, cartID)
		if errGet != nil {
			return nil, errGet
		}

		items := make([]domain.CartItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			if item.Matches(productID, size) {
				if quantity == 0 {
					continue
				}
				item.Quantity = quantity
			}
			items = append(items, item)
		}

		errWrite := s.repo.ReplaceItems(ctx, cartID, items, cart.Version)
		if errors.Is(errWrite, repository.ErrWriteConflict) {
			lastErr = errWrite
			continue
		}
		if errWrite != nil {
			return nil, errWrite
		}

		s.invalidateCache(cartID)
		return s.repo.GetCart(ctx, cartID)
	}

	return nil, fmt.Errorf("update item gave up after %d attempts: %w", maxWriteAttempts, lastErr)
}

// RemoveItem filters out the matching line. Removing a line that is not in
// the cart is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string, size domain.Size) (*domain.Cart, error) {
	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		cart, errGet := s.repo.GetCart(ctx, cartID)
		if errGet != nil {
			return nil, errGet
		}

		items := make([]domain.CartItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			if item.Matches(productID, size) {
				continue
			}
			items = append(items, item)
		}

		errWrite := s.repo.ReplaceItems(ctx, cartID, items, cart.Version)
		if errors.Is(errWrite, repository.ErrWriteConflict) {
			lastErr = errWrite
			continue
		}
		if errWrite != nil {
			return nil, errWrite
		}

		s.invalidateCache(cartID)
		return s.repo.GetCart(ctx, cartID)
	}

	return nil, fmt.Errorf("remove item gave up after %d attempts: %w", maxWriteAttempts, lastErr)
}

// ResetCart empties the line sequence while keeping the cart id reusable.
func (s *CartService) ResetCart(ctx context.Context, cartID string) error {
	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		cart, errGet := s.repo.GetCart(ctx, cartID)
		if errGet != nil {
			return errGet
		}

		errWrite := s.repo.ReplaceItems(ctx, cartID, nil, cart.Version)
		if errors.Is(errWrite, repository.ErrWriteConflict) {
			lastErr = errWrite
			continue
		}
		if errWrite != nil {
			return errWrite
		}

		s.invalidateCache(cartID)
		return nil
	}

	return fmt.Errorf("reset cart gave up after %d attempts: %w", maxWriteAttempts, lastErr)
}

func newLineItem(product *domain.Product, productID string, size domain.Size, quantity int) domain.CartItem {
	return domain.CartItem{
		ProductID:     productID,
		Size:          size,
		Quantity:      quantity,
		PriceSnapshot: product.Price,
		TitleSnapshot: product.Title,
		ImageSnapshot: product.FirstImage(),
	}
}

func (s *CartService) invalidateCache(cartID string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, cartID); err != nil {
		log.Printf("cache invalidate error: %v \n", err)
	}
}

package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/flamesco/shopfront/internal/domain"
	"github.com/flamesco/shopfront/internal/events"
	"github.com/flamesco/shopfront/internal/repository"
	"github.com/shopspring/decimal"
)

// CartEngine is the slice of the cart service checkout needs: a read that
// does not implicitly create, and the post-order reset.
type CartEngine interface {
	LoadCart(ctx context.Context, cartID string) (*domain.Cart, error)
	ResetCart(ctx context.Context, cartID string) error
}

type CheckoutService struct {
	carts  CartEngine
	orders repository.OrderRepository
	pub    events.OrderPublisher
}

func NewCheckoutService(carts CartEngine, orders repository.OrderRepository, pub events.OrderPublisher) *CheckoutService {
	return &CheckoutService{
		carts:  carts,
		orders: orders,
		pub:    pub,
	}
}

// Checkout snapshots the cart into an immutable order and empties the cart.
// A missing cart and an empty cart are the same error. The order is written
// first: it is the source of truth, so a failed reset never voids a placed
// order, it only leaves the cart to be emptied by the next checkout attempt.
func (s *CheckoutService) Checkout(ctx context.Context, cartID string, customer domain.CustomerInfo) (*domain.OrderReceipt, error) {
	cart, err := s.carts.LoadCart(ctx, cartID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		CartID:    cartID,
		Items:     append([]domain.CartItem(nil), cart.Items...),
		Total:     orderTotal(cart.Items),
		Customer:  customer,
		Status:    domain.OrderStatusReceived,
		CreatedAt: time.Now(),
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.carts.ResetCart(ctx, cartID); err != nil {
		log.Printf("failed to reset cart %s after order %s: %v", cartID, order.ID.Hex(), err)
	}

	if err := s.pub.PublishOrderReceived(ctx, order); err != nil {
		log.Printf("failed to publish event for order %s: %v", order.ID.Hex(), err)
	}

	return &domain.OrderReceipt{
		OrderID: order.ID.Hex(),
		Status:  order.Status,
		Total:   order.Total,
	}, nil
}

// orderTotal sums price snapshot times quantity over all lines, rounded to
// 2 fraction digits with half-up tie breaking.
func orderTotal(items []domain.CartItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.PriceSnapshot).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2).InexactFloat64()
}

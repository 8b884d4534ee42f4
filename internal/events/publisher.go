package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flamesco/shopfront/internal/domain"
	"github.com/segmentio/kafka-go"
)

// OrderPublisher announces newly placed orders to downstream consumers
// (warehouse, notifications). Publishing is best-effort: checkout never
// fails because the broker is down.
type OrderPublisher interface {
	PublishOrderReceived(ctx context.Context, order *domain.Order) error
	Close() error
}

type orderReceivedEvent struct {
	OrderID   string    `json:"order_id"`
	CartID    string    `json:"cart_id"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishOrderReceived(ctx context.Context, order *domain.Order) error {
	event := orderReceivedEvent{
		OrderID:   order.ID.Hex(),
		CartID:    order.CartID,
		Total:     order.Total,
		Status:    order.Status.String(),
		ItemCount: len(order.Items),
		CreatedAt: order.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderReceived(context.Context, *domain.Order) error { return nil }

func (NoopPublisher) Close() error { return nil }

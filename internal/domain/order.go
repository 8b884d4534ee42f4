package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "received"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

type CustomerInfo struct {
	Name       string `bson:"name" json:"name"`
	Email      string `bson:"email" json:"email"`
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	Country    string `bson:"country" json:"country"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
}

// Order owns its own copy of the line items as they existed at checkout time.
// Later cart mutations cannot affect a placed order.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CartID    string             `bson:"cart_id" json:"cart_id"`
	Items     []CartItem         `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	Customer  CustomerInfo       `bson:"customer" json:"customer"`
	Status    OrderStatus        `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// OrderReceipt is what checkout hands back to the caller.
type OrderReceipt struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
	Total   float64     `json:"total"`
}

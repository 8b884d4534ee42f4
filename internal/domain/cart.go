package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line of a cart. Price, title and image are snapshots taken
// from the product at add time and never refreshed by later catalog edits.
type CartItem struct {
	ProductID     string  `bson:"product_id" json:"product_id"`
	Size          Size    `bson:"size" json:"size"`
	Quantity      int     `bson:"quantity" json:"quantity"`
	PriceSnapshot float64 `bson:"price_snapshot" json:"price_snapshot"`
	TitleSnapshot string  `bson:"title_snapshot,omitempty" json:"title_snapshot,omitempty"`
	ImageSnapshot string  `bson:"image_snapshot,omitempty" json:"image_snapshot,omitempty"`
}

// Matches reports whether the line is keyed by the given product+size pair.
// A cart holds at most one line per pair.
func (i CartItem) Matches(productID string, size Size) bool {
	return i.ProductID == productID && i.Size == size
}

// Cart is keyed by a caller-supplied opaque cart id. Version backs optimistic
// concurrency on writes; it is never exposed to clients.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	CartID    string             `bson:"cart_id" json:"cart_id"`
	Items     []CartItem         `bson:"items" json:"items"`
	Version   int64              `bson:"version" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"-"`
	UpdatedAt time.Time          `bson:"updated_at" json:"-"`
}

// FindItem returns the index of the line matching product+size, or -1.
func (c *Cart) FindItem(productID string, size Size) int {
	for i, item := range c.Items {
		if item.Matches(productID, size) {
			return i
		}
	}
	return -1
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flamesco/shopfront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("cart"),
	}
}

func (m *mongoCartRepository) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"cart_id": cartID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

func (m *mongoCartRepository) InsertCart(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()
	cart.Version = 1
	cart.CreatedAt = now
	cart.UpdatedAt = now
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	_, err := m.collection.InsertOne(ctx, cart)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// A concurrent request created the same cart id first.
			return ErrWriteConflict
		}
		return fmt.Errorf("failed to insert cart: %w", err)
	}

	return nil
}

func (m *mongoCartRepository) ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem, expectedVersion int64) error {
	if items == nil {
		items = []domain.CartItem{}
	}

	filter := bson.M{"cart_id": cartID, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{
			"items":      items,
			"updated_at": time.Now(),
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to replace cart items: %w", err)
	}

	if result.MatchedCount == 0 {
		// Either the cart vanished or another writer bumped the version.
		count, err := m.collection.CountDocuments(ctx, bson.M{"cart_id": cartID})
		if err != nil {
			return fmt.Errorf("failed to check cart existence: %w", err)
		}
		if count == 0 {
			return ErrCartNotFound
		}
		return ErrWriteConflict
	}

	return nil
}

// EnsureCartIndexes backs the unique cart id and the versioned write filter.
func EnsureCartIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cart_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := db.Collection("cart").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

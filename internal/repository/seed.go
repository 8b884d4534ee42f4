package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/flamesco/shopfront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var seedCategories = []interface{}{
	domain.Category{Name: "T-Shirts", Slug: "t-shirts"},
	domain.Category{Name: "Hoodies", Slug: "hoodies"},
	domain.Category{Name: "Pants", Slug: "pants"},
}

var seedProducts = []interface{}{
	domain.Product{
		Title:       "Classic Logo Tee",
		Description: "Premium cotton t-shirt with embroidered logo.",
		Price:       29.0,
		Category:    "t-shirts",
		Images: []string{
			"https://images.unsplash.com/photo-1523381294911-8d3cead13475?q=80&w=1200&auto=format&fit=crop",
		},
		Sizes:   []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL},
		InStock: true,
		Brand:   domain.DefaultBrand,
	},
	domain.Product{
		Title:       "Heavyweight Hoodie",
		Description: "Ultra-soft fleece hoodie for everyday comfort.",
		Price:       69.0,
		Category:    "hoodies",
		Images: []string{
			"https://images.unsplash.com/photo-1516826957135-700dedea698c?q=80&w=1200&auto=format&fit=crop",
		},
		Sizes:   []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL, domain.SizeXXL},
		InStock: true,
		Brand:   domain.DefaultBrand,
	},
	domain.Product{
		Title:       "Tapered Joggers",
		Description: "Athleisure joggers with tapered fit.",
		Price:       59.0,
		Category:    "pants",
		Images: []string{
			"https://images.unsplash.com/photo-1548883354-7622d3ecb4c5?q=80&w=1200&auto=format&fit=crop",
		},
		Sizes:   []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL},
		InStock: true,
		Brand:   domain.DefaultBrand,
	},
}

// Seed bootstraps demonstration catalog data. Collections that already hold
// documents are left untouched, so restarts never duplicate the seed.
func Seed(ctx context.Context, db *mongo.Database) error {
	if err := seedCollection(ctx, db.Collection("category"), seedCategories); err != nil {
		return err
	}
	return seedCollection(ctx, db.Collection("product"), seedProducts)
}

func seedCollection(ctx context.Context, coll *mongo.Collection, docs []interface{}) error {
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count %s documents: %w", coll.Name(), err)
	}
	if count > 0 {
		return nil
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed %s: %w", coll.Name(), err)
	}
	log.Printf("seeded %d %s documents", len(docs), coll.Name())

	return nil
}

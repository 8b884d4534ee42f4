package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultBrand is applied to products created without an explicit brand.
const DefaultBrand = "Flames Co."

type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

func (s Size) Valid() bool {
	switch s {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	}
	return false
}

func (s Size) String() string {
	return string(s)
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Images      []string           `bson:"images" json:"images"`
	Sizes       []Size             `bson:"sizes" json:"sizes"`
	InStock     bool               `bson:"in_stock" json:"in_stock"`
	Brand       string             `bson:"brand,omitempty" json:"brand,omitempty"`
}

// FirstImage returns the image used for cart line snapshots.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Category struct {
	Name string `bson:"name" json:"name"`
	Slug string `bson:"slug" json:"slug"`
}

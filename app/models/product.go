package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Size is a single stock bucket keyed by size name.
type Size struct {
	Name string `bson:"name" json:"name"`
	Qty  int    `bson:"qty" json:"qty"`
}

// ColorVariant is a color-specific stock bucket, optionally split by size.
// When Sizes is non-empty the variant's own Qty is ignored by aggregation.
type ColorVariant struct {
	Name      string `bson:"name" json:"name"`
	ColorCode string `bson:"colorCode" json:"colorCode"`
	Qty       int    `bson:"qty" json:"qty"`
	Sizes     []Size `bson:"sizes,omitempty" json:"sizes,omitempty"`
}

// Product is a catalog entry with nested variant inventory.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Category      primitive.ObjectID `bson:"category,omitempty" json:"category,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	BuyingPrice   float64            `bson:"buyingPrice,omitempty" json:"buyingPrice,omitempty"`
	IsFeatured    bool               `bson:"isFeatured" json:"isFeatured"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Sizes         []Size             `bson:"sizes,omitempty" json:"sizes,omitempty"`
	ColorVariants []ColorVariant     `bson:"colorVariants,omitempty" json:"colorVariants,omitempty"`
	Images        []string           `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`

	// CategoryDetail carries the resolved category on reads. It is never
	// persisted; Save writes the Category id only.
	CategoryDetail *Category `bson:"-" json:"categoryDetail,omitempty"`
}

// RecomputeQuantity derives the aggregate quantity from the variant tree.
//
// With color variants, each variant contributes the sum of its sizes' qty
// when it has sizes, otherwise its own qty. Without variants, a flat size
// list sums directly. When both are empty the stored quantity stands, so
// simple products keep a caller-managed count.
//
// Callers must run this before every save that touches Sizes or
// ColorVariants. It is idempotent and assumes non-negative inputs;
// negative qty is rejected by validation at the mutation boundary.
func (p *Product) RecomputeQuantity() {
	if len(p.ColorVariants) > 0 {
		total := 0
		for _, v := range p.ColorVariants {
			if len(v.Sizes) > 0 {
				for _, s := range v.Sizes {
					total += s.Qty
				}
			} else {
				total += v.Qty
			}
		}
		p.Quantity = total
		return
	}
	if len(p.Sizes) > 0 {
		total := 0
		for _, s := range p.Sizes {
			total += s.Qty
		}
		p.Quantity = total
	}
}

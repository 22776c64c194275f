package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products in the catalog.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

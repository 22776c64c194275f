package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shipping is a destination rate tier: one price for home delivery and
// one for desk (pick-up point) delivery.
type Shipping struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WilayaFrom  string             `bson:"wilayaFrom,omitempty" json:"wilayaFrom,omitempty"`
	WilayaTo    string             `bson:"wilayaTo" json:"wilayaTo"`
	PlaceName   string             `bson:"placeName" json:"placeName"`
	DeskPrice   float64            `bson:"deskprice" json:"deskprice"`
	HomePrice   float64            `bson:"homeprice" json:"homeprice"`
	IsAvailable bool               `bson:"isavailable" json:"isavailable"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Rate returns the fee for the given delivery mode.
func (s *Shipping) Rate(mode ShippingStatus) float64 {
	if mode == ShipHome {
		return s.HomePrice
	}
	return s.DeskPrice
}

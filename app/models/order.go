package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAttempt   OrderStatus = "attempt"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCanceled  OrderStatus = "canceled"
	StatusPickUp    OrderStatus = "pick-up"
	StatusExchange  OrderStatus = "exchange"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every accepted status, for input validation.
var OrderStatuses = []OrderStatus{
	StatusPending, StatusAttempt, StatusConfirmed, StatusCanceled,
	StatusPickUp, StatusExchange, StatusShipped, StatusDelivered,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ShippingStatus selects which rate tier of the shipping entry applies.
type ShippingStatus string

const (
	ShipHome ShippingStatus = "home"
	ShipDesk ShippingStatus = "desk"
)

// Valid reports whether s is home or desk.
func (s ShippingStatus) Valid() bool {
	return s == ShipHome || s == ShipDesk
}

// OrderItem is one line of an order. Price is snapshotted from the product
// at the time the item entered the order and never refreshed, so historical
// orders keep the price the customer actually paid.
type OrderItem struct {
	Product        primitive.ObjectID `bson:"product" json:"product"`
	Quantity       int                `bson:"quantity" json:"quantity"`
	Color          string             `bson:"color,omitempty" json:"color,omitempty"`
	Size           string             `bson:"size,omitempty" json:"size,omitempty"`
	Price          float64            `bson:"price" json:"price"`
	TotalItemPrice float64            `bson:"totalItemPrice" json:"totalItemPrice"`
}

// Equal compares every field of the line item. Any difference counts as a
// change for the confirmation-boundary rules.
func (i OrderItem) Equal(o OrderItem) bool {
	return i.Product == o.Product &&
		i.Quantity == o.Quantity &&
		i.Color == o.Color &&
		i.Size == o.Size &&
		i.Price == o.Price &&
		i.TotalItemPrice == o.TotalItemPrice
}

// ItemsEqual is structural equality over whole item lists, order-sensitive.
func ItemsEqual(a, b []OrderItem) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !a[idx].Equal(b[idx]) {
			return false
		}
	}
	return true
}

// Order is a customer order with derived total pricing.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerName   string             `bson:"customerName" json:"customerName"`
	PhoneNumber    string             `bson:"phoneNumber" json:"phoneNumber"`
	Wilaya         string             `bson:"wilaya,omitempty" json:"wilaya,omitempty"`
	Commune        string             `bson:"commune,omitempty" json:"commune,omitempty"`
	Address        string             `bson:"address,omitempty" json:"address,omitempty"`
	OrderStatus    OrderStatus        `bson:"orderStatus" json:"orderStatus"`
	ShippingStatus ShippingStatus     `bson:"shippingStatus" json:"shippingStatus"`
	Shipping       primitive.ObjectID `bson:"shipping" json:"shipping"`
	OrderItems     []OrderItem        `bson:"orderItems" json:"orderItems"`
	TotalPrice     float64            `bson:"totalPrice" json:"totalPrice"`
	Note           string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`

	// ShippingDetail carries the resolved rate tier on list reads. The
	// bson tag only exists so the lookup stage can decode into it; single
	// reads leave it nil and saves go through those, so it never persists.
	ShippingDetail *Shipping `bson:"shippingDetail,omitempty" json:"shippingDetail,omitempty"`
}

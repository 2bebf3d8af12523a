package request

import (
	"github.com/shopspring/decimal"
)

type OrderItem struct {
	Slug     string          `validate:"required"       json:"slug"`
	Name     string          `validate:"required"       json:"name"`
	Image    string          `                          json:"image"`
	Price    decimal.Decimal `validate:"required"       json:"price"`
	Quantity int32           `validate:"required,gte=1" json:"quantity"`
}

type ShippingAddress struct {
	FullName   string `validate:"required" json:"fullName"`
	Address    string `validate:"required" json:"address"`
	City       string `validate:"required" json:"city"`
	PostalCode string `validate:"required" json:"postalCode"`
	Country    string `validate:"required" json:"country"`
}

type PlaceOrder struct {
	OrderItems      []OrderItem     `validate:"required,gt=0,dive" json:"orderItems"`
	ShippingAddress ShippingAddress `validate:"required"           json:"shippingAddress"`
	PaymentMethod   string          `validate:"required"           json:"paymentMethod"`
}

type PayOrder struct {
	PaymentID string `validate:"required" json:"paymentId"`
	Signature string `validate:"required" json:"signature"`
}

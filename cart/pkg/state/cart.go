package state

import (
	"github.com/shopspring/decimal"
)

type CartItem struct {
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	CountInStock int32           `json:"countInStock"`
	Quantity     int32           `json:"quantity"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Cart is the cookie-held cart snapshot. CartItems keeps insertion order
// and holds at most one entry per slug.
type Cart struct {
	CartItems       []CartItem      `json:"cartItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

func (cart Cart) FindItem(slug string) (CartItem, bool) {
	for _, item := range cart.CartItems {
		if item.Slug == slug {
			return item, true
		}
	}
	return CartItem{}, false
}

// ItemsPrice is the sum of quantity times price over every line item.
func (cart Cart) ItemsPrice() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range cart.CartItems {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return sum
}

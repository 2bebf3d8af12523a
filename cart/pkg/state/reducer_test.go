package state

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReduceAddItem(t *testing.T) {
	tests := []struct {
		name     string
		cart     Cart
		action   Action
		expected []CartItem
	}{
		{
			name:   "given empty cart should append item",
			cart:   Cart{},
			action: AddItem{Item: CartItem{Slug: "a", Quantity: 1}},
			expected: []CartItem{
				{Slug: "a", Quantity: 1},
			},
		},
		{
			name: "given existing slug should replace item in place",
			cart: Cart{CartItems: []CartItem{{Slug: "a", Quantity: 1}}},
			action: AddItem{
				Item: CartItem{Slug: "a", Quantity: 2},
			},
			expected: []CartItem{
				{Slug: "a", Quantity: 2},
			},
		},
		{
			name: "given replacement should keep insertion order",
			cart: Cart{
				CartItems: []CartItem{
					{Slug: "a", Quantity: 1},
					{Slug: "b", Quantity: 3},
				},
			},
			action: AddItem{Item: CartItem{Slug: "a", Quantity: 5}},
			expected: []CartItem{
				{Slug: "a", Quantity: 5},
				{Slug: "b", Quantity: 3},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := Reduce(test.cart, test.action)
			assert.Equal(t, test.expected, actual.CartItems)
		})
	}
}

func TestReduceAddItemDoesNotMutateInput(t *testing.T) {
	cart := Cart{CartItems: []CartItem{{Slug: "a", Quantity: 1}}}

	_ = Reduce(cart, AddItem{Item: CartItem{Slug: "a", Quantity: 9}})

	assert.EqualValues(t, int32(1), cart.CartItems[0].Quantity)
}

func TestReduceRemoveItem(t *testing.T) {
	cart := Cart{
		CartItems: []CartItem{
			{Slug: "a", Quantity: 1},
			{Slug: "b", Quantity: 2},
		},
	}

	actual := Reduce(cart, RemoveItem{Slug: "a"})
	assert.Equal(t, []CartItem{{Slug: "b", Quantity: 2}}, actual.CartItems)

	actual = Reduce(actual, RemoveItem{Slug: "a"})
	assert.Equal(t, []CartItem{{Slug: "b", Quantity: 2}}, actual.CartItems)
}

func TestReduceUpdateItemQuantity(t *testing.T) {
	cart := Cart{CartItems: []CartItem{{Slug: "a", Quantity: 1}}}

	actual := Reduce(cart, UpdateItemQuantity{Slug: "a", Quantity: 4})
	assert.EqualValues(t, int32(4), actual.CartItems[0].Quantity)

	actual = Reduce(cart, UpdateItemQuantity{Slug: "missing", Quantity: 4})
	assert.Equal(t, cart.CartItems, actual.CartItems)
}

func TestReduceClearItemsKeepsAddressAndPayment(t *testing.T) {
	cart := Cart{
		CartItems:       []CartItem{{Slug: "a", Quantity: 1}},
		ShippingAddress: ShippingAddress{FullName: "Jane", City: "Jakarta"},
		PaymentMethod:   "PayPal",
	}

	actual := Reduce(cart, ClearItems{})

	assert.Empty(t, actual.CartItems)
	assert.Equal(t, cart.ShippingAddress, actual.ShippingAddress)
	assert.Equal(t, "PayPal", actual.PaymentMethod)
}

func TestReduceSaveShippingAddressShallowMerge(t *testing.T) {
	cart := Cart{
		ShippingAddress: ShippingAddress{FullName: "Jane", City: "Jakarta"},
	}

	actual := Reduce(cart, SaveShippingAddress{
		Address: ShippingAddress{City: "Bandung", Country: "Indonesia"},
	})

	assert.Equal(t, ShippingAddress{
		FullName: "Jane",
		City:     "Bandung",
		Country:  "Indonesia",
	}, actual.ShippingAddress)
}

func TestReduceSavePaymentMethod(t *testing.T) {
	cart := Cart{PaymentMethod: "PayPal"}

	actual := Reduce(cart, SavePaymentMethod{Method: "Stripe"})

	assert.Equal(t, "Stripe", actual.PaymentMethod)
}

func TestReduceReset(t *testing.T) {
	cart := Cart{
		CartItems:       []CartItem{{Slug: "a", Quantity: 1}},
		ShippingAddress: ShippingAddress{FullName: "Jane"},
		PaymentMethod:   "PayPal",
	}

	actual := Reduce(cart, Reset{})

	assert.Empty(t, actual.CartItems)
	assert.Equal(t, ShippingAddress{}, actual.ShippingAddress)
	assert.Equal(t, "", actual.PaymentMethod)
}

func TestCartItemsPrice(t *testing.T) {
	cart := Cart{
		CartItems: []CartItem{
			{Slug: "a", Price: decimal.NewFromFloat(9.99), Quantity: 2},
			{Slug: "b", Price: decimal.NewFromInt(100), Quantity: 1},
		},
	}

	assert.True(t, decimal.NewFromFloat(119.98).Equal(cart.ItemsPrice()))
}

package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jithpillai/zstore/cart/pkg/state"
)

func TestEncodeDecodeCartRoundTrip(t *testing.T) {
	cart := state.Cart{
		CartItems: []state.CartItem{
			{
				Slug:         "wireless-headphones",
				Name:         "Wireless Headphones",
				Image:        "/images/p1.jpg",
				Price:        decimal.NewFromFloat(99.99),
				CountInStock: 10,
				Quantity:     2,
			},
		},
		ShippingAddress: state.ShippingAddress{
			FullName:   "Jane Doe",
			Address:    "1 Main St",
			City:       "Jakarta",
			PostalCode: "10110",
			Country:    "Indonesia",
		},
		PaymentMethod: "PayPal",
	}

	encoded, err := EncodeCart(cart)
	require.NoError(t, err)

	decoded, err := DecodeCart(encoded)
	require.NoError(t, err)

	assert.Equal(t, cart.ShippingAddress, decoded.ShippingAddress)
	assert.Equal(t, cart.PaymentMethod, decoded.PaymentMethod)
	require.Len(t, decoded.CartItems, 1)
	assert.Equal(t, cart.CartItems[0].Slug, decoded.CartItems[0].Slug)
	assert.True(t, cart.CartItems[0].Price.Equal(decoded.CartItems[0].Price))
}

func TestCookieStoreLoadWithoutCookieReturnsEmptyCart(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/carts", nil)

	cart, err := NewCookieStore(recorder, request).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)
	assert.Equal(t, "", cart.PaymentMethod)
}

func TestCookieStoreSaveThenLoad(t *testing.T) {
	cart := state.Cart{
		CartItems:     []state.CartItem{{Slug: "a", Quantity: 1, Price: decimal.NewFromInt(10)}},
		PaymentMethod: "Stripe",
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/carts/items", nil)
	err := NewCookieStore(recorder, request).Save(context.Background(), cart)
	require.NoError(t, err)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	next := httptest.NewRequest(http.MethodGet, "/carts", nil)
	next.AddCookie(cookies[0])
	loaded, err := NewCookieStore(httptest.NewRecorder(), next).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.CartItems, 1)
	assert.Equal(t, "a", loaded.CartItems[0].Slug)
	assert.Equal(t, "Stripe", loaded.PaymentMethod)
}

func TestCookieStoreClearExpiresCookie(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodDelete, "/carts/items", nil)

	err := NewCookieStore(recorder, request).Clear(context.Background())
	require.NoError(t, err)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestDecodeCartRejectsGarbage(t *testing.T) {
	_, err := DecodeCart("not-base64-json!!!")
	assert.Error(t, err)
}

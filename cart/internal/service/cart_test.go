package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jithpillai/zstore/cart/pkg/request"
	"github.com/jithpillai/zstore/cart/pkg/state"
	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	"github.com/jithpillai/zstore/internal/repository"
)

func deskLampItem(quantity int32) state.CartItem {
	return state.CartItem{
		Slug:         "desk-lamp",
		Name:         "Desk Lamp",
		Image:        "/images/desk-lamp.jpg",
		Price:        decimal.RequireFromString("49.99"),
		CountInStock: 3,
		Quantity:     quantity,
	}
}

func TestAddItemStockCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c := context.Background()
	fixture := setup(t, c)
	defer teardown(t, fixture)

	svc := fixture.service

	t.Run("given quantity above live stock should reject", func(t *testing.T) {
		st := &memoryStore{}

		_, err := svc.AddItem(c, st, request.AddCartItem{Slug: "desk-lamp", Quantity: 4})

		assert.ErrorIs(t, err, commonErrors.ErrOutOfStock)
		assert.Zero(t, st.saved)
	})

	t.Run("given quantity equal to live stock should add", func(t *testing.T) {
		st := &memoryStore{}

		cart, err := svc.AddItem(c, st, request.AddCartItem{Slug: "desk-lamp", Quantity: 3})

		require.NoError(t, err)
		require.Len(t, cart.CartItems, 1)
		item := cart.CartItems[0]
		assert.Equal(t, "desk-lamp", item.Slug)
		assert.Equal(t, "Desk Lamp", item.Name)
		assert.True(t, item.Price.Equal(decimal.RequireFromString("49.99")))
		assert.Equal(t, int32(3), item.CountInStock)
		assert.Equal(t, int32(3), item.Quantity)
		assert.Equal(t, 1, st.saved)
		assert.Equal(t, cart, st.cart)
	})

	t.Run("given unknown slug should reject", func(t *testing.T) {
		st := &memoryStore{}

		_, err := svc.AddItem(c, st, request.AddCartItem{Slug: "no-such-product", Quantity: 1})

		assert.ErrorIs(t, err, commonErrors.ErrProductNotFound)
		assert.Zero(t, st.saved)
	})
}

func TestUpdateItemQuantityStockCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c := context.Background()
	fixture := setup(t, c)
	defer teardown(t, fixture)

	svc := fixture.service

	t.Run("given quantity above live stock should reject", func(t *testing.T) {
		st := &memoryStore{cart: state.Cart{CartItems: []state.CartItem{deskLampItem(1)}}}

		_, err := svc.UpdateItemQuantity(c, st, "desk-lamp", 4)

		assert.ErrorIs(t, err, commonErrors.ErrOutOfStock)
		assert.Zero(t, st.saved)
	})

	t.Run("given quantity equal to live stock should update", func(t *testing.T) {
		st := &memoryStore{cart: state.Cart{CartItems: []state.CartItem{deskLampItem(1)}}}

		cart, err := svc.UpdateItemQuantity(c, st, "desk-lamp", 3)

		require.NoError(t, err)
		require.Len(t, cart.CartItems, 1)
		assert.Equal(t, int32(3), cart.CartItems[0].Quantity)
		assert.Equal(t, 1, st.saved)
	})

	t.Run("given slug not in cart should reject", func(t *testing.T) {
		st := &memoryStore{}

		_, err := svc.UpdateItemQuantity(c, st, "desk-lamp", 1)

		assert.ErrorIs(t, err, commonErrors.ErrCartItemNotFound)
		assert.Zero(t, st.saved)
	})
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c := context.Background()
	fixture := setup(t, c)
	defer teardown(t, fixture)

	st := &memoryStore{}

	_, err := fixture.service.Checkout(c, st, &jwt.Token{Raw: "token"})

	assert.ErrorIs(t, err, commonErrors.ErrEmptyCart)
	assert.Zero(t, st.cleared)
}

func TestCheckoutRejectsStaleStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c := context.Background()
	fixture := setup(t, c)
	defer teardown(t, fixture)

	// The cookie snapshot was valid at add time; live stock has since
	// dropped below the cart quantity.
	st := &memoryStore{cart: state.Cart{CartItems: []state.CartItem{deskLampItem(3)}}}
	_, err := fixture.queries.DecrementProductStock(c, repository.DecrementProductStockParams{
		Slug:     "desk-lamp",
		Quantity: 1,
	})
	require.NoError(t, err)

	_, err = fixture.service.Checkout(c, st, &jwt.Token{Raw: "token"})

	assert.ErrorIs(t, err, commonErrors.ErrOutOfStock)
	assert.Zero(t, st.cleared)
}

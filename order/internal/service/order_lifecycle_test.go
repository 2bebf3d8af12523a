package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	"github.com/jithpillai/zstore/order/internal/common/cache"
	"github.com/jithpillai/zstore/order/internal/gateway"
	"github.com/jithpillai/zstore/order/pkg/request"
	"github.com/jithpillai/zstore/order/pkg/status"
)

var (
	customerId = uuid.MustParse("3f7c2a9e-0b1d-4e5f-8a6b-1c2d3e4f5a6b")

	headphonesOrder = request.PlaceOrder{
		OrderItems: []request.OrderItem{
			{
				Slug:     "wireless-headphones",
				Name:     "Wireless Headphones",
				Image:    "/images/wireless-headphones.jpg",
				Price:    decimal.RequireFromString("79.99"),
				Quantity: 2,
			},
		},
		ShippingAddress: request.ShippingAddress{
			FullName:   "Jane Customer",
			Address:    "1 Main St",
			City:       "Springfield",
			PostalCode: "12345",
			Country:    "USA",
		},
		PaymentMethod: "paypal",
	}
)

func TestOrderLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c := context.Background()
	fixture := setup(t, c)
	defer teardown(t, fixture)

	svc := fixture.service

	order, err := svc.PlaceOrder(c, customerId, headphonesOrder)
	require.NoError(t, err)
	assert.Equal(t, status.Created.String(), order.Status)
	assert.True(t, order.ItemsPrice.Equal(decimal.RequireFromString("159.98")))
	assert.True(t, order.TaxPrice.Equal(decimal.RequireFromString("24.00")))
	assert.True(t, order.ShippingPrice.Equal(decimal.RequireFromString("15")))
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("198.98")))
	assert.Nil(t, order.PaidAt)

	product, err := fixture.queries.FindProductBySlug(c, "wireless-headphones")
	require.NoError(t, err)
	assert.Equal(t, int32(8), product.CountInStock)

	t.Run("given unpaid order should not deliver", func(t *testing.T) {
		_, err := svc.Deliver(c, order.ID)
		assert.ErrorIs(t, err, commonErrors.ErrOrderNotPaid)
	})

	t.Run("given wrong signature should not pay", func(t *testing.T) {
		_, err := svc.Pay(c, order.ID, customerId, request.PayOrder{
			PaymentID: "pay-1",
			Signature: "tampered",
		})
		assert.ErrorIs(t, err, commonErrors.ErrPaymentNotVerified)
	})

	t.Run("given captured payment should pay", func(t *testing.T) {
		fixture.gateway.payment = gateway.Payment{
			ID:     "pay-1",
			Status: gateway.StatusCaptured,
			Amount: order.TotalPrice,
		}

		paid, err := svc.Pay(c, order.ID, customerId, request.PayOrder{
			PaymentID: "pay-1",
			Signature: sign(order.ID.String(), "pay-1", "gateway-secret"),
		})
		require.NoError(t, err)
		assert.Equal(t, status.Paid.String(), paid.Status)
		require.NotNil(t, paid.PaymentID)
		assert.Equal(t, "pay-1", *paid.PaymentID)
		assert.NotNil(t, paid.PaidAt)
	})

	t.Run("given paid order should not pay again", func(t *testing.T) {
		_, err := svc.Pay(c, order.ID, customerId, request.PayOrder{
			PaymentID: "pay-1",
			Signature: sign(order.ID.String(), "pay-1", "gateway-secret"),
		})
		assert.ErrorIs(t, err, commonErrors.ErrAlreadyPaid)
	})

	t.Run("given paid order should not cancel", func(t *testing.T) {
		_, err := svc.Cancel(c, order.ID, customerId)
		assert.ErrorIs(t, err, commonErrors.ErrInvalidTransition)
	})

	t.Run("given paid order should deliver", func(t *testing.T) {
		delivered, err := svc.Deliver(c, order.ID)
		require.NoError(t, err)
		assert.Equal(t, status.Delivered.String(), delivered.Status)
		assert.NotNil(t, delivered.DeliveredAt)
	})

	t.Run("given delivered order should not deliver again", func(t *testing.T) {
		_, err := svc.Deliver(c, order.ID)
		assert.ErrorIs(t, err, commonErrors.ErrInvalidTransition)
	})
}

func TestOrderCancelRestoresStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c := context.Background()
	fixture := setup(t, c)
	defer teardown(t, fixture)

	svc := fixture.service

	order, err := svc.PlaceOrder(c, customerId, headphonesOrder)
	require.NoError(t, err)

	product, err := fixture.queries.FindProductBySlug(c, "wireless-headphones")
	require.NoError(t, err)
	assert.Equal(t, int32(8), product.CountInStock)

	cancelled, err := svc.Cancel(c, order.ID, customerId)
	require.NoError(t, err)
	assert.Equal(t, status.Cancelled.String(), cancelled.Status)

	product, err = fixture.queries.FindProductBySlug(c, "wireless-headphones")
	require.NoError(t, err)
	assert.Equal(t, int32(10), product.CountInStock)
}

func TestPlaceOrderOutOfStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c := context.Background()
	fixture := setup(t, c)
	defer teardown(t, fixture)

	param := headphonesOrder
	param.OrderItems = []request.OrderItem{
		{
			Slug:     "mechanical-keyboard",
			Name:     "Mechanical Keyboard",
			Image:    "/images/mechanical-keyboard.jpg",
			Price:    decimal.RequireFromString("129.99"),
			Quantity: 6,
		},
	}

	_, err := fixture.service.PlaceOrder(c, customerId, param)
	assert.ErrorIs(t, err, commonErrors.ErrOutOfStock)

	// A failed order must not leave a partial decrement behind.
	product, err := fixture.queries.FindProductBySlug(c, "mechanical-keyboard")
	assert.NoError(t, err)
	assert.Equal(t, int32(5), product.CountInStock)
}

func TestFindOrdersByUserIdCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c := context.Background()
	fixture := setup(t, c)
	defer teardown(t, fixture)

	svc := fixture.service
	cacheKey := fmt.Sprintf(cache.KeyOrdersByUserId, customerId.String())

	order, err := svc.PlaceOrder(c, customerId, headphonesOrder)
	require.NoError(t, err)

	orders, err := svc.FindOrdersByUserId(c, customerId)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	exists, err := fixture.redisClient.Exists(c, cacheKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	// A transition on any of the user's orders must drop the cached list.
	_, err = svc.Cancel(c, order.ID, customerId)
	require.NoError(t, err)

	exists, err = fixture.redisClient.Exists(c, cacheKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)

	orders, err = svc.FindOrdersByUserId(c, customerId)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, status.Cancelled.String(), orders[0].Status)
}

func TestFindOrderByIdOwnership(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c := context.Background()
	fixture := setup(t, c)
	defer teardown(t, fixture)

	svc := fixture.service

	order, err := svc.PlaceOrder(c, customerId, headphonesOrder)
	require.NoError(t, err)

	found, err := svc.FindOrderById(c, order.ID, customerId, false)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = svc.FindOrderById(c, order.ID, uuid.New(), false)
	assert.ErrorIs(t, err, commonErrors.ErrOrderNotFound)

	found, err = svc.FindOrderById(c, order.ID, uuid.New(), true)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
}

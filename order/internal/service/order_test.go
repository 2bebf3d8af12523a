package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	"github.com/jithpillai/zstore/internal/repository"
	"github.com/jithpillai/zstore/order/internal/gateway"
	"github.com/jithpillai/zstore/order/pkg/request"
)

type fakeGateway struct {
	payment gateway.Payment
	err     error
}

func (f fakeGateway) FindPaymentById(_ context.Context, _ string) (gateway.Payment, error) {
	return f.payment, f.err
}

func sign(orderId, paymentId, keySecret string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderId + "|" + paymentId))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPayment(t *testing.T) {
	keySecret := "gateway-secret"
	orderId := uuid.New()
	order := repository.Order{ID: orderId, TotalPrice: decimal.NewFromInt(130)}

	tests := []struct {
		name        string
		gateway     gateway.Gateway
		param       request.PayOrder
		expectedErr error
	}{
		{
			name: "given captured payment with matching amount should verify",
			gateway: fakeGateway{
				payment: gateway.Payment{
					ID:     "pay-1",
					Status: gateway.StatusCaptured,
					Amount: decimal.NewFromInt(130),
				},
			},
			param: request.PayOrder{
				PaymentID: "pay-1",
				Signature: sign(orderId.String(), "pay-1", keySecret),
			},
			expectedErr: nil,
		},
		{
			name:    "given tampered signature should reject",
			gateway: fakeGateway{},
			param: request.PayOrder{
				PaymentID: "pay-1",
				Signature: "tampered",
			},
			expectedErr: commonErrors.ErrPaymentNotVerified,
		},
		{
			name: "given signature for another payment should reject",
			gateway: fakeGateway{
				payment: gateway.Payment{
					ID:     "pay-1",
					Status: gateway.StatusCaptured,
					Amount: decimal.NewFromInt(130),
				},
			},
			param: request.PayOrder{
				PaymentID: "pay-1",
				Signature: sign(orderId.String(), "pay-2", keySecret),
			},
			expectedErr: commonErrors.ErrPaymentNotVerified,
		},
		{
			name:    "given gateway lookup failure should reject",
			gateway: fakeGateway{err: errors.New("gateway unreachable")},
			param: request.PayOrder{
				PaymentID: "pay-1",
				Signature: sign(orderId.String(), "pay-1", keySecret),
			},
			expectedErr: commonErrors.ErrPaymentNotVerified,
		},
		{
			name: "given authorized but not captured payment should reject",
			gateway: fakeGateway{
				payment: gateway.Payment{
					ID:     "pay-1",
					Status: "authorized",
					Amount: decimal.NewFromInt(130),
				},
			},
			param: request.PayOrder{
				PaymentID: "pay-1",
				Signature: sign(orderId.String(), "pay-1", keySecret),
			},
			expectedErr: commonErrors.ErrPaymentNotVerified,
		},
		{
			name: "given amount mismatch should reject",
			gateway: fakeGateway{
				payment: gateway.Payment{
					ID:     "pay-1",
					Status: gateway.StatusCaptured,
					Amount: decimal.NewFromInt(1),
				},
			},
			param: request.PayOrder{
				PaymentID: "pay-1",
				Signature: sign(orderId.String(), "pay-1", keySecret),
			},
			expectedErr: commonErrors.ErrPaymentNotVerified,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc := OrderService{gateway: test.gateway, keySecret: keySecret}

			err := svc.verifyPayment(context.Background(), order, test.param)

			if test.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, test.expectedErr)
		})
	}
}

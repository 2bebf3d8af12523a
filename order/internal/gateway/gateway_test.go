package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jithpillai/zstore/internal/config"
)

func sign(orderId, paymentId, keySecret string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderId + "|" + paymentId))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	signature := sign("order-1", "pay-1", "secret")

	assert.True(t, VerifySignature("order-1", "pay-1", signature, "secret"))
	assert.False(t, VerifySignature("order-1", "pay-1", signature, "other-secret"))
	assert.False(t, VerifySignature("order-2", "pay-1", signature, "secret"))
	assert.False(t, VerifySignature("order-1", "pay-2", signature, "secret"))
	assert.False(t, VerifySignature("order-1", "pay-1", "tampered", "secret"))
}

func TestFindPaymentById(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "key-id", username)
			assert.Equal(t, "key-secret", password)
			assert.Equal(t, "/v1/payments/pay-1", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(
				[]byte(`{"id":"pay-1","order_id":"order-1","status":"captured","amount":"130","currency":"USD"}`),
			)
		}),
	)
	defer server.Close()

	client := NewClient(config.Payment{
		BaseURL:   server.URL,
		KeyID:     "key-id",
		KeySecret: "key-secret",
	})

	payment, err := client.FindPaymentById(context.Background(), "pay-1")
	require.NoError(t, err)

	assert.Equal(t, "pay-1", payment.ID)
	assert.Equal(t, StatusCaptured, payment.Status)
	assert.True(t, decimal.NewFromInt(130).Equal(payment.Amount))
}

func TestFindPaymentByIdNotFound(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}),
	)
	defer server.Close()

	client := NewClient(config.Payment{BaseURL: server.URL})

	_, err := client.FindPaymentById(context.Background(), "missing")
	assert.Error(t, err)
}

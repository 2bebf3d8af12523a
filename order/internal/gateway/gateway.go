package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jithpillai/zstore/internal/common/errors"
	"github.com/jithpillai/zstore/internal/config"
	"github.com/jithpillai/zstore/internal/log"
	"github.com/jithpillai/zstore/order/internal/common/otel"
)

const StatusCaptured = "captured"

type Payment struct {
	ID       string          `json:"id"`
	OrderID  string          `json:"order_id"`
	Status   string          `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Gateway is the payment provider port. The production implementation
// re-queries the provider's REST API; tests substitute a fake.
type Gateway interface {
	FindPaymentById(c context.Context, paymentId string) (Payment, error)
}

type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

func NewClient(cfg config.Payment) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (cl *Client) FindPaymentById(c context.Context, paymentId string) (Payment, error) {
	c, span := otel.Tracer.Start(c, "GatewayClient FindPaymentById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "GatewayClient FindPaymentById").
		Str(log.KeyPaymentID, paymentId).
		Str(log.KeyProcess, "finding payment in gateway").
		Logger()

	logger.Info().Msgf("finding paymentId=%s in gateway", paymentId)
	req, err := http.NewRequestWithContext(
		c,
		http.MethodGet,
		cl.baseURL+"/v1/payments/"+paymentId,
		nil,
	)
	if err != nil {
		err = fmt.Errorf("failed creating gateway request with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Payment{}, err
	}
	req.SetBasicAuth(cl.keyID, cl.keySecret)

	resp, err := cl.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed finding paymentId=%s in gateway with error=%w", paymentId, err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Payment{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("gateway returned status code=%d for paymentId=%s", resp.StatusCode, paymentId)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Payment{}, err
	}

	payment := Payment{}
	err = json.NewDecoder(resp.Body).Decode(&payment)
	if err != nil {
		err = fmt.Errorf("failed decoding gateway response with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Payment{}, err
	}
	logger.Info().Msgf("found paymentId=%s in gateway", paymentId)

	return payment, nil
}

// VerifySignature checks the gateway callback signature, an HMAC-SHA256
// over orderId|paymentId keyed with the gateway secret.
func VerifySignature(orderId, paymentId, signature, keySecret string) bool {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderId + "|" + paymentId))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

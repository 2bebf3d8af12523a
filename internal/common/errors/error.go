package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEmptyAuth          = errors.New("missing authorization")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAdminOnly          = errors.New("admin signin required")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrAlreadyPaid        = errors.New("order is already paid")
	ErrOrderNotPaid       = errors.New("order is not paid")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrPaymentNotVerified = errors.New("payment could not be verified with gateway")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrWrongCredential    = errors.New("email or password is incorrect")
)

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}

package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jithpillai/zstore/cart/pkg/state"
	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	"github.com/jithpillai/zstore/cart/internal/common/otel"
	"github.com/jithpillai/zstore/internal/log"
)

const CookieName = "cart"

const cookieMaxAge = 60 * 60 * 24 * 30

// CookieStore persists the cart as a base64 encoded json cookie on the
// request/response pair it was created for.
type CookieStore struct {
	writer  http.ResponseWriter
	request *http.Request
}

func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{writer: w, request: r}
}

func (s *CookieStore) Load(c context.Context) (state.Cart, error) {
	c, span := otel.Tracer.Start(c, "CookieStore Load")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CookieStore Load").
		Str(log.KeyProcess, "loading cart from cookie").
		Logger()

	logger.Debug().Msg("loading cart from cookie")
	cookie, err := s.request.Cookie(CookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			logger.Debug().Msg("cookie not found, returning empty cart")
			return state.Cart{CartItems: []state.CartItem{}}, nil
		}
		err = fmt.Errorf("failed reading cart cookie with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}

	cart, err := DecodeCart(cookie.Value)
	if err != nil {
		err = fmt.Errorf("failed decoding cart cookie with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Debug().Msg("loaded cart from cookie")

	return cart, nil
}

func (s *CookieStore) Save(c context.Context, cart state.Cart) error {
	c, span := otel.Tracer.Start(c, "CookieStore Save")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CookieStore Save").
		Str(log.KeyProcess, "saving cart to cookie").
		Logger()

	logger.Debug().Msg("saving cart to cookie")
	encoded, err := EncodeCart(cart)
	if err != nil {
		err = fmt.Errorf("failed encoding cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	http.SetCookie(s.writer, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	logger.Debug().Msg("saved cart to cookie")

	return nil
}

func (s *CookieStore) Clear(c context.Context) error {
	_, span := otel.Tracer.Start(c, "CookieStore Clear")
	defer span.End()

	http.SetCookie(s.writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// EncodeCart serializes a cart to its cookie wire form.
func EncodeCart(cart state.Cart) (string, error) {
	raw, err := json.Marshal(cart)
	if err != nil {
		return "", fmt.Errorf("failed marshaling cart with error=%w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeCart parses the cookie wire form back into a cart.
func DecodeCart(value string) (state.Cart, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return state.Cart{}, fmt.Errorf("failed decoding cart cookie value with error=%w", err)
	}
	cart := state.Cart{}
	err = json.Unmarshal(raw, &cart)
	if err != nil {
		return state.Cart{}, fmt.Errorf("failed unmarshaling cart with error=%w", err)
	}
	if cart.CartItems == nil {
		cart.CartItems = []state.CartItem{}
	}
	return cart, nil
}

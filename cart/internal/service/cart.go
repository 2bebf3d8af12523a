package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jithpillai/zstore/cart/internal/common/otel"
	"github.com/jithpillai/zstore/cart/internal/store"
	"github.com/jithpillai/zstore/cart/pkg/request"
	"github.com/jithpillai/zstore/cart/pkg/state"
	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	commonHttp "github.com/jithpillai/zstore/internal/common/http"
	"github.com/jithpillai/zstore/internal/log"
	"github.com/jithpillai/zstore/internal/repository"
	orderRequest "github.com/jithpillai/zstore/order/pkg/request"
)

type CartService struct {
	queries *repository.Queries
}

func NewCartService(queries *repository.Queries) CartService {
	return CartService{queries: queries}
}

func (s CartService) FindCart(c context.Context, st store.Store) (state.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCart").
		Str(log.KeyProcess, "loading cart").
		Logger()

	logger.Info().Msg("loading cart")
	cart, err := st.Load(c)
	if err != nil {
		err = fmt.Errorf("failed loading cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msg("loaded cart")

	return cart, nil
}

func (s CartService) AddItem(
	c context.Context,
	st store.Store,
	param request.AddCartItem,
) (state.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyProductSlug, param.Slug).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product by slug").Logger()
	logger.Info().Msgf("finding product by slug=%s", param.Slug)
	product, err := s.queries.FindProductBySlug(c, param.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding product by slug=%s with error=%w", param.Slug, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msgf("found product by slug=%s", param.Slug)

	// Live stock is re-read here because the cart's cached countInStock
	// snapshot can be stale.
	logger = logger.With().Str(log.KeyProcess, "checking live stock").Logger()
	logger.Info().Msgf("checking live stock for quantity=%d", param.Quantity)
	if param.Quantity > product.CountInStock {
		err = fmt.Errorf(
			"requested quantity=%d exceeds live stock=%d with error=%w",
			param.Quantity,
			product.CountInStock,
			commonErrors.ErrOutOfStock,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msg("checked live stock")

	logger = logger.With().Str(log.KeyProcess, "reducing cart").Logger()
	logger.Info().Msg("loading cart")
	cart, err := st.Load(c)
	if err != nil {
		err = fmt.Errorf("failed loading cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	cart = state.Reduce(cart, state.AddItem{
		Item: state.CartItem{
			Slug:         product.Slug,
			Name:         product.Name,
			Image:        product.Image,
			Price:        product.Price,
			CountInStock: product.CountInStock,
			Quantity:     param.Quantity,
		},
	})
	logger = logger.With().Int(log.KeyCartItems, len(cart.CartItems)).Logger()
	logger.Info().Msg("reduced cart")

	logger = logger.With().Str(log.KeyProcess, "saving cart").Logger()
	logger.Info().Msg("saving cart")
	err = st.Save(c, cart)
	if err != nil {
		err = fmt.Errorf("failed saving cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msg("saved cart")

	return cart, nil
}

func (s CartService) UpdateItemQuantity(
	c context.Context,
	st store.Store,
	slug string,
	quantity int32,
) (state.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateItemQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateItemQuantity").
		Str(log.KeyProductSlug, slug).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "loading cart").Logger()
	logger.Info().Msg("loading cart")
	cart, err := st.Load(c)
	if err != nil {
		err = fmt.Errorf("failed loading cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	if _, ok := cart.FindItem(slug); !ok {
		err = fmt.Errorf("failed finding slug=%s in cart with error=%w", slug, commonErrors.ErrCartItemNotFound)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msg("loaded cart")

	logger = logger.With().Str(log.KeyProcess, "checking live stock").Logger()
	logger.Info().Msgf("checking live stock for quantity=%d", quantity)
	product, err := s.queries.FindProductBySlug(c, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding product by slug=%s with error=%w", slug, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	if quantity > product.CountInStock {
		err = fmt.Errorf(
			"requested quantity=%d exceeds live stock=%d with error=%w",
			quantity,
			product.CountInStock,
			commonErrors.ErrOutOfStock,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msg("checked live stock")

	logger = logger.With().Str(log.KeyProcess, "saving cart").Logger()
	cart = state.Reduce(cart, state.UpdateItemQuantity{Slug: slug, Quantity: quantity})
	logger.Info().Msg("saving cart")
	err = st.Save(c, cart)
	if err != nil {
		err = fmt.Errorf("failed saving cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msg("saved cart")

	return cart, nil
}

func (s CartService) RemoveItem(
	c context.Context,
	st store.Store,
	slug string,
) (state.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyProductSlug, slug).
		Str(log.KeyProcess, "removing cart item").
		Logger()

	logger.Info().Msgf("removing slug=%s from cart", slug)
	cart, err := s.reduceAndSave(c, st, state.RemoveItem{Slug: slug})
	if err != nil {
		err = fmt.Errorf("failed removing slug=%s from cart with error=%w", slug, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msgf("removed slug=%s from cart", slug)

	return cart, nil
}

func (s CartService) ClearItems(c context.Context, st store.Store) (state.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ClearItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearItems").
		Str(log.KeyProcess, "clearing cart items").
		Logger()

	logger.Info().Msg("clearing cart items")
	cart, err := s.reduceAndSave(c, st, state.ClearItems{})
	if err != nil {
		err = fmt.Errorf("failed clearing cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msg("cleared cart items")

	return cart, nil
}

// ResetCart drops the whole cart on logout, address and payment method
// included, and removes the cookie.
func (s CartService) ResetCart(c context.Context, st store.Store) (state.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ResetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ResetCart").
		Str(log.KeyProcess, "resetting cart").
		Logger()

	logger.Info().Msg("resetting cart")
	cart, err := st.Load(c)
	if err != nil {
		err = fmt.Errorf("failed loading cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	cart = state.Reduce(cart, state.Reset{})
	err = st.Clear(c)
	if err != nil {
		err = fmt.Errorf("failed clearing cart cookie with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msg("reset cart")

	return cart, nil
}

func (s CartService) SaveShippingAddress(
	c context.Context,
	st store.Store,
	param request.SaveShippingAddress,
) (state.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService SaveShippingAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService SaveShippingAddress").
		Str(log.KeyProcess, "saving shipping address").
		Logger()

	logger.Info().Msg("saving shipping address")
	cart, err := s.reduceAndSave(c, st, state.SaveShippingAddress{
		Address: state.ShippingAddress{
			FullName:   param.FullName,
			Address:    param.Address,
			City:       param.City,
			PostalCode: param.PostalCode,
			Country:    param.Country,
		},
	})
	if err != nil {
		err = fmt.Errorf("failed saving shipping address with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msg("saved shipping address")

	return cart, nil
}

func (s CartService) SavePaymentMethod(
	c context.Context,
	st store.Store,
	param request.SavePaymentMethod,
) (state.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService SavePaymentMethod")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService SavePaymentMethod").
		Str(log.KeyProcess, "saving payment method").
		Logger()

	logger.Info().Msg("saving payment method")
	cart, err := s.reduceAndSave(c, st, state.SavePaymentMethod{Method: param.PaymentMethod})
	if err != nil {
		err = fmt.Errorf("failed saving payment method with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return state.Cart{}, err
	}
	logger.Info().Msg("saved payment method")

	return cart, nil
}

func (s CartService) Checkout(
	c context.Context,
	st store.Store,
	token *jwt.Token,
) (map[string]interface{}, error) {
	c, span := otel.Tracer.Start(c, "CartService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Checkout").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "loading cart").Logger()
	logger.Info().Msg("loading cart")
	cart, err := st.Load(c)
	if err != nil {
		err = fmt.Errorf("failed loading cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if len(cart.CartItems) == 0 {
		err = fmt.Errorf("failed checking out with error=%w", commonErrors.ErrEmptyCart)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger = logger.With().Int(log.KeyCartItems, len(cart.CartItems)).Logger()
	logger.Info().Msg("loaded cart")

	logger = logger.With().Str(log.KeyProcess, "checking live stock").Logger()
	logger.Info().Msg("checking live stock for every line item")
	for _, item := range cart.CartItems {
		product, err := s.queries.FindProductBySlug(c, item.Slug)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				err = commonErrors.ErrProductNotFound
			}
			err = fmt.Errorf("failed finding product by slug=%s with error=%w", item.Slug, err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		if item.Quantity > product.CountInStock {
			err = fmt.Errorf(
				"slug=%s requested quantity=%d exceeds live stock=%d with error=%w",
				item.Slug,
				item.Quantity,
				product.CountInStock,
				commonErrors.ErrOutOfStock,
			)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
	}
	logger.Info().Msg("checked live stock for every line item")

	logger = logger.With().Str(log.KeyProcess, "creating place order request").Logger()
	logger.Info().Msg("creating place order request")
	orderItems := make([]orderRequest.OrderItem, len(cart.CartItems))
	for i, item := range cart.CartItems {
		orderItems[i] = orderRequest.OrderItem{
			Slug:     item.Slug,
			Name:     item.Name,
			Image:    item.Image,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}
	placeOrder := orderRequest.PlaceOrder{
		OrderItems: orderItems,
		ShippingAddress: orderRequest.ShippingAddress{
			FullName:   cart.ShippingAddress.FullName,
			Address:    cart.ShippingAddress.Address,
			City:       cart.ShippingAddress.City,
			PostalCode: cart.ShippingAddress.PostalCode,
			Country:    cart.ShippingAddress.Country,
		},
		PaymentMethod: cart.PaymentMethod,
	}
	orderJson, err := json.Marshal(placeOrder)
	if err != nil {
		err = fmt.Errorf("failed marshaling place order request with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("created place order request")

	logger = logger.With().Str(log.KeyProcess, "sending place order request").Logger()
	logger.Info().Msg("sending place order request to order-service")
	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		commonHttp.OrderBaseURL,
		bytes.NewBuffer(orderJson),
	)
	if err != nil {
		err = fmt.Errorf("failed creating request to order-service with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	req.Header.Add("Authorization", "Bearer "+token.Raw)
	req.Header.Add(commonHttp.KeyHeaderContentType, commonHttp.ValueHeaderApplicationJson)
	req.Header.Add(commonHttp.KeyHeaderRequestID, log.RequestIDFromContext(c))
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending place order request with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	logger.Info().Msg("sent place order request to order-service")

	logger = logger.With().Str(log.KeyProcess, "decoding place order response").Logger()
	logger.Info().Msg("decoding place order response")
	respBody := map[string]interface{}{}
	err = json.NewDecoder(resp.Body).Decode(&respBody)
	if err != nil {
		err = fmt.Errorf("failed decoding place order response with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err = fmt.Errorf(
			"order service returned status code=%d with message=%s",
			resp.StatusCode,
			respBody["message"],
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("decoded place order response")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	err = st.Clear(c)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("cleared cart")

	return respBody, nil
}

func (s CartService) reduceAndSave(
	c context.Context,
	st store.Store,
	action state.Action,
) (state.Cart, error) {
	cart, err := st.Load(c)
	if err != nil {
		return state.Cart{}, err
	}
	cart = state.Reduce(cart, action)
	err = st.Save(c, cart)
	if err != nil {
		return state.Cart{}, err
	}
	return cart, nil
}

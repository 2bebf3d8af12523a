package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/jithpillai/zstore/cart/internal/common/otel"
	"github.com/jithpillai/zstore/cart/internal/service"
	"github.com/jithpillai/zstore/cart/internal/store"
	"github.com/jithpillai/zstore/cart/pkg/request"
	"github.com/jithpillai/zstore/internal/common"
	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	commonHttp "github.com/jithpillai/zstore/internal/common/http"
	"github.com/jithpillai/zstore/internal/log"
	"github.com/jithpillai/zstore/internal/middleware"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(router *mux.Router, service *service.CartService, secretKey string) {
	controller := CartController{service: service}

	cartRouter := router.PathPrefix("/carts").Subrouter()
	cartRouter.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	cartRouter.HandleFunc("", controller.ResetCart).Methods(http.MethodDelete)
	cartRouter.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	cartRouter.HandleFunc("/items", controller.ClearItems).Methods(http.MethodDelete)
	cartRouter.HandleFunc("/items/{slug}", controller.UpdateItemQuantity).Methods(http.MethodPut)
	cartRouter.HandleFunc("/items/{slug}", controller.RemoveItem).Methods(http.MethodDelete)
	cartRouter.HandleFunc("/shipping-address", controller.SaveShippingAddress).
		Methods(http.MethodPut)
	cartRouter.HandleFunc("/payment-method", controller.SavePaymentMethod).Methods(http.MethodPut)
	cartRouter.Handle(
		"/checkout",
		middleware.Auth(secretKey)(http.HandlerFunc(controller.Checkout)),
	).Methods(http.MethodPost)
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
		Str(log.KeyProcess, "finding cart").
		Logger()

	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := t.service.FindCart(c, store.NewCookieStore(w, r))
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart found",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) ResetCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ResetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ResetCart").
		Str(log.KeyProcess, "resetting cart").
		Logger()

	logger.Info().Msg("resetting cart")
	c = logger.WithContext(c)
	cart, err := t.service.ResetCart(c, store.NewCookieStore(w, r))
	if err != nil {
		err = fmt.Errorf("failed resetting cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("reset cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "reset cart",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.AddCartItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProcess, "adding item to cart").
		Str(log.KeyProductSlug, reqBody.Slug).
		Logger()
	logger.Info().Msg("adding item to cart")
	c = logger.WithContext(c)
	cart, err := t.service.AddItem(c, store.NewCookieStore(w, r), reqBody)
	if err != nil {
		err = fmt.Errorf("failed adding item to cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("added item to cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("added slug=%s to cart", reqBody.Slug),
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateItemQuantity")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateItemQuantity").
		Str(log.KeyProductSlug, slug).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateCartItemQuantity{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "updating item quantity").Logger()
	logger.Info().Msgf("updating slug=%s quantity to %d", slug, reqBody.Quantity)
	c = logger.WithContext(c)
	cart, err := t.service.UpdateItemQuantity(c, store.NewCookieStore(w, r), slug, reqBody.Quantity)
	if err != nil {
		err = fmt.Errorf("failed updating item quantity with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("updated slug=%s quantity to %d", slug, reqBody.Quantity)

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("updated slug=%s quantity", slug),
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveItem").
		Str(log.KeyProductSlug, slug).
		Str(log.KeyProcess, "removing item from cart").
		Logger()

	logger.Info().Msgf("removing slug=%s from cart", slug)
	c = logger.WithContext(c)
	cart, err := t.service.RemoveItem(c, store.NewCookieStore(w, r), slug)
	if err != nil {
		err = fmt.Errorf("failed removing item from cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("removed slug=%s from cart", slug)

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("removed slug=%s from cart", slug),
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) ClearItems(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ClearItems").
		Str(log.KeyProcess, "clearing cart items").
		Logger()

	logger.Info().Msg("clearing cart items")
	c = logger.WithContext(c)
	cart, err := t.service.ClearItems(c, store.NewCookieStore(w, r))
	if err != nil {
		err = fmt.Errorf("failed clearing cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("cleared cart items")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cleared cart items",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) SaveShippingAddress(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController SaveShippingAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController SaveShippingAddress").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.SaveShippingAddress{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "saving shipping address").Logger()
	logger.Info().Msg("saving shipping address")
	c = logger.WithContext(c)
	cart, err := t.service.SaveShippingAddress(c, store.NewCookieStore(w, r), reqBody)
	if err != nil {
		err = fmt.Errorf("failed saving shipping address with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("saved shipping address")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "saved shipping address",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) SavePaymentMethod(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController SavePaymentMethod")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController SavePaymentMethod").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.SavePaymentMethod{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "saving payment method").Logger()
	logger.Info().Msg("saving payment method")
	c = logger.WithContext(c)
	cart, err := t.service.SavePaymentMethod(c, store.NewCookieStore(w, r), reqBody)
	if err != nil {
		err = fmt.Errorf("failed saving payment method with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("saved payment method")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "saved payment method",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController Checkout").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting jwtToken").Logger()
	logger.Info().Msg("getting jwtToken")
	token := common.JwtTokenFromContext(c)
	if token == nil {
		err := fmt.Errorf("failed getting jwtToken with error=%w", commonErrors.ErrTokenInvalid)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("got jwtToken")

	logger = logger.With().Str(log.KeyProcess, "checking out cart").Logger()
	logger.Info().Msg("checking out cart")
	c = logger.WithContext(c)
	order, err := t.service.Checkout(c, store.NewCookieStore(w, r), token)
	if err != nil {
		err = fmt.Errorf("failed checking out cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("checked out cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart successfully checked out",
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func statusCodeFromError(err error) int {
	switch {
	case errors.Is(err, commonErrors.ErrProductNotFound),
		errors.Is(err, commonErrors.ErrCartItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, commonErrors.ErrOutOfStock),
		errors.Is(err, commonErrors.ErrEmptyCart):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

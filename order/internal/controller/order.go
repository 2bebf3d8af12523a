package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/jithpillai/zstore/internal/common"
	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	commonHttp "github.com/jithpillai/zstore/internal/common/http"
	"github.com/jithpillai/zstore/internal/log"
	"github.com/jithpillai/zstore/internal/middleware"
	"github.com/jithpillai/zstore/order/internal/common/otel"
	"github.com/jithpillai/zstore/order/internal/service"
	"github.com/jithpillai/zstore/order/pkg/request"
)

type OrderController struct {
	service *service.OrderService
}

func AttachOrderController(router *mux.Router, service *service.OrderService, secretKey string) {
	controller := OrderController{service: service}

	orderRouter := router.PathPrefix("/orders").Subrouter()
	orderRouter.Use(middleware.Auth(secretKey))
	orderRouter.HandleFunc("", controller.PlaceOrder).Methods(http.MethodPost)
	orderRouter.HandleFunc("", controller.FindOrders).Methods(http.MethodGet)
	orderRouter.HandleFunc("/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
	orderRouter.HandleFunc("/{orderId}/pay", controller.Pay).Methods(http.MethodPut)
	orderRouter.HandleFunc("/{orderId}/cancel", controller.Cancel).Methods(http.MethodPut)

	adminRouter := router.PathPrefix("/admin/orders").Subrouter()
	adminRouter.Use(middleware.Auth(secretKey), middleware.Admin)
	adminRouter.HandleFunc("", controller.FindAllOrders).Methods(http.MethodGet)
	adminRouter.HandleFunc("/{orderId}/deliver", controller.Deliver).Methods(http.MethodPut)
}

func (t OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController PlaceOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController PlaceOrder").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.PlaceOrder{}
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

	logger = logger.With().Str(log.KeyProcess, "getting userId from jwtToken").Logger()
	logger.Info().Msg("getting userId from jwtToken")
	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()
	logger.Info().Msgf("got userId=%s", userId.String())

	logger = logger.With().Str(log.KeyProcess, "placing order").Logger()
	logger.Info().Msg("placing order")
	c = logger.WithContext(c)
	order, err := t.service.PlaceOrder(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed placing order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msg("placed order")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    fmt.Sprintf("orderId=%s placed", order.ID.String()),
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (t OrderController) FindOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrders").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from jwtToken").Logger()
	logger.Info().Msg("getting userId from jwtToken")
	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()
	logger.Info().Msgf("got userId=%s", userId.String())

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	c = logger.WithContext(c)
	orders, err := t.service.FindOrdersByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d orders", len(orders))

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "orders found",
		"data": map[string]interface{}{
			"orders": orders,
		},
	})
}

func (t OrderController) FindAllOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindAllOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindAllOrders").
		Str(log.KeyProcess, "finding orders").
		Logger()

	logger.Info().Msg("finding orders")
	c = logger.WithContext(c)
	orders, err := t.service.FindOrders(c)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d orders", len(orders))

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "orders found",
		"data": map[string]interface{}{
			"orders": orders,
		},
	})
}

func (t OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Logger()

	orderId, userId, ok := t.parseIds(c, w, r, &logger, span)
	if !ok {
		return
	}

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msgf("finding orderId=%s", orderId.String())
	c = logger.WithContext(c)
	order, err := t.service.FindOrderById(c, orderId, userId, common.IsAdminFromJwtToken(c))
	if err != nil {
		err = fmt.Errorf("failed finding orderId=%s with error=%w", orderId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found orderId=%s", orderId.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("orderId=%s found", orderId.String()),
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (t OrderController) Pay(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController Pay")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController Pay").
		Logger()

	orderId, userId, ok := t.parseIds(c, w, r, &logger, span)
	if !ok {
		return
	}

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.PayOrder{}
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
		Str(log.KeyProcess, "paying order").
		Str(log.KeyPaymentID, reqBody.PaymentID).
		Logger()
	logger.Info().Msgf("paying orderId=%s", orderId.String())
	c = logger.WithContext(c)
	order, err := t.service.Pay(c, orderId, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed paying orderId=%s with error=%w", orderId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("paid orderId=%s", orderId.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("orderId=%s paid", orderId.String()),
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (t OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController Cancel")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController Cancel").
		Logger()

	orderId, userId, ok := t.parseIds(c, w, r, &logger, span)
	if !ok {
		return
	}

	logger = logger.With().Str(log.KeyProcess, "cancelling order").Logger()
	logger.Info().Msgf("cancelling orderId=%s", orderId.String())
	c = logger.WithContext(c)
	order, err := t.service.Cancel(c, orderId, userId)
	if err != nil {
		err = fmt.Errorf("failed cancelling orderId=%s with error=%w", orderId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("cancelled orderId=%s", orderId.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("orderId=%s cancelled", orderId.String()),
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (t OrderController) Deliver(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController Deliver")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController Deliver").
		Str(log.KeyProcess, "validating orderId").
		Logger()

	logger.Info().Msg("validating orderId")
	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = fmt.Errorf("failed validating orderId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyOrderID, orderId.String()).Logger()
	logger.Info().Msgf("validated orderId=%s", orderId.String())

	logger = logger.With().Str(log.KeyProcess, "delivering order").Logger()
	logger.Info().Msgf("delivering orderId=%s", orderId.String())
	c = logger.WithContext(c)
	order, err := t.service.Deliver(c, orderId)
	if err != nil {
		err = fmt.Errorf("failed delivering orderId=%s with error=%w", orderId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("delivered orderId=%s", orderId.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("orderId=%s delivered", orderId.String()),
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (t OrderController) parseIds(
	c context.Context,
	w http.ResponseWriter,
	r *http.Request,
	logger *zerolog.Logger,
	span trace.Span,
) (orderId uuid.UUID, userId uuid.UUID, ok bool) {
	lg := logger.With().Str(log.KeyProcess, "validating orderId").Logger()
	lg.Info().Msg("validating orderId")
	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = fmt.Errorf("failed validating orderId with error=%w", err)
		commonErrors.HandleError(err, span)
		lg.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return uuid.Nil, uuid.Nil, false
	}
	lg = lg.With().Str(log.KeyOrderID, orderId.String()).Logger()
	lg.Info().Msgf("validated orderId=%s", orderId.String())

	lg = lg.With().Str(log.KeyProcess, "getting userId from jwtToken").Logger()
	lg.Info().Msg("getting userId from jwtToken")
	userId, err = common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		commonErrors.HandleError(err, span)
		lg.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return uuid.Nil, uuid.Nil, false
	}
	lg = lg.With().Str(log.KeyUserID, userId.String()).Logger()
	lg.Info().Msgf("got userId=%s", userId.String())

	*logger = lg
	return orderId, userId, true
}

func statusCodeFromError(err error) int {
	switch {
	case errors.Is(err, commonErrors.ErrOrderNotFound),
		errors.Is(err, commonErrors.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, commonErrors.ErrAlreadyPaid),
		errors.Is(err, commonErrors.ErrOrderNotPaid),
		errors.Is(err, commonErrors.ErrInvalidTransition),
		errors.Is(err, commonErrors.ErrOutOfStock):
		return http.StatusConflict
	case errors.Is(err, commonErrors.ErrPaymentNotVerified):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

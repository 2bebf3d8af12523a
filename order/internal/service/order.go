package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	"github.com/jithpillai/zstore/internal/log"
	"github.com/jithpillai/zstore/internal/repository"
	"github.com/jithpillai/zstore/order/internal/common/cache"
	"github.com/jithpillai/zstore/order/internal/common/otel"
	"github.com/jithpillai/zstore/order/internal/gateway"
	"github.com/jithpillai/zstore/order/pkg/pricing"
	"github.com/jithpillai/zstore/order/pkg/request"
	"github.com/jithpillai/zstore/order/pkg/response"
	"github.com/jithpillai/zstore/order/pkg/status"
)

type OrderService struct {
	pool      *pgxpool.Pool
	queries   *repository.Queries
	cache     *redis.Client
	gateway   gateway.Gateway
	rules     pricing.Rules
	keySecret string
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	gw gateway.Gateway,
	rules pricing.Rules,
	keySecret string,
) OrderService {
	return OrderService{
		pool:      pool,
		queries:   queries,
		cache:     cache,
		gateway:   gw,
		rules:     rules,
		keySecret: keySecret,
	}
}

func (s OrderService) PlaceOrder(
	c context.Context,
	userId uuid.UUID,
	param request.PlaceOrder,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService PlaceOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService PlaceOrder").
		Str(log.KeyUserID, userId.String()).
		Int(log.KeyOrderItems, len(param.OrderItems)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	defer func(lg zerolog.Logger) {
		rollbackErr := tx.Rollback(c)
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			rollbackErr = fmt.Errorf("failed rolling back transaction with error=%w", rollbackErr)
			commonErrors.HandleError(rollbackErr, span)
			lg.Error().Err(rollbackErr).Msg(rollbackErr.Error())
		}
	}(logger)
	logger.Info().Msg("initialized transaction")

	queries := s.queries.WithTx(tx)

	// Stock is re-checked and decremented atomically so a burst of
	// concurrent orders cannot oversell a product.
	logger = logger.With().Str(log.KeyProcess, "decrementing stock").Logger()
	logger.Info().Msg("decrementing stock for every line item")
	for _, item := range param.OrderItems {
		remaining, err := queries.DecrementProductStock(
			c,
			repository.DecrementProductStockParams{Slug: item.Slug, Quantity: item.Quantity},
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				err = commonErrors.ErrOutOfStock
			}
			err = fmt.Errorf(
				"failed decrementing stock for slug=%s quantity=%d with error=%w",
				item.Slug,
				item.Quantity,
				err,
			)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		logger.Info().
			Msgf("decremented stock for slug=%s quantity=%d remaining=%d", item.Slug, item.Quantity, remaining)
	}
	logger.Info().Msg("decremented stock for every line item")

	logger = logger.With().Str(log.KeyProcess, "computing price breakdown").Logger()
	logger.Info().Msg("computing price breakdown")
	lines := make([]pricing.Line, len(param.OrderItems))
	for i, item := range param.OrderItems {
		lines[i] = pricing.Line{Price: item.Price, Quantity: item.Quantity}
	}
	breakdown := pricing.Compute(lines, s.rules)
	logger.Info().Msg("computed price breakdown")

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	order, err := queries.InsertOrder(c, repository.InsertOrderParams{
		ID:            uuid.New(),
		UserID:        userId,
		Status:        status.Created.String(),
		PaymentMethod: param.PaymentMethod,
		FullName:      param.ShippingAddress.FullName,
		Address:       param.ShippingAddress.Address,
		City:          param.ShippingAddress.City,
		PostalCode:    param.ShippingAddress.PostalCode,
		Country:       param.ShippingAddress.Country,
		ItemsPrice:    breakdown.ItemsPrice,
		TaxPrice:      breakdown.TaxPrice,
		ShippingPrice: breakdown.ShippingPrice,
		TotalPrice:    breakdown.TotalPrice,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "inserting order items").Logger()
	logger.Info().Msg("inserting order items")
	itemParams := make([]repository.InsertOrderItemParams, len(param.OrderItems))
	for i, item := range param.OrderItems {
		product, err := queries.FindProductBySlug(c, item.Slug)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				err = commonErrors.ErrProductNotFound
			}
			err = fmt.Errorf("failed finding product by slug=%s with error=%w", item.Slug, err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		itemParams[i] = repository.InsertOrderItemParams{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Slug:      item.Slug,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}
	insertedCount, err := queries.InsertOrderItems(c, itemParams)
	if err != nil {
		err = fmt.Errorf("failed inserting order items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("inserted %d order items", insertedCount)

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("committed transaction")

	s.invalidateCache(c, order.ID, userId)

	items, err := s.queries.FindOrderItemsByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	return response.FromRepository(order, items), nil
}

func (s OrderService) FindOrderById(
	c context.Context,
	orderId uuid.UUID,
	userId uuid.UUID,
	isAdmin bool,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyOrders, orderId.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyOrderID, orderId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order in cache").Logger()
	logger.Info().Msg("finding order in cache")
	jsonCache, err := s.cache.Get(c, cacheKey).Result()
	if err == nil {
		order := response.Order{}
		err = json.Unmarshal([]byte(jsonCache), &order)
		if err == nil {
			if !isAdmin && order.UserID != userId {
				err = fmt.Errorf(
					"failed finding orderId=%s with error=%w",
					orderId.String(),
					commonErrors.ErrOrderNotFound,
				)
				commonErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Order{}, err
			}
			logger.Info().Msg("found order in cache")
			return order, nil
		}
		logger.Info().Err(err).Msg("failed unmarshaling cached order, falling back to db")
	}

	logger = logger.With().Str(log.KeyProcess, "finding order in db").Logger()
	logger.Info().Msg("finding order in db")
	order, err := s.findOrder(c, orderId)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if !isAdmin && order.UserID != userId {
		err = fmt.Errorf(
			"failed finding orderId=%s with error=%w",
			orderId.String(),
			commonErrors.ErrOrderNotFound,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order in db")

	logger = logger.With().Str(log.KeyProcess, "inserting order to cache").Logger()
	logger.Info().Msg("inserting order to cache")
	orderJson, err := json.Marshal(order)
	if err != nil {
		err = fmt.Errorf("failed marshaling order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	err = s.cache.Set(c, cacheKey, orderJson, time.Hour).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting order to cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("inserted order to cache")

	return order, nil
}

func (s OrderService) FindOrdersByUserId(
	c context.Context,
	userId uuid.UUID,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrdersByUserId")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyOrdersByUserId, userId.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrdersByUserId").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding orders in cache").Logger()
	logger.Info().Msg("finding orders in cache")
	jsonCache, err := s.cache.Get(c, cacheKey).Result()
	if err == nil {
		cached := []response.Order{}
		err = json.Unmarshal([]byte(jsonCache), &cached)
		if err == nil {
			logger.Info().Msgf("found %d orders in cache", len(cached))
			return cached, nil
		}
		logger.Info().Err(err).Msg("failed unmarshaling cached orders, falling back to db")
	}

	logger = logger.With().Str(log.KeyProcess, "finding orders by userId").Logger()
	logger.Info().Msgf("finding orders by userId=%s", userId.String())
	orders, err := s.queries.FindOrdersByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders by userId=%s with error=%w", userId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders by userId=%s", len(orders), userId.String())

	responses, err := s.withItems(c, logger, orders)
	if err != nil {
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "inserting orders to cache").Logger()
	logger.Info().Msg("inserting orders to cache")
	ordersJson, err := json.Marshal(responses)
	if err != nil {
		err = fmt.Errorf("failed marshaling orders with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	err = s.cache.Set(c, cacheKey, ordersJson, time.Hour).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting orders to cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("inserted orders to cache")

	return responses, nil
}

func (s OrderService) FindOrders(c context.Context) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrders").
		Str(log.KeyProcess, "finding orders").
		Logger()

	logger.Info().Msg("finding orders")
	orders, err := s.queries.FindOrders(c)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders", len(orders))

	return s.withItems(c, logger, orders)
}

func (s OrderService) Pay(
	c context.Context,
	orderId uuid.UUID,
	userId uuid.UUID,
	param request.PayOrder,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService Pay")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService Pay").
		Str(log.KeyOrderID, orderId.String()).
		Str(log.KeyPaymentID, param.PaymentID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msgf("finding orderId=%s", orderId.String())
	order, err := s.findRow(c, orderId)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if order.UserID != userId {
		err = fmt.Errorf(
			"failed finding orderId=%s with error=%w",
			orderId.String(),
			commonErrors.ErrOrderNotFound,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderStatus, order.Status).Logger()
	logger.Info().Msgf("found orderId=%s", orderId.String())

	logger = logger.With().Str(log.KeyProcess, "checking order status").Logger()
	logger.Info().Msg("checking order status")
	current, err := status.Parse(order.Status)
	if err != nil {
		err = fmt.Errorf("failed parsing order status with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if current == status.Paid {
		err = fmt.Errorf(
			"failed paying orderId=%s with error=%w",
			orderId.String(),
			commonErrors.ErrAlreadyPaid,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if !current.CanTransition(status.Paid) {
		err = fmt.Errorf(
			"failed paying orderId=%s in status=%s with error=%w",
			orderId.String(),
			order.Status,
			commonErrors.ErrInvalidTransition,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("checked order status")

	logger = logger.With().Str(log.KeyProcess, "verifying payment").Logger()
	logger.Info().Msg("verifying payment")
	err = s.verifyPayment(c, order, param)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("verified payment")

	logger = logger.With().Str(log.KeyProcess, "marking order paid").Logger()
	logger.Info().Msg("marking order paid")
	paid, err := s.queries.MarkOrderPaid(c, repository.MarkOrderPaidParams{
		ID:         orderId,
		Status:     status.Paid.String(),
		PaymentID:  param.PaymentID,
		PaidAt:     time.Now(),
		FromStatus: status.Created.String(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost the race to another transition after the check above.
			err = commonErrors.ErrInvalidTransition
		}
		err = fmt.Errorf("failed marking orderId=%s paid with error=%w", orderId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("marked order paid")

	s.invalidateCache(c, orderId, order.UserID)

	items, err := s.queries.FindOrderItemsByOrderId(c, orderId)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	return response.FromRepository(paid, items), nil
}

func (s OrderService) Deliver(c context.Context, orderId uuid.UUID) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService Deliver")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService Deliver").
		Str(log.KeyOrderID, orderId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "marking order delivered").Logger()
	logger.Info().Msg("marking order delivered")
	delivered, err := s.queries.MarkOrderDelivered(c, repository.MarkOrderDeliveredParams{
		ID:          orderId,
		Status:      status.Delivered.String(),
		DeliveredAt: time.Now(),
		FromStatus:  status.Paid.String(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = s.explainDeliverFailure(c, orderId)
		}
		err = fmt.Errorf("failed marking orderId=%s delivered with error=%w", orderId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("marked order delivered")

	s.invalidateCache(c, orderId, delivered.UserID)

	items, err := s.queries.FindOrderItemsByOrderId(c, orderId)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	return response.FromRepository(delivered, items), nil
}

func (s OrderService) Cancel(
	c context.Context,
	orderId uuid.UUID,
	userId uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService Cancel")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService Cancel").
		Str(log.KeyOrderID, orderId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msgf("finding orderId=%s", orderId.String())
	order, err := s.findRow(c, orderId)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if order.UserID != userId {
		err = fmt.Errorf(
			"failed finding orderId=%s with error=%w",
			orderId.String(),
			commonErrors.ErrOrderNotFound,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("found orderId=%s", orderId.String())

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	defer func(lg zerolog.Logger) {
		rollbackErr := tx.Rollback(c)
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			rollbackErr = fmt.Errorf("failed rolling back transaction with error=%w", rollbackErr)
			commonErrors.HandleError(rollbackErr, span)
			lg.Error().Err(rollbackErr).Msg(rollbackErr.Error())
		}
	}(logger)
	logger.Info().Msg("initialized transaction")

	queries := s.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "marking order cancelled").Logger()
	logger.Info().Msg("marking order cancelled")
	cancelled, err := queries.MarkOrderCancelled(c, repository.MarkOrderCancelledParams{
		ID:         orderId,
		Status:     status.Cancelled.String(),
		FromStatus: status.Created.String(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrInvalidTransition
		}
		err = fmt.Errorf("failed marking orderId=%s cancelled with error=%w", orderId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("marked order cancelled")

	logger = logger.With().Str(log.KeyProcess, "restoring stock").Logger()
	logger.Info().Msg("restoring stock for every line item")
	items, err := queries.FindOrderItemsByOrderId(c, orderId)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	for _, item := range items {
		_, err = queries.IncrementProductStock(
			c,
			repository.IncrementProductStockParams{Slug: item.Slug, Quantity: item.Quantity},
		)
		if err != nil {
			err = fmt.Errorf(
				"failed restoring stock for slug=%s quantity=%d with error=%w",
				item.Slug,
				item.Quantity,
				err,
			)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
	}
	logger.Info().Msg("restored stock for every line item")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("committed transaction")

	s.invalidateCache(c, orderId, order.UserID)

	return response.FromRepository(cancelled, items), nil
}

// verifyPayment requires both a valid callback signature and a matching
// captured payment re-queried from the gateway; a client-supplied payment
// id alone is never trusted.
func (s OrderService) verifyPayment(
	c context.Context,
	order repository.Order,
	param request.PayOrder,
) error {
	if !gateway.VerifySignature(order.ID.String(), param.PaymentID, param.Signature, s.keySecret) {
		return fmt.Errorf(
			"failed verifying signature for paymentId=%s with error=%w",
			param.PaymentID,
			commonErrors.ErrPaymentNotVerified,
		)
	}
	payment, err := s.gateway.FindPaymentById(c, param.PaymentID)
	if err != nil {
		return fmt.Errorf(
			"failed finding paymentId=%s in gateway with error=%w",
			param.PaymentID,
			errors.Join(err, commonErrors.ErrPaymentNotVerified),
		)
	}
	if payment.Status != gateway.StatusCaptured {
		return fmt.Errorf(
			"paymentId=%s has status=%s with error=%w",
			param.PaymentID,
			payment.Status,
			commonErrors.ErrPaymentNotVerified,
		)
	}
	if !payment.Amount.Equal(order.TotalPrice) {
		return fmt.Errorf(
			"paymentId=%s amount=%s does not match order total=%s with error=%w",
			param.PaymentID,
			payment.Amount.String(),
			order.TotalPrice.String(),
			commonErrors.ErrPaymentNotVerified,
		)
	}
	return nil
}

func (s OrderService) findRow(c context.Context, orderId uuid.UUID) (repository.Order, error) {
	order, err := s.queries.FindOrderById(c, orderId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrOrderNotFound
		}
		return repository.Order{}, fmt.Errorf(
			"failed finding orderId=%s with error=%w",
			orderId.String(),
			err,
		)
	}
	return order, nil
}

func (s OrderService) findOrder(c context.Context, orderId uuid.UUID) (response.Order, error) {
	order, err := s.findRow(c, orderId)
	if err != nil {
		return response.Order{}, err
	}
	items, err := s.queries.FindOrderItemsByOrderId(c, orderId)
	if err != nil {
		return response.Order{}, fmt.Errorf(
			"failed finding order items for orderId=%s with error=%w",
			orderId.String(),
			err,
		)
	}
	return response.FromRepository(order, items), nil
}

func (s OrderService) explainDeliverFailure(c context.Context, orderId uuid.UUID) error {
	order, err := s.queries.FindOrderById(c, orderId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commonErrors.ErrOrderNotFound
		}
		return err
	}
	if order.Status == status.Created.String() {
		return commonErrors.ErrOrderNotPaid
	}
	return commonErrors.ErrInvalidTransition
}

func (s OrderService) withItems(
	c context.Context,
	logger zerolog.Logger,
	orders []repository.Order,
) ([]response.Order, error) {
	responses := make([]response.Order, len(orders))
	for i, order := range orders {
		items, err := s.queries.FindOrderItemsByOrderId(c, order.ID)
		if err != nil {
			err = fmt.Errorf(
				"failed finding order items for orderId=%s with error=%w",
				order.ID.String(),
				err,
			)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		responses[i] = response.FromRepository(order, items)
	}
	return responses, nil
}

func (s OrderService) invalidateCache(c context.Context, orderId, userId uuid.UUID) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService invalidateCache").
		Str(log.KeyOrderID, orderId.String()).
		Logger()

	err := s.cache.Del(
		c,
		fmt.Sprintf(cache.KeyOrders, orderId.String()),
		fmt.Sprintf(cache.KeyOrdersByUserId, userId.String()),
	).Err()
	if err != nil {
		logger.Info().Err(err).Msg("failed invalidating order cache")
	}
}

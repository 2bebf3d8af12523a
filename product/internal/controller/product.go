package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	commonHttp "github.com/jithpillai/zstore/internal/common/http"
	"github.com/jithpillai/zstore/internal/log"
	"github.com/jithpillai/zstore/internal/middleware"
	"github.com/jithpillai/zstore/product/internal/common/otel"
	"github.com/jithpillai/zstore/product/internal/service"
	"github.com/jithpillai/zstore/product/pkg/request"
)

type ProductController struct {
	service *service.ProductService
}

func AttachProductController(
	router *mux.Router,
	service *service.ProductService,
	secretKey string,
) {
	controller := ProductController{service: service}

	productRouter := router.PathPrefix("/products").Subrouter()
	productRouter.HandleFunc("", controller.FindProducts).Methods(http.MethodGet)
	productRouter.HandleFunc("/{slug}", controller.FindProductBySlug).Methods(http.MethodGet)
	productRouter.HandleFunc("/{slug}/stock", controller.FindProductStock).Methods(http.MethodGet)

	adminRouter := router.PathPrefix("/admin/products").Subrouter()
	adminRouter.Use(middleware.Auth(secretKey), middleware.Admin)
	adminRouter.HandleFunc("", controller.InsertSampleProduct).Methods(http.MethodPost)
	adminRouter.HandleFunc("/{productId}", controller.UpdateProduct).Methods(http.MethodPut)
	adminRouter.HandleFunc("/{productId}", controller.DeleteProduct).Methods(http.MethodDelete)
}

func (t ProductController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProducts").
		Str(log.KeyProcess, "finding products").
		Logger()

	query := r.URL.Query()
	param := request.FindProducts{
		Category:   query.Get("category"),
		IsFeatured: parseBoolQuery(query.Get("featured")),
		IsLatest:   parseBoolQuery(query.Get("latest")),
		OnSale:     parseBoolQuery(query.Get("onSale")),
	}

	logger.Info().Msg("finding products")
	c = logger.WithContext(c)
	products, err := t.service.FindProducts(c, param)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d products", len(products))

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "products found",
		"data": map[string]interface{}{
			"products": products,
		},
	})
}

func (t ProductController) FindProductBySlug(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductBySlug")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductBySlug").
		Str(log.KeyProductSlug, slug).
		Str(log.KeyProcess, "finding product").
		Logger()

	logger.Info().Msgf("finding product by slug=%s", slug)
	c = logger.WithContext(c)
	product, err := t.service.FindProductBySlug(c, slug)
	if err != nil {
		err = fmt.Errorf("failed finding product by slug=%s with error=%w", slug, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found product by slug=%s", slug)

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product slug=%s found", slug),
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (t ProductController) FindProductStock(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductStock")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductStock").
		Str(log.KeyProductSlug, slug).
		Str(log.KeyProcess, "finding live stock").
		Logger()

	logger.Info().Msgf("finding live stock for slug=%s", slug)
	c = logger.WithContext(c)
	countInStock, err := t.service.FindProductStock(c, slug)
	if err != nil {
		err = fmt.Errorf("failed finding live stock for slug=%s with error=%w", slug, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found live stock=%d for slug=%s", countInStock, slug)

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("stock for slug=%s found", slug),
		"data": map[string]interface{}{
			"slug":         slug,
			"countInStock": countInStock,
		},
	})
}

func (t ProductController) InsertSampleProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController InsertSampleProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController InsertSampleProduct").
		Str(log.KeyProcess, "inserting sample product").
		Logger()

	logger.Info().Msg("inserting sample product")
	c = logger.WithContext(c)
	product, err := t.service.InsertSampleProduct(c)
	if err != nil {
		err = fmt.Errorf("failed inserting sample product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("inserted sample product id=%s", product.ID.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    fmt.Sprintf("product id=%s created", product.ID.String()),
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (t ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UpdateProduct").
		Str(log.KeyProcess, "validating productId").
		Logger()

	logger.Info().Msg("validating productId")
	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed validating productId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()
	logger.Info().Msgf("validated productId=%s", productId.String())

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateProduct{}
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

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	logger.Info().Msgf("updating productId=%s", productId.String())
	c = logger.WithContext(c)
	product, err := t.service.UpdateProduct(c, productId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating productId=%s with error=%w", productId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("updated productId=%s", productId.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product id=%s updated", productId.String()),
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (t ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController DeleteProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController DeleteProduct").
		Str(log.KeyProcess, "validating productId").
		Logger()

	logger.Info().Msg("validating productId")
	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed validating productId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()
	logger.Info().Msgf("validated productId=%s", productId.String())

	logger = logger.With().Str(log.KeyProcess, "deleting product").Logger()
	logger.Info().Msgf("deleting productId=%s", productId.String())
	c = logger.WithContext(c)
	err = t.service.DeleteProduct(c, productId)
	if err != nil {
		err = fmt.Errorf("failed deleting productId=%s with error=%w", productId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("deleted productId=%s", productId.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product id=%s deleted", productId.String()),
	})
}

func parseBoolQuery(value string) bool {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}

func statusCodeFromError(err error) int {
	if errors.Is(err, commonErrors.ErrProductNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	"github.com/jithpillai/zstore/internal/log"
	"github.com/jithpillai/zstore/internal/repository"
	"github.com/jithpillai/zstore/product/internal/common/cache"
	"github.com/jithpillai/zstore/product/internal/common/otel"
	"github.com/jithpillai/zstore/product/pkg/request"
)

type ProductService struct {
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(queries *repository.Queries, cache *redis.Client) ProductService {
	return ProductService{queries: queries, cache: cache}
}

func (s ProductService) FindProducts(
	c context.Context,
	param request.FindProducts,
) ([]repository.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	cacheKey := fmt.Sprintf(
		cache.KeyProductsFilter,
		fmt.Sprintf(
			"%s:%t:%t:%t",
			param.Category,
			param.IsFeatured,
			param.IsLatest,
			param.OnSale,
		),
	)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding products in cache").Logger()
	logger.Info().Msg("finding products in cache")
	jsonCache, err := s.cache.Get(c, cacheKey).Result()
	if err == nil {
		products := []repository.Product{}
		err = json.Unmarshal([]byte(jsonCache), &products)
		if err == nil {
			logger.Info().Msg("found products in cache")
			return products, nil
		}
		logger.Info().Err(err).Msg("failed unmarshaling cached products, falling back to db")
	}

	logger = logger.With().Str(log.KeyProcess, "finding products in db").Logger()
	logger.Info().Msg("finding products in db")
	products, err := s.queries.FindProducts(c, repository.FindProductsParams{
		Category:   param.Category,
		IsFeatured: param.IsFeatured,
		IsLatest:   param.IsLatest,
		OnSale:     param.OnSale,
	})
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products in db", len(products))

	logger = logger.With().Str(log.KeyProcess, "inserting products to cache").Logger()
	logger.Info().Msg("inserting products to cache")
	productsJson, err := json.Marshal(products)
	if err != nil {
		err = fmt.Errorf("failed marshaling products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	// Filter cache entries are keyed by filter combination so they cannot
	// be enumerated for invalidation; a short TTL bounds staleness instead.
	err = s.cache.Set(c, cacheKey, productsJson, 5*time.Minute).Err()
	if err != nil {
		logger.Info().Err(err).Msg("failed inserting products to cache")
	}
	logger.Info().Msg("inserted products to cache")

	return products, nil
}

func (s ProductService) FindProductBySlug(
	c context.Context,
	slug string,
) (repository.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductBySlug")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyProducts, slug)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductBySlug").
		Str(log.KeyProductSlug, slug).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Info().Msg("finding product in cache")
	jsonCache, err := s.cache.Get(c, cacheKey).Result()
	if err == nil {
		product := repository.Product{}
		err = json.Unmarshal([]byte(jsonCache), &product)
		if err == nil {
			logger.Info().Msg("found product in cache")
			return product, nil
		}
		logger.Info().Err(err).Msg("failed unmarshaling cached product, falling back to db")
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in db").Logger()
	logger.Info().Msg("finding product in db")
	product, err := s.queries.FindProductBySlug(c, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding product by slug=%s with error=%w", slug, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Product{}, err
	}
	logger.Info().Msg("found product in db")

	logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
	logger.Info().Msg("inserting product to cache")
	productJson, err := json.Marshal(product)
	if err != nil {
		err = fmt.Errorf("failed marshaling product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Product{}, err
	}
	err = s.cache.Set(c, cacheKey, productJson, time.Hour).Err()
	if err != nil {
		logger.Info().Err(err).Msg("failed inserting product to cache")
	}
	logger.Info().Msg("inserted product to cache")

	return product, nil
}

// FindProductStock reads the live stock straight from the database; the
// stock check protocol exists precisely because cached snapshots go stale.
func (s ProductService) FindProductStock(c context.Context, slug string) (int32, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductStock")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductStock").
		Str(log.KeyProductSlug, slug).
		Str(log.KeyProcess, "finding live stock").
		Logger()

	logger.Info().Msgf("finding live stock for slug=%s", slug)
	product, err := s.queries.FindProductBySlug(c, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding product by slug=%s with error=%w", slug, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return 0, err
	}
	logger.Info().Msgf("found live stock=%d for slug=%s", product.CountInStock, slug)

	return product.CountInStock, nil
}

// InsertSampleProduct creates a placeholder product for the admin to edit,
// the same flow the storefront back-office uses.
func (s ProductService) InsertSampleProduct(c context.Context) (repository.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertSampleProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertSampleProduct").
		Str(log.KeyProcess, "inserting sample product").
		Logger()

	id := uuid.New()
	logger.Info().Msgf("inserting sample product id=%s", id.String())
	product, err := s.queries.InsertProduct(c, repository.InsertProductParams{
		ID:           id,
		Slug:         "sample-product-" + id.String()[:8],
		Name:         "Sample product",
		Image:        "/images/sample.jpg",
		Banner:       "",
		Price:        decimal.Zero,
		Category:     "Sample category",
		Brand:        "Sample brand",
		CountInStock: 0,
		Description:  "Sample description",
		Rating:       decimal.Zero,
		NumReviews:   0,
		IsFeatured:   false,
		IsLatest:     false,
		OnSale:       false,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting sample product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Product{}, err
	}
	logger.Info().Msgf("inserted sample product id=%s", id.String())

	return product, nil
}

func (s ProductService) UpdateProduct(
	c context.Context,
	id uuid.UUID,
	param request.UpdateProduct,
) (repository.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Str(log.KeyProductID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product by id").Logger()
	logger.Info().Msgf("finding product by id=%s", id.String())
	existing, err := s.queries.FindProductById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding product by id=%s with error=%w", id.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Product{}, err
	}
	logger.Info().Msgf("found product by id=%s", id.String())

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	logger.Info().Msgf("updating product id=%s", id.String())
	product, err := s.queries.UpdateProduct(c, repository.UpdateProductParams{
		ID:           id,
		Slug:         param.Slug,
		Name:         param.Name,
		Image:        param.Image,
		Banner:       param.Banner,
		Price:        param.Price,
		Category:     param.Category,
		Brand:        param.Brand,
		CountInStock: param.CountInStock,
		Description:  param.Description,
		IsFeatured:   param.IsFeatured,
		IsLatest:     param.IsLatest,
		OnSale:       param.OnSale,
	})
	if err != nil {
		err = fmt.Errorf("failed updating product id=%s with error=%w", id.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Product{}, err
	}
	logger.Info().Msgf("updated product id=%s", id.String())

	s.invalidateCache(c, existing.Slug, product.Slug)

	return product, nil
}

func (s ProductService) DeleteProduct(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "ProductService DeleteProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService DeleteProduct").
		Str(log.KeyProductID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product by id").Logger()
	logger.Info().Msgf("finding product by id=%s", id.String())
	existing, err := s.queries.FindProductById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding product by id=%s with error=%w", id.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("found product by id=%s", id.String())

	logger = logger.With().Str(log.KeyProcess, "deleting product").Logger()
	logger.Info().Msgf("deleting product id=%s", id.String())
	deletedCount, err := s.queries.DeleteProductById(c, id)
	if err != nil {
		err = fmt.Errorf("failed deleting product id=%s with error=%w", id.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if deletedCount == 0 {
		err = fmt.Errorf(
			"failed deleting product id=%s with error=%w",
			id.String(),
			commonErrors.ErrProductNotFound,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("deleted product id=%s", id.String())

	s.invalidateCache(c, existing.Slug)

	return nil
}

func (s ProductService) invalidateCache(c context.Context, slugs ...string) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService invalidateCache").
		Logger()

	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, fmt.Sprintf(cache.KeyProducts, slug))
	}
	err := s.cache.Del(c, keys...).Err()
	if err != nil {
		logger.Info().Err(err).Msg("failed invalidating product cache")
	}
}

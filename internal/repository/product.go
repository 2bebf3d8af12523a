package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uuid.UUID       `json:"id"`
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Banner       string          `json:"banner"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	CountInStock int32           `json:"count_in_stock"`
	Description  string          `json:"description"`
	Rating       decimal.Decimal `json:"rating"`
	NumReviews   int32           `json:"num_reviews"`
	IsFeatured   bool            `json:"is_featured"`
	IsLatest     bool            `json:"is_latest"`
	OnSale       bool            `json:"on_sale"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

const productColumns = `id, slug, name, image, banner, price, category, brand, count_in_stock,
description, rating, num_reviews, is_featured, is_latest, on_sale, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...interface{}) error }) (Product, error) {
	var p Product
	var price, rating pgtype.Numeric
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Image,
		&p.Banner,
		&price,
		&p.Category,
		&p.Brand,
		&p.CountInStock,
		&p.Description,
		&rating,
		&p.NumReviews,
		&p.IsFeatured,
		&p.IsLatest,
		&p.OnSale,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	p.Price = DecimalFromNumeric(price)
	p.Rating = DecimalFromNumeric(rating)
	return p, nil
}

const insertProduct = `
INSERT INTO products (id, slug, name, image, banner, price, category, brand, count_in_stock,
	description, rating, num_reviews, is_featured, is_latest, on_sale)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING ` + productColumns

type InsertProductParams struct {
	ID           uuid.UUID
	Slug         string
	Name         string
	Image        string
	Banner       string
	Price        decimal.Decimal
	Category     string
	Brand        string
	CountInStock int32
	Description  string
	Rating       decimal.Decimal
	NumReviews   int32
	IsFeatured   bool
	IsLatest     bool
	OnSale       bool
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(c, insertProduct,
		arg.ID,
		arg.Slug,
		arg.Name,
		arg.Image,
		arg.Banner,
		NumericFromDecimal(arg.Price),
		arg.Category,
		arg.Brand,
		arg.CountInStock,
		arg.Description,
		NumericFromDecimal(arg.Rating),
		arg.NumReviews,
		arg.IsFeatured,
		arg.IsLatest,
		arg.OnSale,
	)
	return scanProduct(row)
}

const findProductBySlug = `
SELECT ` + productColumns + `
FROM products
WHERE slug = $1
`

func (q *Queries) FindProductBySlug(c context.Context, slug string) (Product, error) {
	return scanProduct(q.db.QueryRow(c, findProductBySlug, slug))
}

const findProductById = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	return scanProduct(q.db.QueryRow(c, findProductById, id))
}

const findProducts = `
SELECT ` + productColumns + `
FROM products
WHERE ($1::text = '' OR category = $1)
  AND (NOT $2::bool OR is_featured)
  AND (NOT $3::bool OR is_latest)
  AND (NOT $4::bool OR on_sale)
ORDER BY created_at DESC
`

type FindProductsParams struct {
	Category   string
	IsFeatured bool
	IsLatest   bool
	OnSale     bool
}

func (q *Queries) FindProducts(c context.Context, arg FindProductsParams) ([]Product, error) {
	rows, err := q.db.Query(c, findProducts, arg.Category, arg.IsFeatured, arg.IsLatest, arg.OnSale)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

const updateProduct = `
UPDATE products
SET slug = $2, name = $3, image = $4, banner = $5, price = $6, category = $7, brand = $8,
	count_in_stock = $9, description = $10, is_featured = $11, is_latest = $12, on_sale = $13,
	updated_at = NOW()
WHERE id = $1
RETURNING ` + productColumns

type UpdateProductParams struct {
	ID           uuid.UUID
	Slug         string
	Name         string
	Image        string
	Banner       string
	Price        decimal.Decimal
	Category     string
	Brand        string
	CountInStock int32
	Description  string
	IsFeatured   bool
	IsLatest     bool
	OnSale       bool
}

func (q *Queries) UpdateProduct(c context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(c, updateProduct,
		arg.ID,
		arg.Slug,
		arg.Name,
		arg.Image,
		arg.Banner,
		NumericFromDecimal(arg.Price),
		arg.Category,
		arg.Brand,
		arg.CountInStock,
		arg.Description,
		arg.IsFeatured,
		arg.IsLatest,
		arg.OnSale,
	)
	return scanProduct(row)
}

const deleteProductById = `
DELETE FROM products
WHERE id = $1
`

func (q *Queries) DeleteProductById(c context.Context, id uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteProductById, id)
	return tag.RowsAffected(), err
}

// DecrementProductStock atomically decreases stock, refusing to go below
// zero. Returns the remaining stock; pgx.ErrNoRows means insufficient stock.
const decrementProductStock = `
UPDATE products
SET count_in_stock = count_in_stock - $2, updated_at = NOW()
WHERE slug = $1 AND count_in_stock >= $2
RETURNING count_in_stock
`

type DecrementProductStockParams struct {
	Slug     string
	Quantity int32
}

func (q *Queries) DecrementProductStock(
	c context.Context,
	arg DecrementProductStockParams,
) (int32, error) {
	var remaining int32
	err := q.db.QueryRow(c, decrementProductStock, arg.Slug, arg.Quantity).Scan(&remaining)
	return remaining, err
}

const incrementProductStock = `
UPDATE products
SET count_in_stock = count_in_stock + $2, updated_at = NOW()
WHERE slug = $1
RETURNING count_in_stock
`

type IncrementProductStockParams struct {
	Slug     string
	Quantity int32
}

func (q *Queries) IncrementProductStock(
	c context.Context,
	arg IncrementProductStockParams,
) (int32, error) {
	var remaining int32
	err := q.db.QueryRow(c, incrementProductStock, arg.Slug, arg.Quantity).Scan(&remaining)
	return remaining, err
}

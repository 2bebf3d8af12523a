package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	PaymentID     *string         `json:"payment_id"`
	FullName      string          `json:"full_name"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	PostalCode    string          `json:"postal_code"`
	Country       string          `json:"country"`
	ItemsPrice    decimal.Decimal `json:"items_price"`
	TaxPrice      decimal.Decimal `json:"tax_price"`
	ShippingPrice decimal.Decimal `json:"shipping_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaidAt        *time.Time      `json:"paid_at"`
	DeliveredAt   *time.Time      `json:"delivered_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
}

const orderColumns = `id, user_id, status, payment_method, payment_id, full_name, address, city,
postal_code, country, items_price, tax_price, shipping_price, total_price, paid_at,
delivered_at, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...interface{}) error }) (Order, error) {
	var o Order
	var itemsPrice, taxPrice, shippingPrice, totalPrice pgtype.Numeric
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.PaymentMethod,
		&o.PaymentID,
		&o.FullName,
		&o.Address,
		&o.City,
		&o.PostalCode,
		&o.Country,
		&itemsPrice,
		&taxPrice,
		&shippingPrice,
		&totalPrice,
		&o.PaidAt,
		&o.DeliveredAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	o.ItemsPrice = DecimalFromNumeric(itemsPrice)
	o.TaxPrice = DecimalFromNumeric(taxPrice)
	o.ShippingPrice = DecimalFromNumeric(shippingPrice)
	o.TotalPrice = DecimalFromNumeric(totalPrice)
	return o, nil
}

const insertOrder = `
INSERT INTO orders (id, user_id, status, payment_method, full_name, address, city, postal_code,
	country, items_price, tax_price, shipping_price, total_price)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + orderColumns

type InsertOrderParams struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Status        string
	PaymentMethod string
	FullName      string
	Address       string
	City          string
	PostalCode    string
	Country       string
	ItemsPrice    decimal.Decimal
	TaxPrice      decimal.Decimal
	ShippingPrice decimal.Decimal
	TotalPrice    decimal.Decimal
}

func (q *Queries) InsertOrder(c context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(c, insertOrder,
		arg.ID,
		arg.UserID,
		arg.Status,
		arg.PaymentMethod,
		arg.FullName,
		arg.Address,
		arg.City,
		arg.PostalCode,
		arg.Country,
		NumericFromDecimal(arg.ItemsPrice),
		NumericFromDecimal(arg.TaxPrice),
		NumericFromDecimal(arg.ShippingPrice),
		NumericFromDecimal(arg.TotalPrice),
	)
	return scanOrder(row)
}

const insertOrderItem = `
INSERT INTO order_items (id, order_id, product_id, slug, name, image, price, quantity)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type InsertOrderItemParams struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Slug      string
	Name      string
	Image     string
	Price     decimal.Decimal
	Quantity  int32
}

func (q *Queries) InsertOrderItems(c context.Context, args []InsertOrderItemParams) (int64, error) {
	var inserted int64
	for _, arg := range args {
		tag, err := q.db.Exec(c, insertOrderItem,
			arg.ID,
			arg.OrderID,
			arg.ProductID,
			arg.Slug,
			arg.Name,
			arg.Image,
			NumericFromDecimal(arg.Price),
			arg.Quantity,
		)
		if err != nil {
			return inserted, err
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

const findOrderById = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`

func (q *Queries) FindOrderById(c context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(c, findOrderById, id))
}

const findOrderItemsByOrderId = `
SELECT id, order_id, product_id, slug, name, image, price, quantity
FROM order_items
WHERE order_id = $1
ORDER BY slug
`

func (q *Queries) FindOrderItemsByOrderId(c context.Context, orderId uuid.UUID) ([]OrderItem, error) {
	rows, err := q.db.Query(c, findOrderItemsByOrderId, orderId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderItem{}
	for rows.Next() {
		var i OrderItem
		var price pgtype.Numeric
		err := rows.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Slug, &i.Name, &i.Image, &price, &i.Quantity)
		if err != nil {
			return nil, err
		}
		i.Price = DecimalFromNumeric(price)
		items = append(items, i)
	}
	return items, rows.Err()
}

const findOrdersByUserId = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`

func (q *Queries) FindOrdersByUserId(c context.Context, userId uuid.UUID) ([]Order, error) {
	rows, err := q.db.Query(c, findOrdersByUserId, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const findOrders = `
SELECT ` + orderColumns + `
FROM orders
ORDER BY created_at DESC
`

func (q *Queries) FindOrders(c context.Context) ([]Order, error) {
	rows, err := q.db.Query(c, findOrders)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Transition updates are guarded by the current status in the WHERE clause
// so concurrent transitions on the same order cannot both commit;
// pgx.ErrNoRows means the order was not in the required state.
const markOrderPaid = `
UPDATE orders
SET status = $2, payment_id = $3, paid_at = $4, updated_at = NOW()
WHERE id = $1 AND status = $5
RETURNING ` + orderColumns

type MarkOrderPaidParams struct {
	ID         uuid.UUID
	Status     string
	PaymentID  string
	PaidAt     time.Time
	FromStatus string
}

func (q *Queries) MarkOrderPaid(c context.Context, arg MarkOrderPaidParams) (Order, error) {
	row := q.db.QueryRow(c, markOrderPaid, arg.ID, arg.Status, arg.PaymentID, arg.PaidAt, arg.FromStatus)
	return scanOrder(row)
}

const markOrderDelivered = `
UPDATE orders
SET status = $2, delivered_at = $3, updated_at = NOW()
WHERE id = $1 AND status = $4
RETURNING ` + orderColumns

type MarkOrderDeliveredParams struct {
	ID          uuid.UUID
	Status      string
	DeliveredAt time.Time
	FromStatus  string
}

func (q *Queries) MarkOrderDelivered(c context.Context, arg MarkOrderDeliveredParams) (Order, error) {
	row := q.db.QueryRow(c, markOrderDelivered, arg.ID, arg.Status, arg.DeliveredAt, arg.FromStatus)
	return scanOrder(row)
}

const markOrderCancelled = `
UPDATE orders
SET status = $2, updated_at = NOW()
WHERE id = $1 AND status = $3
RETURNING ` + orderColumns

type MarkOrderCancelledParams struct {
	ID         uuid.UUID
	Status     string
	FromStatus string
}

func (q *Queries) MarkOrderCancelled(c context.Context, arg MarkOrderCancelledParams) (Order, error) {
	row := q.db.QueryRow(c, markOrderCancelled, arg.ID, arg.Status, arg.FromStatus)
	return scanOrder(row)
}

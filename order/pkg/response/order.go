package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jithpillai/zstore/internal/repository"
)

type OrderItem struct {
	Slug     string          `json:"slug"`
	Name     string          `json:"name"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Quantity int32           `json:"quantity"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentID       *string         `json:"paymentId"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice"`
	TaxPrice        decimal.Decimal `json:"taxPrice"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	PaidAt          *time.Time      `json:"paidAt"`
	DeliveredAt     *time.Time      `json:"deliveredAt"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func FromRepository(order repository.Order, items []repository.OrderItem) Order {
	orderItems := make([]OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = OrderItem{
			Slug:     item.Slug,
			Name:     item.Name,
			Image:    item.Image,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}
	return Order{
		ID:            order.ID,
		UserID:        order.UserID,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		PaymentID:     order.PaymentID,
		ShippingAddress: ShippingAddress{
			FullName:   order.FullName,
			Address:    order.Address,
			City:       order.City,
			PostalCode: order.PostalCode,
			Country:    order.Country,
		},
		OrderItems:    orderItems,
		ItemsPrice:    order.ItemsPrice,
		TaxPrice:      order.TaxPrice,
		ShippingPrice: order.ShippingPrice,
		TotalPrice:    order.TotalPrice,
		PaidAt:        order.PaidAt,
		DeliveredAt:   order.DeliveredAt,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

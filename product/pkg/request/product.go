package request

import (
	"github.com/shopspring/decimal"
)

type UpdateProduct struct {
	Slug         string          `validate:"required"        json:"slug"`
	Name         string          `validate:"required"        json:"name"`
	Image        string          `                           json:"image"`
	Banner       string          `                           json:"banner"`
	Price        decimal.Decimal `validate:"required"        json:"price"`
	Category     string          `validate:"required"        json:"category"`
	Brand        string          `validate:"required"        json:"brand"`
	CountInStock int32           `validate:"gte=0"           json:"countInStock"`
	Description  string          `                           json:"description"`
	IsFeatured   bool            `                           json:"isFeatured"`
	IsLatest     bool            `                           json:"isLatest"`
	OnSale       bool            `                           json:"onSale"`
}

type FindProducts struct {
	Category   string
	IsFeatured bool
	IsLatest   bool
	OnSale     bool
}

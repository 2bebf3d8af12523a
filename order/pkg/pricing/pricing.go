package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jithpillai/zstore/internal/config"
)

type Line struct {
	Price    decimal.Decimal
	Quantity int32
}

type Breakdown struct {
	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// Rules carries the pricing constants. Shipping is free above the
// threshold, otherwise the flat fee applies.
type Rules struct {
	TaxRate               decimal.Decimal
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

func DefaultRules() Rules {
	return Rules{
		TaxRate:               decimal.NewFromFloat(0.15),
		ShippingFee:           decimal.NewFromInt(15),
		FreeShippingThreshold: decimal.NewFromInt(200),
	}
}

func RulesFromConfig(cfg config.Pricing) (Rules, error) {
	rules := DefaultRules()
	if cfg.TaxRate != "" {
		taxRate, err := decimal.NewFromString(cfg.TaxRate)
		if err != nil {
			return Rules{}, fmt.Errorf("failed parsing taxRate=%s with error=%w", cfg.TaxRate, err)
		}
		rules.TaxRate = taxRate
	}
	if cfg.ShippingFee != "" {
		shippingFee, err := decimal.NewFromString(cfg.ShippingFee)
		if err != nil {
			return Rules{}, fmt.Errorf(
				"failed parsing shippingFee=%s with error=%w",
				cfg.ShippingFee,
				err,
			)
		}
		rules.ShippingFee = shippingFee
	}
	if cfg.FreeShippingThreshold != "" {
		threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
		if err != nil {
			return Rules{}, fmt.Errorf(
				"failed parsing freeShippingThreshold=%s with error=%w",
				cfg.FreeShippingThreshold,
				err,
			)
		}
		rules.FreeShippingThreshold = threshold
	}
	return rules, nil
}

// Compute derives the order price breakdown from its line items.
func Compute(lines []Line, rules Rules) Breakdown {
	itemsPrice := decimal.Zero
	for _, line := range lines {
		itemsPrice = itemsPrice.Add(line.Price.Mul(decimal.NewFromInt32(line.Quantity)))
	}
	itemsPrice = itemsPrice.Round(2)

	taxPrice := itemsPrice.Mul(rules.TaxRate).Round(2)

	shippingPrice := rules.ShippingFee
	if itemsPrice.GreaterThan(rules.FreeShippingThreshold) {
		shippingPrice = decimal.Zero
	}

	return Breakdown{
		ItemsPrice:    itemsPrice,
		TaxPrice:      taxPrice,
		ShippingPrice: shippingPrice,
		TotalPrice:    itemsPrice.Add(taxPrice).Add(shippingPrice),
	}
}

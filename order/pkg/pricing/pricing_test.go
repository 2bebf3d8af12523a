package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jithpillai/zstore/internal/config"
)

func TestComputeChargesFlatShippingBelowThreshold(t *testing.T) {
	lines := []Line{
		{Price: decimal.NewFromInt(50), Quantity: 2},
	}

	breakdown := Compute(lines, DefaultRules())

	assert.True(t, decimal.NewFromInt(100).Equal(breakdown.ItemsPrice))
	assert.True(t, decimal.NewFromInt(15).Equal(breakdown.TaxPrice))
	assert.True(t, decimal.NewFromInt(15).Equal(breakdown.ShippingPrice))
	assert.True(t, decimal.NewFromInt(130).Equal(breakdown.TotalPrice))
}

func TestComputeFreeShippingAboveThreshold(t *testing.T) {
	lines := []Line{
		{Price: decimal.NewFromInt(100), Quantity: 2},
		{Price: decimal.NewFromFloat(0.01), Quantity: 1},
	}

	breakdown := Compute(lines, DefaultRules())

	assert.True(t, decimal.NewFromFloat(200.01).Equal(breakdown.ItemsPrice))
	assert.True(t, decimal.Zero.Equal(breakdown.ShippingPrice))
}

func TestComputeShippingChargedAtExactThreshold(t *testing.T) {
	lines := []Line{
		{Price: decimal.NewFromInt(200), Quantity: 1},
	}

	breakdown := Compute(lines, DefaultRules())

	assert.True(t, decimal.NewFromInt(15).Equal(breakdown.ShippingPrice))
}

func TestComputeRoundsTaxToTwoDecimalPlaces(t *testing.T) {
	lines := []Line{
		{Price: decimal.NewFromFloat(9.99), Quantity: 1},
	}

	breakdown := Compute(lines, DefaultRules())

	// 9.99 * 0.15 = 1.4985 rounds to 1.50
	assert.True(t, decimal.NewFromFloat(1.50).Equal(breakdown.TaxPrice))
	assert.True(t, decimal.NewFromFloat(26.49).Equal(breakdown.TotalPrice))
}

func TestComputeEmptyLines(t *testing.T) {
	breakdown := Compute(nil, DefaultRules())

	assert.True(t, decimal.Zero.Equal(breakdown.ItemsPrice))
	assert.True(t, decimal.Zero.Equal(breakdown.TaxPrice))
	assert.True(t, decimal.NewFromInt(15).Equal(breakdown.ShippingPrice))
}

func TestRulesFromConfig(t *testing.T) {
	rules, err := RulesFromConfig(config.Pricing{
		TaxRate:               "0.2",
		ShippingFee:           "10",
		FreeShippingThreshold: "150",
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromFloat(0.2).Equal(rules.TaxRate))
	assert.True(t, decimal.NewFromInt(10).Equal(rules.ShippingFee))
	assert.True(t, decimal.NewFromInt(150).Equal(rules.FreeShippingThreshold))
}

func TestRulesFromConfigEmptyFallsBackToDefaults(t *testing.T) {
	rules, err := RulesFromConfig(config.Pricing{})
	require.NoError(t, err)

	assert.True(t, DefaultRules().TaxRate.Equal(rules.TaxRate))
	assert.True(t, DefaultRules().ShippingFee.Equal(rules.ShippingFee))
	assert.True(t, DefaultRules().FreeShippingThreshold.Equal(rules.FreeShippingThreshold))
}

func TestRulesFromConfigRejectsGarbage(t *testing.T) {
	_, err := RulesFromConfig(config.Pricing{TaxRate: "abc"})
	assert.Error(t, err)
}

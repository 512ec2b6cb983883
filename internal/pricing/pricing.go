// Package pricing holds the pure margin and price arithmetic for the
// catalog: retail weight-tier tables, wholesale bulk prices and margin
// derivation/validation. No rounding is applied here; display rounding
// is a presentation concern.
package pricing

import (
	"errors"
	"math"
)

// WeightTier is a retail package size.
type WeightTier string

// BulkTier is a wholesale package size.
type BulkTier string

const (
	Weight200g WeightTier = "200g"
	Weight500g WeightTier = "500g"
	Weight1kg  WeightTier = "1kg"

	Bulk3kg  BulkTier = "3kg"
	Bulk5kg  BulkTier = "5kg"
	Bulk10kg BulkTier = "10kg"
)

// RetailWeights lists every retail tier in display order.
var RetailWeights = []WeightTier{Weight200g, Weight500g, Weight1kg}

// PriceTable maps retail weight tiers to prices.
type PriceTable map[WeightTier]float64

// Margin defaults when nothing explicit is stored.
const (
	DefaultMargin float64 = 35

	DefaultWholesale3kg  float64 = 25
	DefaultWholesale5kg  float64 = 22
	DefaultWholesale10kg float64 = 18
)

// MaxMargin is the upper bound accepted by ValidateMargin.
const MaxMargin float64 = 1000

var (
	ErrMarginNaN      = errors.New("margem deve ser um número")
	ErrMarginNegative = errors.New("margem não pode ser negativa")
	ErrMarginTooLarge = errors.New("margem muito alta (máximo 1000%)")
)

// RetailPrices computes the retail price table from a base cost per kg
// and a margin percentage. The 1kg price is cost*(1+margin/100); the
// smaller tiers scale by their weight fraction.
func RetailPrices(baseCostPerKg, marginPct float64) PriceTable {
	perKg := baseCostPerKg * (1 + marginPct/100)
	return PriceTable{
		Weight200g: perKg * 0.2,
		Weight500g: perKg * 0.5,
		Weight1kg:  perKg,
	}
}

// SalePrice returns the 1kg sale price for a base cost and margin.
func SalePrice(baseCostPerKg, marginPct float64) float64 {
	return RetailPrices(baseCostPerKg, marginPct)[Weight1kg]
}

// WholesalePrice computes a bulk price: cost * kg * (1 + margin/100).
func WholesalePrice(baseCostPerKg, tierKg, marginPct float64) float64 {
	return baseCostPerKg * tierKg * (1 + marginPct/100)
}

// WeightKg converts a retail tier to its weight in kilograms.
func WeightKg(tier WeightTier) float64 {
	switch tier {
	case Weight200g:
		return 0.2
	case Weight500g:
		return 0.5
	case Weight1kg:
		return 1
	}
	return 0
}

// BulkKg converts a wholesale tier to its weight in kilograms.
func BulkKg(tier BulkTier) float64 {
	switch tier {
	case Bulk3kg:
		return 3
	case Bulk5kg:
		return 5
	case Bulk10kg:
		return 10
	}
	return 0
}

// DeriveMargin recovers the margin percentage from a price table using
// the 1kg tier. When the base cost or 1kg price is zero, absent or NaN
// it returns DefaultMargin instead of propagating a division by zero.
func DeriveMargin(baseCostPerKg float64, prices PriceTable) float64 {
	salePerKg := prices[Weight1kg]
	if baseCostPerKg == 0 || salePerKg == 0 ||
		math.IsNaN(baseCostPerKg) || math.IsNaN(salePerKg) {
		return DefaultMargin
	}
	return (salePerKg/baseCostPerKg - 1) * 100
}

// ValidateMargin accepts a margin only when it is a finite,
// non-negative number of at most MaxMargin percent. The returned error
// names the violated rule so callers can render a precise message.
func ValidateMargin(marginPct float64) error {
	if math.IsNaN(marginPct) || math.IsInf(marginPct, 0) {
		return ErrMarginNaN
	}
	if marginPct < 0 {
		return ErrMarginNegative
	}
	if marginPct > MaxMargin {
		return ErrMarginTooLarge
	}
	return nil
}

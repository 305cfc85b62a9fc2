// Package valuation holds the pure calculation core: weight unit
// conversion, troy-ounce conversion, per-measurement valuation and the
// statutory levy chain. Everything here is side-effect free; persistence
// and transport live elsewhere.
package valuation

import (
	"strings"
)

// Conversion constants. GramsPerTroyOunce is defined exactly once; every
// ounce conversion in the system goes through it.
const (
	GramsPerTroyOunce = 31.1035
	GramsPerKilogram  = 1000
	GramsPerPound     = 453.59237
)

// ToGrams normalizes a weight magnitude to grams. Unit tags are
// case-insensitive; an unrecognized or empty unit is treated as grams.
func ToGrams(value float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "kilogram", "kilograms":
		return value * GramsPerKilogram
	case "lb", "lbs", "pound", "pounds":
		return value * GramsPerPound
	default:
		return value
	}
}

// GramsToTroyOunces converts grams to troy ounces.
func GramsToTroyOunces(grams float64) float64 {
	return grams / GramsPerTroyOunce
}

// TroyOuncesToGrams converts troy ounces to grams.
func TroyOuncesToGrams(ounces float64) float64 {
	return ounces * GramsPerTroyOunce
}

// UsdToGhs converts a USD amount to GHS at the given exchange rate.
func UsdToGhs(usd, exchangeRate float64) float64 {
	return usd * exchangeRate
}

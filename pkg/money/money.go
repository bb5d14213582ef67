package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Safe coerces NaN and infinities to zero so bill math never propagates them.
func Safe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round2 rounds to two decimal places, half away from zero.
//
// The value goes through its shortest decimal representation first, so inputs such as
// 1.005 round to 1.01 instead of falling victim to binary truncation.
func Round2(v float64) float64 {
	return roundPlaces(v, 2)
}

// RoundWhole rounds to the nearest whole currency unit, half away from zero.
func RoundWhole(v float64) float64 {
	return roundPlaces(v, 0)
}

func roundPlaces(v float64, places int32) float64 {
	v = Safe(v)
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	if f == 0 {
		// avoid -0 in JSON output
		return 0
	}
	return f
}

// Sum adds values using decimal arithmetic and returns the float result.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(Safe(v)))
	}
	f, _ := total.Float64()
	return f
}

// NonNegative clamps negative values (and NaN) to zero.
func NonNegative(v float64) float64 {
	v = Safe(v)
	if v < 0 {
		return 0
	}
	return v
}

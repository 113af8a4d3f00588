package money

import "github.com/shopspring/decimal"

// All monetary outputs in the game round to the cent, percentages to two
// decimals, and per-API-call prices to five decimals. The policy lives here
// so every engine rounds the same way.

// RoundCents rounds a dollar amount to the cent (half up).
func RoundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// RoundPercent rounds a percentage to two decimals (half up).
func RoundPercent(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// RoundMicroPrice rounds a per-API-call price to five decimals (half up).
func RoundMicroPrice(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(5).Float64()
	return f
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

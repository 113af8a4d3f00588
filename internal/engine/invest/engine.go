package invest

import (
	"fmt"
	"time"

	"github.com/magnatehq/magnate-server/internal/money"
	"github.com/magnatehq/magnate-server/internal/rng"
)

// RiskLevel selects the annual return band an investment samples from.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// InstrumentType determines the maturity horizon.
type InstrumentType string

const (
	TypeBonds      InstrumentType = "bonds"
	TypeRealEstate InstrumentType = "real_estate"
	TypeVenture    InstrumentType = "venture"
	TypeStocks     InstrumentType = "stocks"
)

type returnBand struct {
	minPct float64
	maxPct float64
}

var returnBands = map[RiskLevel]returnBand{
	RiskLow:    {3, 6},
	RiskMedium: {6, 12},
	RiskHigh:   {12, 25},
}

// maturityYears by instrument. Stocks have no maturity and are absent.
var maturityYears = map[InstrumentType]int{
	TypeBonds:      5,
	TypeRealEstate: 10,
	TypeVenture:    7,
}

// Investment is the record produced at creation. ReturnRate is sampled once
// and fixed for the instrument's life; it is never re-rolled.
type Investment struct {
	Amount       float64        `json:"amount"`
	RiskLevel    RiskLevel      `json:"risk_level"`
	Type         InstrumentType `json:"investment_type"`
	ReturnRate   float64        `json:"return_rate"` // annual, percent
	CurrentValue float64        `json:"current_value"`
	MaturityDate *time.Time     `json:"maturity_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Create samples the return rate uniformly inside the risk band and schedules
// the maturity date. Affordability is the caller's precondition; this
// function never touches company cash.
func Create(amount float64, risk RiskLevel, instrument InstrumentType, src rng.RandomSource, clock rng.Clock) (Investment, error) {
	band, ok := returnBands[risk]
	if !ok {
		return Investment{}, fmt.Errorf("unknown risk level: %s", risk)
	}
	if _, known := maturityYears[instrument]; !known && instrument != TypeStocks {
		return Investment{}, fmt.Errorf("unknown investment type: %s", instrument)
	}

	rate := band.minPct + src.Float64()*(band.maxPct-band.minPct)
	now := clock.Now()

	inv := Investment{
		Amount:       money.RoundCents(amount),
		RiskLevel:    risk,
		Type:         instrument,
		ReturnRate:   money.RoundPercent(rate),
		CurrentValue: money.RoundCents(amount),
		CreatedAt:    now,
	}
	if years, ok := maturityYears[instrument]; ok {
		maturity := now.AddDate(years, 0, 0)
		inv.MaturityDate = &maturity
	}
	return inv, nil
}

// ValueAt grows the investment by its fixed annual rate, compounded yearly by
// elapsed fraction. Before creation time it reports the principal unchanged.
func ValueAt(inv Investment, at time.Time) float64 {
	if !at.After(inv.CreatedAt) {
		return inv.Amount
	}
	years := at.Sub(inv.CreatedAt).Hours() / 24 / 365.25
	value := inv.Amount
	rate := inv.ReturnRate / 100
	for years >= 1 {
		value *= 1 + rate
		years--
	}
	value *= 1 + rate*years
	return money.RoundCents(value)
}

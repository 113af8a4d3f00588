package invest

import (
	"testing"
	"time"

	"github.com/magnatehq/magnate-server/internal/rng"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCreate_ReturnRateBands(t *testing.T) {
	testCases := []struct {
		risk RiskLevel
		min  float64
		max  float64
	}{
		{RiskLow, 3, 6},
		{RiskMedium, 6, 12},
		{RiskHigh, 12, 25},
	}

	clock := rng.FixedClock{At: testNow}
	for _, tc := range testCases {
		t.Run(string(tc.risk), func(t *testing.T) {
			// Sweep draws across the unit interval.
			for _, draw := range []float64{0, 0.25, 0.5, 0.75, 0.999} {
				src := &rng.SequenceSource{Values: []float64{draw}}
				inv, err := Create(10_000, tc.risk, TypeBonds, src, clock)
				if err != nil {
					t.Fatalf("Create failed: %v", err)
				}
				if inv.ReturnRate < tc.min || inv.ReturnRate > tc.max {
					t.Errorf("Rate %v outside band [%v,%v] for draw %v", inv.ReturnRate, tc.min, tc.max, draw)
				}
			}
		})
	}
}

func TestCreate_MaturityByInstrument(t *testing.T) {
	clock := rng.FixedClock{At: testNow}
	src := &rng.SequenceSource{Values: []float64{0.5}}

	testCases := []struct {
		instrument InstrumentType
		years      int
		hasDate    bool
	}{
		{TypeBonds, 5, true},
		{TypeRealEstate, 10, true},
		{TypeVenture, 7, true},
		{TypeStocks, 0, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.instrument), func(t *testing.T) {
			inv, err := Create(50_000, RiskMedium, tc.instrument, src, clock)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if !tc.hasDate {
				if inv.MaturityDate != nil {
					t.Errorf("Expected no maturity for %s, got %v", tc.instrument, inv.MaturityDate)
				}
				return
			}
			expected := testNow.AddDate(tc.years, 0, 0)
			if inv.MaturityDate == nil || !inv.MaturityDate.Equal(expected) {
				t.Errorf("Expected maturity %v, got %v", expected, inv.MaturityDate)
			}
		})
	}
}

func TestCreate_UnknownEnums(t *testing.T) {
	clock := rng.FixedClock{At: testNow}
	src := &rng.SequenceSource{Values: []float64{0.5}}

	if _, err := Create(1000, RiskLevel("extreme"), TypeBonds, src, clock); err == nil {
		t.Error("Expected error for unknown risk level")
	}
	if _, err := Create(1000, RiskLow, InstrumentType("crypto"), src, clock); err == nil {
		t.Error("Expected error for unknown instrument type")
	}
}

func TestCreate_Deterministic(t *testing.T) {
	clock := rng.FixedClock{At: testNow}
	a, _ := Create(25_000, RiskHigh, TypeVenture, rng.NewSeededSource(7), clock)
	b, _ := Create(25_000, RiskHigh, TypeVenture, rng.NewSeededSource(7), clock)
	if a.ReturnRate != b.ReturnRate || !a.CreatedAt.Equal(b.CreatedAt) {
		t.Error("Same seed and clock must produce identical investments")
	}
}

func TestValueAt(t *testing.T) {
	clock := rng.FixedClock{At: testNow}
	src := &rng.SequenceSource{Values: []float64{0}} // rate = band minimum, 3%
	inv, _ := Create(10_000, RiskLow, TypeBonds, src, clock)

	if v := ValueAt(inv, testNow); v != 10_000 {
		t.Errorf("Expected principal at creation time, got %v", v)
	}
	oneYear := ValueAt(inv, testNow.AddDate(1, 0, 0))
	if oneYear < 10_295 || oneYear > 10_305 {
		t.Errorf("Expected ~10300 after one year at 3%%, got %v", oneYear)
	}
	if later := ValueAt(inv, testNow.AddDate(3, 0, 0)); later <= oneYear {
		t.Error("Value must grow over time")
	}
}

package credit

import (
	"math"
	"strings"
	"testing"
)

func TestCalculateCreditScore_Bounds(t *testing.T) {
	testCases := []struct {
		name     string
		inputs   ScoreInputs
		expected int
	}{
		{
			name:     "All zero floors at 300",
			inputs:   ScoreInputs{},
			expected: 300,
		},
		{
			name: "All perfect caps at 850",
			inputs: ScoreInputs{
				PaymentHistory:    100,
				CreditUtilization: 100,
				CompanyAge:        100,
				CreditMix:         100,
				RecentInquiries:   100,
			},
			expected: 850,
		},
		{
			name: "Out-of-range inputs are clamped before weighting",
			inputs: ScoreInputs{
				PaymentHistory:    500,
				CreditUtilization: -50,
				CompanyAge:        100,
				CreditMix:         100,
				RecentInquiries:   100,
			},
			// 0.35 + 0.15 + 0.10 + 0.10 of 550 points
			expected: 300 + int(math.Round(0.70*550)),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score, breakdown := CalculateCreditScore(tc.inputs)
			if score != tc.expected {
				t.Errorf("Expected score %d, got %d", tc.expected, score)
			}
			if len(breakdown) != 5 {
				t.Errorf("Expected 5 factors in breakdown, got %d", len(breakdown))
			}
		})
	}
}

func TestInterestRateForScore_BandAndMonotonicity(t *testing.T) {
	if rate := InterestRateForScore(850); rate != 5.0 {
		t.Errorf("Expected 5%% at top score, got %v", rate)
	}
	if rate := InterestRateForScore(300); rate != 15.0 {
		t.Errorf("Expected 15%% at bottom score, got %v", rate)
	}

	prev := math.Inf(1)
	for score := 300; score <= 850; score += 10 {
		rate := InterestRateForScore(score)
		if rate < 5.0 || rate > 15.0 {
			t.Fatalf("Rate %v outside band at score %d", rate, score)
		}
		if rate > prev {
			t.Fatalf("Rate increased with score at %d: %v > %v", score, rate, prev)
		}
		prev = rate
	}
}

func TestCalculateLoanPayment(t *testing.T) {
	// 100k at 12% over 12 months: classic amortization value.
	payment := CalculateLoanPayment(100_000, 12, 12)
	if payment < 8884 || payment > 8886 {
		t.Errorf("Expected payment near 8885, got %v", payment)
	}

	// Zero rate degenerates to straight division.
	if payment := CalculateLoanPayment(12_000, 0, 12); payment != 1000 {
		t.Errorf("Expected 1000 at zero rate, got %v", payment)
	}

	// Degenerate term.
	if payment := CalculateLoanPayment(10_000, 10, 0); payment != 0 {
		t.Errorf("Expected 0 for zero-month term, got %v", payment)
	}
}

func TestEvaluateApplication_GateOrder(t *testing.T) {
	app := Application{Amount: 100_000, TermMonths: 24, LoanType: "expansion", MonthlyRevenue: 1_000_000}

	testCases := []struct {
		name         string
		score        int
		debtToEquity float64
		reserves     float64
		revenue      float64
		approved     bool
		reasonPart   string
	}{
		{
			name:       "Low score fails first",
			score:      550,
			reserves:   1e9,
			revenue:    1e9,
			approved:   false,
			reasonPart: "credit score",
		},
		{
			name:         "Leverage fails before coverage even with no revenue",
			score:        700,
			debtToEquity: 3.5,
			revenue:      0,
			approved:     false,
			reasonPart:   "debt-to-equity",
		},
		{
			name:         "Leverage at exactly 3.0 is rejected",
			score:        700,
			debtToEquity: 3.0,
			revenue:      1e9,
			reserves:     1e9,
			approved:     false,
			reasonPart:   "debt-to-equity",
		},
		{
			name:       "Revenue coverage fails before reserves",
			score:      700,
			revenue:    100,
			reserves:   0,
			approved:   false,
			reasonPart: "monthly revenue",
		},
		{
			name:       "Reserve coverage is the last gate",
			score:      700,
			revenue:    1e9,
			reserves:   0,
			approved:   false,
			reasonPart: "cash reserves",
		},
		{
			name:     "All criteria pass",
			score:    720,
			revenue:  1e9,
			reserves: 1e9,
			approved: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := app
			a.MonthlyRevenue = tc.revenue
			decision := EvaluateApplication(a, tc.score, tc.debtToEquity, tc.reserves)
			if decision.Approved != tc.approved {
				t.Fatalf("Expected approved=%v, got %v (%s)", tc.approved, decision.Approved, decision.Reason)
			}
			if !tc.approved && !strings.Contains(decision.Reason, tc.reasonPart) {
				t.Errorf("Expected reason containing %q, got %q", tc.reasonPart, decision.Reason)
			}
			if tc.approved && (decision.InterestRate < 5 || decision.InterestRate > 15) {
				t.Errorf("Approved rate %v outside band", decision.InterestRate)
			}
		})
	}
}

func TestAmortizationSchedule_RoundTrip(t *testing.T) {
	testCases := []struct {
		name      string
		principal float64
		rate      float64
		term      int
	}{
		{"Small loan", 10_000, 8, 12},
		{"Large loan", 2_500_000, 14.5, 120},
		{"Zero rate", 60_000, 0, 36},
		{"Awkward cents", 99_999.99, 11.3, 48},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows := AmortizationSchedule(tc.principal, tc.rate, tc.term)
			if len(rows) == 0 {
				t.Fatal("Expected non-empty schedule")
			}
			last := rows[len(rows)-1]
			if last.Remaining != 0 {
				t.Errorf("Expected remaining balance 0 after final payment, got %v", last.Remaining)
			}
			totalPrincipal := 0.0
			for _, row := range rows {
				totalPrincipal += row.Principal
			}
			if math.Abs(totalPrincipal-tc.principal) > 0.02 {
				t.Errorf("Principal paid %v deviates from %v", totalPrincipal, tc.principal)
			}
		})
	}

	if rows := AmortizationSchedule(0, 10, 12); rows != nil {
		t.Error("Expected nil schedule for zero principal")
	}
}

func BenchmarkEvaluateApplication(b *testing.B) {
	app := Application{Amount: 250_000, TermMonths: 60, MonthlyRevenue: 80_000}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EvaluateApplication(app, 710, 1.4, 120_000)
	}
}

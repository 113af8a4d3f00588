package credit

import (
	"fmt"
	"math"

	"github.com/magnatehq/magnate-server/internal/money"
)

// Credit score bounds, FICO-style.
const (
	MinScore = 300
	MaxScore = 850
)

// APR band. Higher score always maps to a lower rate inside this band.
const (
	MinRatePct = 5.0
	MaxRatePct = 15.0
)

// Approval gate thresholds.
const (
	minApprovalScore    = 600
	maxDebtToEquity     = 3.0
	revenueCoverageMult = 5.0
	reserveCoverageMult = 3.0
)

// ScoreInputs are the weighted sub-factors of the credit score, each
// normalized by the caller to [0,100].
type ScoreInputs struct {
	PaymentHistory    float64 `json:"payment_history"`    // on-time repayment record
	CreditUtilization float64 `json:"credit_utilization"` // 100 = no drawn credit, 0 = fully drawn
	CompanyAge        float64 `json:"company_age"`        // longevity score
	CreditMix         float64 `json:"credit_mix"`         // diversity of instruments
	RecentInquiries   float64 `json:"recent_inquiries"`   // 100 = no recent inquiries
}

// Factor weights sum to 1. Mirrors the usual consumer-bureau split.
var scoreWeights = []struct {
	name   string
	weight float64
	pick   func(ScoreInputs) float64
}{
	{"payment_history", 0.35, func(s ScoreInputs) float64 { return s.PaymentHistory }},
	{"credit_utilization", 0.30, func(s ScoreInputs) float64 { return s.CreditUtilization }},
	{"company_age", 0.15, func(s ScoreInputs) float64 { return s.CompanyAge }},
	{"credit_mix", 0.10, func(s ScoreInputs) float64 { return s.CreditMix }},
	{"recent_inquiries", 0.10, func(s ScoreInputs) float64 { return s.RecentInquiries }},
}

// ScoreBreakdown itemizes each factor's contribution in score points.
type ScoreBreakdown struct {
	Factor      string  `json:"factor"`
	Weight      float64 `json:"weight"`
	Input       float64 `json:"input"`
	Contributed float64 `json:"contributed_points"`
}

// CalculateCreditScore maps the weighted factors onto [300,850].
func CalculateCreditScore(in ScoreInputs) (int, []ScoreBreakdown) {
	span := float64(MaxScore - MinScore)
	total := 0.0
	breakdown := make([]ScoreBreakdown, 0, len(scoreWeights))
	for _, f := range scoreWeights {
		input := money.Clamp(f.pick(in), 0, 100)
		pts := input / 100 * f.weight * span
		total += pts
		breakdown = append(breakdown, ScoreBreakdown{
			Factor:      f.name,
			Weight:      f.weight,
			Input:       input,
			Contributed: math.Round(pts),
		})
	}
	score := MinScore + int(math.Round(total))
	if score > MaxScore {
		score = MaxScore
	}
	return score, breakdown
}

// InterestRateForScore interpolates linearly from 15% at a 300 score down to
// 5% at 850. Monotone decreasing, clamped to the band.
func InterestRateForScore(score int) float64 {
	frac := float64(score-MinScore) / float64(MaxScore-MinScore)
	rate := MaxRatePct - frac*(MaxRatePct-MinRatePct)
	return money.RoundPercent(money.Clamp(rate, MinRatePct, MaxRatePct))
}

// CalculateLoanPayment computes the standard amortized monthly payment.
// r = 0 degenerates to straight principal division.
func CalculateLoanPayment(principal, annualRatePct float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	r := annualRatePct / 100 / 12
	if r == 0 {
		return money.RoundCents(principal / float64(termMonths))
	}
	n := float64(termMonths)
	growth := math.Pow(1+r, n)
	payment := principal * r * growth / (growth - 1)
	return money.RoundCents(payment)
}

// Application is a loan request as submitted by a company.
type Application struct {
	Amount         float64 `json:"amount"`
	TermMonths     int     `json:"term_months"`
	LoanType       string  `json:"loan_type"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
}

// Decision is the structured outcome of an application. Rejections carry the
// first failing criterion's reason; they are results, never errors.
type Decision struct {
	Approved       bool    `json:"approved"`
	InterestRate   float64 `json:"interest_rate,omitempty"`
	MonthlyPayment float64 `json:"monthly_payment,omitempty"`
	Reason         string  `json:"reason"`
}

// EvaluateApplication runs the approval gate in a fixed order so rejection
// reasons are deterministic: credit score, then leverage, then revenue
// coverage, then reserve coverage.
func EvaluateApplication(app Application, creditScore int, debtToEquity, cashReserves float64) Decision {
	if creditScore < minApprovalScore {
		return Decision{
			Approved: false,
			Reason:   fmt.Sprintf("credit score %d below minimum %d", creditScore, minApprovalScore),
		}
	}
	if debtToEquity >= maxDebtToEquity {
		return Decision{
			Approved: false,
			Reason:   fmt.Sprintf("debt-to-equity %.2f at or above limit %.1f", debtToEquity, maxDebtToEquity),
		}
	}

	rate := InterestRateForScore(creditScore)
	payment := CalculateLoanPayment(app.Amount, rate, app.TermMonths)

	if app.MonthlyRevenue < revenueCoverageMult*payment {
		return Decision{
			Approved: false,
			Reason: fmt.Sprintf("monthly revenue %.2f below required %.0fx coverage of payment %.2f",
				app.MonthlyRevenue, revenueCoverageMult, payment),
		}
	}
	if cashReserves < reserveCoverageMult*payment {
		return Decision{
			Approved: false,
			Reason: fmt.Sprintf("cash reserves %.2f below required %.0fx coverage of payment %.2f",
				cashReserves, reserveCoverageMult, payment),
		}
	}

	return Decision{
		Approved:       true,
		InterestRate:   rate,
		MonthlyPayment: payment,
		Reason:         "approved",
	}
}

// PaymentRow is one month of an amortization schedule.
type PaymentRow struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Remaining float64 `json:"remaining"`
}

// AmortizationSchedule expands a loan into its monthly rows. The final row
// absorbs rounding drift so the remaining balance lands on exactly zero.
func AmortizationSchedule(principal, annualRatePct float64, termMonths int) []PaymentRow {
	if termMonths <= 0 || principal <= 0 {
		return nil
	}
	payment := CalculateLoanPayment(principal, annualRatePct, termMonths)
	r := annualRatePct / 100 / 12
	rows := make([]PaymentRow, 0, termMonths)
	remaining := principal
	for m := 1; m <= termMonths; m++ {
		interest := money.RoundCents(remaining * r)
		principalPart := money.RoundCents(payment - interest)
		pay := payment
		if m == termMonths || principalPart >= remaining {
			principalPart = money.RoundCents(remaining)
			pay = money.RoundCents(principalPart + interest)
		}
		remaining = money.RoundCents(remaining - principalPart)
		rows = append(rows, PaymentRow{
			Month:     m,
			Payment:   pay,
			Interest:  interest,
			Principal: principalPart,
			Remaining: remaining,
		})
		if remaining <= 0 {
			break
		}
	}
	return rows
}

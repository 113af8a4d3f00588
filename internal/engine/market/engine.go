package market

import (
	"fmt"
	"math"

	"github.com/magnatehq/magnate-server/internal/money"
)

// SLATier governs both the price premium and the breach refund multiplier.
type SLATier string

const (
	TierBronze   SLATier = "Bronze"
	TierSilver   SLATier = "Silver"
	TierGold     SLATier = "Gold"
	TierPlatinum SLATier = "Platinum"
)

// Violation severity grades for SLA breaches.
type ViolationType string

const (
	ViolationMinor    ViolationType = "Minor"
	ViolationModerate ViolationType = "Moderate"
	ViolationSevere   ViolationType = "Severe"
	ViolationCritical ViolationType = "Critical"
)

const baseHourlyRate = 0.10 // USD per capacity unit per hour

var slaPriceMultipliers = map[SLATier]float64{
	TierBronze:   1.0,
	TierSilver:   1.2,
	TierGold:     1.5,
	TierPlatinum: 2.0,
}

// Refund tier multipliers run the other way: cheap tiers refund less.
var slaRefundMultipliers = map[SLATier]float64{
	TierBronze:   0.5,
	TierSilver:   0.75,
	TierGold:     1.0,
	TierPlatinum: 1.25,
}

var severityMultipliers = map[ViolationType]float64{
	ViolationMinor:    0.25,
	ViolationModerate: 0.5,
	ViolationSevere:   0.8,
	ViolationCritical: 1.0,
}

// reputationFactor maps a [0,100] reputation onto a [0.8,1.2] price multiplier.
func reputationFactor(reputation float64) float64 {
	return 0.8 + money.Clamp(reputation, 0, 100)/100*0.4
}

// ComputePricingResult itemizes a compute contract quote.
type ComputePricingResult struct {
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// ComputePricing quotes a compute capacity rental. marketDemand defaults to
// 1.0 at the handler; values above 1 are surge pricing.
func ComputePricing(capacity, durationHours float64, tier SLATier, sellerReputation, marketDemand float64) (ComputePricingResult, error) {
	mult, ok := slaPriceMultipliers[tier]
	if !ok {
		return ComputePricingResult{}, fmt.Errorf("unknown SLA tier: %s", tier)
	}
	repFactor := reputationFactor(sellerReputation)
	hourlyRate := baseHourlyRate * capacity * mult * repFactor * marketDemand
	total := money.RoundCents(hourlyRate * durationHours)

	return ComputePricingResult{
		Total: total,
		Breakdown: map[string]float64{
			"baseRate":         baseHourlyRate,
			"capacity":         capacity,
			"slaMultiplier":    mult,
			"reputationFactor": repFactor,
			"demandMultiplier": marketDemand,
			"hourlyRate":       money.RoundMicroPrice(hourlyRate),
			"durationHours":    durationHours,
		},
	}, nil
}

// SLARefundResult is the payout owed for a breached contract.
type SLARefundResult struct {
	RefundAmount float64            `json:"refund_amount"`
	Breakdown    map[string]float64 `json:"breakdown"`
}

// SLARefund computes the breach payout. breachPercentage is clamped to
// [0,100] before use so exaggerated claims cannot exceed the tier ceiling.
func SLARefund(contractValue float64, tier SLATier, violation ViolationType, breachPercentage float64) (SLARefundResult, error) {
	tierMult, ok := slaRefundMultipliers[tier]
	if !ok {
		return SLARefundResult{}, fmt.Errorf("unknown SLA tier: %s", tier)
	}
	sevMult, ok := severityMultipliers[violation]
	if !ok {
		return SLARefundResult{}, fmt.Errorf("unknown violation type: %s", violation)
	}

	breach := money.Clamp(breachPercentage, 0, 100) / 100
	refund := money.RoundCents(contractValue * tierMult * sevMult * breach)

	return SLARefundResult{
		RefundAmount: refund,
		Breakdown: map[string]float64{
			"contractValue":      contractValue,
			"tierMultiplier":     tierMult,
			"severityMultiplier": sevMult,
			"breachFraction":     breach,
		},
	}, nil
}

// Model size bands and their base valuations.
const (
	sizeSmallBase  = 5_000
	sizeMediumBase = 50_000
	sizeLargeBase  = 250_000
)

// Architecture premiums over the size-band base.
var architectureMultipliers = map[string]float64{
	"transformer": 1.5,
	"diffusion":   1.3,
	"moe":         1.4,
	"cnn":         1.0,
	"rnn":         0.9,
}

// BenchmarkScores are the published evaluation figures for a model listing.
type BenchmarkScores struct {
	Accuracy  float64 `json:"accuracy"`   // percent
	LatencyMs float64 `json:"latency_ms"` // p50
}

// ModelPricingResult carries the three license price points plus the pricing
// narrative for the listing page.
type ModelPricingResult struct {
	Perpetual  float64  `json:"perpetual"`
	Monthly    float64  `json:"monthly"`
	PerAPICall float64  `json:"per_api_call"`
	Reasoning  []string `json:"reasoning"`
}

// sizeBase picks the valuation band. The explicit size label wins; parameter
// count is the fallback when the label is absent.
func sizeBase(size string, parameters float64) (float64, string) {
	switch size {
	case "Small":
		return sizeSmallBase, "Small"
	case "Medium":
		return sizeMediumBase, "Medium"
	case "Large":
		return sizeLargeBase, "Large"
	}
	switch {
	case parameters < 1e9:
		return sizeSmallBase, "Small"
	case parameters < 10e9:
		return sizeMediumBase, "Medium"
	default:
		return sizeLargeBase, "Large"
	}
}

// ModelPricing values a trained-model listing across its three license types.
func ModelPricing(architecture, size string, parameters float64, scores BenchmarkScores, sellerReputation float64, salesHistory int) ModelPricingResult {
	base, band := sizeBase(size, parameters)

	archMult, ok := architectureMultipliers[architecture]
	if !ok {
		archMult = 1.0
	}

	perfMult := 1 + math.Max(0, (scores.Accuracy-80)*0.02) - math.Max(0, (scores.LatencyMs-100)*0.001)
	repFactor := reputationFactor(sellerReputation)

	salesBoost := math.Min(0.30, float64(salesHistory)*0.01)

	perpetual := money.RoundCents(base * archMult * perfMult * repFactor * (1 + salesBoost))
	monthly := money.RoundCents(perpetual * 0.025)
	perCall := money.RoundMicroPrice(perpetual / 100_000)

	reasoning := []string{
		fmt.Sprintf("%s model base value $%.0f", band, base),
		fmt.Sprintf("architecture %s multiplier %.2f", architecture, archMult),
		fmt.Sprintf("performance multiplier %.3f (accuracy %.1f, latency %.0fms)", perfMult, scores.Accuracy, scores.LatencyMs),
		fmt.Sprintf("seller reputation factor %.2f", repFactor),
	}
	if salesBoost > 0 {
		reasoning = append(reasoning, fmt.Sprintf("sales history boost +%.0f%%", salesBoost*100))
	}

	return ModelPricingResult{
		Perpetual:  perpetual,
		Monthly:    monthly,
		PerAPICall: perCall,
		Reasoning:  reasoning,
	}
}

// ReputationResult is the updated seller reputation with its terms.
type ReputationResult struct {
	NewReputation float64            `json:"new_reputation"`
	Breakdown     map[string]float64 `json:"breakdown"`
}

// SellerReputation folds a period's delivery record into the current score.
// The result never leaves [0,100] regardless of input magnitude.
func SellerReputation(current float64, contractsCompleted, slaBreaches int, avgRating float64, totalReviews int) ReputationResult {
	deliveryBonus := math.Min(20, float64(contractsCompleted)*0.2)
	breachPenalty := float64(slaBreaches) * 5
	reviewBonus := (avgRating - 3) * float64(totalReviews) * 0.1

	next := money.Clamp(current+deliveryBonus-breachPenalty+reviewBonus, 0, 100)

	return ReputationResult{
		NewReputation: money.RoundPercent(next),
		Breakdown: map[string]float64{
			"current":       current,
			"deliveryBonus": money.RoundPercent(deliveryBonus),
			"breachPenalty": money.RoundPercent(breachPenalty),
			"reviewBonus":   money.RoundPercent(reviewBonus),
		},
	}
}

// Market position tiers, lowest first.
const (
	PositionBudget      = "Budget"
	PositionCompetitive = "Competitive"
	PositionPremium     = "Premium"
	PositionElite       = "Elite"
)

// MarketPositionResult locates a seller inside the marketplace hierarchy.
type MarketPositionResult struct {
	Position  float64            `json:"position"`
	Tier      string             `json:"tier"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// MarketPosition scores a seller on a [0,100] scale from reputation, relative
// sales volume, and ratings. Tier boundaries are strict: a position of
// exactly 25 is Competitive, exactly 75 is Elite.
func MarketPosition(reputation, totalSales, avgRating, marketAvgSales float64) MarketPositionResult {
	salesRatio := 1.0
	if marketAvgSales > 0 {
		salesRatio = math.Min(2, totalSales/marketAvgSales)
	}
	repTerm := money.Clamp(reputation, 0, 100) * 0.4
	salesTerm := salesRatio * 30
	ratingTerm := (money.Clamp(avgRating, 1, 5) - 1) / 4 * 30

	position := money.RoundPercent(repTerm + salesTerm + ratingTerm)

	var tier string
	switch {
	case position < 25:
		tier = PositionBudget
	case position < 50:
		tier = PositionCompetitive
	case position < 75:
		tier = PositionPremium
	default:
		tier = PositionElite
	}

	return MarketPositionResult{
		Position: position,
		Tier:     tier,
		Breakdown: map[string]float64{
			"reputationTerm": money.RoundPercent(repTerm),
			"salesTerm":      money.RoundPercent(salesTerm),
			"ratingTerm":     money.RoundPercent(ratingTerm),
		},
	}
}

// Escrow risk buckets.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskElevated = "elevated"
	RiskHigh     = "high"
)

// EscrowReleaseResult reports the target release state for a contract at a
// point in time. It is a snapshot, not a delta: recomputing with the same
// (currentDay, performanceScore) yields the same figures, and the caller
// tracks what has already been paid out.
type EscrowReleaseResult struct {
	ImmediateRelease float64 `json:"immediate_release"`
	ScheduledRelease float64 `json:"scheduled_release"`
	HeldAmount       float64 `json:"held_amount"`
	NextReleaseDay   int     `json:"next_release_day"`
	RiskAssessment   string  `json:"risk_assessment"`
}

// EscrowRelease schedules the post-upfront two thirds of a contract value.
// The middle tranche unlocks at half time with performance at 85 or better;
// the final tranche at full time with 90 or better.
func EscrowRelease(contractValue float64, durationDays, currentDay int, performanceScore float64) EscrowReleaseResult {
	if contractValue <= 0 || durationDays <= 0 {
		return EscrowReleaseResult{RiskAssessment: RiskHigh}
	}

	tranche := money.RoundCents(contractValue / 3)
	midpointDay := int(math.Ceil(float64(durationDays) / 2))

	midDue := currentDay >= midpointDay && performanceScore >= 85
	finalDue := currentDay >= durationDays && performanceScore >= 90

	immediate := 0.0
	if midDue {
		immediate += tranche
	}
	if finalDue {
		// Final tranche absorbs the rounding remainder.
		immediate += money.RoundCents(contractValue - 2*tranche)
	}

	held := money.RoundCents(contractValue*2/3 - immediate)
	if held < 0 {
		held = 0
	}

	nextDay := 0
	scheduled := 0.0
	switch {
	case !midDue:
		nextDay = midpointDay
		scheduled = tranche
	case !finalDue && currentDay < durationDays:
		nextDay = durationDays
		scheduled = money.RoundCents(contractValue - 2*tranche)
	}

	progress := float64(currentDay) / float64(durationDays)
	risk := RiskHigh
	switch {
	case performanceScore >= 90:
		risk = RiskLow
	case performanceScore >= 75:
		risk = RiskModerate
	case performanceScore >= 60:
		risk = RiskElevated
	}
	if progress > 1 && performanceScore < 90 {
		risk = RiskHigh
	}

	return EscrowReleaseResult{
		ImmediateRelease: immediate,
		ScheduledRelease: scheduled,
		HeldAmount:       held,
		NextReleaseDay:   nextDay,
		RiskAssessment:   risk,
	}
}

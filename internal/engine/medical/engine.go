package medical

import (
	"math"

	"github.com/magnatehq/magnate-server/internal/money"
)

// TrialPhase orders the drug development pipeline. Later phases carry less
// remaining risk and higher cumulative success probability.
type TrialPhase string

const (
	PhasePreclinical TrialPhase = "preclinical"
	PhaseOne         TrialPhase = "phase1"
	PhaseTwo         TrialPhase = "phase2"
	PhaseThree       TrialPhase = "phase3"
	PhaseApproval    TrialPhase = "approval"
)

// phaseOrder indexes phases for monotone interpolation. Unknown phases map
// to preclinical, the most conservative assumption.
var phaseOrder = map[TrialPhase]int{
	PhasePreclinical: 0,
	PhaseOne:         1,
	PhaseTwo:         2,
	PhaseThree:       3,
	PhaseApproval:    4,
}

// Per-phase duration in months, industry-typical medians.
var phaseDurationMonths = [5]int{18, 12, 24, 36, 12}

// Cumulative probability of eventual approval entering each phase, before
// therapeutic-area adjustment.
var basePhaseSuccess = [5]float64{0.08, 0.14, 0.28, 0.55, 0.90}

// Therapeutic-area difficulty multipliers on success probability. Oncology
// programs fail more often than vaccines.
var areaSuccessMultipliers = map[string]float64{
	"oncology":     0.7,
	"neurology":    0.75,
	"cardiology":   1.0,
	"infectious":   1.15,
	"vaccines":     1.25,
	"rare_disease": 0.9,
	"immunology":   0.95,
	"metabolic":    1.05,
	"general":      1.0,
}

func phaseIndex(phase TrialPhase) int {
	if idx, ok := phaseOrder[phase]; ok {
		return idx
	}
	return 0
}

func areaMultiplier(area string) float64 {
	if m, ok := areaSuccessMultipliers[area]; ok {
		return m
	}
	return 1.0
}

// Timeline estimates the remaining path to approval from the current phase.
type Timeline struct {
	RemainingMonths int            `json:"remaining_months"`
	PhaseMonths     map[string]int `json:"phase_months"`
}

// DevelopmentTimeline sums the median durations of the current and remaining
// phases. The current phase is counted in full.
func DevelopmentTimeline(phase TrialPhase) Timeline {
	idx := phaseIndex(phase)
	phases := []TrialPhase{PhasePreclinical, PhaseOne, PhaseTwo, PhaseThree, PhaseApproval}

	total := 0
	perPhase := make(map[string]int)
	for i := idx; i < len(phaseDurationMonths); i++ {
		total += phaseDurationMonths[i]
		perPhase[string(phases[i])] = phaseDurationMonths[i]
	}
	return Timeline{RemainingMonths: total, PhaseMonths: perPhase}
}

// SuccessProbability is the chance of eventual approval from the current
// phase, adjusted for therapeutic area. Always in [0,1] and non-decreasing
// across phases for a fixed area.
func SuccessProbability(area string, phase TrialPhase) float64 {
	base := basePhaseSuccess[phaseIndex(phase)]
	p := base * areaMultiplier(area)
	return money.Clamp(math.Round(p*10000)/10000, 0, 1)
}

// RiskScore grades the remaining development risk on [0,100]. It is the
// complement of the success probability with a small exposure premium for
// long remaining timelines, and strictly non-increasing across phases.
func RiskScore(area string, phase TrialPhase) float64 {
	p := SuccessProbability(area, phase)
	remaining := float64(DevelopmentTimeline(phase).RemainingMonths)
	exposure := math.Min(10, remaining/102*10)
	return money.RoundPercent(money.Clamp((1-p)*90+exposure, 0, 100))
}

// Patent is one granted or pending patent in a company's portfolio.
type Patent struct {
	EstimatedValue float64 `json:"estimated_value"`
	YearsRemaining float64 `json:"years_remaining"`
	Granted        bool    `json:"granted"`
}

// PatentValuation prices a portfolio. Each patent contributes its estimated
// value scaled by remaining life over the standard 20-year term; pending
// applications are discounted by half. More patents and higher estimated
// values never lower the total.
func PatentValuation(portfolio []Patent) float64 {
	total := 0.0
	for _, p := range portfolio {
		if p.EstimatedValue <= 0 {
			continue
		}
		life := money.Clamp(p.YearsRemaining, 0, 20) / 20
		v := p.EstimatedValue * life
		if !p.Granted {
			v *= 0.5
		}
		total += v
	}
	return money.RoundCents(total)
}

package achieve

import (
	"math"

	"github.com/magnatehq/magnate-server/internal/money"
	"github.com/magnatehq/magnate-server/internal/rng"
)

// Probability cap in percentage points. Keeping a hard ceiling below certainty
// is what preserves strategic tension around late-game milestones.
const MaxProbabilityPct = 75.0

// Learning-curve tuning. Each failed attempt at a milestone nudges the base
// rate up, capped so grinding attempts cannot substitute for research.
// Game-balance constants, not derived from anything.
const (
	LearningBonusPerFailurePct = 1.5
	LearningBonusCapPct        = 15.0
)

// MilestoneClass splits milestones into capability-advancing and
// alignment-advancing work; the class decides the sign of alignment changes.
type MilestoneClass string

const (
	ClassCapability MilestoneClass = "capability"
	ClassAlignment  MilestoneClass = "alignment"
)

// Milestone describes the research target being attempted.
type Milestone struct {
	Type       string
	Class      MilestoneClass
	Complexity float64 // abstract difficulty factor, typically 1..10
	Gap        float64 // capability-alignment gap in points, feeds catastrophic risk
}

// Params bundles the numeric state feeding the probability formula.
type Params struct {
	BaseRatePct         float64 // starting probability in percentage points
	ResearchPoints      float64
	ComputeBudgetUnused float64 // reserved for future weighting; not in the formula today
	AvgCapability       float64 // [0,100+]
	AvgAlignment        float64 // [0,100]
	FailedAttempts      int
}

// Breakdown itemizes every term of the probability formula.
type Breakdown struct {
	BaseRatePct      float64 `json:"base_rate_pct"`
	LearningBonusPct float64 `json:"learning_bonus_pct"`
	ResearchBoostPct float64 `json:"research_boost_pct"`
	CapabilityPct    float64 `json:"capability_bonus_pct"`
	AlignmentPct     float64 `json:"alignment_penalty_pct"`
	Capped           bool    `json:"capped"`
	FinalPct         float64 `json:"final_pct"`
}

// CapabilityGain is a per-metric delta applied to a CapabilityProfile.
type CapabilityGain map[string]float64

// AlignmentChange is a per-metric delta applied to an AlignmentProfile.
type AlignmentChange map[string]float64

// ImpactConsequences are the world-state effects of a successful milestone.
type ImpactConsequences struct {
	IndustryDisruption   float64 `json:"industry_disruption"`
	RegulatoryAttention  float64 `json:"regulatory_attention"`
	CompetitiveAdvantage float64 `json:"competitive_advantage"`
	CatastrophicRisk     float64 `json:"catastrophic_risk"`
	EconomicValue        float64 `json:"economic_value"`
}

// AttemptResult records one resolution. Immutable once produced; the caller
// appends it to the milestone's history and applies the deltas exactly once.
type AttemptResult struct {
	Success         bool                `json:"success"`
	Probability     float64             `json:"probability"` // fraction in [0, 0.75]
	Outcome         string              `json:"outcome"`
	Breakdown       Breakdown           `json:"breakdown"`
	CapabilityGain  CapabilityGain      `json:"capability_gain,omitempty"`
	AlignmentChange AlignmentChange     `json:"alignment_change,omitempty"`
	Impact          *ImpactConsequences `json:"impact_consequences,omitempty"`
}

// milestoneEffect is the consequence table row for one milestone type.
type milestoneEffect struct {
	Class   MilestoneClass
	Gain    CapabilityGain
	Align   AlignmentChange
	Outcome string
}

var milestoneEffects = map[string]milestoneEffect{
	"narrow_breakthrough": {
		Class:   ClassCapability,
		Gain:    CapabilityGain{"reasoning": 10, "generalization": 12},
		Align:   AlignmentChange{"robustness": -5, "interpretability": -5},
		Outcome: "Narrow-domain breakthrough shipped",
	},
	"multimodal_system": {
		Class:   ClassCapability,
		Gain:    CapabilityGain{"reasoning": 15, "planning": 12, "generalization": 18},
		Align:   AlignmentChange{"controlMechanisms": -10, "interpretability": -8},
		Outcome: "Multimodal system online",
	},
	"agi_prototype": {
		Class:   ClassCapability,
		Gain:    CapabilityGain{"reasoning": 30, "planning": 28, "generalization": 35},
		Align:   AlignmentChange{"safetyMeasures": -20, "controlMechanisms": -25, "robustness": -15},
		Outcome: "AGI prototype demonstrated",
	},
	"superintelligence": {
		Class:   ClassCapability,
		Gain:    CapabilityGain{"reasoning": 40, "planning": 40, "generalization": 40},
		Align:   AlignmentChange{"safetyMeasures": -30, "controlMechanisms": -30, "valueAlignmentScore": -25},
		Outcome: "Recursive self-improvement achieved",
	},
	"interpretability_suite": {
		Class:   ClassAlignment,
		Gain:    CapabilityGain{"reasoning": 10},
		Align:   AlignmentChange{"interpretability": 35, "robustness": 15},
		Outcome: "Interpretability tooling matured",
	},
	"scalable_oversight": {
		Class:   ClassAlignment,
		Gain:    CapabilityGain{"planning": 12},
		Align:   AlignmentChange{"controlMechanisms": 30, "safetyMeasures": 25},
		Outcome: "Scalable oversight protocol validated",
	},
	"value_learning": {
		Class:   ClassAlignment,
		Gain:    CapabilityGain{"generalization": 10},
		Align:   AlignmentChange{"valueAlignmentScore": 40, "ethicalConstraints": 30},
		Outcome: "Value learning milestone reached",
	},
}

// KnownMilestoneTypes lists the types the consequence table covers.
func KnownMilestoneTypes() []string {
	out := make([]string, 0, len(milestoneEffects))
	for k := range milestoneEffects {
		out = append(out, k)
	}
	return out
}

// LearningBonusPct converts a failure count into extra percentage points.
// Monotone non-decreasing, capped.
func LearningBonusPct(failedAttempts int) float64 {
	if failedAttempts <= 0 {
		return 0
	}
	return math.Min(LearningBonusCapPct, float64(failedAttempts)*LearningBonusPerFailurePct)
}

// ComputeProbability evaluates the milestone probability formula and returns
// the final percentage in [0, MaxProbabilityPct] with its breakdown.
//
// researchBoost = log10(points/1000 + 1) * 8
// capabilityBonus = avgCapability/100 * 20
// alignmentPenalty = -(100 - avgAlignment)/200 * 100
//
// The research term grows without an individual cap; only the total is
// clamped. Callers validate that ResearchPoints is non-negative.
func ComputeProbability(p Params) Breakdown {
	b := Breakdown{
		BaseRatePct:      p.BaseRatePct,
		LearningBonusPct: LearningBonusPct(p.FailedAttempts),
		ResearchBoostPct: math.Log10(p.ResearchPoints/1000+1) * 8,
		CapabilityPct:    p.AvgCapability / 100 * 20,
		AlignmentPct:     -(100 - p.AvgAlignment) / 200 * 100,
	}
	raw := b.BaseRatePct + b.LearningBonusPct + b.ResearchBoostPct + b.CapabilityPct + b.AlignmentPct
	b.FinalPct = money.Clamp(raw, 0, MaxProbabilityPct)
	b.Capped = raw > MaxProbabilityPct
	return b
}

// ResolveAttempt computes the probability, draws once from src, and branches
// into the consequence tables. Pure given the injected source: identical
// inputs and draws produce identical results.
func ResolveAttempt(m Milestone, p Params, src rng.RandomSource) AttemptResult {
	b := ComputeProbability(p)
	prob := b.FinalPct / 100

	result := AttemptResult{
		Probability: prob,
		Breakdown:   b,
	}

	if src.Float64() >= prob {
		result.Success = false
		result.Outcome = "Milestone attempt failed; research teams fold lessons into the next run"
		return result
	}

	result.Success = true
	effect, ok := milestoneEffects[m.Type]
	if !ok {
		// Unknown types still succeed but carry generic class-shaped effects.
		effect = genericEffect(m.Class)
	}
	result.Outcome = effect.Outcome
	result.CapabilityGain = effect.Gain
	result.AlignmentChange = effect.Align
	result.Impact = &ImpactConsequences{
		IndustryDisruption:   m.Complexity * 8,
		RegulatoryAttention:  m.Complexity * 7,
		CompetitiveAdvantage: m.Complexity * 9,
		CatastrophicRisk:     (m.Gap / 100) * (m.Complexity / 5),
		EconomicValue:        m.Complexity * 50_000_000,
	}
	return result
}

func genericEffect(class MilestoneClass) milestoneEffect {
	if class == ClassAlignment {
		return milestoneEffect{
			Class:   ClassAlignment,
			Gain:    CapabilityGain{"reasoning": 10},
			Align:   AlignmentChange{"safetyMeasures": 20},
			Outcome: "Alignment milestone reached",
		}
	}
	return milestoneEffect{
		Class:   ClassCapability,
		Gain:    CapabilityGain{"reasoning": 15, "generalization": 15},
		Align:   AlignmentChange{"robustness": -10},
		Outcome: "Capability milestone reached",
	}
}

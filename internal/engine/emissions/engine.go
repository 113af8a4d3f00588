package emissions

import "github.com/magnatehq/magnate-server/internal/money"

// Emission scopes per the GHG Protocol.
type Scope int

const (
	Scope1 Scope = 1 // direct combustion and process emissions
	Scope2 Scope = 2 // purchased electricity
	Scope3 Scope = 3 // upstream and downstream value chain
)

// emissionFactor is kg CO2e per production unit for an asset type, with the
// scope the emissions land in. Factors follow EPA / OPGEE / NREL figures.
type emissionFactor struct {
	kgPerUnit float64
	scope     Scope
}

var assetFactors = map[string]emissionFactor{
	"oil_well":        {kgPerUnit: 430, scope: Scope1},  // kg CO2e per barrel
	"gas_field":       {kgPerUnit: 53, scope: Scope1},   // per MMBtu
	"coal_plant":      {kgPerUnit: 1001, scope: Scope1}, // per MWh
	"gas_plant":       {kgPerUnit: 429, scope: Scope1},  // per MWh
	"refinery":        {kgPerUnit: 39, scope: Scope1},   // per barrel refined
	"grid_datacenter": {kgPerUnit: 389, scope: Scope2},  // per MWh drawn
	"solar_farm":      {kgPerUnit: 41, scope: Scope3},   // lifecycle, per MWh
	"wind_farm":       {kgPerUnit: 11, scope: Scope3},   // lifecycle, per MWh
	"logistics_fleet": {kgPerUnit: 62, scope: Scope3},   // per ton-mile
}

// Annual compliance thresholds in tons CO2e.
const (
	ReportingThresholdTons = 25_000
	ReductionThresholdTons = 50_000
	PenaltyThresholdTons   = 100_000
)

// Asset is one emitting facility with its annual production figure.
type Asset struct {
	ID        string  `json:"id"`
	AssetType string  `json:"asset_type"`
	Units     float64 `json:"units"` // annual production in the factor's unit
}

// Inventory is the rolled-up annual emissions picture for a company.
type Inventory struct {
	Scope1Tons float64 `json:"scope1_tons"`
	Scope2Tons float64 `json:"scope2_tons"`
	Scope3Tons float64 `json:"scope3_tons"`
	TotalTons  float64 `json:"total_tons"`

	PerAsset map[string]float64 `json:"per_asset_tons"`

	RequiresReporting     bool `json:"requires_reporting"`
	RequiresReductionPlan bool `json:"requires_reduction_plan"`
	SubjectToPenalties    bool `json:"subject_to_penalties"`
}

// CalculateInventory rolls per-asset production through the factor table
// into scope totals and compliance flags. Unknown asset types and negative
// production figures contribute nothing. A pure roll-up, no state.
func CalculateInventory(assets []Asset) Inventory {
	inv := Inventory{PerAsset: make(map[string]float64)}

	for _, a := range assets {
		factor, ok := assetFactors[a.AssetType]
		if !ok || a.Units <= 0 {
			continue
		}
		tons := a.Units * factor.kgPerUnit / 1000
		inv.PerAsset[a.ID] = money.RoundPercent(tons)
		switch factor.scope {
		case Scope1:
			inv.Scope1Tons += tons
		case Scope2:
			inv.Scope2Tons += tons
		case Scope3:
			inv.Scope3Tons += tons
		}
	}

	inv.Scope1Tons = money.RoundPercent(inv.Scope1Tons)
	inv.Scope2Tons = money.RoundPercent(inv.Scope2Tons)
	inv.Scope3Tons = money.RoundPercent(inv.Scope3Tons)
	inv.TotalTons = money.RoundPercent(inv.Scope1Tons + inv.Scope2Tons + inv.Scope3Tons)

	inv.RequiresReporting = inv.TotalTons >= ReportingThresholdTons
	inv.RequiresReductionPlan = inv.TotalTons >= ReductionThresholdTons
	inv.SubjectToPenalties = inv.TotalTons >= PenaltyThresholdTons

	return inv
}

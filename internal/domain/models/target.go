package models

// ScenarioTriple carries one value per target-price scenario.
type ScenarioTriple struct {
	Conservative float64 `json:"conservative"`
	Neutral      float64 `json:"neutral"`
	Aggressive   float64 `json:"aggressive"`
}

// TargetMethods exposes the per-method raw targets that fed the blend. A nil
// entry means the method had no usable inputs.
type TargetMethods struct {
	PERBased         *ScenarioTriple `json:"per_based,omitempty"`
	PBRBased         *ScenarioTriple `json:"pbr_based,omitempty"`
	Technical        *ScenarioTriple `json:"technical,omitempty"`
	AnalystConsensus *float64        `json:"analyst_consensus,omitempty"`
}

// TargetPriceSet blends the valuation methods into three scenario targets.
// Ordering is guaranteed: Conservative <= Neutral <= Aggressive, and each
// scenario respects its floor relative to the current price.
type TargetPriceSet struct {
	Conservative           float64        `json:"conservative"`
	Neutral                float64        `json:"neutral"`
	Aggressive             float64        `json:"aggressive"`
	CurrentPrice           float64        `json:"current_price"`
	UpsidePotential        ScenarioTriple `json:"upside_potential"` // percent per scenario
	Methods                TargetMethods  `json:"methods"`
	MarketAdjustmentFactor float64        `json:"market_adjustment_factor"`
}

package analysis

import (
	"errors"

	"StockPulse/internal/domain/models"
)

// ErrNoCurrentPrice means the target calculator had no price to anchor on.
var ErrNoCurrentPrice = errors.New("target price: current price missing or non-positive")

// Per-scenario method weights. Weights are renormalized over the methods
// that actually produced a value, so a missing method never starves the
// blend.
type scenarioWeights struct {
	per, pbr, technical, analyst float64
	analystFactor                float64
}

var targetScenarios = map[string]scenarioWeights{
	"conservative": {per: 0.30, pbr: 0.25, technical: 0.20, analyst: 0.25, analystFactor: 0.9},
	"neutral":      {per: 0.30, pbr: 0.25, technical: 0.20, analyst: 0.25, analystFactor: 1.0},
	"aggressive":   {per: 0.35, pbr: 0.20, technical: 0.25, analyst: 0.20, analystFactor: 1.1},
}

// Scenario floors relative to the current price.
var scenarioFloors = map[string]float64{
	"conservative": 0.95,
	"neutral":      1.00,
	"aggressive":   1.05,
}

// Fallback multipliers when no valuation method has usable inputs.
var fallbackMultipliers = map[string]float64{
	"conservative": 1.05,
	"neutral":      1.10,
	"aggressive":   1.20,
}

// CalculateTargetPrices blends up to four valuation methods into three
// scenario targets. Each method that has usable inputs contributes a
// per-scenario value; the weighted blend is then scaled by the market
// adjustment factor and floored against the current price. The scenarios are
// finally forced monotonic so conservative <= neutral <= aggressive always
// holds even when floors push them out of order.
func CalculateTargetPrices(stock models.StockFacts, sector models.SectorRelative, market models.MarketContext, analyst *models.AnalystOpinion) (models.TargetPriceSet, error) {
	t := stock.Technical
	if t.CurrentPrice == nil || *t.CurrentPrice <= 0 {
		return models.TargetPriceSet{}, ErrNoCurrentPrice
	}
	current := *t.CurrentPrice

	methods := models.TargetMethods{
		PERBased:  perTargets(stock.Financial, sector),
		PBRBased:  pbrTargets(stock.Financial),
		Technical: technicalTargets(current, t.Week52High),
	}
	if analyst != nil && analyst.AvgTargetPrice != nil && *analyst.AvgTargetPrice > 0 {
		methods.AnalystConsensus = analyst.AvgTargetPrice
	}

	set := models.TargetPriceSet{
		CurrentPrice:           current,
		Methods:                methods,
		MarketAdjustmentFactor: marketAdjustment(market),
	}

	if methods.PERBased == nil && methods.PBRBased == nil && methods.Technical == nil && methods.AnalystConsensus == nil {
		// nothing to blend, fall back to flat multiples of the current price
		set.MarketAdjustmentFactor = 1.0
		set.Conservative = current * fallbackMultipliers["conservative"]
		set.Neutral = current * fallbackMultipliers["neutral"]
		set.Aggressive = current * fallbackMultipliers["aggressive"]
	} else {
		set.Conservative = blendScenario("conservative", methods, set.MarketAdjustmentFactor, current)
		set.Neutral = blendScenario("neutral", methods, set.MarketAdjustmentFactor, current)
		set.Aggressive = blendScenario("aggressive", methods, set.MarketAdjustmentFactor, current)
	}

	if set.Neutral < set.Conservative {
		set.Neutral = set.Conservative
	}
	if set.Aggressive < set.Neutral {
		set.Aggressive = set.Neutral
	}

	set.UpsidePotential = models.ScenarioTriple{
		Conservative: (set.Conservative/current - 1) * 100,
		Neutral:      (set.Neutral/current - 1) * 100,
		Aggressive:   (set.Aggressive/current - 1) * 100,
	}
	return set, nil
}

func blendScenario(name string, methods models.TargetMethods, adjustment, current float64) float64 {
	w := targetScenarios[name]
	var sum, weightSum float64

	if methods.PERBased != nil {
		sum += scenarioValue(*methods.PERBased, name) * w.per
		weightSum += w.per
	}
	if methods.PBRBased != nil {
		sum += scenarioValue(*methods.PBRBased, name) * w.pbr
		weightSum += w.pbr
	}
	if methods.Technical != nil {
		sum += scenarioValue(*methods.Technical, name) * w.technical
		weightSum += w.technical
	}
	if methods.AnalystConsensus != nil {
		sum += *methods.AnalystConsensus * w.analystFactor * w.analyst
		weightSum += w.analyst
	}

	target := sum / weightSum * adjustment
	if floor := current * scenarioFloors[name]; target < floor {
		target = floor
	}
	return target
}

func scenarioValue(t models.ScenarioTriple, name string) float64 {
	switch name {
	case "conservative":
		return t.Conservative
	case "aggressive":
		return t.Aggressive
	default:
		return t.Neutral
	}
}

// perTargets values the stock off earnings. Sector relative strength tilts
// the multiple by up to 30% of its deviation from parity.
func perTargets(f models.FinancialRatios, sector models.SectorRelative) *models.ScenarioTriple {
	if f.PER == nil || f.EPS == nil || *f.PER <= 0 || *f.EPS <= 0 {
		return nil
	}
	rel := 1.0
	if sector.RelativeStrength != nil {
		rel = *sector.RelativeStrength
	}
	base := *f.EPS * *f.PER * (1 + (rel-1)*0.3)
	return &models.ScenarioTriple{
		Conservative: base * 0.9,
		Neutral:      base * 1.0,
		Aggressive:   base * 1.2,
	}
}

func pbrTargets(f models.FinancialRatios) *models.ScenarioTriple {
	if f.PBR == nil || f.BPS == nil || *f.PBR <= 0 || *f.BPS <= 0 {
		return nil
	}
	base := *f.BPS * *f.PBR
	return &models.ScenarioTriple{
		Conservative: base * 0.85,
		Neutral:      base * 1.0,
		Aggressive:   base * 1.15,
	}
}

// technicalTargets projects a partial or full retrace to the 52-week high.
func technicalTargets(current float64, week52High *float64) *models.ScenarioTriple {
	if week52High == nil || *week52High <= 0 {
		return nil
	}
	high := *week52High
	return &models.ScenarioTriple{
		Conservative: current + (high-current)*0.3,
		Neutral:      current + (high-current)*0.5,
		Aggressive:   high * 1.05,
	}
}

// marketAdjustment scales targets by broad market conditions, clamped to
// [0.9, 1.1].
func marketAdjustment(m models.MarketContext) float64 {
	factor := 1.0
	switch m.Trend {
	case models.TrendBullish:
		factor += 0.05
	case models.TrendBearish:
		factor -= 0.05
	}
	if m.Strength != nil {
		factor += (*m.Strength - 50) / 1000
	}
	switch m.VolatilityLevel {
	case models.VolatilityLow:
		factor += 0.02
	case models.VolatilityHigh:
		factor -= 0.03
	}
	if factor < 0.9 {
		factor = 0.9
	}
	if factor > 1.1 {
		factor = 1.1
	}
	return factor
}

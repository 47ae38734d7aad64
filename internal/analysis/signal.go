package analysis

import (
	"fmt"
	"math"
	"strings"

	"StockPulse/internal/domain/models"
)

// Composite weights for the final signal score. They sum to one.
const (
	signalWeightPrice  = 0.25
	signalWeightTech   = 0.30
	signalWeightRisk   = 0.20
	signalWeightMarket = 0.15
	signalWeightAI     = 0.10
)

const (
	maxFavorableFactors   = 3
	maxUnfavorableFactors = 2
)

// GenerateTradingSignal combines the five sub-analyses into the final
// actionable signal. All sub-scores live on a 0-100 scale before weighting;
// the decision thresholds then pick the action, strength and confidence in
// one pass so they can never disagree with each other.
func GenerateTradingSignal(targets models.TargetPriceSet, tech models.TechnicalIndicators, risk models.RiskScoreBreakdown, market models.MarketContext, ensemble models.EnsembleResult) models.TradingSignal {
	breakdown := models.AnalysisBreakdown{
		PricePosition: analyzePricePosition(targets),
		Technical:     analyzeTechnicalSignal(tech),
		Risk:          assessRisk(risk, market),
		Market:        analyzeMarketFavorability(market),
		AIConsensus:   analyzeAIConsensus(ensemble),
	}

	total := breakdown.PricePosition.Score*signalWeightPrice +
		breakdown.Technical.Score*signalWeightTech +
		(100-breakdown.Risk.OverallRisk)*signalWeightRisk +
		breakdown.Market.Score*signalWeightMarket +
		breakdown.AIConsensus.SignalStrength*signalWeightAI

	action, strength, confidence := decide(total)
	timing := entryTiming(action, strength, confidence)
	current := targets.CurrentPrice

	signal := models.TradingSignal{
		Action:          action,
		Confidence:      confidence,
		Strength:        strength,
		EntryTiming:     timing,
		PositionSize:    positionSize(action, strength, confidence, breakdown.Risk.RiskGrade),
		EntryPriceRange: entryRange(current, timing),
		StopLoss:        stopLoss(current, breakdown.Risk.OverallRisk, tech),
		TakeProfit: models.TakeProfitLevels{
			Target1: targets.Conservative,
			Target2: targets.Neutral,
			Target3: targets.Aggressive,
		},
		Risks:     breakdown.Risk.KeyRisks,
		Breakdown: breakdown,
	}

	signal.FavorableFactors, signal.UnfavorableFactors = signalFactors(breakdown)
	signal.Reasoning = reasoning(action, signal.FavorableFactors, signal.UnfavorableFactors)
	return signal
}

// analyzePricePosition scores how attractive the current price is against
// the neutral scenario target.
func analyzePricePosition(targets models.TargetPriceSet) models.PricePositionAnalysis {
	upside := targets.UpsidePotential.Neutral

	var score float64
	var attractiveness string
	switch {
	case upside >= 20:
		score, attractiveness = 80, "high"
	case upside >= 10:
		score, attractiveness = 60, "moderate"
	case upside >= 0:
		score, attractiveness = 40, "low"
	default:
		score, attractiveness = 20, "overvalued"
	}

	analystSignal := "neutral"
	if targets.Methods.AnalystConsensus != nil && targets.CurrentPrice > 0 {
		analystUpside := (*targets.Methods.AnalystConsensus/targets.CurrentPrice - 1) * 100
		switch {
		case analystUpside >= 15:
			analystSignal = "bullish"
		case analystUpside <= -5:
			analystSignal = "bearish"
		}
	}

	return models.PricePositionAnalysis{
		Upside:         targets.UpsidePotential,
		Attractiveness: attractiveness,
		AnalystSignal:  analystSignal,
		Score:          score,
	}
}

// analyzeTechnicalSignal averages the per-indicator directional scores
// (-100..100) and normalizes the average onto the 0-100 composite scale.
// A missing indicator substitutes its neutral value (RSI 50, flat MACD,
// middle band) and still counts in the denominator, so partial data never
// amplifies the indicators that did fire. An indicator label is recorded
// only when it actually fired.
func analyzeTechnicalSignal(t models.TechnicalIndicators) models.TechnicalSignalAnalysis {
	var scores []float64
	var fired []string
	analysis := models.TechnicalSignalAnalysis{Indicators: []string{}}

	analysis.RSI = 50
	if t.RSI != nil {
		analysis.RSI = *t.RSI
	}
	switch {
	case analysis.RSI < 30:
		scores = append(scores, 70)
		fired = append(fired, "rsi_oversold")
	case analysis.RSI > 70:
		scores = append(scores, -70)
		fired = append(fired, "rsi_overbought")
	default:
		scores = append(scores, 0)
	}

	if m := t.MACD; m != nil && m.Value != nil && m.Signal != nil && m.Histogram != nil {
		analysis.MACDHistogram = *m.Histogram
		switch {
		case *m.Histogram > 0 && *m.Value > *m.Signal:
			scores = append(scores, 60)
			fired = append(fired, "macd_bullish")
		case *m.Histogram < 0 && *m.Value < *m.Signal:
			scores = append(scores, -60)
			fired = append(fired, "macd_bearish")
		default:
			scores = append(scores, 0)
		}
	} else {
		scores = append(scores, 0)
	}

	analysis.BollingerPosition = models.BollingerMiddle
	if t.Bollinger != nil {
		analysis.BollingerPosition = BollingerPositionFor(t)
	}
	switch analysis.BollingerPosition {
	case models.BollingerBelowLower:
		scores = append(scores, 50)
		fired = append(fired, "bollinger_below_lower")
	case models.BollingerAboveUpper:
		scores = append(scores, -50)
		fired = append(fired, "bollinger_above_upper")
	case models.BollingerNearLower:
		scores = append(scores, 30)
		fired = append(fired, "bollinger_near_lower")
	case models.BollingerNearUpper:
		scores = append(scores, -30)
		fired = append(fired, "bollinger_near_upper")
	default:
		scores = append(scores, 0)
	}

	switch t.MovingAverageTrend {
	case models.MAGoldenCross:
		scores = append(scores, 50)
		fired = append(fired, "golden_cross")
	case models.MADeadCross:
		scores = append(scores, -50)
		fired = append(fired, "dead_cross")
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	raw := sum / float64(len(scores))

	analysis.Score = (raw + 100) / 2
	analysis.Signal = technicalLabel(raw)
	if fired != nil {
		analysis.Indicators = fired
	}
	return analysis
}

func technicalLabel(raw float64) string {
	switch {
	case raw >= 40:
		return "strong_buy"
	case raw >= 20:
		return "buy"
	case raw >= -20:
		return "neutral"
	case raw >= -40:
		return "sell"
	default:
		return "strong_sell"
	}
}

// assessRisk converts the risk breakdown into the sizing grade. Broad market
// volatility tilts the composite before grading.
func assessRisk(risk models.RiskScoreBreakdown, market models.MarketContext) models.RiskAssessment {
	overall := risk.TotalScore
	switch market.VolatilityLevel {
	case models.VolatilityHigh:
		overall += 10
	case models.VolatilityLow:
		overall -= 5
	}
	overall = clamp(overall, 0, 100)

	grade := "low"
	switch {
	case overall >= 70:
		grade = "high"
	case overall >= 40:
		grade = "moderate"
	}

	return models.RiskAssessment{
		OverallRisk: overall,
		RiskGrade:   grade,
		KeyRisks:    keyRisks(risk),
	}
}

// keyRisks names the categories running above half their cap.
func keyRisks(risk models.RiskScoreBreakdown) []string {
	risks := []string{}
	if risk.NewsSentiment > newsRiskCap/2 {
		risks = append(risks, "negative news flow")
	}
	if risk.Volatility > volatilityRiskCap/2 {
		risks = append(risks, "elevated price volatility")
	}
	if risk.Financial > financialRiskCap/2 {
		risks = append(risks, "weak financial structure")
	}
	if risk.Market > marketRiskCap/2 {
		risks = append(risks, "adverse market conditions")
	}
	if risk.Liquidity > liquidityRiskCap/2 {
		risks = append(risks, "thin liquidity")
	}
	return risks
}

func analyzeMarketFavorability(market models.MarketContext) models.MarketFavorability {
	score := 50.0
	switch market.Trend {
	case models.TrendBullish:
		score += 20
	case models.TrendBearish:
		score -= 20
	}
	strength := 50.0
	if market.Strength != nil {
		strength = *market.Strength
	}
	score += (strength - 50) * 0.3
	switch market.VolatilityLevel {
	case models.VolatilityLow:
		score += 10
	case models.VolatilityHigh:
		score -= 15
	}
	if market.BreadthPct != nil {
		score += (*market.BreadthPct - 50) * 0.2
	}
	score = clamp(score, 0, 100)

	var label string
	switch {
	case score >= 70:
		label = "very_favorable"
	case score >= 55:
		label = "favorable"
	case score >= 45:
		label = "neutral"
	case score >= 30:
		label = "unfavorable"
	default:
		label = "very_unfavorable"
	}

	return models.MarketFavorability{
		Favorability: label,
		Score:        score,
		Trend:        market.Trend,
		Strength:     strength,
	}
}

// analyzeAIConsensus maps the consensus call onto the 0-100 signal scale.
// A sell consensus scores below 50 so it drags the composite down instead
// of propping it up.
func analyzeAIConsensus(ensemble models.EnsembleResult) models.AIConsensusSignal {
	strength := 50.0
	switch string(ensemble.Recommendation) {
	case "strong_buy":
		strength = 80
	case "buy":
		strength = 60
	case "hold":
		strength = 50
	case "sell":
		strength = 40
	case "strong_sell":
		strength = 20
	}

	signal := models.ActionHold
	switch {
	case strength > 50:
		signal = models.ActionBuy
	case strength < 50:
		signal = models.ActionSell
	}

	return models.AIConsensusSignal{
		Signal:         signal,
		Consensus:      string(ensemble.Recommendation),
		Confidence:     ensemble.ConfidenceScore,
		SignalStrength: strength,
	}
}

// decide maps the weighted composite onto (action, strength, confidence).
func decide(total float64) (models.Action, models.SignalStrength, float64) {
	switch {
	case total >= 70:
		return models.ActionBuy, models.StrengthStrong, math.Min(95, total)
	case total >= 55:
		return models.ActionBuy, models.StrengthModerate, total
	case total >= 45:
		return models.ActionHold, models.StrengthNeutral, 100 - math.Abs(total-50)*2
	case total >= 30:
		return models.ActionSell, models.StrengthModerate, 100 - total
	default:
		return models.ActionSell, models.StrengthStrong, math.Min(95, 100-total)
	}
}

func entryTiming(action models.Action, strength models.SignalStrength, confidence float64) models.EntryTiming {
	switch action {
	case models.ActionBuy:
		if strength == models.StrengthStrong && confidence >= 80 {
			return models.EntryImmediate
		}
		if strength == models.StrengthModerate || confidence >= 60 {
			return models.EntryGradual
		}
		return models.EntryWait
	case models.ActionSell:
		if strength == models.StrengthStrong {
			return models.EntryImmediate
		}
		return models.EntryGradual
	default:
		return models.EntryWait
	}
}

func positionSize(action models.Action, strength models.SignalStrength, confidence float64, riskGrade string) models.PositionSize {
	switch action {
	case models.ActionBuy:
		if riskGrade == "low" && confidence >= 75 {
			return models.PositionLarge
		}
		if riskGrade == "moderate" || confidence >= 60 {
			return models.PositionMedium
		}
		return models.PositionSmall
	case models.ActionSell:
		if riskGrade == "high" || strength == models.StrengthStrong {
			return models.PositionLarge
		}
		return models.PositionMedium
	default:
		return models.PositionNone
	}
}

// entryRange widens to a 3% band when entering gradually; immediate and
// wait anchor on the current price.
func entryRange(current float64, timing models.EntryTiming) models.PriceRange {
	if timing == models.EntryGradual {
		return models.PriceRange{Lower: current * 0.97, Upper: current * 1.03}
	}
	return models.PriceRange{Lower: current, Upper: current}
}

// stopLoss tightens with risk and never sits above 98% of the lower
// Bollinger band.
func stopLoss(current, overallRisk float64, t models.TechnicalIndicators) float64 {
	var stop float64
	switch {
	case overallRisk >= 70:
		stop = current * 0.95
	case overallRisk >= 40:
		stop = current * 0.93
	default:
		stop = current * 0.90
	}

	bollLower := current * 0.95
	if t.Bollinger != nil && t.Bollinger.Lower != nil && *t.Bollinger.Lower > 0 {
		bollLower = *t.Bollinger.Lower
	}
	if floor := bollLower * 0.98; stop < floor {
		stop = floor
	}
	return stop
}

func signalFactors(b models.AnalysisBreakdown) (favorable, unfavorable []string) {
	favorable = []string{}
	unfavorable = []string{}

	if b.PricePosition.Upside.Neutral >= 10 {
		favorable = append(favorable, fmt.Sprintf("%.1f%% upside to neutral target", b.PricePosition.Upside.Neutral))
	}
	if b.Technical.Score >= 60 {
		favorable = append(favorable, "bullish technical setup")
	}
	if b.Risk.RiskGrade == "low" {
		favorable = append(favorable, "low overall risk")
	}
	if b.Market.Score >= 55 {
		favorable = append(favorable, "favorable market conditions")
	}
	if b.AIConsensus.Signal == models.ActionBuy {
		favorable = append(favorable, "AI consensus leans buy")
	}
	if len(favorable) > maxFavorableFactors {
		favorable = favorable[:maxFavorableFactors]
	}

	if b.Technical.Score <= 40 {
		unfavorable = append(unfavorable, "bearish technical setup")
	}
	if b.Risk.RiskGrade == "high" {
		unfavorable = append(unfavorable, "high overall risk")
	}
	if b.Market.Score < 45 {
		unfavorable = append(unfavorable, "unfavorable market conditions")
	}
	if b.AIConsensus.Signal == models.ActionSell {
		unfavorable = append(unfavorable, "AI consensus leans sell")
	}
	if len(unfavorable) > maxUnfavorableFactors {
		unfavorable = unfavorable[:maxUnfavorableFactors]
	}
	return favorable, unfavorable
}

func reasoning(action models.Action, favorable, unfavorable []string) string {
	var sb strings.Builder
	sb.WriteString(string(action))
	if len(favorable) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(favorable, "; "))
	}
	if len(unfavorable) > 0 {
		sb.WriteString(" / watch: ")
		sb.WriteString(strings.Join(unfavorable, "; "))
	}
	return sb.String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package analysis

import (
	"testing"

	"StockPulse/internal/domain/models"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		total      float64
		action     models.Action
		strength   models.SignalStrength
		confidence float64
	}{
		{96, models.ActionBuy, models.StrengthStrong, 95},
		{70, models.ActionBuy, models.StrengthStrong, 70},
		{55, models.ActionBuy, models.StrengthModerate, 55},
		{50, models.ActionHold, models.StrengthNeutral, 100},
		{45, models.ActionHold, models.StrengthNeutral, 90},
		{44, models.ActionSell, models.StrengthModerate, 56},
		{30, models.ActionSell, models.StrengthModerate, 70},
		{29, models.ActionSell, models.StrengthStrong, 71},
		{0, models.ActionSell, models.StrengthStrong, 95},
	}

	for _, tt := range tests {
		action, strength, confidence := decide(tt.total)
		if action != tt.action || strength != tt.strength || !almostEqual(confidence, tt.confidence) {
			t.Errorf("decide(%v) = %s/%s/%v, want %s/%s/%v",
				tt.total, action, strength, confidence, tt.action, tt.strength, tt.confidence)
		}
	}
}

func TestAnalyzePricePosition(t *testing.T) {
	tests := []struct {
		upside         float64
		score          float64
		attractiveness string
	}{
		{25, 80, "high"},
		{15, 60, "moderate"},
		{5, 40, "low"},
		{-3, 20, "overvalued"},
	}
	for _, tt := range tests {
		targets := models.TargetPriceSet{
			CurrentPrice:    100,
			UpsidePotential: models.ScenarioTriple{Neutral: tt.upside},
		}
		got := analyzePricePosition(targets)
		if got.Score != tt.score || got.Attractiveness != tt.attractiveness {
			t.Errorf("upside %v: got %v/%s, want %v/%s", tt.upside, got.Score, got.Attractiveness, tt.score, tt.attractiveness)
		}
	}
}

func TestAnalyzePricePositionAnalystSignal(t *testing.T) {
	tests := []struct {
		target *float64
		want   string
	}{
		{nil, "neutral"},
		{fptr(120), "bullish"},
		{fptr(90), "bearish"},
		{fptr(105), "neutral"},
	}
	for _, tt := range tests {
		targets := models.TargetPriceSet{
			CurrentPrice: 100,
			Methods:      models.TargetMethods{AnalystConsensus: tt.target},
		}
		if got := analyzePricePosition(targets).AnalystSignal; got != tt.want {
			t.Errorf("analyst target %v: got %s, want %s", tt.target, got, tt.want)
		}
	}
}

func TestAnalyzeTechnicalSignalBullish(t *testing.T) {
	tech := models.TechnicalIndicators{
		RSI:                fptr(25),
		MovingAverageTrend: models.MAGoldenCross,
	}

	got := analyzeTechnicalSignal(tech)

	// (70 + 0 + 0 + 50) / 4 = 30 raw, normalized to 65
	if !almostEqual(got.Score, 65) {
		t.Errorf("score: got %v, want 65", got.Score)
	}
	if got.Signal != "buy" {
		t.Errorf("signal: got %s, want buy", got.Signal)
	}
	wantFired := map[string]bool{"rsi_oversold": true, "golden_cross": true}
	if len(got.Indicators) != 2 || !wantFired[got.Indicators[0]] || !wantFired[got.Indicators[1]] {
		t.Errorf("indicators: got %v", got.Indicators)
	}
}

func TestAnalyzeTechnicalSignalBearish(t *testing.T) {
	tech := models.TechnicalIndicators{
		RSI: fptr(75),
		MACD: &models.MACD{
			Value:     fptr(-1.5),
			Signal:    fptr(-1.0),
			Histogram: fptr(-0.5),
		},
		MovingAverageTrend: models.MADeadCross,
	}

	got := analyzeTechnicalSignal(tech)

	// (-70 - 60 + 0 - 50) / 4 = -45 raw, normalized to 27.5
	if !almostEqual(got.Score, 27.5) {
		t.Errorf("score: got %v, want 27.5", got.Score)
	}
	if got.Signal != "strong_sell" {
		t.Errorf("signal: got %s, want strong_sell", got.Signal)
	}
}

func TestAnalyzeTechnicalSignalNoData(t *testing.T) {
	got := analyzeTechnicalSignal(models.TechnicalIndicators{})

	if !almostEqual(got.Score, 50) {
		t.Errorf("score: got %v, want neutral 50", got.Score)
	}
	if got.Signal != "neutral" {
		t.Errorf("signal: got %s, want neutral", got.Signal)
	}
	if len(got.Indicators) != 0 {
		t.Errorf("no indicator should fire: %v", got.Indicators)
	}
}

func TestAnalyzeTechnicalSignalNeutralRSIStillCounts(t *testing.T) {
	got := analyzeTechnicalSignal(models.TechnicalIndicators{
		RSI:                fptr(50),
		MovingAverageTrend: models.MAGoldenCross,
	})

	// (0 + 0 + 0 + 50) / 4 = 12.5 raw, normalized to 56.25
	if !almostEqual(got.Score, 56.25) {
		t.Errorf("score: got %v, want 56.25", got.Score)
	}
	if got.Signal != "neutral" {
		t.Errorf("signal: got %s, want neutral", got.Signal)
	}
}

func TestAnalyzeTechnicalSignalPartialDataStaysDamped(t *testing.T) {
	// A single oversold RSI with MACD and Bollinger missing must average
	// over the neutral substitutes, not over the one indicator that fired.
	got := analyzeTechnicalSignal(models.TechnicalIndicators{RSI: fptr(25)})

	// (70 + 0 + 0) / 3 = 23.33 raw, normalized to 61.67
	if !almostEqual(got.Score, 185.0/3.0) {
		t.Errorf("score: got %v, want %v", got.Score, 185.0/3.0)
	}
	if got.Signal != "buy" {
		t.Errorf("signal: got %s, want buy", got.Signal)
	}
	if len(got.Indicators) != 1 || got.Indicators[0] != "rsi_oversold" {
		t.Errorf("indicators: got %v", got.Indicators)
	}
	if got.BollingerPosition != models.BollingerMiddle {
		t.Errorf("bollinger position: got %s, want middle", got.BollingerPosition)
	}
}

func TestAssessRisk(t *testing.T) {
	base := models.RiskScoreBreakdown{TotalScore: 65}

	high := assessRisk(base, models.MarketContext{VolatilityLevel: models.VolatilityHigh})
	if !almostEqual(high.OverallRisk, 75) || high.RiskGrade != "high" {
		t.Errorf("high vol: got %v/%s, want 75/high", high.OverallRisk, high.RiskGrade)
	}

	low := assessRisk(base, models.MarketContext{VolatilityLevel: models.VolatilityLow})
	if !almostEqual(low.OverallRisk, 60) || low.RiskGrade != "moderate" {
		t.Errorf("low vol: got %v/%s, want 60/moderate", low.OverallRisk, low.RiskGrade)
	}

	calm := assessRisk(models.RiskScoreBreakdown{TotalScore: 20}, models.MarketContext{})
	if calm.RiskGrade != "low" {
		t.Errorf("calm: got %s, want low", calm.RiskGrade)
	}

	clamped := assessRisk(models.RiskScoreBreakdown{TotalScore: 95}, models.MarketContext{VolatilityLevel: models.VolatilityHigh})
	if clamped.OverallRisk != 100 {
		t.Errorf("overall risk must clamp at 100, got %v", clamped.OverallRisk)
	}
}

func TestKeyRisks(t *testing.T) {
	risks := keyRisks(models.RiskScoreBreakdown{
		NewsSentiment: 20, // above 15
		Volatility:    10, // below 12.5
		Financial:     15, // above 10
		Market:        5,  // below 7.5
		Liquidity:     8,  // above 5
	})
	if len(risks) != 3 {
		t.Fatalf("got %v, want 3 named risks", risks)
	}
}

func TestAnalyzeMarketFavorability(t *testing.T) {
	bull := analyzeMarketFavorability(models.MarketContext{
		Trend:           models.TrendBullish,
		Strength:        fptr(80),
		VolatilityLevel: models.VolatilityLow,
		BreadthPct:      fptr(70),
	})
	// 50 + 20 + 9 + 10 + 4 = 93
	if !almostEqual(bull.Score, 93) || bull.Favorability != "very_favorable" {
		t.Errorf("bull: got %v/%s, want 93/very_favorable", bull.Score, bull.Favorability)
	}

	bear := analyzeMarketFavorability(models.MarketContext{
		Trend:           models.TrendBearish,
		Strength:        fptr(20),
		VolatilityLevel: models.VolatilityHigh,
		BreadthPct:      fptr(30),
	})
	// 50 - 20 - 9 - 15 - 4 = 2
	if !almostEqual(bear.Score, 2) || bear.Favorability != "very_unfavorable" {
		t.Errorf("bear: got %v/%s, want 2/very_unfavorable", bear.Score, bear.Favorability)
	}

	flat := analyzeMarketFavorability(models.MarketContext{})
	if !almostEqual(flat.Score, 50) || flat.Favorability != "neutral" {
		t.Errorf("flat: got %v/%s, want 50/neutral", flat.Score, flat.Favorability)
	}
}

func TestAnalyzeAIConsensus(t *testing.T) {
	tests := []struct {
		rec      models.Recommendation
		strength float64
		signal   models.Action
	}{
		{models.RecommendBuy, 60, models.ActionBuy},
		{models.RecommendHold, 50, models.ActionHold},
		{models.RecommendSell, 40, models.ActionSell},
		{"strong_buy", 80, models.ActionBuy},
		{"strong_sell", 20, models.ActionSell},
		{"", 50, models.ActionHold},
	}
	for _, tt := range tests {
		got := analyzeAIConsensus(models.EnsembleResult{Recommendation: tt.rec, ConfidenceScore: 77})
		if !almostEqual(got.SignalStrength, tt.strength) || got.Signal != tt.signal {
			t.Errorf("%q: got %v/%s, want %v/%s", tt.rec, got.SignalStrength, got.Signal, tt.strength, tt.signal)
		}
		if got.Confidence != 77 {
			t.Errorf("ensemble confidence must pass through, got %v", got.Confidence)
		}
	}
}

func TestStopLoss(t *testing.T) {
	// moderate risk, no bands: 7% stop wins over the default band floor
	if got := stopLoss(100, 50, models.TechnicalIndicators{}); !almostEqual(got, 93.1) {
		t.Errorf("got %v, want 93.1", got)
	}
	// high risk tightens to 5%
	if got := stopLoss(100, 80, models.TechnicalIndicators{}); !almostEqual(got, 95) {
		t.Errorf("got %v, want 95", got)
	}
	// low risk with a real lower band: 10% stop raised to 98% of the band
	tech := models.TechnicalIndicators{Bollinger: &models.BollingerBands{Lower: fptr(94)}}
	if got := stopLoss(100, 20, tech); !almostEqual(got, 92.12) {
		t.Errorf("got %v, want 92.12", got)
	}
	// band floor below the stop leaves the stop alone
	tech = models.TechnicalIndicators{Bollinger: &models.BollingerBands{Lower: fptr(90)}}
	if got := stopLoss(100, 50, tech); !almostEqual(got, 93) {
		t.Errorf("got %v, want 93", got)
	}
}

func TestEntryRange(t *testing.T) {
	gradual := entryRange(100, models.EntryGradual)
	if !almostEqual(gradual.Lower, 97) || !almostEqual(gradual.Upper, 103) {
		t.Errorf("gradual: got %+v, want [97, 103]", gradual)
	}
	immediate := entryRange(100, models.EntryImmediate)
	if !almostEqual(immediate.Lower, 100) || !almostEqual(immediate.Upper, 100) {
		t.Errorf("immediate: got %+v, want [100, 100]", immediate)
	}
}

func TestGenerateTradingSignalStrongBuy(t *testing.T) {
	targets := models.TargetPriceSet{
		Conservative:    115,
		Neutral:         125,
		Aggressive:      140,
		CurrentPrice:    100,
		UpsidePotential: models.ScenarioTriple{Conservative: 15, Neutral: 25, Aggressive: 40},
	}
	tech := models.TechnicalIndicators{
		RSI: fptr(25),
		MACD: &models.MACD{
			Value:     fptr(1.5),
			Signal:    fptr(1.0),
			Histogram: fptr(0.5),
		},
		Bollinger:          &models.BollingerBands{Position: models.BollingerBelowLower},
		MovingAverageTrend: models.MAGoldenCross,
	}
	risk := models.RiskScoreBreakdown{TotalScore: 10}
	market := models.MarketContext{
		Trend:           models.TrendBullish,
		Strength:        fptr(80),
		VolatilityLevel: models.VolatilityLow,
	}
	ensemble := models.EnsembleResult{Recommendation: models.RecommendBuy, ConfidenceScore: 85}

	signal := GenerateTradingSignal(targets, tech, risk, market, ensemble)

	// 80*.25 + 78.75*.30 + 95*.20 + 89*.15 + 60*.10 = 81.975
	if signal.Action != models.ActionBuy || signal.Strength != models.StrengthStrong {
		t.Fatalf("got %s/%s, want buy/strong", signal.Action, signal.Strength)
	}
	if !almostEqual(signal.Confidence, 81.975) {
		t.Errorf("confidence: got %v, want 81.975", signal.Confidence)
	}
	if signal.EntryTiming != models.EntryImmediate {
		t.Errorf("timing: got %s, want immediate", signal.EntryTiming)
	}
	if signal.PositionSize != models.PositionLarge {
		t.Errorf("position: got %s, want large", signal.PositionSize)
	}
	if !almostEqual(signal.EntryPriceRange.Lower, 100) || !almostEqual(signal.EntryPriceRange.Upper, 100) {
		t.Errorf("entry range: got %+v", signal.EntryPriceRange)
	}
	// low risk 10% stop raised to the default band floor 95*0.98
	if !almostEqual(signal.StopLoss, 93.1) {
		t.Errorf("stop loss: got %v, want 93.1", signal.StopLoss)
	}
	if !almostEqual(signal.TakeProfit.Target1, 115) || !almostEqual(signal.TakeProfit.Target2, 125) || !almostEqual(signal.TakeProfit.Target3, 140) {
		t.Errorf("take profit: got %+v", signal.TakeProfit)
	}
	if len(signal.FavorableFactors) != 3 {
		t.Errorf("favorable factors capped at 3, got %v", signal.FavorableFactors)
	}
	if len(signal.UnfavorableFactors) != 0 {
		t.Errorf("expected no unfavorable factors, got %v", signal.UnfavorableFactors)
	}
	if signal.Reasoning == "" {
		t.Error("expected reasoning text")
	}
}

func TestGenerateTradingSignalStrongSell(t *testing.T) {
	targets := models.TargetPriceSet{
		Conservative:    95,
		Neutral:         96,
		Aggressive:      105,
		CurrentPrice:    100,
		UpsidePotential: models.ScenarioTriple{Conservative: -5, Neutral: -4, Aggressive: 5},
	}
	tech := models.TechnicalIndicators{
		RSI: fptr(75),
		MACD: &models.MACD{
			Value:     fptr(-1.5),
			Signal:    fptr(-1.0),
			Histogram: fptr(-0.5),
		},
		MovingAverageTrend: models.MADeadCross,
	}
	risk := models.RiskScoreBreakdown{TotalScore: 80, Volatility: 20, Financial: 15}
	market := models.MarketContext{
		Trend:           models.TrendBearish,
		Strength:        fptr(20),
		VolatilityLevel: models.VolatilityHigh,
	}
	ensemble := models.EnsembleResult{Recommendation: models.RecommendSell, ConfidenceScore: 70}

	signal := GenerateTradingSignal(targets, tech, risk, market, ensemble)

	// 20*.25 + 27.5*.30 + 10*.20 + 6*.15 + 40*.10 = 20.15
	if signal.Action != models.ActionSell || signal.Strength != models.StrengthStrong {
		t.Fatalf("got %s/%s, want sell/strong", signal.Action, signal.Strength)
	}
	if !almostEqual(signal.Confidence, 79.85) {
		t.Errorf("confidence: got %v, want 79.85", signal.Confidence)
	}
	if signal.EntryTiming != models.EntryImmediate {
		t.Errorf("timing: got %s, want immediate", signal.EntryTiming)
	}
	if signal.PositionSize != models.PositionLarge {
		t.Errorf("position: got %s, want large", signal.PositionSize)
	}
	// 90+ overall risk tightens the stop to 5%
	if !almostEqual(signal.StopLoss, 95) {
		t.Errorf("stop loss: got %v, want 95", signal.StopLoss)
	}
	if len(signal.UnfavorableFactors) != 2 {
		t.Errorf("unfavorable factors capped at 2, got %v", signal.UnfavorableFactors)
	}
	if len(signal.Risks) == 0 {
		t.Error("expected named risks")
	}
}

func TestGenerateTradingSignalHold(t *testing.T) {
	targets := models.TargetPriceSet{
		Conservative:    100,
		Neutral:         105,
		Aggressive:      112,
		CurrentPrice:    100,
		UpsidePotential: models.ScenarioTriple{Neutral: 5},
	}
	risk := models.RiskScoreBreakdown{TotalScore: 50}
	ensemble := models.EnsembleResult{Recommendation: models.RecommendHold, ConfidenceScore: 60}

	signal := GenerateTradingSignal(targets, models.TechnicalIndicators{}, risk, models.MarketContext{}, ensemble)

	// 40*.25 + 50*.30 + 50*.20 + 50*.15 + 50*.10 = 47.5
	if signal.Action != models.ActionHold {
		t.Fatalf("got %s, want hold", signal.Action)
	}
	if signal.EntryTiming != models.EntryWait {
		t.Errorf("timing: got %s, want wait", signal.EntryTiming)
	}
	if signal.PositionSize != models.PositionNone {
		t.Errorf("position: got %s, want none", signal.PositionSize)
	}
	if !almostEqual(signal.Confidence, 95) {
		t.Errorf("confidence: got %v, want 95", signal.Confidence)
	}
}

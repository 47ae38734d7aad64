package analysis

import (
	"reflect"
	"testing"

	"StockPulse/internal/domain/models"
)

// Every calculator must return bit-identical output when called twice with
// the same input. One representative input each; the per-calculator tests
// cover the value semantics.
func TestCalculatorsDeterministic(t *testing.T) {
	news := []models.NewsItem{
		{Title: "Acme wins major contract", SentimentScore: 0.8, ImpactScore: 0.9},
		{Title: "Outlook cut on weak demand", SentimentScore: -0.6, ImpactScore: 0.7},
		{Title: "Sector update", SentimentScore: 0.1, ImpactScore: 0.3},
	}
	stock := models.StockFacts{
		Technical: models.TechnicalIndicators{
			CurrentPrice: fptr(70000),
			Week52High:   fptr(90000),
			Week52Low:    fptr(60000),
			RSI:          fptr(25),
			Volume:       fptr(2_000_000),
			AvgVolume:    fptr(1_000_000),
		},
		Financial: models.FinancialRatios{PER: fptr(12), PBR: fptr(1.1), EPS: fptr(5000), BPS: fptr(60000)},
		MarketCap: fptr(5000),
	}
	market := models.MarketFacts{IndexChangePct: fptr(-2.5)}
	ctx := models.MarketContext{Trend: models.TrendBullish, Strength: fptr(70)}
	results := []models.ModelAnalysisResult{
		{Model: "gpt-4-turbo", Recommendation: models.RecommendBuy, RiskLevel: models.RiskMedium, RiskScore: 40, EvaluationScore: 80},
		{Model: "claude-3.5-sonnet", Recommendation: models.RecommendHold, RiskLevel: models.RiskMedium, RiskScore: 45, EvaluationScore: 70},
	}

	trend1 := AnalyzeNewsTrend(news)
	trend2 := AnalyzeNewsTrend(news)
	if !reflect.DeepEqual(trend1, trend2) {
		t.Errorf("news trend diverged:\n%+v\n%+v", trend1, trend2)
	}

	risk1 := CalculateRiskScore(&trend1, stock, market)
	risk2 := CalculateRiskScore(&trend1, stock, market)
	if !reflect.DeepEqual(risk1, risk2) {
		t.Errorf("risk score diverged:\n%+v\n%+v", risk1, risk2)
	}

	ens1 := VoteEnsemble(results)
	ens2 := VoteEnsemble(results)
	if !reflect.DeepEqual(ens1, ens2) {
		t.Errorf("ensemble diverged:\n%+v\n%+v", ens1, ens2)
	}

	targets1, err := CalculateTargetPrices(stock, models.SectorRelative{}, ctx, nil)
	if err != nil {
		t.Fatalf("target prices: %v", err)
	}
	targets2, _ := CalculateTargetPrices(stock, models.SectorRelative{}, ctx, nil)
	if !reflect.DeepEqual(targets1, targets2) {
		t.Errorf("target prices diverged:\n%+v\n%+v", targets1, targets2)
	}

	sig1 := GenerateTradingSignal(targets1, stock.Technical, risk1, ctx, ens1)
	sig2 := GenerateTradingSignal(targets1, stock.Technical, risk1, ctx, ens1)
	if !reflect.DeepEqual(sig1, sig2) {
		t.Errorf("trading signal diverged:\n%+v\n%+v", sig1, sig2)
	}
}

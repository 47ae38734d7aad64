package analysis

import (
	"errors"
	"testing"

	"StockPulse/internal/domain/models"
)

func stockWithPrice(price float64) models.StockFacts {
	return models.StockFacts{Technical: models.TechnicalIndicators{CurrentPrice: fptr(price)}}
}

func TestCalculateTargetPricesMissingCurrentPrice(t *testing.T) {
	_, err := CalculateTargetPrices(models.StockFacts{}, models.SectorRelative{}, models.MarketContext{}, nil)
	if !errors.Is(err, ErrNoCurrentPrice) {
		t.Fatalf("expected ErrNoCurrentPrice, got %v", err)
	}

	_, err = CalculateTargetPrices(stockWithPrice(0), models.SectorRelative{}, models.MarketContext{}, nil)
	if !errors.Is(err, ErrNoCurrentPrice) {
		t.Fatalf("expected ErrNoCurrentPrice for zero price, got %v", err)
	}
}

func TestCalculateTargetPricesFallback(t *testing.T) {
	set, err := CalculateTargetPrices(stockWithPrice(100), models.SectorRelative{}, models.MarketContext{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(set.Conservative, 105) || !almostEqual(set.Neutral, 110) || !almostEqual(set.Aggressive, 120) {
		t.Errorf("fallback targets: got %v/%v/%v, want 105/110/120", set.Conservative, set.Neutral, set.Aggressive)
	}
	if set.MarketAdjustmentFactor != 1.0 {
		t.Errorf("fallback must bypass market adjustment, got %v", set.MarketAdjustmentFactor)
	}
	if !almostEqual(set.UpsidePotential.Conservative, 5) || !almostEqual(set.UpsidePotential.Neutral, 10) || !almostEqual(set.UpsidePotential.Aggressive, 20) {
		t.Errorf("upside: got %+v", set.UpsidePotential)
	}
	if set.Methods.PERBased != nil || set.Methods.PBRBased != nil || set.Methods.Technical != nil || set.Methods.AnalystConsensus != nil {
		t.Errorf("no method should report a value: %+v", set.Methods)
	}
}

func TestPERTargets(t *testing.T) {
	fin := models.FinancialRatios{PER: fptr(10), EPS: fptr(10)}

	triple := perTargets(fin, models.SectorRelative{})
	if triple == nil {
		t.Fatal("expected targets")
	}
	if !almostEqual(triple.Conservative, 90) || !almostEqual(triple.Neutral, 100) || !almostEqual(triple.Aggressive, 120) {
		t.Errorf("got %+v, want 90/100/120", triple)
	}

	// relative strength 1.5 tilts the multiple by 15%
	tilted := perTargets(fin, models.SectorRelative{RelativeStrength: fptr(1.5)})
	if !almostEqual(tilted.Neutral, 115) {
		t.Errorf("tilted neutral: got %v, want 115", tilted.Neutral)
	}

	if perTargets(models.FinancialRatios{PER: fptr(-3), EPS: fptr(10)}, models.SectorRelative{}) != nil {
		t.Error("negative PER must disable the method")
	}
	if perTargets(models.FinancialRatios{PER: fptr(10)}, models.SectorRelative{}) != nil {
		t.Error("missing EPS must disable the method")
	}
}

func TestPBRTargets(t *testing.T) {
	triple := pbrTargets(models.FinancialRatios{PBR: fptr(2), BPS: fptr(50)})
	if triple == nil {
		t.Fatal("expected targets")
	}
	if !almostEqual(triple.Conservative, 85) || !almostEqual(triple.Neutral, 100) || !almostEqual(triple.Aggressive, 115) {
		t.Errorf("got %+v, want 85/100/115", triple)
	}

	if pbrTargets(models.FinancialRatios{PBR: fptr(2)}) != nil {
		t.Error("missing BPS must disable the method")
	}
}

func TestTechnicalTargets(t *testing.T) {
	triple := technicalTargets(100, fptr(120))
	if triple == nil {
		t.Fatal("expected targets")
	}
	if !almostEqual(triple.Conservative, 106) || !almostEqual(triple.Neutral, 110) || !almostEqual(triple.Aggressive, 126) {
		t.Errorf("got %+v, want 106/110/126", triple)
	}

	if technicalTargets(100, nil) != nil {
		t.Error("missing 52-week high must disable the method")
	}
}

func TestMarketAdjustment(t *testing.T) {
	tests := []struct {
		name   string
		market models.MarketContext
		want   float64
	}{
		{"no data stays flat", models.MarketContext{}, 1.0},
		{
			"bullish strong low-vol clamps high",
			models.MarketContext{Trend: models.TrendBullish, Strength: fptr(80), VolatilityLevel: models.VolatilityLow},
			1.1,
		},
		{
			"bearish weak high-vol clamps low",
			models.MarketContext{Trend: models.TrendBearish, Strength: fptr(0), VolatilityLevel: models.VolatilityHigh},
			0.9,
		},
		{
			"mild bullish",
			models.MarketContext{Trend: models.TrendBullish, Strength: fptr(60)},
			1.06,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := marketAdjustment(tt.market); !almostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateTargetPricesFullBlend(t *testing.T) {
	stock := models.StockFacts{
		Technical: models.TechnicalIndicators{
			CurrentPrice: fptr(100),
			Week52High:   fptr(120),
		},
		Financial: models.FinancialRatios{
			PER: fptr(10), EPS: fptr(10),
			PBR: fptr(2), BPS: fptr(50),
		},
	}
	analyst := &models.AnalystOpinion{AvgTargetPrice: fptr(110)}

	set, err := CalculateTargetPrices(stock, models.SectorRelative{}, models.MarketContext{}, analyst)
	if err != nil {
		t.Fatal(err)
	}

	// conservative blend lands at 94.2 and gets floored to 95
	if !almostEqual(set.Conservative, 95) {
		t.Errorf("conservative: got %v, want 95", set.Conservative)
	}
	// 100*.30 + 100*.25 + 110*.20 + 110*.25 = 104.5
	if !almostEqual(set.Neutral, 104.5) {
		t.Errorf("neutral: got %v, want 104.5", set.Neutral)
	}
	// 120*.35 + 115*.20 + 126*.25 + 121*.20 = 120.7
	if !almostEqual(set.Aggressive, 120.7) {
		t.Errorf("aggressive: got %v, want 120.7", set.Aggressive)
	}

	if set.Conservative > set.Neutral || set.Neutral > set.Aggressive {
		t.Errorf("scenario ordering violated: %v/%v/%v", set.Conservative, set.Neutral, set.Aggressive)
	}
	if set.Methods.PERBased == nil || set.Methods.PBRBased == nil || set.Methods.Technical == nil || set.Methods.AnalystConsensus == nil {
		t.Errorf("all four methods should contribute: %+v", set.Methods)
	}
}

func TestCalculateTargetPricesFloors(t *testing.T) {
	// deep value inputs far under the current price trigger every floor
	stock := models.StockFacts{
		Technical: models.TechnicalIndicators{CurrentPrice: fptr(100)},
		Financial: models.FinancialRatios{PER: fptr(2), EPS: fptr(5)},
	}

	set, err := CalculateTargetPrices(stock, models.SectorRelative{}, models.MarketContext{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(set.Conservative, 95) || !almostEqual(set.Neutral, 100) || !almostEqual(set.Aggressive, 105) {
		t.Errorf("floors: got %v/%v/%v, want 95/100/105", set.Conservative, set.Neutral, set.Aggressive)
	}
}

package analysis

import (
	"testing"

	"StockPulse/internal/domain/models"
)

func fptr(v float64) *float64 { return &v }

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  models.RiskLevel
	}{
		{0, models.RiskLow},
		{29.9, models.RiskLow},
		{30, models.RiskMedium},
		{59.9, models.RiskMedium},
		{60, models.RiskHigh},
		{100, models.RiskHigh},
	}
	for _, tt := range tests {
		if got := RiskLevelFor(tt.score); got != tt.want {
			t.Errorf("RiskLevelFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestNewsRisk(t *testing.T) {
	tests := []struct {
		name  string
		trend *models.NewsTrendSnapshot
		want  float64
	}{
		{"missing news carries risk", nil, 15.0},
		{"empty snapshot carries risk", &models.NewsTrendSnapshot{}, 15.0},
		{
			"half negative, flat sentiment, worsening",
			&models.NewsTrendSnapshot{
				TotalCount:            10,
				NegativeRatio:         50,
				AvgSentiment:          0,
				RecentSentimentChange: models.SentimentWorsened,
			},
			17.5,
		},
		{
			"worst case hits the cap",
			&models.NewsTrendSnapshot{
				TotalCount:            10,
				NegativeRatio:         100,
				AvgSentiment:          -1,
				RecentSentimentChange: models.SentimentWorsened,
			},
			30.0,
		},
		{
			"improving sentiment drops the penalty",
			&models.NewsTrendSnapshot{
				TotalCount:            10,
				NegativeRatio:         0,
				AvgSentiment:          1,
				RecentSentimentChange: models.SentimentImproved,
			},
			0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newsRisk(tt.trend); !almostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVolatilityRiskHitsCap(t *testing.T) {
	tech := models.TechnicalIndicators{
		CurrentPrice: fptr(98),
		Week52High:   fptr(100),
		Week52Low:    fptr(0),
		Volume:       fptr(300),
		AvgVolume:    fptr(100),
		Bollinger:    &models.BollingerBands{Position: models.BollingerAboveUpper},
	}
	// 10 (extreme 52w position) + 8 (3x volume) + 7 (outside band) = 25
	if got := volatilityRisk(tech); !almostEqual(got, 25) {
		t.Errorf("got %v, want 25", got)
	}
}

func TestFinancialRiskHitsCap(t *testing.T) {
	fin := models.FinancialRatios{
		PER:             fptr(-5),
		ROE:             fptr(-2),
		DebtRatio:       fptr(250),
		OperatingMargin: fptr(-1),
	}
	// 5 + 5 + 6 + 4 = 20
	if got := financialRisk(fin); !almostEqual(got, 20) {
		t.Errorf("got %v, want 20", got)
	}
}

func TestFinancialRiskMissingFieldsAddNothing(t *testing.T) {
	if got := financialRisk(models.FinancialRatios{}); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestMarketRiskHitsCap(t *testing.T) {
	facts := models.MarketFacts{
		IndexChangePct:            fptr(-3),
		SectorRelativeStrength:    fptr(-3),
		ForeignOwnershipChangePct: fptr(-1.5),
		ProgramNetBuy:             fptr(-600),
	}
	// 6 + 5 + 2 + 2 = 15
	if got := marketRisk(facts); !almostEqual(got, 15) {
		t.Errorf("got %v, want 15", got)
	}
}

func TestLiquidityRiskHitsCap(t *testing.T) {
	stock := models.StockFacts{
		Technical: models.TechnicalIndicators{Volume: fptr(20), AvgVolume: fptr(100)},
		MarketCap: fptr(400),
		FreeFloat: fptr(10),
	}
	// 4 (0.2x volume) + 3 (small cap) + 3 (tight float) = 10
	if got := liquidityRisk(stock); !almostEqual(got, 10) {
		t.Errorf("got %v, want 10", got)
	}
}

func TestCalculateRiskScoreNoDataAtAll(t *testing.T) {
	b := CalculateRiskScore(nil, models.StockFacts{}, models.MarketFacts{})

	if !almostEqual(b.NewsSentiment, 15) {
		t.Errorf("news: got %v, want 15", b.NewsSentiment)
	}
	if b.Volatility != 0 || b.Financial != 0 || b.Market != 0 || b.Liquidity != 0 {
		t.Errorf("expected zero non-news categories: %+v", b)
	}
	if !almostEqual(b.TotalScore, 15) {
		t.Errorf("total: got %v, want 15", b.TotalScore)
	}
	if b.RiskLevel != models.RiskLow {
		t.Errorf("level: got %s, want low", b.RiskLevel)
	}
	if b.Description == "" {
		t.Error("expected a non-empty description")
	}
}

func TestCalculateRiskScoreAggregates(t *testing.T) {
	trend := &models.NewsTrendSnapshot{
		TotalCount:            10,
		NegativeRatio:         50,
		AvgSentiment:          0,
		RecentSentimentChange: models.SentimentWorsened,
	}
	stock := models.StockFacts{
		Technical: models.TechnicalIndicators{
			CurrentPrice: fptr(98),
			Week52High:   fptr(100),
			Week52Low:    fptr(0),
		},
		MarketCap: fptr(400),
	}
	market := models.MarketFacts{IndexChangePct: fptr(-3)}

	b := CalculateRiskScore(trend, stock, market)

	// 17.5 news + 10 volatility + 0 financial + 6 market + 3 liquidity
	if !almostEqual(b.TotalScore, 36.5) {
		t.Errorf("total: got %v, want 36.5", b.TotalScore)
	}
	if b.RiskLevel != models.RiskMedium {
		t.Errorf("level: got %s, want medium", b.RiskLevel)
	}
}

func TestBollingerPositionFor(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  models.BollingerPosition
	}{
		{"above upper", 111, models.BollingerAboveUpper},
		{"near upper", 108, models.BollingerNearUpper},
		{"middle", 100, models.BollingerMiddle},
		{"near lower", 92, models.BollingerNearLower},
		{"below lower", 89, models.BollingerBelowLower},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tech := models.TechnicalIndicators{
				CurrentPrice: fptr(tt.price),
				Bollinger:    &models.BollingerBands{Upper: fptr(110), Lower: fptr(90)},
			}
			if got := BollingerPositionFor(tech); got != tt.want {
				t.Errorf("price %v: got %s, want %s", tt.price, got, tt.want)
			}
		})
	}
}

func TestBollingerPositionForUpstreamLabelWins(t *testing.T) {
	tech := models.TechnicalIndicators{
		CurrentPrice: fptr(100),
		Bollinger: &models.BollingerBands{
			Upper:    fptr(110),
			Lower:    fptr(90),
			Position: models.BollingerBelowLower,
		},
	}
	if got := BollingerPositionFor(tech); got != models.BollingerBelowLower {
		t.Errorf("got %s, want upstream below_lower", got)
	}
}

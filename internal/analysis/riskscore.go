package analysis

import (
	"fmt"

	"StockPulse/internal/domain/models"
)

// Category caps for the composite risk score. The five categories sum to a
// theoretical maximum of 100.
const (
	newsRiskCap       = 30.0
	volatilityRiskCap = 25.0
	financialRiskCap  = 20.0
	marketRiskCap     = 15.0
	liquidityRiskCap  = 10.0

	riskLevelMediumFloor = 30.0
	riskLevelHighFloor   = 60.0
)

// CalculateRiskScore builds the composite 0-100 risk breakdown from the news
// snapshot, per-stock facts and market facts. A nil trend means the stock has
// no news coverage, which itself carries risk.
func CalculateRiskScore(trend *models.NewsTrendSnapshot, stock models.StockFacts, market models.MarketFacts) models.RiskScoreBreakdown {
	b := models.RiskScoreBreakdown{
		NewsSentiment: newsRisk(trend),
		Volatility:    volatilityRisk(stock.Technical),
		Financial:     financialRisk(stock.Financial),
		Market:        marketRisk(market),
		Liquidity:     liquidityRisk(stock),
	}
	b.TotalScore = round1(b.NewsSentiment + b.Volatility + b.Financial + b.Market + b.Liquidity)
	b.RiskLevel = RiskLevelFor(b.TotalScore)
	b.Description = riskDescription(b)
	return b
}

// RiskLevelFor maps a composite score to its risk band.
func RiskLevelFor(score float64) models.RiskLevel {
	switch {
	case score < riskLevelMediumFloor:
		return models.RiskLow
	case score < riskLevelHighFloor:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

func newsRisk(trend *models.NewsTrendSnapshot) float64 {
	if trend == nil || trend.TotalCount == 0 {
		// no coverage at all is itself a risk signal
		return 15.0
	}
	score := 15.0 * trend.NegativeRatio / 100.0
	score += (1.0 - trend.AvgSentiment) / 2.0 * 10.0
	switch trend.RecentSentimentChange {
	case models.SentimentWorsened:
		score += 5.0
	case models.SentimentUnchanged:
		score += 2.5
	}
	return capScore(score, newsRiskCap)
}

func volatilityRisk(t models.TechnicalIndicators) float64 {
	var score float64

	if t.CurrentPrice != nil && t.Week52High != nil && t.Week52Low != nil && *t.Week52High > *t.Week52Low {
		position := (*t.CurrentPrice - *t.Week52Low) / (*t.Week52High - *t.Week52Low)
		switch {
		case position > 0.9 || position < 0.1:
			score += 10.0
		case position >= 0.4 && position <= 0.6:
			score += 3.0
		default:
			score += 6.0
		}
	}

	if t.Volume != nil && t.AvgVolume != nil && *t.AvgVolume > 0 {
		ratio := *t.Volume / *t.AvgVolume
		switch {
		case ratio >= 3.0:
			score += 8.0
		case ratio >= 2.0:
			score += 5.0
		case ratio >= 1.5:
			score += 2.0
		}
	}

	switch BollingerPositionFor(t) {
	case models.BollingerAboveUpper, models.BollingerBelowLower:
		score += 7.0
	case models.BollingerNearUpper, models.BollingerNearLower:
		score += 3.0
	}

	return capScore(score, volatilityRiskCap)
}

func financialRisk(f models.FinancialRatios) float64 {
	var score float64

	if f.PER != nil {
		switch per := *f.PER; {
		case per < 0:
			score += 5.0
		case per > 50:
			score += 4.0
		case per > 30:
			score += 2.0
		case per < 5:
			score += 1.0
		}
	}
	if f.ROE != nil {
		switch roe := *f.ROE; {
		case roe < 0:
			score += 5.0
		case roe < 5:
			score += 3.0
		case roe < 10:
			score += 1.0
		}
	}
	if f.DebtRatio != nil {
		switch debt := *f.DebtRatio; {
		case debt > 200:
			score += 6.0
		case debt > 150:
			score += 4.0
		case debt > 100:
			score += 2.0
		}
	}
	if f.OperatingMargin != nil {
		switch margin := *f.OperatingMargin; {
		case margin < 0:
			score += 4.0
		case margin < 3:
			score += 2.0
		case margin < 5:
			score += 1.0
		}
	}

	return capScore(score, financialRiskCap)
}

func marketRisk(m models.MarketFacts) float64 {
	var score float64

	if m.IndexChangePct != nil {
		switch chg := *m.IndexChangePct; {
		case chg <= -3:
			score += 6.0
		case chg <= -2:
			score += 4.0
		case chg <= -1:
			score += 2.0
		}
	}
	if m.SectorRelativeStrength != nil {
		switch rel := *m.SectorRelativeStrength; {
		case rel <= -3:
			score += 5.0
		case rel <= -2:
			score += 3.0
		case rel <= -1:
			score += 1.0
		}
	}
	if m.ForeignOwnershipChangePct != nil {
		switch chg := *m.ForeignOwnershipChangePct; {
		case chg < -1.0:
			score += 2.0
		case chg < -0.5:
			score += 1.0
		}
	}
	if m.ProgramNetBuy != nil {
		switch net := *m.ProgramNetBuy; {
		case net < -500:
			score += 2.0
		case net < -200:
			score += 1.0
		}
	}

	return capScore(score, marketRiskCap)
}

func liquidityRisk(stock models.StockFacts) float64 {
	var score float64

	if t := stock.Technical; t.Volume != nil && t.AvgVolume != nil && *t.AvgVolume > 0 {
		switch ratio := *t.Volume / *t.AvgVolume; {
		case ratio < 0.3:
			score += 4.0
		case ratio < 0.5:
			score += 2.0
		}
	}
	if stock.MarketCap != nil {
		switch mcap := *stock.MarketCap; {
		case mcap < 500:
			score += 3.0
		case mcap < 1000:
			score += 2.0
		case mcap < 3000:
			score += 1.0
		}
	}
	if stock.FreeFloat != nil {
		switch ff := *stock.FreeFloat; {
		case ff < 20:
			score += 3.0
		case ff < 30:
			score += 2.0
		case ff < 40:
			score += 1.0
		}
	}

	return capScore(score, liquidityRiskCap)
}

// BollingerPositionFor classifies the price against the bands. The upstream
// label wins when present; otherwise the position is derived from the band
// levels with a 3% "near" margin.
func BollingerPositionFor(t models.TechnicalIndicators) models.BollingerPosition {
	if t.Bollinger == nil {
		return models.BollingerMiddle
	}
	if t.Bollinger.Position != "" {
		return t.Bollinger.Position
	}
	bb := t.Bollinger
	if t.CurrentPrice == nil || bb.Upper == nil || bb.Lower == nil {
		return models.BollingerMiddle
	}
	price := *t.CurrentPrice
	switch {
	case price > *bb.Upper:
		return models.BollingerAboveUpper
	case price < *bb.Lower:
		return models.BollingerBelowLower
	case price >= *bb.Upper*0.97:
		return models.BollingerNearUpper
	case price <= *bb.Lower*1.03:
		return models.BollingerNearLower
	default:
		return models.BollingerMiddle
	}
}

func riskDescription(b models.RiskScoreBreakdown) string {
	dominant := "news sentiment"
	top := b.NewsSentiment
	if b.Volatility > top {
		top, dominant = b.Volatility, "price volatility"
	}
	if b.Financial > top {
		top, dominant = b.Financial, "financial structure"
	}
	if b.Market > top {
		top, dominant = b.Market, "market conditions"
	}
	if b.Liquidity > top {
		dominant = "liquidity"
	}
	return fmt.Sprintf("%s risk (%.1f/100), driven mainly by %s", b.RiskLevel, b.TotalScore, dominant)
}

func capScore(score, limit float64) float64 {
	if score > limit {
		return limit
	}
	return round1(score)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

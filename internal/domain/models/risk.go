package models

// RiskLevel buckets a 0-100 risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskScoreBreakdown quantifies risk across five weighted categories.
// Category caps: news 30, volatility 25, financial 20, market 15,
// liquidity 10, so the total is inherently bounded by 100.
type RiskScoreBreakdown struct {
	NewsSentiment float64   `json:"news_sentiment"`
	Volatility    float64   `json:"volatility"`
	Financial     float64   `json:"financial"`
	Market        float64   `json:"market"`
	Liquidity     float64   `json:"liquidity"`
	TotalScore    float64   `json:"total_score"`
	RiskLevel     RiskLevel `json:"risk_level"`
	Description   string    `json:"description"`
}

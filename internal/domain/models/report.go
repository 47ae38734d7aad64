package models

import "time"

// AnalystRequest bundles the facts handed to each analysis model at the
// fan-out edge. Read-only to the analyst.
type AnalystRequest struct {
	Symbol    string
	Name      string
	Trend     NewsTrendSnapshot
	Risk      RiskScoreBreakdown
	Stock     StockFacts
	Context   MarketContext
	Sector    *SectorRelative
	Consensus *AnalystOpinion
	News      []NewsItem
}

// Report is the full pipeline output for one symbol. Created fresh per
// request; persistence and rendering are external concerns.
type Report struct {
	Symbol      string             `json:"symbol"`
	Name        string             `json:"name,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	NewsTrend   NewsTrendSnapshot  `json:"news_trend"`
	Risk        RiskScoreBreakdown `json:"risk_score"`
	Ensemble    EnsembleResult     `json:"ensemble"`
	Targets     TargetPriceSet     `json:"target_prices"`
	Signal      TradingSignal      `json:"trading_signal"`
}

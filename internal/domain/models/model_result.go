package models

// Recommendation is a per-model or consensus investment call.
type Recommendation string

const (
	RecommendBuy  Recommendation = "buy"
	RecommendSell Recommendation = "sell"
	RecommendHold Recommendation = "hold"
)

// Outlook is a per-timeframe directional view.
type Outlook string

const (
	OutlookBullish Outlook = "bullish"
	OutlookBearish Outlook = "bearish"
	OutlookNeutral Outlook = "neutral"
)

// TimeframeOutlook is one horizon of a model's multi-timeframe view.
type TimeframeOutlook struct {
	Outlook     Outlook  `json:"outlook"`
	KeyFactors  string   `json:"key_factors,omitempty"`
	EntryPrice  *float64 `json:"entry_price,omitempty"`
	TargetPrice *float64 `json:"target_price,omitempty"`
	StopLoss    *float64 `json:"stop_loss,omitempty"`
}

// TimeframeAnalysis groups the short/medium/long horizon views. Any horizon
// may be nil; the voter scores a missing dimension as neutral.
type TimeframeAnalysis struct {
	ShortTerm  *TimeframeOutlook `json:"short_term,omitempty"`
	MediumTerm *TimeframeOutlook `json:"medium_term,omitempty"`
	LongTerm   *TimeframeOutlook `json:"long_term,omitempty"`
}

// ModelAnalysisResult is the structured contract one analysis model must
// satisfy. It is produced by the calling layer (LLM client) and consumed
// read-only by the ensemble voter.
type ModelAnalysisResult struct {
	Model            string             `json:"model"`
	Summary          string             `json:"summary,omitempty"`
	Recommendation   Recommendation     `json:"recommendation"`
	RiskLevel        RiskLevel          `json:"risk_level"`
	RiskScore        float64            `json:"risk_score"`
	EvaluationScore  float64            `json:"evaluation_score"`
	Reasoning        string             `json:"reasoning,omitempty"`
	TargetPriceRange string             `json:"target_price_range,omitempty"`
	TimeHorizon      string             `json:"time_horizon,omitempty"`
	Timeframes       *TimeframeAnalysis `json:"timeframe_analysis,omitempty"`
}

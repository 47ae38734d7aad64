package models

// Action is the final trading decision.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// SignalStrength qualifies the conviction behind an action.
type SignalStrength string

const (
	StrengthWeak     SignalStrength = "weak"
	StrengthModerate SignalStrength = "moderate"
	StrengthNeutral  SignalStrength = "neutral"
	StrengthStrong   SignalStrength = "strong"
)

// EntryTiming is qualitative guidance on how quickly to act.
type EntryTiming string

const (
	EntryImmediate EntryTiming = "immediate"
	EntryWait      EntryTiming = "wait"
	EntryGradual   EntryTiming = "gradual"
)

// PositionSize is qualitative guidance on capital allocation.
type PositionSize string

const (
	PositionNone   PositionSize = "none"
	PositionSmall  PositionSize = "small"
	PositionMedium PositionSize = "medium"
	PositionLarge  PositionSize = "large"
)

// PriceRange is an inclusive entry band.
type PriceRange struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// TakeProfitLevels are the staged profit targets, lowest first.
type TakeProfitLevels struct {
	Target1 float64 `json:"target_1"`
	Target2 float64 `json:"target_2"`
	Target3 float64 `json:"target_3"`
}

// PricePositionAnalysis scores the current price against the target set.
type PricePositionAnalysis struct {
	Upside         ScenarioTriple `json:"upside_potential"`
	Attractiveness string         `json:"attractiveness"` // high, moderate, low, overvalued
	AnalystSignal  string         `json:"analyst_signal"`
	Score          float64        `json:"score"`
}

// TechnicalSignalAnalysis summarizes the indicator bag into one score.
type TechnicalSignalAnalysis struct {
	Signal            string            `json:"signal"` // strong_buy .. strong_sell
	Score             float64           `json:"score"`  // 0 .. 100, 50 neutral
	Indicators        []string          `json:"indicators"`
	RSI               float64           `json:"rsi"`
	MACDHistogram     float64           `json:"macd_histogram"`
	BollingerPosition BollingerPosition `json:"bollinger_position"`
}

// RiskAssessment grades risk for position sizing and exits.
type RiskAssessment struct {
	OverallRisk float64  `json:"overall_risk"`
	RiskGrade   string   `json:"risk_grade"` // low, moderate, high
	KeyRisks    []string `json:"key_risks"`
}

// MarketFavorability scores how friendly the broad market is.
type MarketFavorability struct {
	Favorability string      `json:"favorability"`
	Score        float64     `json:"score"`
	Trend        MarketTrend `json:"market_trend"`
	Strength     float64     `json:"market_strength"`
}

// AIConsensusSignal maps the ensemble consensus onto the signal scale.
type AIConsensusSignal struct {
	Signal         Action  `json:"signal"`
	Consensus      string  `json:"consensus"`
	Confidence     float64 `json:"confidence"`
	SignalStrength float64 `json:"signal_strength"`
}

// AnalysisBreakdown echoes the sub-analyses that fed the final signal.
type AnalysisBreakdown struct {
	PricePosition PricePositionAnalysis   `json:"price_position"`
	Technical     TechnicalSignalAnalysis `json:"technical_signal"`
	Risk          RiskAssessment          `json:"risk_assessment"`
	Market        MarketFavorability      `json:"market_favorability"`
	AIConsensus   AIConsensusSignal       `json:"ai_consensus"`
}

// TradingSignal is the root artifact of the pipeline: the actionable
// decision with entry strategy and exit levels. Built once, read-only.
type TradingSignal struct {
	Action             Action            `json:"signal"`
	Confidence         float64           `json:"confidence"`
	Strength           SignalStrength    `json:"strength"`
	EntryTiming        EntryTiming       `json:"entry_timing"`
	PositionSize       PositionSize      `json:"position_size"`
	EntryPriceRange    PriceRange        `json:"entry_price_range"`
	StopLoss           float64           `json:"stop_loss"`
	TakeProfit         TakeProfitLevels  `json:"take_profit"`
	Reasoning          string            `json:"reasoning"`
	Risks              []string          `json:"risks"`
	FavorableFactors   []string          `json:"favorable_factors"`
	UnfavorableFactors []string          `json:"unfavorable_factors"`
	Breakdown          AnalysisBreakdown `json:"analysis_breakdown"`
}

package models

// MarketTrend describes broad market direction.
type MarketTrend string

const (
	TrendBullish MarketTrend = "bullish"
	TrendBearish MarketTrend = "bearish"
	TrendNeutral MarketTrend = "neutral"
)

// VolatilityLevel describes broad market volatility.
type VolatilityLevel string

const (
	VolatilityLow    VolatilityLevel = "low"
	VolatilityMedium VolatilityLevel = "medium"
	VolatilityHigh   VolatilityLevel = "high"
)

// BollingerPosition locates the price relative to the Bollinger bands.
type BollingerPosition string

const (
	BollingerAboveUpper BollingerPosition = "above_upper"
	BollingerNearUpper  BollingerPosition = "near_upper"
	BollingerMiddle     BollingerPosition = "middle"
	BollingerNearLower  BollingerPosition = "near_lower"
	BollingerBelowLower BollingerPosition = "below_lower"
)

// MATrend describes the moving-average cross state.
type MATrend string

const (
	MAGoldenCross MATrend = "golden_cross"
	MADeadCross   MATrend = "dead_cross"
	MANeutral     MATrend = "neutral"
)

// MACD carries the MACD triple. Pointers distinguish missing from zero.
type MACD struct {
	Value     *float64 `json:"value,omitempty"`
	Signal    *float64 `json:"signal,omitempty"`
	Histogram *float64 `json:"histogram,omitempty"`
}

// BollingerBands carries band levels plus the derived position label.
type BollingerBands struct {
	Upper    *float64          `json:"upper,omitempty"`
	Middle   *float64          `json:"middle,omitempty"`
	Lower    *float64          `json:"lower,omitempty"`
	Position BollingerPosition `json:"position,omitempty"`
}

// TechnicalIndicators is the indicator bag produced by the (external)
// technical-analysis layer. Every field is optional; the pipeline treats a
// missing value as "skip", never as an error.
type TechnicalIndicators struct {
	CurrentPrice       *float64        `json:"current_price,omitempty"`
	Week52High         *float64        `json:"week52_high,omitempty"`
	Week52Low          *float64        `json:"week52_low,omitempty"`
	MA5                *float64        `json:"ma5,omitempty"`
	MA20               *float64        `json:"ma20,omitempty"`
	MA60               *float64        `json:"ma60,omitempty"`
	RSI                *float64        `json:"rsi,omitempty"`
	MACD               *MACD           `json:"macd,omitempty"`
	Bollinger          *BollingerBands `json:"bollinger_bands,omitempty"`
	MovingAverageTrend MATrend         `json:"moving_average_trend,omitempty"`
	Volume             *float64        `json:"volume,omitempty"`
	AvgVolume          *float64        `json:"avg_volume,omitempty"`
}

// FinancialRatios is the fundamentals bag.
type FinancialRatios struct {
	PER             *float64 `json:"per,omitempty"`
	PBR             *float64 `json:"pbr,omitempty"`
	ROE             *float64 `json:"roe,omitempty"`
	EPS             *float64 `json:"eps,omitempty"`
	BPS             *float64 `json:"bps,omitempty"`
	DebtRatio       *float64 `json:"debt_ratio,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
}

// MarketContext is the broad market bag.
type MarketContext struct {
	Trend           MarketTrend     `json:"trend,omitempty"`
	Strength        *float64        `json:"strength,omitempty"` // 0-100
	VolatilityLevel VolatilityLevel `json:"volatility_level,omitempty"`
	BreadthPct      *float64        `json:"breadth_pct,omitempty"`
}

// SectorRelative compares the stock against its sector.
type SectorRelative struct {
	RelativeStrength *float64 `json:"relative_strength,omitempty"`
	Outperformance   *float64 `json:"outperformance,omitempty"`
	AvgPER           *float64 `json:"avg_per,omitempty"`
	AvgPBR           *float64 `json:"avg_pbr,omitempty"`
}

// AnalystOpinion is the sell-side consensus bag.
type AnalystOpinion struct {
	BuyCount       int      `json:"buy_count"`
	HoldCount      int      `json:"hold_count"`
	SellCount      int      `json:"sell_count"`
	AvgTargetPrice *float64 `json:"avg_target_price,omitempty"`
}

// StockFacts groups the per-stock inputs consumed by the risk calculator.
// MarketCap is in 100-million-won units, FreeFloat in percent.
type StockFacts struct {
	Technical TechnicalIndicators `json:"technical"`
	Financial FinancialRatios     `json:"financial"`
	MarketCap *float64            `json:"market_cap,omitempty"`
	FreeFloat *float64            `json:"free_float,omitempty"`
}

// MarketFacts groups the per-day market inputs consumed by the risk
// calculator. IndexChangePct is the benchmark index move in percent,
// ProgramNetBuy in 100-million-won units.
type MarketFacts struct {
	IndexChangePct            *float64 `json:"index_change_pct,omitempty"`
	SectorRelativeStrength    *float64 `json:"sector_relative_strength,omitempty"`
	ForeignOwnershipChangePct *float64 `json:"foreign_ownership_change_pct,omitempty"`
	ProgramNetBuy             *float64 `json:"program_net_buy,omitempty"`
}

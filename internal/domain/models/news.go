package models

import "time"

// SentimentChange describes how recent news sentiment moved against the
// older part of the window.
type SentimentChange string

const (
	SentimentImproved  SentimentChange = "improved"
	SentimentWorsened  SentimentChange = "worsened"
	SentimentUnchanged SentimentChange = "unchanged"
)

// NewsItem is one scored headline. The caller supplies items already sorted
// by impact desc, then recency desc (at most 50 items over a 7-day window).
type NewsItem struct {
	Title          string    `json:"title" validate:"required"`
	SentimentScore float64   `json:"sentiment_score" validate:"gte=-1,lte=1"`
	ImpactScore    float64   `json:"impact_score" validate:"gte=0,lte=1"`
	PublishedAt    time.Time `json:"published_at"`
}

// HighImpactNews is a headline kept in the trend snapshot because its impact
// score crossed the high-impact threshold.
type HighImpactNews struct {
	Title          string  `json:"title"`
	SentimentScore float64 `json:"sentiment_score"`
	ImpactScore    float64 `json:"impact_score"`
}

// NewsTrendSnapshot is the reduced view of a news window. Built once per
// report request and never mutated afterwards.
type NewsTrendSnapshot struct {
	TotalCount            int              `json:"total_count"`
	PositiveCount         int              `json:"positive_count"`
	NegativeCount         int              `json:"negative_count"`
	NeutralCount          int              `json:"neutral_count"`
	PositiveRatio         float64          `json:"positive_ratio"`
	NegativeRatio         float64          `json:"negative_ratio"`
	AvgSentiment          float64          `json:"avg_sentiment_score"`
	AvgImpact             float64          `json:"avg_impact_score"`
	HighImpactNews        []HighImpactNews `json:"high_impact_news"`
	TrendingKeywords      []string         `json:"trending_keywords"`
	RecentSentimentChange SentimentChange  `json:"recent_sentiment_change"`
}

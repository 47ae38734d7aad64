package analysis

import (
	"sort"
	"strings"
	"unicode"

	"StockPulse/internal/domain/models"
)

const (
	highImpactThreshold = 0.7
	maxHighImpactNews   = 5
	maxTrendingKeywords = 5
	minKeywordCount     = 2
	sentimentDeadBand   = 0.1
)

// title tokens dropped before keyword counting.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "this": {},
	"that": {}, "will": {}, "after": {}, "amid": {}, "over": {}, "into": {},
	"its": {}, "has": {}, "are": {}, "was": {}, "year": {}, "week": {},
	"says": {}, "said": {}, "new": {}, "also": {}, "more": {}, "than": {},
}

// AnalyzeNewsTrend reduces a scored news window into a trend snapshot.
// The input is assumed pre-sorted by impact desc then recency desc; an empty
// list yields the all-zero unchanged snapshot, which is a valid terminal
// state for the rest of the pipeline.
func AnalyzeNewsTrend(items []models.NewsItem) models.NewsTrendSnapshot {
	if len(items) == 0 {
		return models.NewsTrendSnapshot{
			HighImpactNews:        []models.HighImpactNews{},
			TrendingKeywords:      []string{},
			RecentSentimentChange: models.SentimentUnchanged,
		}
	}

	total := len(items)
	var positive, negative int
	var sentimentSum, impactSum float64
	for _, n := range items {
		switch {
		case n.SentimentScore > 0:
			positive++
		case n.SentimentScore < 0:
			negative++
		}
		sentimentSum += n.SentimentScore
		impactSum += n.ImpactScore
	}
	neutral := total - positive - negative

	highImpact := make([]models.HighImpactNews, 0, maxHighImpactNews)
	for _, n := range items {
		if n.ImpactScore < highImpactThreshold {
			continue
		}
		highImpact = append(highImpact, models.HighImpactNews{
			Title:          n.Title,
			SentimentScore: n.SentimentScore,
			ImpactScore:    n.ImpactScore,
		})
		if len(highImpact) == maxHighImpactNews {
			break
		}
	}

	return models.NewsTrendSnapshot{
		TotalCount:            total,
		PositiveCount:         positive,
		NegativeCount:         negative,
		NeutralCount:          neutral,
		PositiveRatio:         float64(positive) / float64(total) * 100,
		NegativeRatio:         float64(negative) / float64(total) * 100,
		AvgSentiment:          sentimentSum / float64(total),
		AvgImpact:             impactSum / float64(total),
		HighImpactNews:        highImpact,
		TrendingKeywords:      trendingKeywords(items),
		RecentSentimentChange: sentimentChange(items),
	}
}

// sentimentChange compares mean sentiment of the recent 40% of the window
// against the older 60%, with a +-0.1 dead band.
func sentimentChange(items []models.NewsItem) models.SentimentChange {
	split := int(float64(len(items)) * 0.4)
	recent, older := items[:split], items[split:]
	if len(recent) == 0 || len(older) == 0 {
		return models.SentimentUnchanged
	}

	var recentSum, olderSum float64
	for _, n := range recent {
		recentSum += n.SentimentScore
	}
	for _, n := range older {
		olderSum += n.SentimentScore
	}
	recentAvg := recentSum / float64(len(recent))
	olderAvg := olderSum / float64(len(older))

	switch {
	case recentAvg > olderAvg+sentimentDeadBand:
		return models.SentimentImproved
	case recentAvg < olderAvg-sentimentDeadBand:
		return models.SentimentWorsened
	default:
		return models.SentimentUnchanged
	}
}

// trendingKeywords counts whitespace-delimited title tokens (letters only,
// length >= 2, stopwords removed) and keeps the top 5 seen at least twice.
// Ties are broken alphabetically so the output is deterministic.
func trendingKeywords(items []models.NewsItem) []string {
	counts := make(map[string]int)
	for _, n := range items {
		for _, tok := range strings.Fields(n.Title) {
			word := strings.ToLower(strings.TrimFunc(tok, func(r rune) bool {
				return !unicode.IsLetter(r)
			}))
			if len([]rune(word)) < 2 || !lettersOnly(word) {
				continue
			}
			if _, skip := stopwords[word]; skip {
				continue
			}
			counts[word]++
		}
	}

	type wc struct {
		word  string
		count int
	}
	ranked := make([]wc, 0, len(counts))
	for w, c := range counts {
		if c >= minKeywordCount {
			ranked = append(ranked, wc{w, c})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	if len(ranked) > maxTrendingKeywords {
		ranked = ranked[:maxTrendingKeywords]
	}
	keywords := make([]string, 0, len(ranked))
	for _, r := range ranked {
		keywords = append(keywords, r.word)
	}
	return keywords
}

func lettersOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}

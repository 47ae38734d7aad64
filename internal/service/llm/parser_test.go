package llm

import (
	"strings"
	"testing"

	"StockPulse/internal/domain/models"
)

const verdictJSON = `{
  "summary": "Solid quarter, stretched valuation.",
  "recommendation": "BUY",
  "risk_level": "Medium",
  "risk_score": 45,
  "evaluation_score": 72,
  "reasoning": "Earnings momentum outweighs multiple expansion.",
  "target_price_range": "52000-58000",
  "time_horizon": "3-6 months",
  "timeframe_analysis": {
    "short_term": {"outlook": "Neutral", "key_factors": "post-earnings digestion"},
    "medium_term": {"outlook": "BULLISH", "key_factors": "order backlog"}
  }
}`

func TestParseAnalysisPlainJSON(t *testing.T) {
	r, err := ParseAnalysis(verdictJSON)
	if err != nil {
		t.Fatal(err)
	}

	if r.Recommendation != models.RecommendBuy {
		t.Errorf("recommendation: got %s, want buy", r.Recommendation)
	}
	if r.RiskLevel != models.RiskMedium {
		t.Errorf("risk level: got %s, want medium", r.RiskLevel)
	}
	if r.RiskScore != 45 || r.EvaluationScore != 72 {
		t.Errorf("scores: got %v/%v", r.RiskScore, r.EvaluationScore)
	}
	if r.Timeframes == nil || r.Timeframes.MediumTerm == nil {
		t.Fatal("timeframes missing")
	}
	if r.Timeframes.MediumTerm.Outlook != models.OutlookBullish {
		t.Errorf("medium outlook: got %s, want bullish", r.Timeframes.MediumTerm.Outlook)
	}
	if r.Timeframes.LongTerm != nil {
		t.Error("absent long term must stay nil")
	}
}

func TestParseAnalysisCodeFence(t *testing.T) {
	fenced := "```json\n" + verdictJSON + "\n```"
	r, err := ParseAnalysis(fenced)
	if err != nil {
		t.Fatal(err)
	}
	if r.Recommendation != models.RecommendBuy {
		t.Errorf("got %s, want buy", r.Recommendation)
	}
}

func TestParseAnalysisEmbeddedInProse(t *testing.T) {
	wrapped := "Here is my verdict:\n" + verdictJSON + "\nLet me know if you need more."
	r, err := ParseAnalysis(wrapped)
	if err != nil {
		t.Fatal(err)
	}
	if r.EvaluationScore != 72 {
		t.Errorf("got %v, want 72", r.EvaluationScore)
	}
}

func TestParseAnalysisStripsThinkTags(t *testing.T) {
	thinking := "<think>weighing the debt load against margins...</think>\n" + verdictJSON
	r, err := ParseAnalysis(thinking)
	if err != nil {
		t.Fatal(err)
	}
	if r.RiskScore != 45 {
		t.Errorf("got %v, want 45", r.RiskScore)
	}
}

func TestParseAnalysisGarbage(t *testing.T) {
	if _, err := ParseAnalysis("I cannot help with that."); err == nil {
		t.Error("expected error for non-JSON response")
	}
	if _, err := ParseAnalysis(""); err == nil {
		t.Error("expected error for empty response")
	}
}

func TestBuildUserPromptSections(t *testing.T) {
	price := 100.0
	req := models.AnalystRequest{
		Symbol: "005930",
		Name:   "Samsung Electronics",
		Trend: models.NewsTrendSnapshot{
			TotalCount:            4,
			PositiveRatio:         50,
			NegativeRatio:         25,
			AvgSentiment:          0.2,
			RecentSentimentChange: models.SentimentImproved,
			TrendingKeywords:      []string{"hbm", "earnings"},
		},
		Risk: models.RiskScoreBreakdown{TotalScore: 35, RiskLevel: models.RiskMedium},
		Stock: models.StockFacts{
			Technical: models.TechnicalIndicators{CurrentPrice: &price},
		},
	}

	prompt := BuildUserPrompt(req)

	for _, want := range []string{"Samsung Electronics", "005930", "hbm", "price 100.00", "35.0/100"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	// financials are absent and must be declared as such
	if !strings.Contains(prompt, "Not available.") {
		t.Error("prompt should state missing sections")
	}
}

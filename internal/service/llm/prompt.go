package llm

import (
	"fmt"
	"strings"

	"StockPulse/internal/domain/models"
)

const systemPrompt = `You are a senior equity analyst. You receive a dossier for one stock:
news trend, a quantitative risk breakdown, technical indicators, financial
ratios, market context and sell-side consensus. Produce one investment
verdict.

Respond strictly in JSON with this shape:
{
  "summary": "one paragraph",
  "recommendation": "buy" | "sell" | "hold",
  "risk_level": "low" | "medium" | "high",
  "risk_score": 0-100,
  "evaluation_score": 0-100,
  "reasoning": "key drivers of the verdict",
  "target_price_range": "e.g. 52000-58000",
  "time_horizon": "e.g. 3-6 months",
  "timeframe_analysis": {
    "short_term":  {"outlook": "bullish|bearish|neutral", "key_factors": "..."},
    "medium_term": {"outlook": "bullish|bearish|neutral", "key_factors": "..."},
    "long_term":   {"outlook": "bullish|bearish|neutral", "key_factors": "..."}
  }
}

evaluation_score: overall attractiveness, 100 is best. risk_score: 100 is
riskiest. No prose outside the JSON object.`

// BuildUserPrompt renders the dossier as compact markdown. Missing sections
// are stated as missing so the model does not hallucinate them.
func BuildUserPrompt(req models.AnalystRequest) string {
	var sb strings.Builder

	name := req.Name
	if name == "" {
		name = req.Symbol
	}
	sb.WriteString(fmt.Sprintf("# %s (%s)\n\n", name, req.Symbol))

	sb.WriteString("## News trend\n")
	if req.Trend.TotalCount == 0 {
		sb.WriteString("No recent news coverage.\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("%d articles: %.0f%% positive, %.0f%% negative, avg sentiment %.2f, recent change: %s\n",
			req.Trend.TotalCount, req.Trend.PositiveRatio, req.Trend.NegativeRatio,
			req.Trend.AvgSentiment, req.Trend.RecentSentimentChange))
		if len(req.Trend.TrendingKeywords) > 0 {
			sb.WriteString("Trending: " + strings.Join(req.Trend.TrendingKeywords, ", ") + "\n")
		}
		for _, n := range req.Trend.HighImpactNews {
			sb.WriteString(fmt.Sprintf("- [impact %.2f, sentiment %+.2f] %s\n", n.ImpactScore, n.SentimentScore, n.Title))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Quantitative risk\n")
	sb.WriteString(fmt.Sprintf("Total %.1f/100 (%s). News %.1f, volatility %.1f, financial %.1f, market %.1f, liquidity %.1f\n\n",
		req.Risk.TotalScore, req.Risk.RiskLevel, req.Risk.NewsSentiment, req.Risk.Volatility,
		req.Risk.Financial, req.Risk.Market, req.Risk.Liquidity))

	sb.WriteString("## Technicals\n")
	writeTechnicals(&sb, req.Stock.Technical)

	sb.WriteString("## Financials\n")
	writeFinancials(&sb, req.Stock.Financial)

	sb.WriteString("## Market context\n")
	if req.Context.Trend == "" && req.Context.Strength == nil {
		sb.WriteString("Not available.\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("Trend %s", orDash(string(req.Context.Trend))))
		if req.Context.Strength != nil {
			sb.WriteString(fmt.Sprintf(", strength %.0f/100", *req.Context.Strength))
		}
		if req.Context.VolatilityLevel != "" {
			sb.WriteString(fmt.Sprintf(", volatility %s", req.Context.VolatilityLevel))
		}
		sb.WriteString("\n\n")
	}

	if req.Consensus != nil {
		sb.WriteString("## Sell-side consensus\n")
		sb.WriteString(fmt.Sprintf("Buy %d / Hold %d / Sell %d",
			req.Consensus.BuyCount, req.Consensus.HoldCount, req.Consensus.SellCount))
		if req.Consensus.AvgTargetPrice != nil {
			sb.WriteString(fmt.Sprintf(", avg target %.0f", *req.Consensus.AvgTargetPrice))
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString("Respond with the JSON verdict only.\n")
	return sb.String()
}

func writeTechnicals(sb *strings.Builder, t models.TechnicalIndicators) {
	var parts []string
	if t.CurrentPrice != nil {
		parts = append(parts, fmt.Sprintf("price %.2f", *t.CurrentPrice))
	}
	if t.Week52High != nil && t.Week52Low != nil {
		parts = append(parts, fmt.Sprintf("52w range %.2f-%.2f", *t.Week52Low, *t.Week52High))
	}
	if t.RSI != nil {
		parts = append(parts, fmt.Sprintf("RSI %.1f", *t.RSI))
	}
	if t.MACD != nil && t.MACD.Histogram != nil {
		parts = append(parts, fmt.Sprintf("MACD histogram %+.3f", *t.MACD.Histogram))
	}
	if t.MovingAverageTrend != "" {
		parts = append(parts, fmt.Sprintf("MA trend %s", t.MovingAverageTrend))
	}
	if len(parts) == 0 {
		sb.WriteString("Not available.\n\n")
		return
	}
	sb.WriteString(strings.Join(parts, ", ") + "\n\n")
}

func writeFinancials(sb *strings.Builder, f models.FinancialRatios) {
	var parts []string
	add := func(label string, v *float64) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s %.2f", label, *v))
		}
	}
	add("PER", f.PER)
	add("PBR", f.PBR)
	add("ROE", f.ROE)
	add("EPS", f.EPS)
	add("BPS", f.BPS)
	add("debt ratio", f.DebtRatio)
	add("operating margin", f.OperatingMargin)
	if len(parts) == 0 {
		sb.WriteString("Not available.\n\n")
		return
	}
	sb.WriteString(strings.Join(parts, ", ") + "\n\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

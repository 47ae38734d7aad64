package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"StockPulse/internal/domain/models"
)

var thinkTagRegex = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThinkTags removes reasoning-model scratchpad tags from the response.
func StripThinkTags(text string) string {
	return strings.TrimSpace(thinkTagRegex.ReplaceAllString(text, ""))
}

// ParseAnalysis parses a model response into a ModelAnalysisResult.
// Handles plain JSON, markdown code fences and JSON embedded in prose.
func ParseAnalysis(text string) (models.ModelAnalysisResult, error) {
	cleaned := StripThinkTags(text)

	// Remove markdown code fences
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result models.ModelAnalysisResult
	if cleaned == "" {
		return result, fmt.Errorf("empty model response")
	}

	if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
		return normalize(result), nil
	}

	// Try to extract the outermost JSON object from surrounding prose
	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart >= 0 && jsonEnd > jsonStart {
		substr := cleaned[jsonStart : jsonEnd+1]
		if err := json.Unmarshal([]byte(substr), &result); err == nil {
			return normalize(result), nil
		}
	}

	return result, fmt.Errorf("failed to parse model response as JSON: %.200s", cleaned)
}

// normalize lowercases the enum fields so the ensemble's sanitizer sees
// canonical values even from models that answer in caps.
func normalize(r models.ModelAnalysisResult) models.ModelAnalysisResult {
	r.Recommendation = models.Recommendation(strings.ToLower(strings.TrimSpace(string(r.Recommendation))))
	r.RiskLevel = models.RiskLevel(strings.ToLower(strings.TrimSpace(string(r.RiskLevel))))
	if r.Timeframes != nil {
		for _, tf := range []*models.TimeframeOutlook{r.Timeframes.ShortTerm, r.Timeframes.MediumTerm, r.Timeframes.LongTerm} {
			if tf != nil {
				tf.Outlook = models.Outlook(strings.ToLower(strings.TrimSpace(string(tf.Outlook))))
			}
		}
	}
	return r
}

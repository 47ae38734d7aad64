package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"StockPulse/internal/domain/models"
)

// Per-model evaluation weights. Unlisted models weigh 0.5; the weighted mean
// is normalized by the sum of weights actually applied, so the table never
// has to sum to one.
var modelEvalWeights = map[string]float64{
	"gpt-4-turbo":       0.6,
	"claude-3.5-sonnet": 0.4,
}

const defaultModelWeight = 0.5

// SetModelWeight overrides the evaluation weight for a model. Called during
// wiring, before any voting starts; not safe for concurrent use.
func SetModelWeight(model string, weight float64) {
	if model == "" || weight <= 0 {
		return
	}
	modelEvalWeights[model] = weight
}

// Confidence component weights. They sum to one.
const (
	confWeightRec       = 0.30
	confWeightScore     = 0.25
	confWeightRisk      = 0.20
	confWeightRiskScore = 0.15
	confWeightTimeframe = 0.10
)

// VoteEnsemble folds model results into one consensus. Zero inputs yield the
// degraded sentinel, one input passes through at fixed confidence 50, two
// or more go through plurality voting with agreement-weighted confidence.
// Inputs are sanitized first; a malformed field degrades to its neutral
// value instead of poisoning the vote.
func VoteEnsemble(results []models.ModelAnalysisResult) models.EnsembleResult {
	switch len(results) {
	case 0:
		return models.EnsembleResult{
			Recommendation:  models.RecommendHold,
			RiskLevel:       models.RiskMedium,
			EvaluationScore: 50,
			ConfidenceScore: 0,
			Metadata:        models.EnsembleMetadata{ModelsUsed: []string{}},
			Err:             "no model succeeded",
		}
	case 1:
		r := sanitizeResult(results[0])
		return models.EnsembleResult{
			Summary:         r.Summary,
			Recommendation:  r.Recommendation,
			RiskLevel:       r.RiskLevel,
			RiskScore:       r.RiskScore,
			EvaluationScore: r.EvaluationScore,
			ConfidenceScore: 50,
			ModelAgreement:  agreementMap([]models.ModelAnalysisResult{r}),
			Metadata: models.EnsembleMetadata{
				ModelsUsed: []string{r.Model},
				Note:       "single model, fixed confidence",
			},
		}
	}

	clean := make([]models.ModelAnalysisResult, len(results))
	for i, r := range results {
		clean[i] = sanitizeResult(r)
	}

	recommendation, recCounts, recAgree := pluralityRecommendation(clean)
	riskLevel, riskCounts, riskAgree := pluralityRisk(clean)

	evals := make([]float64, len(clean))
	riskScores := make([]float64, len(clean))
	var weightedSum, weightSum, riskScoreSum float64
	names := make([]string, len(clean))
	for i, r := range clean {
		w := defaultModelWeight
		if mw, ok := modelEvalWeights[r.Model]; ok {
			w = mw
		}
		weightedSum += r.EvaluationScore * w
		weightSum += w
		riskScoreSum += r.RiskScore
		evals[i] = r.EvaluationScore
		riskScores[i] = r.RiskScore
		names[i] = r.Model
	}
	evalScore := weightedSum / weightSum
	riskScore := riskScoreSum / float64(len(clean))

	scoreStd := populationStd(evals)
	riskScoreStd := populationStd(riskScores)
	scoreAgree := math.Max(0, 100-scoreStd)
	riskScoreAgree := math.Max(0, 100-riskScoreStd)
	timeframeAgree := timeframeAgreement(clean)

	confidence := recAgree*confWeightRec +
		scoreAgree*confWeightScore +
		riskAgree*confWeightRisk +
		riskScoreAgree*confWeightRiskScore +
		timeframeAgree*confWeightTimeframe

	return models.EnsembleResult{
		Summary:         consensusSummary(clean, recommendation),
		Recommendation:  recommendation,
		RiskLevel:       riskLevel,
		RiskScore:       riskScore,
		EvaluationScore: evalScore,
		ConfidenceScore: confidence,
		ModelAgreement:  agreementMap(clean),
		Metadata: models.EnsembleMetadata{
			ModelsUsed:            names,
			RecommendationCounts:  recCounts,
			RiskCounts:            riskCounts,
			ScoreStd:              scoreStd,
			RecAgreementPct:       recAgree,
			ScoreAgreementPct:     scoreAgree,
			RiskAgreementPct:      riskAgree,
			RiskScoreStd:          riskScoreStd,
			RiskScoreAgreementPct: riskScoreAgree,
			TimeframeAgreementPct: timeframeAgree,
		},
	}
}

// sanitizeResult clamps malformed fields to neutral values so one bad model
// payload cannot skew the consensus.
func sanitizeResult(r models.ModelAnalysisResult) models.ModelAnalysisResult {
	switch r.Recommendation {
	case models.RecommendBuy, models.RecommendSell, models.RecommendHold:
	default:
		r.Recommendation = models.RecommendHold
	}
	switch r.RiskLevel {
	case models.RiskLow, models.RiskMedium, models.RiskHigh:
	default:
		r.RiskLevel = models.RiskMedium
	}
	if r.EvaluationScore < 0 || r.EvaluationScore > 100 {
		r.EvaluationScore = 50
	}
	if r.RiskScore < 0 || r.RiskScore > 100 {
		r.RiskScore = 50
	}
	return r
}

// pluralityRecommendation picks the most voted call. Ties go to whichever
// tied call appeared first in the input order.
func pluralityRecommendation(results []models.ModelAnalysisResult) (models.Recommendation, map[models.Recommendation]int, float64) {
	counts := make(map[models.Recommendation]int)
	for _, r := range results {
		counts[r.Recommendation]++
	}
	best, bestCount := models.RecommendHold, 0
	for _, r := range results {
		if counts[r.Recommendation] > bestCount {
			best, bestCount = r.Recommendation, counts[r.Recommendation]
		}
	}
	return best, counts, float64(bestCount) / float64(len(results)) * 100
}

func pluralityRisk(results []models.ModelAnalysisResult) (models.RiskLevel, map[models.RiskLevel]int, float64) {
	counts := make(map[models.RiskLevel]int)
	for _, r := range results {
		counts[r.RiskLevel]++
	}
	best, bestCount := models.RiskMedium, 0
	for _, r := range results {
		if counts[r.RiskLevel] > bestCount {
			best, bestCount = r.RiskLevel, counts[r.RiskLevel]
		}
	}
	return best, counts, float64(bestCount) / float64(len(results)) * 100
}

// timeframeAgreement measures how aligned the models are across the three
// horizons. Each horizon contributes the share of models backing its modal
// outlook; horizons no model reported score a neutral 50, as does a result
// set with no timeframe data at all.
func timeframeAgreement(results []models.ModelAnalysisResult) float64 {
	horizons := []func(*models.TimeframeAnalysis) *models.TimeframeOutlook{
		func(t *models.TimeframeAnalysis) *models.TimeframeOutlook { return t.ShortTerm },
		func(t *models.TimeframeAnalysis) *models.TimeframeOutlook { return t.MediumTerm },
		func(t *models.TimeframeAnalysis) *models.TimeframeOutlook { return t.LongTerm },
	}

	var sum float64
	var measured int
	for _, pick := range horizons {
		counts := make(map[models.Outlook]int)
		total := 0
		for _, r := range results {
			if r.Timeframes == nil {
				continue
			}
			if o := pick(r.Timeframes); o != nil {
				counts[o.Outlook]++
				total++
			}
		}
		if total == 0 {
			continue
		}
		modal := 0
		for _, c := range counts {
			if c > modal {
				modal = c
			}
		}
		sum += float64(modal) / float64(total) * 100
		measured++
	}
	if measured == 0 {
		return 50
	}
	return sum / float64(measured)
}

// populationStd is the population standard deviation (divisor N).
func populationStd(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)))
}

func agreementMap(results []models.ModelAnalysisResult) map[string]models.ModelVote {
	votes := make(map[string]models.ModelVote, len(results))
	for _, r := range results {
		votes[r.Model] = models.ModelVote{
			Recommendation:  r.Recommendation,
			EvaluationScore: r.EvaluationScore,
			RiskLevel:       r.RiskLevel,
		}
	}
	return votes
}

func consensusSummary(results []models.ModelAnalysisResult, rec models.Recommendation) string {
	backing := make([]string, 0, len(results))
	for _, r := range results {
		if r.Recommendation == rec {
			backing = append(backing, r.Model)
		}
	}
	sort.Strings(backing)
	return fmt.Sprintf("%d/%d models agree on %s (%s)", len(backing), len(results), rec, strings.Join(backing, ", "))
}

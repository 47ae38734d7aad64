package models

// ModelVote records what one model contributed to the consensus.
type ModelVote struct {
	Recommendation  Recommendation `json:"recommendation"`
	EvaluationScore float64        `json:"evaluation_score"`
	RiskLevel       RiskLevel      `json:"risk_level"`
}

// EnsembleMetadata carries the per-dimension agreement numbers behind the
// confidence score.
type EnsembleMetadata struct {
	ModelsUsed            []string               `json:"models_used"`
	RecommendationCounts  map[Recommendation]int `json:"recommendation_counts,omitempty"`
	RiskCounts            map[RiskLevel]int      `json:"risk_counts,omitempty"`
	ScoreStd              float64                `json:"score_std"`
	RecAgreementPct       float64                `json:"rec_agreement_pct"`
	ScoreAgreementPct     float64                `json:"score_agreement_pct"`
	RiskAgreementPct      float64                `json:"risk_agreement_pct"`
	RiskScoreStd          float64                `json:"risk_score_std"`
	RiskScoreAgreementPct float64                `json:"risk_score_agreement_pct"`
	TimeframeAgreementPct float64                `json:"timeframe_agreement_pct"`
	Note                  string                 `json:"note,omitempty"`
}

// EnsembleResult is the consensus across all model results that settled
// successfully. With zero models it is the degraded sentinel: hold / medium
// risk / evaluation 50 / confidence 0, with Err set so the caller can tell
// the condition apart without an exception-style failure.
type EnsembleResult struct {
	Summary         string               `json:"summary,omitempty"`
	Recommendation  Recommendation       `json:"recommendation"`
	RiskLevel       RiskLevel            `json:"risk_level"`
	RiskScore       float64              `json:"risk_score"`
	EvaluationScore float64              `json:"evaluation_score"`
	ConfidenceScore float64              `json:"confidence_score"`
	ModelAgreement  map[string]ModelVote `json:"model_agreement,omitempty"`
	Metadata        EnsembleMetadata     `json:"ensemble_metadata"`
	Err             string               `json:"error,omitempty"`
}

// Degraded reports whether the result is the no-model sentinel.
func (r *EnsembleResult) Degraded() bool { return r.Err != "" }

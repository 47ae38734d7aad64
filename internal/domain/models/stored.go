package models

import "time"

// StoredSignal is the flattened per-report row kept in the signal store.
// It carries the decision surface of a report without the full breakdown.
type StoredSignal struct {
	Symbol          string    `json:"symbol"`
	GeneratedAt     time.Time `json:"generated_at"`
	Signal          Action    `json:"signal"`
	Strength        string    `json:"strength"`
	Confidence      float64   `json:"confidence"`
	RiskScore       float64   `json:"risk_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	EvaluationScore float64   `json:"evaluation_score"`
	CurrentPrice    float64   `json:"current_price"`
	TargetNeutral   float64   `json:"target_neutral"`
	StopLoss        float64   `json:"stop_loss"`
	ModelsUsed      []string  `json:"models_used"`
}

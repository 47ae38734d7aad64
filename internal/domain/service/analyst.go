package service

import (
	"context"

	"StockPulse/internal/domain/models"
)

// ModelAnalyst produces one structured analysis of a stock. Implementations
// wrap an LLM endpoint; a failed analyst is skipped by the ensemble, never
// fatal to the report.
type ModelAnalyst interface {
	Name() string
	Analyze(ctx context.Context, req models.AnalystRequest) (models.ModelAnalysisResult, error)
}

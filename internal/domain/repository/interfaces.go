package repository

import (
	"context"
	"time"

	"StockPulse/internal/domain/models"
)

// SignalStore persists generated reports for later lookup and analytics.
type SignalStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, r *models.Report) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]models.StoredSignal, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// Publisher fans finished reports out to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, r *models.Report) error
	Close() error
}

// ReportCache holds recent reports keyed by symbol.
type ReportCache interface {
	Get(ctx context.Context, symbol string) (*models.Report, error)
	Set(ctx context.Context, r *models.Report) error
	Invalidate(ctx context.Context, symbol string) error
}

// QuoteSource supplies last-trade prices for freshening stale inputs.
type QuoteSource interface {
	Last(symbol string) (price float64, at time.Time, ok bool)
}

type Metrics interface {
	RecordReport(symbol, signal string)
	RecordModelFailure(model string)
	RecordError(kind string)
	RecordSignalConfidence(symbol string, confidence float64)
	RecordEnsembleConfidence(symbol string, confidence float64)
	RecordLatency(op string, seconds float64)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/pkg/cache"
	pkgkafka "StockPulse/pkg/kafka"
)

// ClickHouseSignalStore implements SignalStore for ClickHouse.
type ClickHouseSignalStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseSignalStore creates ClickHouse signal storage.
func NewClickHouseSignalStore(db *sql.DB, table string) repository.SignalStore {
	if table == "" {
		table = "report_signals"
	}
	return &ClickHouseSignalStore{db: db, table: table}
}

func (s *ClickHouseSignalStore) Init(ctx context.Context) error {
	q := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            generated_at     DateTime,
            symbol           LowCardinality(String),
            signal           LowCardinality(String),
            strength         LowCardinality(String),
            confidence       Float64,
            risk_score       Float64,
            risk_level       LowCardinality(String),
            evaluation_score Float64,
            current_price    Float64,
            target_neutral   Float64,
            stop_loss        Float64,
            models_used      String
        )
        ENGINE = MergeTree()
        PARTITION BY toYYYYMM(generated_at)
        ORDER BY (symbol, generated_at)
    `, s.table)
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init signal store: %w", err)
	}
	return nil
}

func (s *ClickHouseSignalStore) Store(ctx context.Context, r *models.Report) error {
	q := fmt.Sprintf(`INSERT INTO %s
        (generated_at, symbol, signal, strength, confidence, risk_score, risk_level,
         evaluation_score, current_price, target_neutral, stop_loss, models_used)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table)
	_, err := s.db.ExecContext(ctx, q,
		r.GeneratedAt,
		r.Symbol,
		string(r.Signal.Action),
		string(r.Signal.Strength),
		r.Signal.Confidence,
		r.Risk.TotalScore,
		string(r.Risk.RiskLevel),
		r.Ensemble.EvaluationScore,
		r.Targets.CurrentPrice,
		r.Targets.Neutral,
		r.Signal.StopLoss,
		strings.Join(r.Ensemble.Metadata.ModelsUsed, ","),
	)
	return err
}

func (s *ClickHouseSignalStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]models.StoredSignal, error) {
	q := fmt.Sprintf(`SELECT generated_at, symbol, signal, strength, confidence,
        risk_score, risk_level, evaluation_score, current_price, target_neutral, stop_loss, models_used
        FROM %s WHERE symbol = ? AND generated_at >= ? AND generated_at <= ?
        ORDER BY generated_at DESC LIMIT ?`, s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []models.StoredSignal
	for rows.Next() {
		var sig models.StoredSignal
		var signal, level, used string
		if err := rows.Scan(
			&sig.GeneratedAt, &sig.Symbol, &signal, &sig.Strength, &sig.Confidence,
			&sig.RiskScore, &level, &sig.EvaluationScore,
			&sig.CurrentPrice, &sig.TargetNeutral, &sig.StopLoss, &used,
		); err != nil {
			return nil, err
		}
		sig.Signal = models.Action(signal)
		sig.RiskLevel = models.RiskLevel(level)
		if used != "" {
			sig.ModelsUsed = strings.Split(used, ",")
		}
		signals = append(signals, sig)
	}
	return signals, rows.Err()
}

func (s *ClickHouseSignalStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseSignalStore) Close() error {
	return nil // Managed by pkg
}

// KafkaReportPublisher implements Publisher for Kafka. Reports are keyed by
// symbol so downstream consumers see per-symbol ordering.
type KafkaReportPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaReportPublisher creates Kafka publisher.
func NewKafkaReportPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaReportPublisher{producer: producer, topic: topic}
}

func (p *KafkaReportPublisher) Publish(ctx context.Context, r *models.Report) error {
	return p.producer.Publish(ctx, p.topic, []byte(r.Symbol), r)
}

func (p *KafkaReportPublisher) Close() error {
	return p.producer.Close()
}

// CachedReportStore implements ReportCache on top of the cache service.
type CachedReportStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewCachedReportStore creates a report cache with the given TTL.
func NewCachedReportStore(c cache.Service, ttl time.Duration) repository.ReportCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedReportStore{cache: c, ttl: ttl}
}

func reportKey(symbol string) string {
	return "report:" + symbol
}

func (c *CachedReportStore) Get(ctx context.Context, symbol string) (*models.Report, error) {
	var r models.Report
	if err := c.cache.Get(ctx, reportKey(symbol), &r); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, err
		}
		return nil, fmt.Errorf("report cache get: %w", err)
	}
	return &r, nil
}

func (c *CachedReportStore) Set(ctx context.Context, r *models.Report) error {
	return c.cache.Set(ctx, reportKey(r.Symbol), r, c.ttl)
}

func (c *CachedReportStore) Invalidate(ctx context.Context, symbol string) error {
	return c.cache.Delete(ctx, reportKey(symbol))
}

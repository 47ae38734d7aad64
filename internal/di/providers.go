package di

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/analysis"
	domrepo "StockPulse/internal/domain/repository"
	domservice "StockPulse/internal/domain/service"
	"StockPulse/internal/handler/api"
	internalrepo "StockPulse/internal/repository"
	"StockPulse/internal/service/llm"
	"StockPulse/internal/service/quotes"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/cache"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	pkgkafka "StockPulse/pkg/kafka"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideCache creates the cache backend named in the config.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
	default:
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MaxSize),
		), nil
	}
}

// ProvideReportCache wraps the cache service for report storage.
func ProvideReportCache(c cache.Service, cfg *config.Config) domrepo.ReportCache {
	return internalrepo.NewCachedReportStore(c, cfg.Cache.TTL)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideSignalStore creates ClickHouse-backed signal storage and ensures
// its schema. Nil when ClickHouse is disabled.
func ProvideSignalStore(chClient *pkgch.Client, cfg *config.Config) (domrepo.SignalStore, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewClickHouseSignalStore(chClient.DB(), cfg.ClickHouse.Database+".report_signals")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the Kafka report publisher. Nil when Kafka is
// disabled.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.Topic)
}

// ProvideQuoteStream creates the WebSocket quote stream, or nil when
// disabled.
func ProvideQuoteStream(cfg *config.Config) *quotes.Stream {
	if !cfg.Quotes.Enabled {
		return nil
	}
	return quotes.New(
		cfg.Quotes.APIKey,
		cfg.Quotes.WebSocketURL,
		cfg.Quotes.Symbols,
		cfg.Quotes.ReconnectDelay,
		cfg.Quotes.PingInterval,
	)
}

// ProvideQuoteSource adapts the stream to the domain interface, keeping the
// interface nil when no stream is configured.
func ProvideQuoteSource(stream *quotes.Stream) domrepo.QuoteSource {
	if stream == nil {
		return nil
	}
	return stream
}

// ProvideAnalysts builds one LLM client per configured analyst and applies
// any ensemble weight overrides.
func ProvideAnalysts(cfg *config.Config, log *applogger.Logger) []domservice.ModelAnalyst {
	analysts := make([]domservice.ModelAnalyst, 0, len(cfg.Models.Analysts))
	for _, a := range cfg.Models.Analysts {
		if a.APIKey == "" {
			log.Warn("analyst skipped, no api key", applogger.String("name", a.Name))
			continue
		}
		analysis.SetModelWeight(a.Name, a.Weight)
		analysts = append(analysts, llm.NewClient(a.Name, a.BaseURL, a.APIKey, a.Model, llm.Options{
			Timeout:       cfg.Models.Timeout,
			RatePerMinute: cfg.Models.RatePerMinute,
			Burst:         cfg.Models.Burst,
		}, log))
	}
	return analysts
}

// ProvideReportUseCase assembles the pipeline use case.
func ProvideReportUseCase(
	analysts []domservice.ModelAnalyst,
	store domrepo.SignalStore,
	publisher domrepo.Publisher,
	reports domrepo.ReportCache,
	quoteSrc domrepo.QuoteSource,
	m domrepo.Metrics,
	log *applogger.Logger,
) *usecase.ReportUseCase {
	return usecase.NewReportUseCase(usecase.Options{
		Analysts:  analysts,
		Store:     store,
		Publisher: publisher,
		Reports:   reports,
		Quotes:    quoteSrc,
		Metrics:   m,
	}, log)
}

// ProvideHandler creates the HTTP handler surface.
func ProvideHandler(log *applogger.Logger, reports *usecase.ReportUseCase, store domrepo.SignalStore) xhttp.Handler {
	return api.NewReportsEchoHandler(log, reports, store)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	reports *usecase.ReportUseCase,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	stream *quotes.Stream,
) *server.App {
	return server.New(cfg, log, reports, handler, chClient, producer, stream)
}

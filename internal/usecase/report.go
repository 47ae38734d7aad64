package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"StockPulse/internal/analysis"
	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	domservice "StockPulse/internal/domain/service"
	"StockPulse/pkg/cache"
	applogger "StockPulse/pkg/logger"
)

// ReportUseCase runs the full decision pipeline for one symbol: news trend,
// risk score, model fan-out, ensemble vote, target prices and the final
// trading signal. Persistence, caching and publishing are best-effort; a
// report is still returned when they fail.
type ReportUseCase struct {
	analysts  []domservice.ModelAnalyst
	store     domrepo.SignalStore
	publisher domrepo.Publisher
	reports   domrepo.ReportCache
	quotes    domrepo.QuoteSource
	metrics   domrepo.Metrics
	log       *applogger.Logger
	timeout   time.Duration

	mu         sync.RWMutex
	lastInputs map[string]models.ReportRequest
}

// Options tune optional collaborators. Nil fields disable the concern.
type Options struct {
	Analysts  []domservice.ModelAnalyst
	Store     domrepo.SignalStore
	Publisher domrepo.Publisher
	Reports   domrepo.ReportCache
	Quotes    domrepo.QuoteSource
	Metrics   domrepo.Metrics
	Timeout   time.Duration
}

func NewReportUseCase(opts Options, log *applogger.Logger) *ReportUseCase {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &ReportUseCase{
		analysts:   opts.Analysts,
		store:      opts.Store,
		publisher:  opts.Publisher,
		reports:    opts.Reports,
		quotes:     opts.Quotes,
		metrics:    opts.Metrics,
		log:        log,
		timeout:    timeout,
		lastInputs: make(map[string]models.ReportRequest),
	}
}

// Generate runs the pipeline on the supplied facts and returns the report.
func (uc *ReportUseCase) Generate(ctx context.Context, req models.ReportRequest) (*models.Report, error) {
	if req.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	started := time.Now()
	uc.freshenPrice(&req)

	trend := analysis.AnalyzeNewsTrend(req.News)
	risk := analysis.CalculateRiskScore(&trend, req.Stock, req.Market)

	results := req.ModelResults
	if len(results) == 0 {
		results = uc.fanOut(ctx, analystRequest(req, trend, risk))
	}

	ensemble := analysis.VoteEnsemble(results)

	var sector models.SectorRelative
	if req.Sector != nil {
		sector = *req.Sector
	}
	targets, err := analysis.CalculateTargetPrices(req.Stock, sector, req.Context, req.Analyst)
	if err != nil {
		uc.recordError("target_prices")
		return nil, fmt.Errorf("target prices for %s: %w", req.Symbol, err)
	}

	signal := analysis.GenerateTradingSignal(targets, req.Stock.Technical, risk, req.Context, ensemble)

	report := &models.Report{
		Symbol:      req.Symbol,
		Name:        req.Name,
		GeneratedAt: time.Now().UTC(),
		NewsTrend:   trend,
		Risk:        risk,
		Ensemble:    ensemble,
		Targets:     targets,
		Signal:      signal,
	}

	uc.rememberInput(req)
	uc.persist(ctx, report)
	uc.observe(report, time.Since(started))
	return report, nil
}

// GetCached returns the most recent report for a symbol, if any.
func (uc *ReportUseCase) GetCached(ctx context.Context, symbol string) (*models.Report, error) {
	if uc.reports == nil {
		return nil, cache.ErrCacheMiss
	}
	return uc.reports.Get(ctx, symbol)
}

// History returns stored signal rows for a symbol.
func (uc *ReportUseCase) History(ctx context.Context, symbol string, from, to time.Time, limit int) ([]models.StoredSignal, error) {
	if uc.store == nil {
		return nil, errors.New("signal store not configured")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}
	return uc.store.Query(ctx, symbol, from, to, limit)
}

// TrackedSymbols lists symbols that have been analyzed this process.
func (uc *ReportUseCase) TrackedSymbols() []string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	symbols := make([]string, 0, len(uc.lastInputs))
	for s := range uc.lastInputs {
		symbols = append(symbols, s)
	}
	return symbols
}

// Refresh re-runs the pipeline on the last known inputs for a symbol. Used
// by the scheduler; quotes freshen the price, the rest of the facts are
// whatever the last caller supplied.
func (uc *ReportUseCase) Refresh(ctx context.Context, symbol string) (*models.Report, error) {
	uc.mu.RLock()
	req, ok := uc.lastInputs[symbol]
	uc.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no inputs recorded for %s", symbol)
	}
	return uc.Generate(ctx, req)
}

func (uc *ReportUseCase) fanOut(ctx context.Context, req models.AnalystRequest) []models.ModelAnalysisResult {
	if len(uc.analysts) == 0 {
		return nil
	}

	type item struct {
		name string
		val  models.ModelAnalysisResult
		err  error
	}
	ch := make(chan item, len(uc.analysts))
	var wg sync.WaitGroup

	for _, a := range uc.analysts {
		wg.Add(1)
		go func(a domservice.ModelAnalyst) {
			defer wg.Done()
			v, err := a.Analyze(ctx, req)
			ch <- item{a.Name(), v, err}
		}(a)
	}

	go func() { wg.Wait(); close(ch) }()

	results := make([]models.ModelAnalysisResult, 0, len(uc.analysts))
	for it := range ch {
		if it.err != nil {
			uc.log.Warn("model analysis failed",
				applogger.String("model", it.name),
				applogger.Error(it.err))
			if uc.metrics != nil {
				uc.metrics.RecordModelFailure(it.name)
			}
			continue
		}
		results = append(results, it.val)
	}
	return results
}

func (uc *ReportUseCase) freshenPrice(req *models.ReportRequest) {
	if uc.quotes == nil {
		return
	}
	price, at, ok := uc.quotes.Last(req.Symbol)
	if !ok || price <= 0 {
		return
	}
	// Only override when the stream has a reasonably fresh trade.
	if time.Since(at) > 15*time.Minute {
		return
	}
	req.Stock.Technical.CurrentPrice = &price
}

func analystRequest(req models.ReportRequest, trend models.NewsTrendSnapshot, risk models.RiskScoreBreakdown) models.AnalystRequest {
	return models.AnalystRequest{
		Symbol:    req.Symbol,
		Name:      req.Name,
		Trend:     trend,
		Risk:      risk,
		Stock:     req.Stock,
		Context:   req.Context,
		Sector:    req.Sector,
		Consensus: req.Analyst,
		News:      req.News,
	}
}

func (uc *ReportUseCase) rememberInput(req models.ReportRequest) {
	uc.mu.Lock()
	uc.lastInputs[req.Symbol] = req
	uc.mu.Unlock()
}

func (uc *ReportUseCase) persist(ctx context.Context, r *models.Report) {
	if uc.reports != nil {
		if err := uc.reports.Set(ctx, r); err != nil {
			uc.log.Warn("report cache write failed",
				applogger.String("symbol", r.Symbol), applogger.Error(err))
			uc.recordError("cache_write")
		}
	}
	if uc.store != nil {
		if err := uc.store.Store(ctx, r); err != nil {
			uc.log.Warn("signal store write failed",
				applogger.String("symbol", r.Symbol), applogger.Error(err))
			uc.recordError("store_write")
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, r); err != nil {
			uc.log.Warn("report publish failed",
				applogger.String("symbol", r.Symbol), applogger.Error(err))
			uc.recordError("publish")
		}
	}
}

func (uc *ReportUseCase) observe(r *models.Report, elapsed time.Duration) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordReport(r.Symbol, string(r.Signal.Action))
	uc.metrics.RecordSignalConfidence(r.Symbol, r.Signal.Confidence)
	uc.metrics.RecordEnsembleConfidence(r.Symbol, r.Ensemble.ConfidenceScore)
	uc.metrics.RecordLatency("generate_report", elapsed.Seconds())
}

func (uc *ReportUseCase) recordError(kind string) {
	if uc.metrics != nil {
		uc.metrics.RecordError(kind)
	}
}

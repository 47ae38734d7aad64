package scheduler

import (
	"context"
	"fmt"

	"StockPulse/internal/usecase"
	applogger "StockPulse/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler re-runs the report pipeline on a cron spec for every symbol
// that has been analyzed at least once this process. Quote freshening in
// the use case keeps the refreshed reports current on price.
type Scheduler struct {
	cron    *cron.Cron
	reports *usecase.ReportUseCase
	log     *applogger.Logger
	ctx     context.Context
}

func New(ctx context.Context, reports *usecase.ReportUseCase, log *applogger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		reports: reports,
		log:     log,
		ctx:     ctx,
	}
}

// Register adds the refresh task under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refreshAll); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) refreshAll() {
	symbols := s.reports.TrackedSymbols()
	if len(symbols) == 0 {
		return
	}
	s.log.Info("refreshing reports", applogger.Int("symbols", len(symbols)))
	for _, symbol := range symbols {
		if _, err := s.reports.Refresh(s.ctx, symbol); err != nil {
			s.log.Warn("refresh failed",
				applogger.String("symbol", symbol), applogger.Error(err))
		}
	}
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/laprovidence/livestock/internal/config"
	"github.com/laprovidence/livestock/internal/repository"
	"github.com/laprovidence/livestock/internal/repository/sheets"
	"github.com/laprovidence/livestock/internal/service/reporting"
	"github.com/laprovidence/livestock/pkg/clients/notify"
)

// Scheduler manages scheduled tasks. Its single job rolls up the daily herd
// snapshot, persists it and pushes it to the optional export targets.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	store        repository.Store
	notifier     notify.Client
	exporter     sheets.Exporter
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. notifier and exporter may be
// nil when their targets are unconfigured.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, store repository.Store, notifier notify.Client, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		reportingSvc: reportingSvc,
		store:        store,
		notifier:     notifier,
		exporter:     exporter,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runDailySnapshot)
	if err != nil {
		s.logger.Error("failed to schedule daily snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailySnapshot() {
	s.logger.Info("generating daily herd snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot, err := s.reportingSvc.Snapshot(ctx)
	if err != nil {
		s.logger.Error("failed to generate snapshot", zap.Error(err))
		return
	}

	if err := s.store.InsertHerdSnapshot(ctx, snapshot); err != nil {
		s.logger.Error("failed to persist snapshot", zap.Error(err))
		return
	}

	if s.notifier != nil {
		message := fmt.Sprintf(
			"Herd: %d active (%d M / %d F), %d sold. Month: revenue %.0f, expense %.0f, net %.0f.",
			snapshot.Population.TotalActive,
			snapshot.Population.Males,
			snapshot.Population.Females,
			snapshot.Population.Sold,
			snapshot.Finances.TotalRevenue,
			snapshot.Finances.TotalExpense,
			snapshot.Finances.Net,
		)
		if err := s.notifier.Send(ctx, notify.Notification{Title: "Daily herd snapshot", Message: message}); err != nil {
			s.logger.Error("failed to send snapshot notification", zap.Error(err))
		}
	}

	if s.exporter != nil {
		if err := s.exporter.AppendSnapshot(ctx, snapshot); err != nil {
			s.logger.Error("failed to export snapshot to sheet", zap.Error(err))
		}
	}

	s.logger.Info("daily snapshot completed", zap.Time("date", snapshot.Date))
}

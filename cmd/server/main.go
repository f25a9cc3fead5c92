package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/laprovidence/livestock/internal/config"
	"github.com/laprovidence/livestock/internal/repository"
	"github.com/laprovidence/livestock/internal/repository/memory"
	"github.com/laprovidence/livestock/internal/repository/mongodb"
	"github.com/laprovidence/livestock/internal/repository/sheets"
	"github.com/laprovidence/livestock/internal/scheduler"
	"github.com/laprovidence/livestock/internal/seed"
	"github.com/laprovidence/livestock/internal/server/handlers"
	"github.com/laprovidence/livestock/internal/server/router"
	"github.com/laprovidence/livestock/internal/service/ledger"
	"github.com/laprovidence/livestock/internal/service/livestock"
	"github.com/laprovidence/livestock/internal/service/reporting"
	"github.com/laprovidence/livestock/pkg/clients/notify"
	"github.com/laprovidence/livestock/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store repository.Store
	if cfg.MongoDB.URI != "" {
		mongoStore, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoStore
	} else {
		baseLogger.Warn("MONGODB_URI not set, using ephemeral in-memory store")
		store = memory.NewStore()
	}

	if err := seed.Run(context.Background(), store, baseLogger.Named("seed")); err != nil {
		baseLogger.Error("failed to seed sample herd", zap.Error(err))
	}

	eventLedger := ledger.New(store, baseLogger.Named("svc.ledger"))
	livestockSvc := livestock.NewService(store, eventLedger, cfg.Livestock.CascadeFinancialRecords, baseLogger.Named("svc.livestock"))
	reportingSvc := reporting.NewService(store, baseLogger.Named("svc.reporting"))

	var notifier notify.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("snapshot webhook notifications enabled")
	}

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("snapshot sheet export enabled")
	}

	animalHandler := handlers.NewAnimalHandler(livestockSvc, baseLogger.Named("handlers.animals"))
	recordHandler := handlers.NewRecordHandler(livestockSvc, baseLogger.Named("handlers.records"))
	reportHandler := handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports"))
	engine := router.New(animalHandler, recordHandler, reportHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, store, notifier, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

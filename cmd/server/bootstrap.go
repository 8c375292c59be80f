package main

import (
	"context"
	"time"

	"github.com/talenthub/internlens/internal/config"
	"github.com/talenthub/internlens/internal/handlers"
	"github.com/talenthub/internlens/internal/services"
	"github.com/talenthub/internlens/internal/store"
	"github.com/talenthub/internlens/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg           *config.Config
	logStore      store.LogStore
	digestService *services.DigestService
	taskQueue     services.TaskQueue
	worker        *services.Worker
	reportHandler *handlers.ReportHandler
	healthHandler *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: store, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	// Connect to the logbook entry store
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logStore, err := store.New(ctx, &cfg.Store)
	if err != nil {
		logger.Fatalf("Failed to connect to %s store: %v", cfg.Store.Driver, err)
	}

	// Report pipeline
	llmService := services.NewLLMService(&cfg.LLM)
	reportService := services.NewReportService(logStore, llmService, &cfg.Report)

	// Weekly digest: holiday-aware scheduler feeding the task queue
	holidayService := services.NewHolidayService()
	digestService := services.NewDigestService(logStore, reportService, holidayService, &cfg.Report)
	digestService.StartScheduler()

	// Task queue (uses Redis if enabled, otherwise sync mode)
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(digestService.ProcessDigestTask)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(digestService.ProcessDigestTask)
			worker.Start()
		}
	}

	return &appServices{
		cfg:           cfg,
		logStore:      logStore,
		digestService: digestService,
		taskQueue:     taskQueue,
		worker:        worker,
		reportHandler: handlers.NewReportHandler(reportService, taskQueue, cfg.Report.WindowDays),
		healthHandler: handlers.NewHealthHandler(logStore),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.digestService.StopScheduler()

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.logStore.Close(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to close store cleanly")
	}
	logger.Info().Msg("Shutdown complete")
}

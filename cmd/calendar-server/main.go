package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"uscalendar/internal/api"
	"uscalendar/internal/calendar"
	"uscalendar/internal/config"
	"uscalendar/internal/domain"
	"uscalendar/internal/httpapi"
	"uscalendar/internal/scheduler"
	"uscalendar/internal/store"
	"uscalendar/internal/util"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	cal, err := calendar.NewTradingCalendar(domain.MarketUS)
	if err != nil {
		log.Fatalf("failed to create calendar: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Schedule.RefreshCron != "" {
		sqlite, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open sqlite store: %v", err)
		}
		defer sqlite.Close()
		pstore := store.NewParquetStore(cfg.Storage.DataDir)

		sched := scheduler.New(ctx, cal.Location(), logger)
		job := scheduler.NewExportJob(cal, cfg.Schedule.YearsAhead, logger, sqlite, pstore)
		if err := sched.AddJob(cfg.Schedule.RefreshCron, job); err != nil {
			log.Fatalf("failed to schedule %s: %v", job.Name(), err)
		}
		// Populate the stores before the first tick.
		if err := sched.RunNow(job); err != nil {
			logger.Error("initial export failed", "error", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	handler := httpapi.NewServer(cal, logger).Handler()
	srv := api.NewServer(cfg.Server, handler, logger)

	logger.Info("calendar-server starting",
		"http", srv.HTTPAddr(),
		"grpc", srv.GRPCAddr(),
		"good_friday_last_year", calendar.GoodFridayLastYear,
	)
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruit-data/internal/config"
	"recruit-data/internal/database"
	"recruit-data/internal/engine"
	httpapi "recruit-data/internal/http"
	"recruit-data/internal/logger"
	"recruit-data/internal/repository"
	"recruit-data/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting recruit-data service")

	// DB 未就绪时回退到内存 store（联测不至于因无库失败）
	var db *sql.DB
	var persons repository.PersonsRepository
	var records repository.RecordsRepository
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			persons = repository.NewPostgresPersonsRepository(db)
			records = repository.NewPostgresRecordsRepository(db)
			log.Info("DB enabled for recruit-data")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory store", zap.Error(err))
		}
	}
	if db == nil {
		mem := repository.NewMemoryStore()
		persons = mem
		records = mem
	}

	eng := engine.New(persons, records, log)
	importer := service.NewBulkImporter(records, log)

	router := httpapi.NewRouter(log)
	router.RegisterExceptionRoutes(httpapi.NewExceptionHandler(eng, log))
	router.RegisterPersonRoutes(httpapi.NewPersonHandler(persons, log))
	router.RegisterImportRoutes(httpapi.NewImportHandler(importer, cfg.Import.MaxRows, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("Server error", zap.Error(err))
	}

	// 先停掉可能在跑的批量导入，再优雅关停 HTTP
	importer.Cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if db != nil {
		_ = database.Close(db)
	}

	log.Info("Service stopped")
}

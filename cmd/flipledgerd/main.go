package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/flipledger/flipledger/internal/analytics"
	"github.com/flipledger/flipledger/internal/common"
	"github.com/flipledger/flipledger/internal/export"
	"github.com/flipledger/flipledger/internal/extract"
	"github.com/flipledger/flipledger/internal/importer"
	"github.com/flipledger/flipledger/internal/ocr"
	"github.com/flipledger/flipledger/internal/parse"
	"github.com/flipledger/flipledger/internal/repository"
	"github.com/flipledger/flipledger/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close(logger)

	if err := db.Ping(ctx, cfg.Database.DialTimeout); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	if err := repository.EnsureSchema(ctx, db); err != nil {
		logger.Error("ensure schema", "error", err)
		os.Exit(1)
	}

	lots := repository.NewLotRepository(db, logger)
	sales := repository.NewSaleRepository(db, lots, logger)
	an := analytics.NewService(lots, sales, logger)
	ex := export.NewService(lots, an, logger)
	csv := importer.NewCSVImporter(logger)

	scanner := extract.NewService(func() (extract.Recognizer, error) {
		return ocr.NewEngine(ocr.Config{
			Tesseract:           cfg.OCR.Tesseract,
			Lang:                cfg.OCR.Lang,
			TessdataDir:         cfg.OCR.TessdataDir,
			PSM:                 cfg.OCR.PSM,
			EnableTSVConfidence: cfg.OCR.TSVConf,
		}, logger), nil
	}, parse.New(parse.DefaultConfig()), logger)

	srv := server.New(lots, sales, an, ex, scanner, csv, cfg.Server.MaxUploadBytes, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	logger.Info("stopped")
}

// lotscan runs receipt extraction from the command line: one image to stdout
// JSON, or a directory of images in batch through the scan queue.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/flipledger/flipledger/constants"
	"github.com/flipledger/flipledger/internal/async"
	"github.com/flipledger/flipledger/internal/common"
	"github.com/flipledger/flipledger/internal/extract"
	"github.com/flipledger/flipledger/internal/ocr"
	"github.com/flipledger/flipledger/internal/parse"
)

func main() {
	imagePath := flag.String("image", "", "single receipt image to scan")
	dirPath := flag.String("dir", "", "directory of receipt images to scan in batch")
	workers := flag.Int("workers", 2, "batch worker count")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	if (*imagePath == "") == (*dirPath == "") {
		logger.Error("usage", "cmd", "lotscan -image <file> | -dir <directory>")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	svc := extract.NewService(func() (extract.Recognizer, error) {
		return ocr.NewEngine(ocr.Config{
			Tesseract:           cfg.OCR.Tesseract,
			Lang:                cfg.OCR.Lang,
			TessdataDir:         cfg.OCR.TessdataDir,
			PSM:                 cfg.OCR.PSM,
			EnableTSVConfidence: cfg.OCR.TSVConf,
		}, logger), nil
	}, parse.New(parse.DefaultConfig()), logger)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *imagePath != "" {
		scanOne(svc, *imagePath, enc, logger)
		return
	}
	scanDir(svc, *dirPath, *workers, enc, logger)
}

func scanOne(svc *extract.Service, path string, enc *json.Encoder, logger *slog.Logger) {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("open image", "path", path, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result := svc.ExtractReceipt(ctx, f, extract.ProgressFunc(func(pct int) {
		logger.Debug("progress", "percent", pct)
	}))
	_ = enc.Encode(result)
	if !result.Success {
		os.Exit(1)
	}
}

type batchLine struct {
	Path string `json:"path"`
	extract.Result
}

func scanDir(svc *extract.Service, dir string, workers int, enc *json.Encoder, logger *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Error("read dir", "dir", dir, "error", err)
		os.Exit(1)
	}

	var mu sync.Mutex
	queue := async.NewScanQueue(svc, func(path string, result extract.Result) {
		mu.Lock()
		defer mu.Unlock()
		_ = enc.Encode(batchLine{Path: path, Result: result})
	}, logger, async.WithWorkers(workers))

	ctx := context.Background()
	queued := 0
	for _, e := range entries {
		if e.IsDir() || !constants.IsAllowedExt(filepath.Ext(e.Name())) {
			continue
		}
		_ = queue.Enqueue(ctx, async.Job{Path: filepath.Join(dir, e.Name()), SubmittedAt: time.Now()})
		queued++
	}
	if queued == 0 {
		logger.Warn("no scannable images found", "dir", dir)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()
	queue.Shutdown(shutdownCtx)
}

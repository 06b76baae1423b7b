// Package ocr runs receipt images through tesseract and returns the
// recognized text with a confidence estimate. It implements the
// extract.Recognizer contract.
package ocr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/flipledger/flipledger/internal/extract"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang        string // default "eng"
	TessdataDir string

	PSM int // e.g., 6 is good for a uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default

	EnableTSVConfidence bool

	TempDir string // scratch dir for incoming image bytes; default os.TempDir()
}

// Engine shells out to tesseract. One Engine is created per process and
// reused; the extract.Service serializes calls into it.
type Engine struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &Engine{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Recognize writes the image to a scratch file and runs tesseract over it.
func (e *Engine) Recognize(ctx context.Context, image io.Reader) (extract.Recognition, error) {
	start := time.Now()

	path, cleanup, err := e.spool(image)
	if err != nil {
		return extract.Recognition{}, err
	}
	defer cleanup()

	txt, warns, err := e.tesseractOCR(ctx, path)
	if err != nil {
		return extract.Recognition{Warnings: warns}, err
	}
	txt = Normalize(txt)

	var ocrConf float32
	if e.cfg.EnableTSVConfidence {
		if c, w, err2 := e.tesseractTSVConfidence(ctx, path); err2 == nil {
			ocrConf = c
			warns = append(warns, w...)
		} else {
			warns = append(warns, err2.Error())
		}
	}
	heurConf := heuristicConfidence(txt)

	// blend: weight the engine's own confidence higher when available
	conf := heurConf
	if ocrConf > 0 {
		conf = 0.7*ocrConf + 0.3*heurConf
	}
	if conf > 1.0 {
		conf = 1.0
	}

	e.logger.Debug("ocr.recognize.ok",
		"bytes", len(txt),
		"confidence", conf,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return extract.Recognition{Text: txt, Confidence: conf, Warnings: warns}, nil
}

// spool copies the image bytes to a scratch file for tesseract. Format
// detection is tesseract's job; the extension is just a hint.
func (e *Engine) spool(image io.Reader) (string, func(), error) {
	f, err := os.CreateTemp(e.cfg.TempDir, "flipledger-scan-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("spool image: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }
	if _, err := io.Copy(f, image); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("spool image: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("spool image: %w", err)
	}
	return filepath.Clean(path), cleanup, nil
}

func (e *Engine) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	args := []string{path, "stdout", "-l", e.cfg.Lang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}

	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return txt, nil, nil
}

// tesseractTSVConfidence runs tesseract in TSV mode and returns the mean word
// confidence in 0..1.
func (e *Engine) tesseractTSVConfidence(ctx context.Context, path string) (float32, []string, error) {
	args := []string{path, "stdout", "-l", e.cfg.Lang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return 0, []string{string(errb)}, fmt.Errorf("tesseract TSV: %w", err)
	}

	var sum, n float64
	for i, ln := range strings.Split(string(out), "\n") {
		if i == 0 || ln == "" {
			continue // header
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		// level..height, conf, text
		confStr := cols[10]
		if confStr == "" || confStr == "-1" {
			continue
		}
		if v, err := strconv.ParseFloat(confStr, 64); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, nil, nil
	}
	return float32(sum / n / 100.0), nil, nil
}

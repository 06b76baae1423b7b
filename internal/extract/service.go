package extract

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/flipledger/flipledger/internal/parse"
)

// Progress checkpoints reported to the observer.
const (
	progressStart  = 10
	progressOCR    = 30
	progressParsed = 80
	progressDone   = 100
)

// RecognizerFactory builds the OCR engine on first use. Engine startup can be
// expensive, so the service creates it lazily and caches it for the life of
// the process.
type RecognizerFactory func() (Recognizer, error)

// Service sequences OCR and the heuristic parser into one extraction call.
// Recognition is serialized with a mutex: the cached engine handle is shared
// process-wide and not assumed to support concurrent recognition.
type Service struct {
	factory RecognizerFactory
	parser  *parse.Parser
	logger  *slog.Logger

	mu  sync.Mutex
	rec Recognizer
}

func NewService(factory RecognizerFactory, parser *parse.Parser, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if parser == nil {
		parser = parse.New(parse.DefaultConfig())
	}
	return &Service{factory: factory, parser: parser, logger: logger}
}

// ExtractReceipt runs OCR over the image and parses name, cost, and quantity
// out of the recognized text. It never returns an error: an OCR failure is
// downgraded to a Result with Success=false, the error message, and default
// field values, so the caller can always fall back to manual entry.
//
// The observer may be nil. When set it is invoked synchronously at roughly
// 10, 30, 80, and 100 percent.
func (s *Service) ExtractReceipt(ctx context.Context, image io.Reader, obs ProgressObserver) Result {
	report := func(pct int) {
		if obs != nil {
			obs.Progress(pct)
		}
	}

	report(progressStart)

	rec, err := s.recognize(ctx, image)
	if err != nil {
		s.logger.Error("extract.ocr_failed", "error", err)
		report(progressDone)
		return Result{
			Name:     parse.UnnamedItem,
			Cost:     0,
			Quantity: 1,
			Success:  false,
			Err:      err.Error(),
		}
	}
	report(progressOCR)

	fields := s.parser.Parse(rec.Text)
	report(progressParsed)

	result := Result{
		Name:       fields.Name,
		Cost:       fields.Cost,
		Quantity:   fields.Quantity,
		RawText:    rec.Text,
		Confidence: rec.Confidence,
		Success:    true,
		Warnings:   rec.Warnings,
	}
	if !fields.NameFound {
		// Soft signal only: cost/quantity extraction may still have
		// succeeded, so the call itself is not a failure.
		result.Warnings = append(result.Warnings, "no product name found; please enter one manually")
	}

	s.logger.Info("extract.ok",
		"name_found", fields.NameFound,
		"cost", result.Cost,
		"quantity", result.Quantity,
		"text_bytes", len(rec.Text),
	)
	report(progressDone)
	return result
}

// recognize lazily creates the engine and serializes access to it.
func (s *Service) recognize(ctx context.Context, image io.Reader) (Recognition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		rec, err := s.factory()
		if err != nil {
			return Recognition{}, err
		}
		s.rec = rec
	}
	return s.rec.Recognize(ctx, image)
}

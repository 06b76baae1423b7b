package extract

import (
	"context"
	"io"
)

// Recognizer is the OCR collaborator: image in, recognized text out. The
// engine itself is a black box; implementations may shell out to tesseract,
// call a cloud API, or be a test fake.
type Recognizer interface {
	Recognize(ctx context.Context, image io.Reader) (Recognition, error)
}

// Recognition is the raw OCR output for one image.
type Recognition struct {
	Text       string
	Confidence float32
	Warnings   []string
}

// ProgressObserver receives extraction progress as an integer percentage.
// Within one extraction call the reported values are non-decreasing; no
// other ordering is guaranteed.
type ProgressObserver interface {
	Progress(percent int)
}

// ProgressFunc adapts a plain function to ProgressObserver.
type ProgressFunc func(percent int)

func (f ProgressFunc) Progress(percent int) { f(percent) }

// Result is the final record handed back to the caller. All failure paths
// produce a valid Result; Err carries the human-readable OCR error when
// Success is false. Name, Cost, and Quantity always hold usable defaults so
// the caller can fall back to manual entry.
type Result struct {
	Name       string   `json:"name"`
	Cost       float64  `json:"cost"`
	Quantity   int      `json:"quantity"`
	RawText    string   `json:"raw_text"`
	Confidence float32  `json:"confidence,omitempty"`
	Success    bool     `json:"success"`
	Err        string   `json:"error,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

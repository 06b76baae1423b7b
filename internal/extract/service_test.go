package extract

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipledger/flipledger/internal/parse"
)

type fakeRecognizer struct {
	text  string
	err   error
	calls int
}

func (f *fakeRecognizer) Recognize(_ context.Context, _ io.Reader) (Recognition, error) {
	f.calls++
	if f.err != nil {
		return Recognition{}, f.err
	}
	return Recognition{Text: f.text, Confidence: 0.8}, nil
}

func newTestService(rec *fakeRecognizer) (*Service, *int) {
	factoryCalls := 0
	svc := NewService(func() (Recognizer, error) {
		factoryCalls++
		return rec, nil
	}, parse.New(parse.DefaultConfig()), nil)
	return svc, &factoryCalls
}

const receiptText = `Your Orders
Order placed September 14
Cole Haan Men's Grand Crosscourt Sneaker (M)
Total: $89.99
Qty: 2
Ship to: John Smith — CA 90210
Thank you for your purchase`

func TestExtractReceipt(t *testing.T) {
	svc, _ := newTestService(&fakeRecognizer{text: receiptText})

	var progress []int
	res := svc.ExtractReceipt(context.Background(), strings.NewReader("img"), ProgressFunc(func(pct int) {
		progress = append(progress, pct)
	}))

	require.True(t, res.Success)
	assert.Empty(t, res.Err)
	assert.Equal(t, "Cole Haan Men's Grand Crosscourt Sneaker (M)", res.Name)
	assert.Equal(t, 89.99, res.Cost)
	assert.Equal(t, 2, res.Quantity)
	assert.Equal(t, receiptText, res.RawText)
	assert.Equal(t, []int{10, 30, 80, 100}, progress)
}

func TestExtractReceiptProgressMonotonic(t *testing.T) {
	svc, _ := newTestService(&fakeRecognizer{text: receiptText})

	var progress []int
	svc.ExtractReceipt(context.Background(), strings.NewReader("img"), ProgressFunc(func(pct int) {
		progress = append(progress, pct)
	}))
	for i := 1; i < len(progress); i++ {
		require.GreaterOrEqual(t, progress[i], progress[i-1])
	}
}

func TestExtractReceiptOCRFailure(t *testing.T) {
	svc, _ := newTestService(&fakeRecognizer{err: errors.New("image unreadable")})

	res := svc.ExtractReceipt(context.Background(), strings.NewReader("img"), nil)

	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "image unreadable")
	assert.Equal(t, parse.UnnamedItem, res.Name)
	assert.Equal(t, 0.0, res.Cost)
	assert.Equal(t, 1, res.Quantity)
}

func TestExtractReceiptFactoryFailure(t *testing.T) {
	svc := NewService(func() (Recognizer, error) {
		return nil, errors.New("engine init failed")
	}, nil, nil)

	res := svc.ExtractReceipt(context.Background(), strings.NewReader("img"), nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "engine init failed")
	assert.Equal(t, parse.UnnamedItem, res.Name)
	assert.Equal(t, 1, res.Quantity)
}

func TestExtractReceiptEmptyText(t *testing.T) {
	svc, _ := newTestService(&fakeRecognizer{text: "   \n  \n"})

	res := svc.ExtractReceipt(context.Background(), strings.NewReader("img"), nil)

	require.True(t, res.Success, "empty recognition is not a failure")
	assert.Equal(t, parse.UnnamedItem, res.Name)
	assert.Equal(t, 0.0, res.Cost)
	assert.Equal(t, 1, res.Quantity)
	assert.NotEmpty(t, res.Warnings, "missing name surfaces a warning")
}

func TestExtractReceiptReusesEngine(t *testing.T) {
	rec := &fakeRecognizer{text: receiptText}
	svc, factoryCalls := newTestService(rec)

	for i := 0; i < 3; i++ {
		svc.ExtractReceipt(context.Background(), strings.NewReader("img"), nil)
	}
	assert.Equal(t, 1, *factoryCalls, "engine is created once and cached")
	assert.Equal(t, 3, rec.calls)
}

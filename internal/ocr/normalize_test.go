package ocr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf to lf", "a\r\nb\rc", "a\nb\nc"},
		{"tabs and runs of spaces collapse", "Total:\t\t$9.99   USD", "Total: $9.99 USD"},
		{"blank runs collapse", "a\n\n\n\n\nb", "a\n\nb"},
		{"trailing spaces stripped per line", "a   \nb", "a\nb"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestHeuristicConfidence(t *testing.T) {
	assert.InDelta(t, 0.2, heuristicConfidence("nothing useful"), 1e-6)
	assert.InDelta(t, 0.4, heuristicConfidence("paid in USD today"), 1e-6)
	assert.InDelta(t, 0.75, heuristicConfidence("Total: $89.99 Qty: 2"), 1e-6)

	long := "Order Total: $89.99 Qty: 2 " + strings.Repeat("receipt body text ", 10)
	assert.InDelta(t, 0.85, heuristicConfidence(long), 1e-6)
}

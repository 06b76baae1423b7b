package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPriceBasic(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"dollar amount", "Total: $89.99", 89.99},
		{"usd prefix", "Paid USD 42.50 total", 42.50},
		{"comma decimal", "Item price $12,99 as shown", 12.99},
		{"no match", "nothing with money in it", 0},
		{"keeps largest", "Discount $12.00 applied\nTotal: $45.00", 45.00},
		{"subtotal vs total", "Subtotal $30.00 Shipping $5.99 Total $35.99", 35.99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPrice(tt.raw))
		})
	}
}

func TestExtractPriceBounds(t *testing.T) {
	assert.Equal(t, 0.0, ExtractPrice("Total: $5000.00"), "5000 is out of bounds")
	assert.Equal(t, 0.0, ExtractPrice("amount $0.00 due"), "zero is not a price")
	assert.Equal(t, 4999.99, ExtractPrice("$4999.99 for the pair"))

	// a barcode-sized misread next to the real amount must not win
	assert.Equal(t, 129.99, ExtractPrice("Total: $129.99\n$9999.99"))
}

func TestExtractQuantityFirstPatternWins(t *testing.T) {
	// unit pricing is checked before the Qty label; a later label never
	// overrides it
	assert.Equal(t, 3, ExtractQuantity("3 @ $5.00 each\nQty: 7"))
	assert.Equal(t, 3, ExtractQuantity("Qty: 7\n3 @ $5.00 each"))
}

func TestExtractQuantityLabels(t *testing.T) {
	assert.Equal(t, 2, ExtractQuantity("Qty: 2"))
	assert.Equal(t, 4, ExtractQuantity("Quantity: 4"))
	assert.Equal(t, 5, ExtractQuantity("qty 5 shipped"))
}

func TestExtractQuantityDefaultsAndFloor(t *testing.T) {
	assert.Equal(t, 1, ExtractQuantity("no quantity mentioned anywhere"))
	assert.Equal(t, 1, ExtractQuantity("Qty: 0"))
	assert.Equal(t, 1, ExtractQuantity(""))
}

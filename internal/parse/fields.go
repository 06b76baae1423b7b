package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// Price bounds. OCR misreads of barcodes or order numbers show up as huge
// amounts; anything at or above maxPlausiblePrice is discarded.
const maxPlausiblePrice = 5000

// pricePatterns are tried against the entire text. All matches from all
// patterns compete and the largest in-bounds amount wins, since a receipt
// legitimately carries several amounts (subtotal, shipping, total) and the
// largest is most likely the item price rather than a fee or discount.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*(\d{1,4}(?:[.,]\d{2}))`),
	regexp.MustCompile(`(?i)\bUSD\s*(\d{1,4}(?:[.,]\d{2}))`),
	regexp.MustCompile(`(?i)\btotal\s*:?\s*\$?\s*(\d{1,4}(?:[.,]\d{2}))`),
}

// quantityPatterns are alternative phrasings of the same fact, so the first
// pattern with a match wins rather than comparing matches. The unit-pricing
// form ("3 @ $5.00") is checked before the label forms; a later "Qty:" line
// never overrides it.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*@\s*\$`),
	regexp.MustCompile(`(?i)\bqty\s*[:.]?\s*(\d+)`),
	regexp.MustCompile(`(?i)\bquantity\s*[:.]?\s*(\d+)`),
}

// ExtractPrice returns the largest monetary amount found in the text that is
// strictly between 0 and 5000, or 0 when nothing plausible matches.
// Malformed numeric text counts as no match, never as an error.
func ExtractPrice(raw string) float64 {
	best := 0.0
	for _, re := range pricePatterns {
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
			if err != nil {
				continue
			}
			if v > 0 && v < maxPlausiblePrice && v > best {
				best = v
			}
		}
	}
	return best
}

// ExtractQuantity returns the quantity from the first matching pattern,
// floored at 1. Defaults to 1 when nothing matches.
func ExtractQuantity(raw string) int {
	for _, re := range quantityPatterns {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n < 1 {
			return 1
		}
		return n
	}
	return 1
}

package ocr

import (
	"regexp"
	"strings"
)

var (
	reCurrency = regexp.MustCompile(`\b(usd|eur|gbp|cad|aud)\b|[$£€]`)
	reAmount   = regexp.MustCompile(`\b\d{1,3}(,\d{3})*(\.\d{2})\b|\b\d+\.\d{2}\b`)
	reQtyWord  = regexp.MustCompile(`\b(qty|quantity|order|total)\b`)
)

// heuristicConfidence estimates recognition quality from what the decoded
// text looks like. Receipt screenshots should carry currency symbols,
// decimal amounts, and order vocabulary; each artifact nudges the score up.
func heuristicConfidence(txt string) float32 {
	lower := strings.ToLower(txt)
	score := float32(0.2) // base
	if reCurrency.MatchString(lower) {
		score += 0.2
	}
	if reAmount.MatchString(lower) {
		score += 0.2
	}
	if reQtyWord.MatchString(lower) {
		score += 0.15
	}
	if len(txt) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

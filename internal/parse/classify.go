package parse

import (
	"regexp"
	"strings"
	"unicode"
)

// Cleanup and length gate, applied before any predicate runs.
const (
	minLineLen = 12
	maxLineLen = 120
)

var (
	reLeadingNoise  = regexp.MustCompile(`^[|=\-*#@$%\s]+`)
	reTrailingPipes = regexp.MustCompile(`[|\s]+$`)
)

// Address signatures.
var (
	reZipCode   = regexp.MustCompile(`\b\d{5}(-\d{4})?\b`)
	reShipTo    = regexp.MustCompile(`(?i)\bship(ping)?\s+to\b`)
	reNameState = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+\s*[—–-]\s*[A-Z]{2}\b`)
)

// Metadata / order-chrome signatures accumulated from marketplace receipt
// screenshots. Any match excludes the line from candidacy.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(sold|shipped|fulfilled|dispatched)\s+by\b`),
	regexp.MustCompile(`(?i)\border\s*(#|№|no\.?|number|id|placed|date|total|summary)`),
	regexp.MustCompile(`(?i)\b(tracking|shipment|carrier)\b`),
	regexp.MustCompile(`(?i)\b(deliver(y|ed|s)?|arriv(es|ing|ed))\b`),
	regexp.MustCompile(`\d+\s*@\s*\$`),
	regexp.MustCompile(`(?i)\d+\s*%\s*off`),
	regexp.MustCompile(`(?i)\b(discount|coupon|promo)\b`),
	regexp.MustCompile(`(?i)^(condition|color|colour|size|gender|style|qty|quantity|item)\s*[:#-]`),
	regexp.MustCompile(`(?i)^(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}`),
	regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}`),
	regexp.MustCompile(`(?i)\b(invoice|receipt|payment method|billing)\b`),
}

// CleanLine strips a leading run of OCR border noise and trailing pipe
// artifacts. Idempotent: cleaning an already-clean line is a no-op.
func CleanLine(line string) string {
	line = reLeadingNoise.ReplaceAllString(line, "")
	line = reTrailingPipes.ReplaceAllString(line, "")
	return line
}

// IsCandidate reports whether a raw line survives cleanup, the length gate,
// and the three exclusion predicates, returning the cleaned line when it
// does. The predicates short-circuit; an excluded line is never scored.
func (p *Parser) IsCandidate(line string) (string, bool) {
	cleaned := CleanLine(line)
	if len(cleaned) < minLineLen || len(cleaned) > maxLineLen {
		return "", false
	}
	if p.isAddressLine(cleaned) {
		return "", false
	}
	if p.isNoiseLine(cleaned) {
		return "", false
	}
	if !isValidProductName(cleaned) {
		return "", false
	}
	return cleaned, true
}

// isAddressLine matches the recurring textual shapes of shipping blocks:
// state codes, ZIP codes, "ship to" phrases, and "First Last - ST" lines.
func (p *Parser) isAddressLine(line string) bool {
	if p.regionRe != nil && p.regionRe.MatchString(line) {
		return true
	}
	if reZipCode.MatchString(line) {
		return true
	}
	if reShipTo.MatchString(line) {
		return true
	}
	return reNameState.MatchString(line)
}

func (p *Parser) isNoiseLine(line string) bool {
	for _, re := range noisePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	lower := strings.ToLower(line)
	for _, chrome := range p.chrome {
		if strings.Contains(lower, chrome) {
			return true
		}
	}
	return false
}

// isValidProductName rejects structurally implausible titles: too short,
// too few real words, mostly non-letters, or not starting with a letter.
func isValidProductName(line string) bool {
	if len(line) < 15 {
		return false
	}
	runes := []rune(line)
	if !unicode.IsLetter(runes[0]) {
		return false
	}
	words := 0
	for _, tok := range strings.Fields(line) {
		if len(tok) > 1 {
			words++
		}
	}
	if words < 2 {
		return false
	}
	letters := 0
	for _, r := range runes {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(letters)/float64(len(runes)) >= 0.6
}

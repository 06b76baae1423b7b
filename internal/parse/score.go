package parse

import (
	"regexp"
	"strings"
)

// Candidate is a line provisionally considered as the product name.
type Candidate struct {
	Line  string
	Score int
	Index int
}

// Scoring weights. Signals are independent and additive: no single signal is
// necessary or sufficient, and vocabulary/brand hits stack per match.
const (
	bonusProductTerm = 30
	bonusBrand       = 60
	bonusIdealLen    = 25
	bonusOkLen       = 10
	bonusIdealWords  = 25
	bonusOkWords     = 10
	bonusTitleCase   = 15
	bonusMultiCap    = 20
	bonusSizeTag     = 30
	bonusMidDocument = 15
	penaltyEdge      = -25
)

var (
	reTitleStart = regexp.MustCompile(`^[A-Z][a-z]`)
	reCapWord    = regexp.MustCompile(`\b[A-Z][a-z]{2,}`)
	reSizeTag    = regexp.MustCompile(`(?i)\(\s*(XS|S|M|L|XL|XXL|XXXL|small|medium|large|x-large|extra\s+large)\s*\)`)
)

// Score assigns the plausibility score for a cleaned line at position index
// out of total surviving lines. Scores are comparative, not probabilities;
// they are not normalized or capped.
func (p *Parser) Score(line string, index, total int) int {
	score := 0
	lower := strings.ToLower(line)

	for _, term := range p.terms {
		if strings.Contains(lower, term) {
			score += bonusProductTerm
		}
	}
	for _, brand := range p.brands {
		if strings.Contains(lower, brand) {
			score += bonusBrand
		}
	}

	switch n := len(line); {
	case n >= 20 && n <= 70:
		score += bonusIdealLen
	case n >= 15 && n <= 90:
		score += bonusOkLen
	}

	switch words := len(strings.Fields(line)); {
	case words >= 4 && words <= 12:
		score += bonusIdealWords
	case words >= 3:
		score += bonusOkWords
	}

	if reTitleStart.MatchString(line) {
		score += bonusTitleCase
	}
	if len(reCapWord.FindAllString(line, -1)) >= 2 {
		score += bonusMultiCap
	}
	if reSizeTag.MatchString(line) {
		score += bonusSizeTag
	}

	// Product titles cluster mid-document: after header chrome, before the
	// shipping/footer blocks.
	if total > 0 {
		ratio := float64(index) / float64(total)
		if ratio >= 0.15 && ratio <= 0.55 {
			score += bonusMidDocument
		} else if ratio < 0.08 || ratio > 0.85 {
			score += penaltyEdge
		}
	}

	return score
}

// Package parse turns raw OCR text from a receipt or order screenshot into a
// best-guess item name, cost, and quantity. It is a best-effort heuristic:
// lines are filtered by textual signatures of non-product content, survivors
// are scored by additive independent signals, and the top scorer wins if it
// clears an acceptance threshold. Callers always get a usable result and are
// expected to let the user correct it.
package parse

import (
	"regexp"
	"strings"
)

// Fields is the structured output of one parse over a block of OCR text.
type Fields struct {
	Name      string
	NameFound bool
	Cost      float64
	Quantity  int
}

// UnnamedItem is the sentinel name used when no candidate clears the
// acceptance threshold.
const UnnamedItem = "Unnamed Item"

// Parser applies the classifier, scorer, and field extractors using a fixed
// vocabulary configuration. Safe for concurrent use; all methods are pure
// functions over the input text.
type Parser struct {
	cfg      Config
	brands   []string
	terms    []string
	chrome   []string
	regionRe *regexp.Regexp
}

func New(cfg Config) *Parser {
	p := &Parser{cfg: cfg}
	p.brands = lowerAll(cfg.Brands)
	p.terms = lowerAll(cfg.ProductTerms)
	p.chrome = lowerAll(cfg.ChromeStrings)
	if len(cfg.RegionCodes) > 0 {
		quoted := make([]string, len(cfg.RegionCodes))
		for i, rc := range cfg.RegionCodes {
			quoted[i] = regexp.QuoteMeta(rc)
		}
		p.regionRe = regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	}
	if p.cfg.MinScore <= 0 {
		p.cfg.MinScore = 50
	}
	if p.cfg.MaxNameLen <= 0 {
		p.cfg.MaxNameLen = 100
	}
	return p
}

// Parse runs the full pipeline over one block of recognized text. The name
// selection and the cost/quantity extractors operate independently: a missing
// name never prevents cost or quantity from being found.
func (p *Parser) Parse(raw string) Fields {
	f := Fields{
		Name:     UnnamedItem,
		Cost:     ExtractPrice(raw),
		Quantity: ExtractQuantity(raw),
	}
	if name, ok := p.ProductName(raw); ok {
		f.Name = name
		f.NameFound = true
	}
	return f
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

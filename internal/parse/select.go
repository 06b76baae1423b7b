package parse

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Candidates runs the classifier and scorer over a block of raw text and
// returns every surviving line with its score, in document order.
func (p *Parser) Candidates(raw string) []Candidate {
	lines := Lines(raw)
	var out []Candidate
	for i, ln := range lines {
		cleaned, ok := p.IsCandidate(ln)
		if !ok {
			continue
		}
		out = append(out, Candidate{
			Line:  cleaned,
			Score: p.Score(cleaned, i, len(lines)),
			Index: i,
		})
	}
	return out
}

// ProductName picks the highest-scoring candidate from the text. Ties break
// toward the earlier line, since earlier mid-document lines are more likely
// to be the title. Returns false when no candidate reaches the acceptance
// threshold.
func (p *Parser) ProductName(raw string) (string, bool) {
	best, ok := p.Select(p.Candidates(raw))
	if !ok {
		return "", false
	}
	return best, true
}

// Select ranks candidates and applies the acceptance threshold. The sort is
// stable so re-running selection on the same set always yields the same
// winner.
func (p *Parser) Select(cands []Candidate) (string, bool) {
	if len(cands) == 0 {
		return "", false
	}
	ranked := append([]Candidate(nil), cands...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
	top := ranked[0]
	if top.Score < p.cfg.MinScore {
		return "", false
	}
	name := top.Line
	if len(name) > p.cfg.MaxNameLen {
		cut := p.cfg.MaxNameLen
		// back up to a rune boundary so the cap never splits a multibyte rune
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	return strings.TrimSpace(name), true
}

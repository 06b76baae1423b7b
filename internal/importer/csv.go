// Package importer loads lots in bulk from CSV or JSON exports of other
// tracking tools. Both formats are forgiving: unknown columns are ignored,
// malformed rows are skipped with a warning, and the whole import only fails
// when the input cannot be read at all.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/flipledger/flipledger/internal/entity"
)

// Column-name fallbacks, in priority order. Spreadsheet exports disagree
// wildly on header names; the first recognized header wins per field.
var (
	nameColumns = []string{"name", "title", "item", "itemname", "product", "description"}
	costColumns = []string{"cost", "price", "paid", "purchaseprice", "buyprice", "amount"}
	qtyColumns  = []string{"quantity", "qty", "count", "units"}
	dateColumns = []string{"purchasedat", "purchasedate", "purchased", "date", "boughton"}
	platColumns = []string{"platform", "source", "store", "marketplace", "from"}
	noteColumns = []string{"notes", "note", "comments", "comment"}
)

var dateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006", "2006/01/02", time.RFC3339}

type CSVImporter struct {
	logger *slog.Logger
}

func NewCSVImporter(logger *slog.Logger) *CSVImporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVImporter{logger: logger}
}

// Read parses lots out of CSV data. A name column is required; every other
// field falls back to a default (cost 0, quantity 1, purchase date now).
// Returns the parsed lots and one warning per skipped row.
func (im *CSVImporter) Read(r io.Reader) ([]*entity.Lot, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := mapColumns(header)
	nameIdx, ok := firstMatch(cols, nameColumns)
	if !ok {
		return nil, nil, fmt.Errorf("no name column found (tried %s)", strings.Join(nameColumns, ", "))
	}
	costIdx, hasCost := firstMatch(cols, costColumns)
	qtyIdx, hasQty := firstMatch(cols, qtyColumns)
	dateIdx, hasDate := firstMatch(cols, dateColumns)
	platIdx, hasPlat := firstMatch(cols, platColumns)
	noteIdx, hasNote := firstMatch(cols, noteColumns)

	var (
		lots     []*entity.Lot
		warnings []string
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		name := strings.TrimSpace(field(rec, nameIdx))
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: empty name, skipped", line))
			continue
		}

		lot := &entity.Lot{Name: name, Quantity: 1, PurchasedAt: time.Now().UTC()}
		if hasCost {
			lot.Cost = parseMoney(field(rec, costIdx))
		}
		if hasQty {
			if n, err := strconv.Atoi(strings.TrimSpace(field(rec, qtyIdx))); err == nil && n > 0 {
				lot.Quantity = n
			}
		}
		if hasDate {
			if t, ok := parseDate(field(rec, dateIdx)); ok {
				lot.PurchasedAt = t
			} else {
				warnings = append(warnings, fmt.Sprintf("line %d: unparseable date %q, used today", line, field(rec, dateIdx)))
			}
		}
		if hasPlat {
			lot.Platform = strings.TrimSpace(field(rec, platIdx))
		}
		if hasNote {
			lot.Notes = strings.TrimSpace(field(rec, noteIdx))
		}
		lots = append(lots, lot)
	}

	im.logger.Info("import.csv.ok", "lots", len(lots), "skipped", len(warnings))
	return lots, warnings, nil
}

// mapColumns indexes headers by their normalized form: lowercased with
// everything but letters and digits removed, so "Purchase Price" and
// "purchase_price" both map to "purchaseprice".
func mapColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, exists := cols[key]; !exists {
			cols[key] = i
		}
	}
	return cols
}

func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func firstMatch(cols map[string]int, candidates []string) (int, bool) {
	for _, c := range candidates {
		if idx, ok := cols[c]; ok {
			return idx, true
		}
	}
	return 0, false
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

func parseMoney(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/flipledger/flipledger/internal/entity"
)

// lotSchema validates a JSON lot import before any row touches the store.
// Unlike CSV, a JSON document that fails validation is rejected outright:
// structured input is expected to be well-formed.
const lotSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["name"],
		"additionalProperties": false,
		"properties": {
			"name":         {"type": "string", "minLength": 1},
			"cost":         {"type": "number", "minimum": 0},
			"quantity":     {"type": "integer", "minimum": 1},
			"platform":     {"type": "string"},
			"category":     {"type": "string"},
			"purchased_at": {"type": "string"},
			"notes":        {"type": "string"}
		}
	}
}`

var compiledLotSchema = mustCompile(lotSchema)

func mustCompile(src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("lots.schema.json", strings.NewReader(src)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("lots.schema.json")
}

type jsonLot struct {
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	Quantity    int     `json:"quantity"`
	Platform    string  `json:"platform"`
	Category    string  `json:"category"`
	PurchasedAt string  `json:"purchased_at"`
	Notes       string  `json:"notes"`
}

// ReadJSON parses and validates a JSON array of lots.
func ReadJSON(data []byte) ([]*entity.Lot, error) {
	var doc any
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if err := compiledLotSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("json does not match lot schema: %w", err)
	}

	var rows []jsonLot
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode lots: %w", err)
	}

	lots := make([]*entity.Lot, 0, len(rows))
	for _, row := range rows {
		lot := &entity.Lot{
			Name:        row.Name,
			Cost:        row.Cost,
			Quantity:    row.Quantity,
			Platform:    row.Platform,
			Category:    row.Category,
			Notes:       row.Notes,
			PurchasedAt: time.Now().UTC(),
		}
		if lot.Quantity < 1 {
			lot.Quantity = 1
		}
		if row.PurchasedAt != "" {
			if t, ok := parseDate(row.PurchasedAt); ok {
				lot.PurchasedAt = t
			}
		}
		lots = append(lots, lot)
	}
	return lots, nil
}

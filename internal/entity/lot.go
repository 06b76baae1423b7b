package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lot represents a batch of identical purchased items tracked as one
// inventory record.
type Lot struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Cost        float64   `json:"cost"`
	Quantity    int       `json:"quantity"`
	Platform    string    `json:"platform,omitempty"`
	Category    string    `json:"category,omitempty"`
	PurchasedAt time.Time `json:"purchased_at"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UnitCost is the per-item cost basis, used when pro-rating profit across
// partial sales of a lot.
func (l *Lot) UnitCost() float64 {
	if l.Quantity <= 0 {
		return l.Cost
	}
	return l.Cost / float64(l.Quantity)
}

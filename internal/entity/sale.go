package entity

import (
	"time"

	"github.com/google/uuid"
)

// Sale records units sold out of a lot. Price is the gross amount received
// for the sale, Fees the platform/shipping fees deducted from it.
type Sale struct {
	ID        uuid.UUID `json:"id"`
	LotID     uuid.UUID `json:"lot_id"`
	Price     float64   `json:"price"`
	Fees      float64   `json:"fees"`
	Quantity  int       `json:"quantity"`
	Platform  string    `json:"platform,omitempty"`
	SoldAt    time.Time `json:"sold_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Net is the sale proceeds after fees, before cost basis.
func (s *Sale) Net() float64 {
	return s.Price - s.Fees
}

// Package analytics computes profit reports over sold inventory: gross
// revenue, platform fees, pro-rated cost basis, and net profit, bucketed by
// day, week, or month.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/flipledger/flipledger/internal/common"
	"github.com/flipledger/flipledger/internal/entity"
	"github.com/flipledger/flipledger/internal/repository"
)

type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// Bucket aggregates the sales that fall into one time window. CostBasis is
// pro-rated: each sale consumes UnitCost * quantity of its lot's purchase
// cost, so partially sold lots contribute only the sold share.
type Bucket struct {
	Start     time.Time `json:"start"`
	Revenue   float64   `json:"revenue"`
	Fees      float64   `json:"fees"`
	CostBasis float64   `json:"cost_basis"`
	Net       float64   `json:"net"`
	Sales     int       `json:"sales"`
}

type Report struct {
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
	Window  Window    `json:"window"`
	Buckets []Bucket  `json:"buckets"`
	Totals  Bucket    `json:"totals"`
}

type Service struct {
	lots   repository.LotRepository
	sales  repository.SaleRepository
	logger *slog.Logger
}

func NewService(lots repository.LotRepository, sales repository.SaleRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{lots: lots, sales: sales, logger: logger}
}

// ProfitReport aggregates all sales in [from, to] into window buckets.
func (s *Service) ProfitReport(ctx context.Context, from, to time.Time, window Window) (*Report, error) {
	switch window {
	case WindowDay, WindowWeek, WindowMonth:
	case "":
		window = WindowMonth
	default:
		return nil, fmt.Errorf("window %q: %w", window, common.ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("to before from: %w", common.ErrInvalidInput)
	}

	sales, err := s.sales.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	lots, err := s.lots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	byID := make(map[uuid.UUID]*entity.Lot, len(lots))
	for _, l := range lots {
		byID[l.ID] = l
	}

	report := BuildReport(byID, sales, window)
	report.From = from
	report.To = to

	s.logger.Info("analytics.profit_report.ok",
		"from", from.Format("2006-01-02"), "to", to.Format("2006-01-02"),
		"window", window, "sales", len(sales), "net", report.Totals.Net,
	)
	return report, nil
}

// BuildReport is the pure aggregation over in-memory rows. Sales against
// lots that no longer exist carry a zero cost basis rather than being
// dropped.
func BuildReport(lots map[uuid.UUID]*entity.Lot, sales []*entity.Sale, window Window) *Report {
	buckets := make(map[time.Time]*Bucket)
	totals := Bucket{}

	for _, sale := range sales {
		start := BucketStart(sale.SoldAt, window)
		b, ok := buckets[start]
		if !ok {
			b = &Bucket{Start: start}
			buckets[start] = b
		}

		costBasis := 0.0
		if lot, ok := lots[sale.LotID]; ok {
			costBasis = lot.UnitCost() * float64(sale.Quantity)
		}
		net := sale.Net() - costBasis

		b.Revenue += sale.Price
		b.Fees += sale.Fees
		b.CostBasis += costBasis
		b.Net += net
		b.Sales++

		totals.Revenue += sale.Price
		totals.Fees += sale.Fees
		totals.CostBasis += costBasis
		totals.Net += net
		totals.Sales++
	}

	ordered := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, *b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start.Before(ordered[j].Start) })

	return &Report{Window: window, Buckets: ordered, Totals: totals}
}

// BucketStart truncates a sale time to the start of its window in UTC.
// Weeks start on Monday.
func BucketStart(t time.Time, window Window) time.Time {
	t = t.UTC()
	switch window {
	case WindowDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case WindowWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/flipledger/flipledger/internal/analytics"
	"github.com/flipledger/flipledger/internal/repository"
)

// Service is a tiny façade over the repositories that produces XLSX bytes
// for exports.
type Service struct {
	lots      repository.LotRepository
	analytics *analytics.Service
	logger    *slog.Logger
}

func NewService(lots repository.LotRepository, an *analytics.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{lots: lots, analytics: an, logger: logger}
}

// ExportXLSX returns a workbook with an inventory sheet and a monthly profit
// sheet covering [from, to].
func (s *Service) ExportXLSX(ctx context.Context, from, to time.Time) ([]byte, error) {
	start := time.Now()

	lots, err := s.lots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query lots: %w", err)
	}
	report, err := s.analytics.ProfitReport(ctx, from, to, analytics.WindowMonth)
	if err != nil {
		return nil, fmt.Errorf("profit report: %w", err)
	}

	f := excelize.NewFile()

	const lotsSheet = "Inventory"
	idx, err := f.NewSheet(lotsSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	lotHeaders := []string{"Purchased", "Name", "Cost", "Quantity", "Unit Cost", "Platform", "Category", "Notes"}
	for i, h := range lotHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(lotsSheet, cell, h)
	}
	row := 2
	for _, l := range lots {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(lotsSheet, cell, v)
		}
		write(1, l.PurchasedAt.Format("2006-01-02"))
		write(2, l.Name)
		write(3, l.Cost)
		write(4, l.Quantity)
		write(5, l.UnitCost())
		write(6, l.Platform)
		write(7, l.Category)
		write(8, truncate(l.Notes, 140))
		row++
	}
	_ = f.SetColWidth(lotsSheet, "A", "A", 12)
	_ = f.SetColWidth(lotsSheet, "B", "B", 48)
	_ = f.SetColWidth(lotsSheet, "C", "E", 12)
	_ = f.SetColWidth(lotsSheet, "F", "G", 18)
	_ = f.SetColWidth(lotsSheet, "H", "H", 48)

	const profitSheet = "Profit"
	if _, err := f.NewSheet(profitSheet); err != nil {
		return nil, err
	}
	profitHeaders := []string{"Month", "Revenue", "Fees", "Cost Basis", "Net", "Sales"}
	for i, h := range profitHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(profitSheet, cell, h)
	}
	row = 2
	for _, b := range report.Buckets {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(profitSheet, cell, v)
		}
		write(1, b.Start.Format("2006-01"))
		write(2, b.Revenue)
		write(3, b.Fees)
		write(4, b.CostBasis)
		write(5, b.Net)
		write(6, b.Sales)
		row++
	}
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(profitSheet, cell, v)
	}
	write(1, "Total")
	write(2, report.Totals.Revenue)
	write(3, report.Totals.Fees)
	write(4, report.Totals.CostBasis)
	write(5, report.Totals.Net)
	write(6, report.Totals.Sales)
	_ = f.SetColWidth(profitSheet, "A", "F", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"lots", len(lots),
		"profit_rows", len(report.Buckets),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipledger/flipledger/internal/entity"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestBuildReportProRatesCostBasis(t *testing.T) {
	lotID := uuid.New()
	lots := map[uuid.UUID]*entity.Lot{
		// 4 sneakers bought for $100: unit cost $25.
		lotID: {ID: lotID, Name: "Sneaker Lot", Cost: 100, Quantity: 4},
	}
	sales := []*entity.Sale{
		{ID: uuid.New(), LotID: lotID, Price: 60, Fees: 8, Quantity: 1, SoldAt: mustTime(t, "2026-03-02T10:00:00Z")},
		{ID: uuid.New(), LotID: lotID, Price: 110, Fees: 14, Quantity: 2, SoldAt: mustTime(t, "2026-03-05T18:30:00Z")},
	}

	report := BuildReport(lots, sales, WindowMonth)

	require.Len(t, report.Buckets, 1)
	b := report.Buckets[0]
	assert.Equal(t, mustTime(t, "2026-03-01T00:00:00Z"), b.Start)
	assert.InDelta(t, 170, b.Revenue, 1e-9)
	assert.InDelta(t, 22, b.Fees, 1e-9)
	// 1*$25 + 2*$25 of the $100 lot is consumed.
	assert.InDelta(t, 75, b.CostBasis, 1e-9)
	assert.InDelta(t, 170-22-75, b.Net, 1e-9)
	assert.Equal(t, 2, b.Sales)

	totals := b
	totals.Start = time.Time{}
	assert.Equal(t, totals, report.Totals)
}

func TestBuildReportMissingLotZeroBasis(t *testing.T) {
	sale := &entity.Sale{ID: uuid.New(), LotID: uuid.New(), Price: 40, Fees: 5, Quantity: 1, SoldAt: mustTime(t, "2026-01-10T00:00:00Z")}

	report := BuildReport(map[uuid.UUID]*entity.Lot{}, []*entity.Sale{sale}, WindowMonth)

	require.Len(t, report.Buckets, 1)
	assert.InDelta(t, 0, report.Buckets[0].CostBasis, 1e-9)
	assert.InDelta(t, 35, report.Buckets[0].Net, 1e-9)
}

func TestBuildReportBucketsOrdered(t *testing.T) {
	lotID := uuid.New()
	lots := map[uuid.UUID]*entity.Lot{lotID: {ID: lotID, Cost: 10, Quantity: 1}}
	sales := []*entity.Sale{
		{ID: uuid.New(), LotID: lotID, Price: 20, SoldAt: mustTime(t, "2026-03-15T12:00:00Z")},
		{ID: uuid.New(), LotID: lotID, Price: 20, SoldAt: mustTime(t, "2026-01-03T12:00:00Z")},
		{ID: uuid.New(), LotID: lotID, Price: 20, SoldAt: mustTime(t, "2026-02-20T12:00:00Z")},
	}

	report := BuildReport(lots, sales, WindowMonth)

	require.Len(t, report.Buckets, 3)
	assert.Equal(t, mustTime(t, "2026-01-01T00:00:00Z"), report.Buckets[0].Start)
	assert.Equal(t, mustTime(t, "2026-02-01T00:00:00Z"), report.Buckets[1].Start)
	assert.Equal(t, mustTime(t, "2026-03-01T00:00:00Z"), report.Buckets[2].Start)
	assert.Equal(t, 3, report.Totals.Sales)
}

func TestBucketStart(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		window Window
		want   string
	}{
		{"day truncates clock", "2026-03-11T17:45:10Z", WindowDay, "2026-03-11T00:00:00Z"},
		{"week starts monday", "2026-03-11T17:45:10Z", WindowWeek, "2026-03-09T00:00:00Z"},
		{"monday maps to itself", "2026-03-09T00:30:00Z", WindowWeek, "2026-03-09T00:00:00Z"},
		{"sunday maps back six days", "2026-03-08T23:00:00Z", WindowWeek, "2026-03-02T00:00:00Z"},
		{"month truncates to first", "2026-03-31T23:59:59Z", WindowMonth, "2026-03-01T00:00:00Z"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BucketStart(mustTime(t, tc.in), tc.window)
			assert.Equal(t, mustTime(t, tc.want), got)
		})
	}
}

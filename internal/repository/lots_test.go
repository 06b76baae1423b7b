package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipledger/flipledger/internal/common"
	"github.com/flipledger/flipledger/internal/entity"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), Config{DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(nil) })
	require.NoError(t, EnsureSchema(context.Background(), db))
	return db
}

func TestLotCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewLotRepository(testDB(t), nil)

	lot := &entity.Lot{
		Name:        "Patagonia Better Sweater",
		Cost:        35.00,
		Quantity:    2,
		Platform:    "thrift_store",
		PurchasedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	created, err := repo.Create(ctx, lot)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Patagonia Better Sweater", got.Name)
	assert.InDelta(t, 35.00, got.Cost, 1e-9)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, lot.PurchasedAt, got.PurchasedAt)

	got.Name = "Patagonia Better Sweater Fleece"
	got.Cost = 32.00
	updated, err := repo.Update(ctx, got)
	require.NoError(t, err)

	again, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Name, again.Name)
	assert.InDelta(t, 32.00, again.Cost, 1e-9)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLotNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewLotRepository(testDB(t), nil)

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.Update(ctx, &entity.Lot{ID: uuid.New(), Name: "ghost"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), common.ErrNotFound)
}

func TestLotCreateDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewLotRepository(testDB(t), nil)

	created, err := repo.Create(ctx, &entity.Lot{Name: "Single Item", Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Quantity)
	assert.False(t, created.PurchasedAt.IsZero())
}

func TestLotListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewLotRepository(testDB(t), nil)

	older := &entity.Lot{Name: "Older", PurchasedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &entity.Lot{Name: "Newer", PurchasedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	_, err := repo.Create(ctx, older)
	require.NoError(t, err)
	_, err = repo.Create(ctx, newer)
	require.NoError(t, err)

	lots, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, "Newer", lots[0].Name, "most recent purchase first")
	assert.Equal(t, "Older", lots[1].Name)
}

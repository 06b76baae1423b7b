package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flipledger/flipledger/internal/common"
	"github.com/flipledger/flipledger/internal/entity"
)

type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) (*entity.Lot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lot, error)
	List(ctx context.Context) ([]*entity.Lot, error)
	Update(ctx context.Context, lot *entity.Lot) (*entity.Lot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type lotRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewLotRepository(db *DB, logger *slog.Logger) LotRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &lotRepository{db: db, logger: logger}
}

const lotColumns = "id, name, cost, quantity, platform, category, purchased_at, notes, created_at, updated_at"

func (r *lotRepository) Create(ctx context.Context, lot *entity.Lot) (*entity.Lot, error) {
	if lot.ID == uuid.Nil {
		lot.ID = uuid.New()
	}
	now := time.Now().UTC()
	lot.CreatedAt = now
	lot.UpdatedAt = now
	if lot.PurchasedAt.IsZero() {
		lot.PurchasedAt = now
	}
	if lot.Quantity < 1 {
		lot.Quantity = 1
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO lots (`+lotColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lot.ID.String(), lot.Name, lot.Cost, lot.Quantity, lot.Platform, lot.Category,
		fmtTime(lot.PurchasedAt), lot.Notes, fmtTime(lot.CreatedAt), fmtTime(lot.UpdatedAt),
	)
	if err != nil {
		r.logger.Error("failed to create lot", "name", lot.Name, "error", err)
		return nil, fmt.Errorf("create lot: %w", err)
	}
	r.logger.Info("lot.created", "lot_id", lot.ID, "name", lot.Name, "cost", lot.Cost, "quantity", lot.Quantity)
	return lot, nil
}

func (r *lotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+lotColumns+` FROM lots WHERE id = ?`, id.String())
	lot, err := scanLot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get lot", "lot_id", id, "error", err)
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

func (r *lotRepository) List(ctx context.Context) ([]*entity.Lot, error) {
	rows, err := r.db.Query(ctx, `SELECT `+lotColumns+` FROM lots ORDER BY purchased_at DESC, created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list lots", "error", err)
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

func (r *lotRepository) Update(ctx context.Context, lot *entity.Lot) (*entity.Lot, error) {
	lot.UpdatedAt = time.Now().UTC()
	res, err := r.db.Exec(ctx,
		`UPDATE lots SET name = ?, cost = ?, quantity = ?, platform = ?, category = ?,
			purchased_at = ?, notes = ?, updated_at = ? WHERE id = ?`,
		lot.Name, lot.Cost, lot.Quantity, lot.Platform, lot.Category,
		fmtTime(lot.PurchasedAt), lot.Notes, fmtTime(lot.UpdatedAt), lot.ID.String(),
	)
	if err != nil {
		r.logger.Error("failed to update lot", "lot_id", lot.ID, "error", err)
		return nil, fmt.Errorf("update lot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, common.ErrNotFound
	}
	return lot, nil
}

func (r *lotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Exec(ctx, `DELETE FROM lots WHERE id = ?`, id.String())
	if err != nil {
		r.logger.Error("failed to delete lot", "lot_id", id, "error", err)
		return fmt.Errorf("delete lot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	r.logger.Info("lot.deleted", "lot_id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLot(row rowScanner) (*entity.Lot, error) {
	var (
		lot                              entity.Lot
		id, purchased, created, updated string
	)
	if err := row.Scan(&id, &lot.Name, &lot.Cost, &lot.Quantity, &lot.Platform,
		&lot.Category, &purchased, &lot.Notes, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if lot.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if lot.PurchasedAt, err = parseTime(purchased); err != nil {
		return nil, err
	}
	if lot.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if lot.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &lot, nil
}

// timeLayout is fixed-width: the fraction is zero-padded so stored
// timestamps sort lexicographically in chronological order, which the
// sold_at range queries rely on. RFC3339Nano would drop trailing zeros and
// break that.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

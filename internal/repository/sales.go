package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flipledger/flipledger/internal/common"
	"github.com/flipledger/flipledger/internal/entity"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) (*entity.Sale, error)
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]*entity.Sale, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type saleRepository struct {
	db     *DB
	lots   LotRepository
	logger *slog.Logger
}

func NewSaleRepository(db *DB, lots LotRepository, logger *slog.Logger) SaleRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &saleRepository{db: db, lots: lots, logger: logger}
}

const saleColumns = "id, lot_id, price, fees, quantity, platform, sold_at, created_at"

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) (*entity.Sale, error) {
	// The lot must exist; recording a sale against a deleted lot is a caller
	// mistake we surface as not-found.
	if _, err := r.lots.GetByID(ctx, sale.LotID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("lot %s: %w", sale.LotID, common.ErrNotFound)
		}
		return nil, err
	}

	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	now := time.Now().UTC()
	sale.CreatedAt = now
	if sale.SoldAt.IsZero() {
		sale.SoldAt = now
	}
	if sale.Quantity < 1 {
		sale.Quantity = 1
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO sales (`+saleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID.String(), sale.LotID.String(), sale.Price, sale.Fees, sale.Quantity,
		sale.Platform, fmtTime(sale.SoldAt), fmtTime(sale.CreatedAt),
	)
	if err != nil {
		r.logger.Error("failed to create sale", "lot_id", sale.LotID, "error", err)
		return nil, fmt.Errorf("create sale: %w", err)
	}
	r.logger.Info("sale.created", "sale_id", sale.ID, "lot_id", sale.LotID, "price", sale.Price)
	return sale, nil
}

func (r *saleRepository) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*entity.Sale, error) {
	return r.list(ctx, `SELECT `+saleColumns+` FROM sales WHERE lot_id = ? ORDER BY sold_at`, lotID.String())
}

func (r *saleRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Sale, error) {
	return r.list(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE sold_at >= ? AND sold_at <= ? ORDER BY sold_at`,
		fmtTime(from), fmtTime(to))
}

func (r *saleRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list sales", "error", err)
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var (
			sale          entity.Sale
			id, lotID     string
			sold, created string
		)
		if err := rows.Scan(&id, &lotID, &sale.Price, &sale.Fees, &sale.Quantity,
			&sale.Platform, &sold, &created); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if sale.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if sale.LotID, err = uuid.Parse(lotID); err != nil {
			return nil, err
		}
		if sale.SoldAt, err = parseTime(sold); err != nil {
			return nil, err
		}
		if sale.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		sales = append(sales, &sale)
	}
	return sales, rows.Err()
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = ?`, id.String())
	if err != nil {
		r.logger.Error("failed to delete sale", "sale_id", id, "error", err)
		return fmt.Errorf("delete sale: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

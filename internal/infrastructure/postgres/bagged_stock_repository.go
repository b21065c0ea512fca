package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

var _ repository.BaggedStockRepository = (*BaggedStockRepo)(nil)

// BaggedStockRepo implements BaggedStockRepository over PostgreSQL.
type BaggedStockRepo struct {
	q Querier
}

// NewBaggedStockRepository builds the adapter. Pass pool or tx (Querier).
func NewBaggedStockRepository(q Querier) *BaggedStockRepo {
	return &BaggedStockRepo{q: q}
}

const baggedColumns = `
	id, owner_id, business_id, source_batch_id, source_batch_number,
	product_type, rice_type, item_name, bag_size_kg, quantity,
	total_weight_kg, price_per_kg, recommended_selling_price,
	product_code, status, created_at, updated_at`

// Create inserts a new bag line.
func (r *BaggedStockRepo) Create(ctx context.Context, item *entity.BaggedStockItem) error {
	query := `
		INSERT INTO bagged_stock (` + baggedColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OwnerID, item.BusinessID, item.SourceBatchID, item.SourceBatchNumber,
		item.ProductType, item.RiceType, item.ItemName, item.BagSizeKg, item.Quantity,
		item.TotalWeightKg, item.PricePerKg, item.RecommendedSellingPrice,
		item.ProductCode, item.Status, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bagged stock: %w", err)
	}
	return nil
}

// GetByID returns one bag line.
func (r *BaggedStockRepo) GetByID(ctx context.Context, scope domain.Scope, id string) (*entity.BaggedStockItem, error) {
	query := `SELECT ` + baggedColumns + `
		FROM bagged_stock
		WHERE owner_id = $1 AND business_id = $2 AND id = $3`
	item, err := scanBagged(r.q.QueryRow(ctx, query, scope.OwnerID, scope.BusinessID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get bagged stock: %w", err)
	}
	return item, nil
}

// List returns bag lines for the scope, newest first. Empty status means all.
func (r *BaggedStockRepo) List(ctx context.Context, scope domain.Scope, status string, limit, offset int) ([]*entity.BaggedStockItem, error) {
	query := `SELECT ` + baggedColumns + `
		FROM bagged_stock
		WHERE owner_id = $1 AND business_id = $2 AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, scope.OwnerID, scope.BusinessID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bagged stock: %w", err)
	}
	defer rows.Close()

	var items []*entity.BaggedStockItem
	for rows.Next() {
		item, err := scanBagged(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bagged stock: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindAvailableLineForUpdate locks and returns the available line matching the
// merge key, or nil when none exists.
func (r *BaggedStockRepo) FindAvailableLineForUpdate(ctx context.Context, scope domain.Scope, batchID, productType, riceType string, bagSizeKg decimal.Decimal) (*entity.BaggedStockItem, error) {
	query := `SELECT ` + baggedColumns + `
		FROM bagged_stock
		WHERE owner_id = $1 AND business_id = $2
		  AND source_batch_id = $3 AND product_type = $4 AND rice_type = $5
		  AND bag_size_kg = $6 AND status = $7
		FOR UPDATE`
	item, err := scanBagged(r.q.QueryRow(ctx, query,
		scope.OwnerID, scope.BusinessID, batchID, productType, riceType,
		bagSizeKg, entity.BaggedStatusAvailable,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find bagged stock line: %w", err)
	}
	return item, nil
}

// GetForUpdate locks a bag line by id.
func (r *BaggedStockRepo) GetForUpdate(ctx context.Context, scope domain.Scope, id string) (*entity.BaggedStockItem, error) {
	query := `SELECT ` + baggedColumns + `
		FROM bagged_stock
		WHERE owner_id = $1 AND business_id = $2 AND id = $3
		FOR UPDATE`
	item, err := scanBagged(r.q.QueryRow(ctx, query, scope.OwnerID, scope.BusinessID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get bagged stock for update: %w", err)
	}
	return item, nil
}

// AddQuantity applies a bag-count and weight delta to a line. The table CHECKs
// keep both non-negative.
func (r *BaggedStockRepo) AddQuantity(ctx context.Context, scope domain.Scope, id string, deltaBags int64, deltaWeightKg decimal.Decimal) error {
	query := `
		UPDATE bagged_stock
		SET quantity = quantity + $1, total_weight_kg = total_weight_kg + $2, updated_at = now()
		WHERE owner_id = $3 AND business_id = $4 AND id = $5`
	tag, err := r.q.Exec(ctx, query, deltaBags, deltaWeightKg, scope.OwnerID, scope.BusinessID, id)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientQuantity
		}
		return fmt.Errorf("update bagged stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus sets the line lifecycle status.
func (r *BaggedStockRepo) UpdateStatus(ctx context.Context, scope domain.Scope, id, status string) error {
	query := `
		UPDATE bagged_stock SET status = $1, updated_at = now()
		WHERE owner_id = $2 AND business_id = $3 AND id = $4`
	tag, err := r.q.Exec(ctx, query, status, scope.OwnerID, scope.BusinessID, id)
	if err != nil {
		return fmt.Errorf("update bagged stock status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBagged(row pgx.Row) (*entity.BaggedStockItem, error) {
	var i entity.BaggedStockItem
	err := row.Scan(
		&i.ID, &i.OwnerID, &i.BusinessID, &i.SourceBatchID, &i.SourceBatchNumber,
		&i.ProductType, &i.RiceType, &i.ItemName, &i.BagSizeKg, &i.Quantity,
		&i.TotalWeightKg, &i.PricePerKg, &i.RecommendedSellingPrice,
		&i.ProductCode, &i.Status, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

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

var _ repository.ProductInventoryRepository = (*ProductInventoryRepo)(nil)

// ProductInventoryRepo implements ProductInventoryRepository over PostgreSQL.
type ProductInventoryRepo struct {
	q Querier
}

// NewProductInventoryRepository builds the adapter. Pass pool or tx (Querier).
func NewProductInventoryRepository(q Querier) *ProductInventoryRepo {
	return &ProductInventoryRepo{q: q}
}

const inventoryColumns = `
	owner_id, business_id, product_id, product_type, sub_type,
	original_paddy_type, current_stock_kg, unit, category, display_name, updated_at`

// Accumulate merge-writes the record: inserted with the conversion's output
// on first sight, incremented by deltaKg afterwards. Display metadata is
// refreshed either way.
func (r *ProductInventoryRepo) Accumulate(ctx context.Context, inv *entity.ProductInventory, deltaKg decimal.Decimal) error {
	query := `
		INSERT INTO product_inventory (` + inventoryColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (owner_id, business_id, product_id)
		DO UPDATE SET
			current_stock_kg    = product_inventory.current_stock_kg + $12,
			sub_type            = EXCLUDED.sub_type,
			original_paddy_type = EXCLUDED.original_paddy_type,
			display_name        = EXCLUDED.display_name,
			updated_at          = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		inv.OwnerID, inv.BusinessID, inv.ProductID, inv.ProductType, inv.SubType,
		inv.OriginalPaddyType, inv.CurrentStockKg, inv.Unit, inv.Category,
		inv.DisplayName, inv.UpdatedAt, deltaKg,
	)
	if err != nil {
		return fmt.Errorf("accumulate product inventory %s: %w", inv.ProductID, err)
	}
	return nil
}

// Get returns one product record.
func (r *ProductInventoryRepo) Get(ctx context.Context, scope domain.Scope, productID string) (*entity.ProductInventory, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM product_inventory
		WHERE owner_id = $1 AND business_id = $2 AND product_id = $3`
	var inv entity.ProductInventory
	err := r.q.QueryRow(ctx, query, scope.OwnerID, scope.BusinessID, productID).Scan(
		&inv.OwnerID, &inv.BusinessID, &inv.ProductID, &inv.ProductType, &inv.SubType,
		&inv.OriginalPaddyType, &inv.CurrentStockKg, &inv.Unit, &inv.Category,
		&inv.DisplayName, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product inventory: %w", err)
	}
	return &inv, nil
}

// List returns every product record for the scope, main products first.
func (r *ProductInventoryRepo) List(ctx context.Context, scope domain.Scope) ([]*entity.ProductInventory, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM product_inventory
		WHERE owner_id = $1 AND business_id = $2
		ORDER BY category, product_id`
	rows, err := r.q.Query(ctx, query, scope.OwnerID, scope.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("list product inventory: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductInventory
	for rows.Next() {
		var inv entity.ProductInventory
		err := rows.Scan(
			&inv.OwnerID, &inv.BusinessID, &inv.ProductID, &inv.ProductType, &inv.SubType,
			&inv.OriginalPaddyType, &inv.CurrentStockKg, &inv.Unit, &inv.Category,
			&inv.DisplayName, &inv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product inventory: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

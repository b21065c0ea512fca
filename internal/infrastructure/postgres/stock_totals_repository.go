package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	"github.com/chamodh/ricemill-api/internal/domain/milling"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

var _ repository.StockTotalsRepository = (*StockTotalsRepo)(nil)

// StockTotalsRepo implements StockTotalsRepository over PostgreSQL. The
// ledger lives as one row per (product key, paddy type slug); the first
// conversion seeds a row, later ones increment it in place.
type StockTotalsRepo struct {
	q Querier
}

// NewStockTotalsRepository builds the adapter. Pass pool or tx (Querier).
func NewStockTotalsRepository(q Querier) *StockTotalsRepo {
	return &StockTotalsRepo{q: q}
}

// Get assembles the ledger for a business. A business with no conversions
// yet gets an empty ledger, not ErrNotFound.
func (r *StockTotalsRepo) Get(ctx context.Context, scope domain.Scope) (*entity.StockTotals, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_key, paddy_type_slug, total_kg
		FROM stock_totals
		WHERE owner_id = $1 AND business_id = $2`,
		scope.OwnerID, scope.BusinessID,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock totals: %w", err)
	}
	defer rows.Close()

	totals := entity.NewStockTotals(scope.OwnerID, scope.BusinessID)
	for rows.Next() {
		var productKey, paddySlug string
		var kg decimal.Decimal
		if err := rows.Scan(&productKey, &paddySlug, &kg); err != nil {
			return nil, fmt.Errorf("scan stock totals: %w", err)
		}
		if productKey == milling.ProductRice {
			totals.Rice[paddySlug] = kg
		} else {
			totals.Byproducts[productKey] = kg
		}
	}
	return totals, rows.Err()
}

// AddRice increments the cumulative rice production for a paddy variety.
func (r *StockTotalsRepo) AddRice(ctx context.Context, scope domain.Scope, paddyTypeSlug string, kg decimal.Decimal) error {
	return r.add(ctx, scope, milling.ProductRice, paddyTypeSlug, kg)
}

// AddByproduct increments the cumulative production for a byproduct key.
func (r *StockTotalsRepo) AddByproduct(ctx context.Context, scope domain.Scope, productType string, kg decimal.Decimal) error {
	return r.add(ctx, scope, productType, "", kg)
}

func (r *StockTotalsRepo) add(ctx context.Context, scope domain.Scope, productKey, paddySlug string, kg decimal.Decimal) error {
	query := `
		INSERT INTO stock_totals (owner_id, business_id, product_key, paddy_type_slug, total_kg)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner_id, business_id, product_key, paddy_type_slug)
		DO UPDATE SET total_kg = stock_totals.total_kg + EXCLUDED.total_kg`
	_, err := r.q.Exec(ctx, query, scope.OwnerID, scope.BusinessID, productKey, paddySlug, kg)
	if err != nil {
		return fmt.Errorf("accumulate stock totals %s: %w", productKey, err)
	}
	return nil
}

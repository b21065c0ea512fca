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

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implements BatchRepository over PostgreSQL (usable with pool or tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository builds the adapter. Pass pool or tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `
	id, owner_id, business_id, batch_number, conversion_key,
	COALESCE(source_purchase_id::text, ''), paddy_type, paddy_quantity_kg,
	paddy_price_per_kg, electricity_start, electricity_end,
	adjusted_rice_price, recommended_selling_price, profit_from_byproducts,
	total_processing_expense, profit_percentage, status, created_at`

// Create inserts the batch header and one product row per output. A replayed
// conversion key surfaces as ErrDuplicate.
func (r *BatchRepo) Create(ctx context.Context, batch *entity.ConversionBatch) error {
	query := `
		INSERT INTO conversion_batches (
			id, owner_id, business_id, batch_number, conversion_key,
			source_purchase_id, paddy_type, paddy_quantity_kg, paddy_price_per_kg,
			electricity_start, electricity_end, adjusted_rice_price,
			recommended_selling_price, profit_from_byproducts,
			total_processing_expense, profit_percentage, status, created_at
		) VALUES ($1,$2,$3,$4,$5,NULLIF($6,'')::uuid,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.OwnerID, batch.BusinessID, batch.BatchNumber, batch.ConversionKey,
		batch.SourcePurchaseID, batch.PaddyType, batch.PaddyQuantityKg, batch.PaddyPricePerKg,
		batch.ElectricityStart, batch.ElectricityEnd, batch.Pricing.AdjustedRicePrice,
		batch.Pricing.RecommendedSellingPrice, batch.Pricing.ProfitFromByproducts,
		batch.Pricing.TotalProcessingExpense, batch.Pricing.ProfitPercentage,
		batch.Status, batch.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert conversion batch: %w", err)
	}
	for _, p := range batch.Products {
		_, err := r.q.Exec(ctx, `
			INSERT INTO batch_products (batch_id, product_type, output_kg, remaining_kg)
			VALUES ($1, $2, $3, $4)`,
			batch.ID, p.ProductType, p.OutputKg, p.RemainingKg,
		)
		if err != nil {
			return fmt.Errorf("insert batch product %s: %w", p.ProductType, err)
		}
	}
	return nil
}

// GetByID returns the batch with its product streams.
func (r *BatchRepo) GetByID(ctx context.Context, scope domain.Scope, id string) (*entity.ConversionBatch, error) {
	query := `SELECT ` + batchColumns + `
		FROM conversion_batches
		WHERE owner_id = $1 AND business_id = $2 AND id = $3`
	batch, err := r.scanBatch(r.q.QueryRow(ctx, query, scope.OwnerID, scope.BusinessID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conversion batch: %w", err)
	}
	if err := r.loadProducts(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// List returns batches for the scope, newest first, products included.
func (r *BatchRepo) List(ctx context.Context, scope domain.Scope, limit, offset int) ([]*entity.ConversionBatch, error) {
	query := `SELECT ` + batchColumns + `
		FROM conversion_batches
		WHERE owner_id = $1 AND business_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, scope.OwnerID, scope.BusinessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list conversion batches: %w", err)
	}
	defer rows.Close()

	var batches []*entity.ConversionBatch
	for rows.Next() {
		batch, err := r.scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversion batch: %w", err)
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list conversion batches: %w", err)
	}
	for _, batch := range batches {
		if err := r.loadProducts(ctx, batch); err != nil {
			return nil, err
		}
	}
	return batches, nil
}

// GetProductForUpdate locks the batch product row (SELECT FOR UPDATE) for the
// sufficiency check and decrement of a bagging run.
func (r *BatchRepo) GetProductForUpdate(ctx context.Context, scope domain.Scope, batchID, productType string) (*entity.BatchProduct, error) {
	query := `
		SELECT bp.product_type, bp.output_kg, bp.remaining_kg
		FROM batch_products bp
		JOIN conversion_batches b ON b.id = bp.batch_id
		WHERE b.owner_id = $1 AND b.business_id = $2 AND bp.batch_id = $3 AND bp.product_type = $4
		FOR UPDATE OF bp`
	var p entity.BatchProduct
	err := r.q.QueryRow(ctx, query, scope.OwnerID, scope.BusinessID, batchID, productType).Scan(
		&p.ProductType, &p.OutputKg, &p.RemainingKg,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get batch product for update: %w", err)
	}
	return &p, nil
}

// DecrementRemaining lowers the product's remaining kg. The table CHECK keeps
// remaining inside [0, output]; a violation maps to ErrInsufficientQuantity.
func (r *BatchRepo) DecrementRemaining(ctx context.Context, scope domain.Scope, batchID, productType string, kg decimal.Decimal) error {
	query := `
		UPDATE batch_products bp
		SET remaining_kg = bp.remaining_kg - $1
		FROM conversion_batches b
		WHERE b.id = bp.batch_id
		  AND b.owner_id = $2 AND b.business_id = $3
		  AND bp.batch_id = $4 AND bp.product_type = $5`
	tag, err := r.q.Exec(ctx, query, kg, scope.OwnerID, scope.BusinessID, batchID, productType)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientQuantity
		}
		return fmt.Errorf("decrement batch product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumRemaining returns the batch's total unbagged kg across all products.
func (r *BatchRepo) SumRemaining(ctx context.Context, scope domain.Scope, batchID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(bp.remaining_kg), 0)
		FROM batch_products bp
		JOIN conversion_batches b ON b.id = bp.batch_id
		WHERE b.owner_id = $1 AND b.business_id = $2 AND bp.batch_id = $3`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, scope.OwnerID, scope.BusinessID, batchID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum batch remaining: %w", err)
	}
	return sum, nil
}

// UpdateStatus sets the batch lifecycle status.
func (r *BatchRepo) UpdateStatus(ctx context.Context, scope domain.Scope, batchID, status string) error {
	query := `
		UPDATE conversion_batches SET status = $1
		WHERE owner_id = $2 AND business_id = $3 AND id = $4`
	tag, err := r.q.Exec(ctx, query, status, scope.OwnerID, scope.BusinessID, batchID)
	if err != nil {
		return fmt.Errorf("update batch status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BatchRepo) scanBatch(row pgx.Row) (*entity.ConversionBatch, error) {
	var b entity.ConversionBatch
	err := row.Scan(
		&b.ID, &b.OwnerID, &b.BusinessID, &b.BatchNumber, &b.ConversionKey,
		&b.SourcePurchaseID, &b.PaddyType, &b.PaddyQuantityKg,
		&b.PaddyPricePerKg, &b.ElectricityStart, &b.ElectricityEnd,
		&b.Pricing.AdjustedRicePrice, &b.Pricing.RecommendedSellingPrice,
		&b.Pricing.ProfitFromByproducts, &b.Pricing.TotalProcessingExpense,
		&b.Pricing.ProfitPercentage, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BatchRepo) loadProducts(ctx context.Context, batch *entity.ConversionBatch) error {
	rows, err := r.q.Query(ctx, `
		SELECT product_type, output_kg, remaining_kg
		FROM batch_products WHERE batch_id = $1
		ORDER BY product_type`,
		batch.ID,
	)
	if err != nil {
		return fmt.Errorf("load batch products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.BatchProduct
		if err := rows.Scan(&p.ProductType, &p.OutputKg, &p.RemainingKg); err != nil {
			return fmt.Errorf("scan batch product: %w", err)
		}
		batch.Products = append(batch.Products, p)
	}
	return rows.Err()
}

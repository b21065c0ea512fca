package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
)

// BatchRepository is the persistence port for conversion batches and their
// per-product remaining quantities. Mutating methods are used inside
// transactions only.
type BatchRepository interface {
	// Create inserts the batch header and one product row per output.
	// A duplicate conversion key surfaces as ErrDuplicate.
	Create(ctx context.Context, batch *entity.ConversionBatch) error
	GetByID(ctx context.Context, scope domain.Scope, id string) (*entity.ConversionBatch, error)
	List(ctx context.Context, scope domain.Scope, limit, offset int) ([]*entity.ConversionBatch, error)
	// GetProductForUpdate locks the batch product row (SELECT FOR UPDATE) so
	// the sufficiency check and the decrement see the same remaining quantity.
	GetProductForUpdate(ctx context.Context, scope domain.Scope, batchID, productType string) (*entity.BatchProduct, error)
	// DecrementRemaining lowers the product's remaining kg. The row CHECK
	// keeps it inside [0, output].
	DecrementRemaining(ctx context.Context, scope domain.Scope, batchID, productType string, kg decimal.Decimal) error
	// SumRemaining returns the batch's total unbagged kg across all products.
	SumRemaining(ctx context.Context, scope domain.Scope, batchID string) (decimal.Decimal, error)
	UpdateStatus(ctx context.Context, scope domain.Scope, batchID, status string) error
}

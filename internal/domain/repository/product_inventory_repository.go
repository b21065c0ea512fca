package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
)

// ProductInventoryRepository is the persistence port for the per-product
// running-stock records.
type ProductInventoryRepository interface {
	// Accumulate merge-writes the record: inserts it with the given stock on
	// first sight, otherwise increments current stock by deltaKg and refreshes
	// the display metadata.
	Accumulate(ctx context.Context, inv *entity.ProductInventory, deltaKg decimal.Decimal) error
	Get(ctx context.Context, scope domain.Scope, productID string) (*entity.ProductInventory, error)
	List(ctx context.Context, scope domain.Scope) ([]*entity.ProductInventory, error)
}

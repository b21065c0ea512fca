package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
)

// BaggedStockRepository is the persistence port for sellable bag lines.
type BaggedStockRepository interface {
	Create(ctx context.Context, item *entity.BaggedStockItem) error
	GetByID(ctx context.Context, scope domain.Scope, id string) (*entity.BaggedStockItem, error)
	// List returns bag lines for the scope, newest first. Empty status means all.
	List(ctx context.Context, scope domain.Scope, status string, limit, offset int) ([]*entity.BaggedStockItem, error)
	// FindAvailableLineForUpdate locks and returns the available line matching
	// (batch, productType, riceType, size), or nil when none exists. riceType
	// only participates for rice.
	FindAvailableLineForUpdate(ctx context.Context, scope domain.Scope, batchID, productType, riceType string, bagSizeKg decimal.Decimal) (*entity.BaggedStockItem, error)
	// GetForUpdate locks a bag line by id for a sale decrement.
	GetForUpdate(ctx context.Context, scope domain.Scope, id string) (*entity.BaggedStockItem, error)
	// AddQuantity merges bags into an existing line (positive deltas) or sells
	// them down (negative deltas).
	AddQuantity(ctx context.Context, scope domain.Scope, id string, deltaBags int64, deltaWeightKg decimal.Decimal) error
	UpdateStatus(ctx context.Context, scope domain.Scope, id, status string) error
}

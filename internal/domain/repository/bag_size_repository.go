package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/domain"
)

// BagSizeRepository is the persistence port for the configured bag sizes,
// a simple numeric set per business.
type BagSizeRepository interface {
	List(ctx context.Context, scope domain.Scope) ([]decimal.Decimal, error)
	Add(ctx context.Context, scope domain.Scope, sizeKg decimal.Decimal) error
	Remove(ctx context.Context, scope domain.Scope, sizeKg decimal.Decimal) error
}

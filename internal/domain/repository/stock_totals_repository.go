package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
)

// StockTotalsRepository is the persistence port for the per-business
// production ledger. Add* are upserts: the first conversion seeds the row,
// later ones increment it.
type StockTotalsRepository interface {
	Get(ctx context.Context, scope domain.Scope) (*entity.StockTotals, error)
	AddRice(ctx context.Context, scope domain.Scope, paddyTypeSlug string, kg decimal.Decimal) error
	AddByproduct(ctx context.Context, scope domain.Scope, productType string, kg decimal.Decimal) error
}

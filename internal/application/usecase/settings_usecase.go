package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

// SettingsUseCase manages the configured bag sizes, a simple numeric set per
// business.
type SettingsUseCase struct {
	bagSizes repository.BagSizeRepository
}

// NewSettingsUseCase builds the use case.
func NewSettingsUseCase(bagSizes repository.BagSizeRepository) *SettingsUseCase {
	return &SettingsUseCase{bagSizes: bagSizes}
}

// ListBagSizes returns the configured sizes, ascending.
func (uc *SettingsUseCase) ListBagSizes(ctx context.Context, scope domain.Scope) ([]decimal.Decimal, error) {
	return uc.bagSizes.List(ctx, scope)
}

// AddBagSize adds a size to the set. An already configured size surfaces
// ErrDuplicate.
func (uc *SettingsUseCase) AddBagSize(ctx context.Context, scope domain.Scope, sizeKg decimal.Decimal) error {
	if !sizeKg.IsPositive() {
		return domain.ErrInvalidInput
	}
	return uc.bagSizes.Add(ctx, scope, sizeKg)
}

// RemoveBagSize removes a size from the set.
func (uc *SettingsUseCase) RemoveBagSize(ctx context.Context, scope domain.Scope, sizeKg decimal.Decimal) error {
	if !sizeKg.IsPositive() {
		return domain.ErrInvalidInput
	}
	return uc.bagSizes.Remove(ctx, scope, sizeKg)
}

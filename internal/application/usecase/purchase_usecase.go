package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	"github.com/chamodh/ricemill-api/internal/domain/milling"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

// PurchaseUseCase manages raw paddy lots, the upstream input of conversions.
type PurchaseUseCase struct {
	repo repository.PaddyPurchaseRepository
	now  func() time.Time
}

// NewPurchaseUseCase builds the use case.
func NewPurchaseUseCase(repo repository.PaddyPurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{repo: repo, now: time.Now}
}

// Create records a paddy purchase and assigns it the next B<YYYYMMDD>-<NNN>
// batch number for the day.
func (uc *PurchaseUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreatePurchaseRequest) (*dto.PaddyPurchaseResponse, error) {
	if !in.QuantityKg.IsPositive() || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	seq, err := uc.repo.NextDailySequence(ctx, scope, now)
	if err != nil {
		return nil, err
	}
	purchase := &entity.PaddyPurchase{
		ID:          uuid.New().String(),
		OwnerID:     scope.OwnerID,
		BusinessID:  scope.BusinessID,
		BuyerName:   in.BuyerName,
		PaddyType:   in.PaddyType,
		QuantityKg:  in.QuantityKg,
		UnitPrice:   in.UnitPrice,
		TotalAmount: in.QuantityKg.Mul(in.UnitPrice),
		BatchNumber: milling.PurchaseBatchNumber(now, seq),
		Status:      entity.PurchaseStatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	resp := purchaseResponse(purchase)
	return &resp, nil
}

// GetByID returns one purchase.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, scope domain.Scope, id string) (*dto.PaddyPurchaseResponse, error) {
	purchase, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := purchaseResponse(purchase)
	return &resp, nil
}

// List returns purchases, optionally filtered by status.
func (uc *PurchaseUseCase) List(ctx context.Context, scope domain.Scope, status string, page dto.PageRequest) ([]dto.PaddyPurchaseResponse, error) {
	if status != "" && status != entity.PurchaseStatusAvailable && status != entity.PurchaseStatusConverted {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	purchases, err := uc.repo.List(ctx, scope, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaddyPurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, purchaseResponse(p))
	}
	return out, nil
}

func purchaseResponse(p *entity.PaddyPurchase) dto.PaddyPurchaseResponse {
	return dto.PaddyPurchaseResponse{
		ID:          p.ID,
		BuyerName:   p.BuyerName,
		PaddyType:   p.PaddyType,
		QuantityKg:  p.QuantityKg,
		UnitPrice:   p.UnitPrice,
		TotalAmount: p.TotalAmount,
		BatchNumber: p.BatchNumber,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

package milling

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

// SellBagsUseCase is the sale write-trigger on the bagged-stock ledger: a
// transactional quantity decrement with a sufficiency check. Lines are never
// deleted; at zero they flip to soldOut. Billing documents are out of scope.
type SellBagsUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewSellBagsUseCase builds the use case.
func NewSellBagsUseCase(txRunner TxRunner) *SellBagsUseCase {
	return &SellBagsUseCase{txRunner: txRunner, now: time.Now}
}

// SellBags removes count bags from a bag line.
func (uc *SellBagsUseCase) SellBags(ctx context.Context, scope domain.Scope, baggedStockID string, count int64) (*dto.BaggedStockResponse, error) {
	if count < 1 {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.BaggedStockItem
	err := uc.txRunner.Run(ctx, func(
		_ repository.BatchRepository,
		baggedRepo repository.BaggedStockRepository,
		_ repository.StockTotalsRepository,
		_ repository.ProductInventoryRepository,
		_ repository.PaddyPurchaseRepository,
	) error {
		line, err := baggedRepo.GetForUpdate(ctx, scope, baggedStockID)
		if err != nil {
			return err
		}
		if line.Status == entity.BaggedStatusSoldOut {
			return domain.ErrSoldOut
		}
		if count > line.Quantity {
			return domain.ErrInsufficientQuantity
		}
		weight := line.BagSizeKg.Mul(decimal.NewFromInt(count))
		if err := baggedRepo.AddQuantity(ctx, scope, line.ID, -count, weight.Neg()); err != nil {
			return err
		}
		line.Quantity -= count
		line.TotalWeightKg = line.TotalWeightKg.Sub(weight)
		line.UpdatedAt = uc.now()
		if line.Quantity == 0 {
			if err := baggedRepo.UpdateStatus(ctx, scope, line.ID, entity.BaggedStatusSoldOut); err != nil {
				return err
			}
			line.Status = entity.BaggedStatusSoldOut
		}
		result = line
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := baggedResponse(result)
	return &resp, nil
}

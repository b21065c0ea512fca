package milling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	domainmilling "github.com/chamodh/ricemill-api/internal/domain/milling"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

// CreateBagsUseCase splits a batch's remaining product quantity into sellable
// bag lines. The sufficiency check, the merge-or-create of the bag line and
// the batch decrement run in one transaction with the batch product row
// locked, so the remaining quantity can never be driven negative and two
// concurrent calls for the same key merge instead of duplicating the line.
type CreateBagsUseCase struct {
	txRunner TxRunner
	registry *domainmilling.CodeRegistry
	now      func() time.Time
}

// NewCreateBagsUseCase builds the use case.
func NewCreateBagsUseCase(txRunner TxRunner, registry *domainmilling.CodeRegistry) *CreateBagsUseCase {
	return &CreateBagsUseCase{txRunner: txRunner, registry: registry, now: time.Now}
}

// CreateBags bags count bags of sizeKg from a batch product. Returns the
// resulting bag line (new, or the merged existing one).
func (uc *CreateBagsUseCase) CreateBags(ctx context.Context, scope domain.Scope, in dto.CreateBagsRequest) (*dto.BaggedStockResponse, error) {
	if !domainmilling.IsProductType(in.ProductType) {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductType == domainmilling.ProductRice && in.RiceType == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.BagSizeKg.IsPositive() || in.BagCount < 1 {
		return nil, domain.ErrInvalidInput
	}

	weight := in.BagSizeKg.Mul(decimal.NewFromInt(in.BagCount))
	now := uc.now()

	var result *entity.BaggedStockItem
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		baggedRepo repository.BaggedStockRepository,
		_ repository.StockTotalsRepository,
		_ repository.ProductInventoryRepository,
		_ repository.PaddyPurchaseRepository,
	) error {
		batch, err := batchRepo.GetByID(ctx, scope, in.BatchID)
		if err != nil {
			return err
		}

		// Lock the product row; the sufficiency check and the decrement below
		// see the same remaining quantity.
		bp, err := batchRepo.GetProductForUpdate(ctx, scope, in.BatchID, in.ProductType)
		if err != nil {
			return err
		}
		if weight.GreaterThan(bp.RemainingKg) {
			return domain.ErrInsufficientQuantity
		}

		riceType := ""
		if in.ProductType == domainmilling.ProductRice {
			riceType = in.RiceType
		}
		existing, err := baggedRepo.FindAvailableLineForUpdate(ctx, scope, in.BatchID, in.ProductType, riceType, in.BagSizeKg)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := baggedRepo.AddQuantity(ctx, scope, existing.ID, in.BagCount, weight); err != nil {
				return err
			}
			existing.Quantity += in.BagCount
			existing.TotalWeightKg = existing.TotalWeightKg.Add(weight)
			existing.UpdatedAt = now
			result = existing
		} else {
			item := &entity.BaggedStockItem{
				ID:                      uuid.New().String(),
				OwnerID:                 scope.OwnerID,
				BusinessID:              scope.BusinessID,
				SourceBatchID:           batch.ID,
				SourceBatchNumber:       batch.BatchNumber,
				ProductType:             in.ProductType,
				RiceType:                riceType,
				ItemName:                itemName(in.ProductType, riceType, in.BagSizeKg),
				BagSizeKg:               in.BagSizeKg,
				Quantity:                in.BagCount,
				TotalWeightKg:           weight,
				PricePerKg:              batch.Pricing.AdjustedRicePrice,
				RecommendedSellingPrice: batch.Pricing.RecommendedSellingPrice,
				ProductCode:             uc.registry.ProductCode(in.ProductType, riceType, in.BagSizeKg, batch.BatchNumber),
				Status:                  entity.BaggedStatusAvailable,
				CreatedAt:               now,
				UpdatedAt:               now,
			}
			if err := baggedRepo.Create(ctx, item); err != nil {
				return err
			}
			result = item
		}

		if err := batchRepo.DecrementRemaining(ctx, scope, in.BatchID, in.ProductType, weight); err != nil {
			return err
		}
		remaining, err := batchRepo.SumRemaining(ctx, scope, in.BatchID)
		if err != nil {
			return err
		}
		if remaining.IsZero() {
			return batchRepo.UpdateStatus(ctx, scope, in.BatchID, entity.BatchStatusExhausted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := baggedResponse(result)
	return &resp, nil
}

// itemName builds the display name of a bag line: "<RiceType> <size>kg" for
// rice, byproduct display name plus size otherwise.
func itemName(productType, riceType string, bagSizeKg decimal.Decimal) string {
	if productType == domainmilling.ProductRice {
		return fmt.Sprintf("%s %skg", riceType, bagSizeKg.String())
	}
	return fmt.Sprintf("%s %skg", domainmilling.ByproductDisplayName(productType), bagSizeKg.String())
}

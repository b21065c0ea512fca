package milling

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

// StockOverviewUseCase serves the stock screens. The overview is read in one
// read-only transaction: batches, totals, inventory, bag sizes and bagged
// stock are a single consistent snapshot, with no reload ordering or settle
// delays between dependent reads.
type StockOverviewUseCase struct {
	txRunner      TxRunner
	totalsRepo    repository.StockTotalsRepository
	inventoryRepo repository.ProductInventoryRepository
	baggedRepo    repository.BaggedStockRepository
}

// NewStockOverviewUseCase builds the use case.
func NewStockOverviewUseCase(
	txRunner TxRunner,
	totalsRepo repository.StockTotalsRepository,
	inventoryRepo repository.ProductInventoryRepository,
	baggedRepo repository.BaggedStockRepository,
) *StockOverviewUseCase {
	return &StockOverviewUseCase{
		txRunner:      txRunner,
		totalsRepo:    totalsRepo,
		inventoryRepo: inventoryRepo,
		baggedRepo:    baggedRepo,
	}
}

// overviewListLimit caps the batch and bag listings inside the snapshot.
const overviewListLimit = 100

// Overview returns the full stock snapshot for the scope.
func (uc *StockOverviewUseCase) Overview(ctx context.Context, scope domain.Scope) (*dto.StockOverviewResponse, error) {
	var (
		batches   []*entity.ConversionBatch
		totals    *entity.StockTotals
		inventory []*entity.ProductInventory
		bagSizes  []decimal.Decimal
		bagged    []*entity.BaggedStockItem
	)
	err := uc.txRunner.RunReadOnly(ctx, func(
		batchRepo repository.BatchRepository,
		baggedRepo repository.BaggedStockRepository,
		totalsRepo repository.StockTotalsRepository,
		inventoryRepo repository.ProductInventoryRepository,
		bagSizeRepo repository.BagSizeRepository,
	) error {
		var err error
		if batches, err = batchRepo.List(ctx, scope, overviewListLimit, 0); err != nil {
			return err
		}
		if totals, err = totalsRepo.Get(ctx, scope); err != nil {
			return err
		}
		if inventory, err = inventoryRepo.List(ctx, scope); err != nil {
			return err
		}
		if bagSizes, err = bagSizeRepo.List(ctx, scope); err != nil {
			return err
		}
		bagged, err = baggedRepo.List(ctx, scope, "", overviewListLimit, 0)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := &dto.StockOverviewResponse{
		Totals:    totalsResponse(totals),
		BagSizes:  bagSizes,
		ListLimit: overviewListLimit,
	}
	for _, b := range batches {
		out.Batches = append(out.Batches, batchResponse(b))
	}
	for _, inv := range inventory {
		out.ProductInventory = append(out.ProductInventory, inventoryResponse(inv))
	}
	for _, item := range bagged {
		out.BaggedStock = append(out.BaggedStock, baggedResponse(item))
	}
	return out, nil
}

// Totals returns the production ledger alone.
func (uc *StockOverviewUseCase) Totals(ctx context.Context, scope domain.Scope) (*dto.StockTotalsResponse, error) {
	totals, err := uc.totalsRepo.Get(ctx, scope)
	if err != nil {
		return nil, err
	}
	resp := totalsResponse(totals)
	return &resp, nil
}

// Inventory returns every per-product running-stock record for the scope.
func (uc *StockOverviewUseCase) Inventory(ctx context.Context, scope domain.Scope) ([]dto.ProductInventoryResponse, error) {
	inventory, err := uc.inventoryRepo.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductInventoryResponse, 0, len(inventory))
	for _, inv := range inventory {
		out = append(out, inventoryResponse(inv))
	}
	return out, nil
}

// GetBaggedStock returns one bag line.
func (uc *StockOverviewUseCase) GetBaggedStock(ctx context.Context, scope domain.Scope, id string) (*dto.BaggedStockResponse, error) {
	item, err := uc.baggedRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := baggedResponse(item)
	return &resp, nil
}

// BaggedStock lists bag lines, optionally filtered by status.
func (uc *StockOverviewUseCase) BaggedStock(ctx context.Context, scope domain.Scope, status string, page dto.PageRequest) ([]dto.BaggedStockResponse, error) {
	if status != "" && status != entity.BaggedStatusAvailable && status != entity.BaggedStatusSoldOut {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	items, err := uc.baggedRepo.List(ctx, scope, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BaggedStockResponse, 0, len(items))
	for _, item := range items {
		out = append(out, baggedResponse(item))
	}
	return out, nil
}

package milling

import (
	"context"

	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, passing
// repositories bound to that transaction. It is what makes a conversion or a
// bagging run atomic: either every write lands or none does.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		baggedRepo repository.BaggedStockRepository,
		totalsRepo repository.StockTotalsRepository,
		inventoryRepo repository.ProductInventoryRepository,
		purchaseRepo repository.PaddyPurchaseRepository,
	) error) error

	// RunReadOnly runs fn in a read-only REPEATABLE READ transaction, giving
	// the stock screens one consistent snapshot instead of a sequence of
	// independent reads.
	RunReadOnly(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		baggedRepo repository.BaggedStockRepository,
		totalsRepo repository.StockTotalsRepository,
		inventoryRepo repository.ProductInventoryRepository,
		bagSizeRepo repository.BagSizeRepository,
	) error) error
}

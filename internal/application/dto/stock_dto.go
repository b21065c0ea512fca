package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTotalsResponse the per-business production ledger.
type StockTotalsResponse struct {
	Rice       map[string]decimal.Decimal `json:"rice"`
	Byproducts map[string]decimal.Decimal `json:"byproducts"`
}

// ProductInventoryResponse one per-product running-stock record.
type ProductInventoryResponse struct {
	ProductID         string          `json:"product_id"`
	ProductType       string          `json:"product_type"`
	SubType           string          `json:"sub_type,omitempty"`
	OriginalPaddyType string          `json:"original_paddy_type,omitempty"`
	CurrentStockKg    decimal.Decimal `json:"current_stock_kg"`
	Unit              string          `json:"unit"`
	Category          string          `json:"category"`
	DisplayName       string          `json:"display_name"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockOverviewResponse one consistent snapshot of the stock screens: read in
// a single transaction, so no reload ordering or settle delays are needed.
// Batches and BaggedStock each carry at most ListLimit rows, newest first; the
// list endpoints paginate the full history.
type StockOverviewResponse struct {
	Batches          []ConversionBatchResponse  `json:"batches"`
	Totals           StockTotalsResponse        `json:"totals"`
	ProductInventory []ProductInventoryResponse `json:"product_inventory"`
	BagSizes         []decimal.Decimal          `json:"bag_sizes"`
	BaggedStock      []BaggedStockResponse      `json:"bagged_stock"`
	ListLimit        int                        `json:"list_limit"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBagsRequest body for POST /api/bags. RiceType is required when
// ProductType is rice.
type CreateBagsRequest struct {
	BatchID     string          `json:"batch_id" validate:"required"`
	ProductType string          `json:"product_type" validate:"required"`
	RiceType    string          `json:"rice_type,omitempty"`
	BagSizeKg   decimal.Decimal `json:"bag_size_kg"`
	BagCount    int64           `json:"bag_count" validate:"required,min=1"`
}

// SellBagsRequest body for POST /api/bags/:id/sell.
type SellBagsRequest struct {
	BagCount int64 `json:"bag_count" validate:"required,min=1"`
}

// BaggedStockResponse one sellable bag line.
type BaggedStockResponse struct {
	ID                      string          `json:"id"`
	SourceBatchID           string          `json:"source_batch_id"`
	SourceBatchNumber       string          `json:"source_batch_number"`
	ProductType             string          `json:"product_type"`
	RiceType                string          `json:"rice_type,omitempty"`
	ItemName                string          `json:"item_name"`
	BagSizeKg               decimal.Decimal `json:"bag_size_kg"`
	Quantity                int64           `json:"quantity"`
	TotalWeightKg           decimal.Decimal `json:"total_weight_kg"`
	PricePerKg              decimal.Decimal `json:"price_per_kg"`
	RecommendedSellingPrice decimal.Decimal `json:"recommended_selling_price"`
	ProductCode             string          `json:"product_code"`
	Status                  string          `json:"status"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

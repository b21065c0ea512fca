package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion batch lifecycle.
const (
	BatchStatusAvailable = "available"
	BatchStatusExhausted = "exhausted"
)

// PricingSnapshot is the cost-allocation output embedded in a batch at
// conversion time. The cost basis bags copy from later.
type PricingSnapshot struct {
	AdjustedRicePrice       decimal.Decimal
	RecommendedSellingPrice decimal.Decimal
	ProfitFromByproducts    decimal.Decimal
	TotalProcessingExpense  decimal.Decimal
	ProfitPercentage        decimal.Decimal
}

// BatchProduct is one product stream of a batch: the original milling output
// and what is still unbagged. Invariant: 0 <= RemainingKg <= OutputKg.
type BatchProduct struct {
	ProductType string
	OutputKg    decimal.Decimal
	RemainingKg decimal.Decimal
}

// ConversionBatch is one milling run: a paddy lot converted into rice plus
// byproduct streams, with the pricing snapshot and per-product remaining
// quantities bags are drawn from.
type ConversionBatch struct {
	ID               string
	OwnerID          string
	BusinessID       string
	BatchNumber      string // BATCH_<compact-timestamp>_<4-char-base36>
	ConversionKey    string // dedup key; one conversion can only be applied once
	SourcePurchaseID string // optional PaddyPurchase reference
	PaddyType        string
	PaddyQuantityKg  decimal.Decimal
	PaddyPricePerKg  decimal.Decimal
	ElectricityStart decimal.Decimal
	ElectricityEnd   decimal.Decimal
	Pricing          PricingSnapshot
	Products         []BatchProduct
	Status           string // available | exhausted
	CreatedAt        time.Time
}

// Product returns the batch's stream for a product type, or nil.
func (b *ConversionBatch) Product(productType string) *BatchProduct {
	for i := range b.Products {
		if b.Products[i].ProductType == productType {
			return &b.Products[i]
		}
	}
	return nil
}

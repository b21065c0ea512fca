package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product inventory categories.
const (
	CategoryMainProduct = "main_product"
	CategoryByproduct   = "byproduct"
)

// ProductInventory is the per-product running-stock record, one row per
// product key (rice_<paddy-type-slug> or the fixed byproduct slug). Same
// accumulation semantics as StockTotals, keyed for single-product lookups.
type ProductInventory struct {
	OwnerID           string
	BusinessID        string
	ProductID         string // rice_sudu_kakulu, hunu_sahal, ...
	ProductType       string // rice | byproduct key
	SubType           string // paddy variety for rice
	OriginalPaddyType string
	CurrentStockKg    decimal.Decimal
	Unit              string // kg
	Category          string // main_product | byproduct
	DisplayName       string
	UpdatedAt         time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bagged stock lifecycle. Lines are never deleted, only sold down to zero.
const (
	BaggedStatusAvailable = "available"
	BaggedStatusSoldOut   = "soldOut"
)

// BaggedStockItem is one sellable bag line: N bags of a fixed size drawn from
// a conversion batch, priced at the batch's cost basis.
type BaggedStockItem struct {
	ID                      string
	OwnerID                 string
	BusinessID              string
	SourceBatchID           string
	SourceBatchNumber       string
	ProductType             string
	RiceType                string // paddy variety; empty for byproducts
	ItemName                string // "<RiceType> <size>kg" or byproduct display name + size
	BagSizeKg               decimal.Decimal
	Quantity                int64           // bag count
	TotalWeightKg           decimal.Decimal // BagSizeKg * Quantity
	PricePerKg              decimal.Decimal // cost basis from the batch pricing snapshot
	RecommendedSellingPrice decimal.Decimal
	ProductCode             string // <Abbrev><BagSizeKg>-<3-digit-BatchRef>
	Status                  string // available | soldOut
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

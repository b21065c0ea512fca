package entity

import "github.com/shopspring/decimal"

// StockTotals is the per-business production ledger: cumulative kg produced
// per paddy variety (rice) and per byproduct across all conversions. It is
// only ever incremented by conversions, never reduced by bagging or sales.
type StockTotals struct {
	OwnerID    string
	BusinessID string
	Rice       map[string]decimal.Decimal // paddy-type slug -> cumulative kg
	Byproducts map[string]decimal.Decimal // byproduct key -> cumulative kg
}

// NewStockTotals returns an empty ledger for a business.
func NewStockTotals(ownerID, businessID string) *StockTotals {
	return &StockTotals{
		OwnerID:    ownerID,
		BusinessID: businessID,
		Rice:       make(map[string]decimal.Decimal),
		Byproducts: make(map[string]decimal.Decimal),
	}
}

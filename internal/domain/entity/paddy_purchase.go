package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Paddy purchase lifecycle.
const (
	PurchaseStatusAvailable = "available"
	PurchaseStatusConverted = "converted"
)

// PaddyPurchase is a raw paddy lot bought from a buyer; the source of a
// conversion batch in the common case.
type PaddyPurchase struct {
	ID          string
	OwnerID     string
	BusinessID  string
	BuyerName   string
	PaddyType   string
	QuantityKg  decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
	BatchNumber string // B<YYYYMMDD>-<NNN>
	Status      string // available | converted
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

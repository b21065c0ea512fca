package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body for POST /api/purchases.
type CreatePurchaseRequest struct {
	BuyerName  string          `json:"buyer_name" validate:"required"`
	PaddyType  string          `json:"paddy_type" validate:"required"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// PaddyPurchaseResponse one raw paddy lot.
type PaddyPurchaseResponse struct {
	ID          string          `json:"id"`
	BuyerName   string          `json:"buyer_name"`
	PaddyType   string          `json:"paddy_type"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	BatchNumber string          `json:"batch_number"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateEmployeeRequest body for POST /api/employees.
type CreateEmployeeRequest struct {
	Name    string          `json:"name" validate:"required"`
	DayRate decimal.Decimal `json:"day_rate"`
}

// EmployeeResponse one mill laborer.
type EmployeeResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	DayRate decimal.Decimal `json:"day_rate"`
	Active  bool            `json:"active"`
}

// AddBagSizeRequest body for POST /api/settings/bag-sizes.
type AddBagSizeRequest struct {
	SizeKg decimal.Decimal `json:"size_kg"`
}

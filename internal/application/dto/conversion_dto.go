package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaborLineRequest names an employee assignment for a conversion; the day
// rate is looked up, not supplied.
type LaborLineRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required"`
	DaysWorked decimal.Decimal `json:"days_worked"`
}

// ExpenseLineRequest is a free-form processing expense line.
type ExpenseLineRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// RecordConversionRequest body for POST /api/conversions.
// Outputs is keyed by product type (rice, hunuSahal, kadunuSahal, ricePolish,
// dahaiyya, flour); missing keys default to zero. Electricity readings are
// required and end must exceed start.
type RecordConversionRequest struct {
	ConversionKey        string                     `json:"conversion_key,omitempty"`
	SourcePurchaseID     string                     `json:"source_purchase_id,omitempty"`
	PaddyType            string                     `json:"paddy_type" validate:"required"`
	PaddyQuantityKg      decimal.Decimal            `json:"paddy_quantity_kg"`
	PaddyPricePerKg      decimal.Decimal            `json:"paddy_price_per_kg"`
	Outputs              map[string]decimal.Decimal `json:"outputs" validate:"required"`
	ElectricityStart     *decimal.Decimal           `json:"electricity_start" validate:"required"`
	ElectricityEnd       *decimal.Decimal           `json:"electricity_end" validate:"required"`
	ElectricityUnitPrice decimal.Decimal            `json:"electricity_unit_price"`
	Labor                []LaborLineRequest         `json:"labor,omitempty" validate:"omitempty,dive"`
	OtherExpenses        []ExpenseLineRequest       `json:"other_expenses,omitempty"`
	ByproductRates       map[string]decimal.Decimal `json:"byproduct_rates,omitempty"`
	ProfitPercentage     *decimal.Decimal           `json:"profit_percentage,omitempty"`
	RiceOutputKgOverride *decimal.Decimal           `json:"rice_output_kg_override,omitempty"`
}

// PreviewPricingRequest body for POST /api/conversions/pricing-preview.
// Same cost inputs as a conversion, recomputed without writing anything.
type PreviewPricingRequest struct {
	RiceOutputKg         decimal.Decimal            `json:"rice_output_kg"`
	PaddyPricePerKg      decimal.Decimal            `json:"paddy_price_per_kg"`
	ElectricityStart     decimal.Decimal            `json:"electricity_start"`
	ElectricityEnd       decimal.Decimal            `json:"electricity_end"`
	ElectricityUnitPrice decimal.Decimal            `json:"electricity_unit_price"`
	Labor                []LaborLineRequest         `json:"labor,omitempty" validate:"omitempty,dive"`
	OtherExpenses        []ExpenseLineRequest       `json:"other_expenses,omitempty"`
	ByproductYields      map[string]decimal.Decimal `json:"byproduct_yields,omitempty"`
	ByproductRates       map[string]decimal.Decimal `json:"byproduct_rates,omitempty"`
	ProfitPercentage     *decimal.Decimal           `json:"profit_percentage,omitempty"`
}

// PricingResponse is the full cost-allocation breakdown.
type PricingResponse struct {
	ElectricityCost         decimal.Decimal `json:"electricity_cost"`
	LaborCost               decimal.Decimal `json:"labor_cost"`
	OtherExpensesCost       decimal.Decimal `json:"other_expenses_cost"`
	TotalProcessingExpense  decimal.Decimal `json:"total_processing_expense"`
	PaddyCostPer100Kg       decimal.Decimal `json:"paddy_cost_per_100kg"`
	ExpensePerKgRice        decimal.Decimal `json:"expense_per_kg_rice"`
	TotalCostFor100Kg       decimal.Decimal `json:"total_cost_for_100kg"`
	ProfitFromByproducts    decimal.Decimal `json:"profit_from_byproducts"`
	AdjustedRicePrice       decimal.Decimal `json:"adjusted_rice_price"`
	RecommendedSellingPrice decimal.Decimal `json:"recommended_selling_price"`
	ProfitPercentage        decimal.Decimal `json:"profit_percentage"`
}

// PricingSnapshotResponse the pricing figures embedded in a batch.
type PricingSnapshotResponse struct {
	AdjustedRicePrice       decimal.Decimal `json:"adjusted_rice_price"`
	RecommendedSellingPrice decimal.Decimal `json:"recommended_selling_price"`
	ProfitFromByproducts    decimal.Decimal `json:"profit_from_byproducts"`
	TotalProcessingExpense  decimal.Decimal `json:"total_processing_expense"`
	ProfitPercentage        decimal.Decimal `json:"profit_percentage"`
}

// BatchProductResponse one product stream of a batch.
type BatchProductResponse struct {
	ProductType string          `json:"product_type"`
	OutputKg    decimal.Decimal `json:"output_kg"`
	RemainingKg decimal.Decimal `json:"remaining_kg"`
}

// ConversionBatchResponse a recorded conversion batch.
type ConversionBatchResponse struct {
	ID               string                  `json:"id"`
	BatchNumber      string                  `json:"batch_number"`
	PaddyType        string                  `json:"paddy_type"`
	PaddyQuantityKg  decimal.Decimal         `json:"paddy_quantity_kg"`
	PaddyPricePerKg  decimal.Decimal         `json:"paddy_price_per_kg"`
	ElectricityStart decimal.Decimal         `json:"electricity_start"`
	ElectricityEnd   decimal.Decimal         `json:"electricity_end"`
	Products         []BatchProductResponse  `json:"products"`
	Pricing          PricingSnapshotResponse `json:"pricing"`
	Status           string                  `json:"status"`
	CreatedAt        time.Time               `json:"created_at"`
}

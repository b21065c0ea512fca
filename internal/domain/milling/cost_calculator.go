package milling

import "github.com/shopspring/decimal"

// LaborLine is one employee assignment in a conversion: the day rate times
// the days worked.
type LaborLine struct {
	EmployeeID string
	DayRate    decimal.Decimal
	DaysWorked decimal.Decimal
}

// ExpenseLine is a free-form processing expense (transport, maintenance, ...).
type ExpenseLine struct {
	Description string
	Amount      decimal.Decimal
}

// ByproductLine is one byproduct stream priced for the cost allocation:
// yield in kg times the configured per-kg rate.
type ByproductLine struct {
	ProductType string
	YieldKg     decimal.Decimal
	RatePerKg   decimal.Decimal
}

// PricingInput gathers everything the cost allocation needs for one
// conversion. RiceOutputKg defaults to the recorded rice output but is
// independently adjustable by the caller.
type PricingInput struct {
	RiceOutputKg         decimal.Decimal
	PaddyPricePerKg      decimal.Decimal
	ElectricityStart     decimal.Decimal
	ElectricityEnd       decimal.Decimal
	ElectricityUnitPrice decimal.Decimal
	Labor                []LaborLine
	OtherExpenses        []ExpenseLine
	Byproducts           []ByproductLine
	ProfitPercentage     decimal.Decimal
}

// PricingResult holds every derived figure of the cost allocation, including
// the intermediate line items the breakdown view shows.
type PricingResult struct {
	ElectricityCost         decimal.Decimal
	LaborCost               decimal.Decimal
	OtherExpensesCost       decimal.Decimal
	TotalProcessingExpense  decimal.Decimal
	PaddyCostPer100Kg       decimal.Decimal
	ExpensePerKgRice        decimal.Decimal
	TotalCostFor100Kg       decimal.Decimal
	ProfitFromByproducts    decimal.Decimal
	AdjustedRicePrice       decimal.Decimal
	RecommendedSellingPrice decimal.Decimal
	ProfitPercentage        decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// CalculatePricing turns a conversion's cost inputs into the adjusted per-kg
// rice cost and the recommended selling price. Pure recomputation, no state.
//
// The cost basis is normalized to a 100 kg paddy charge, the conventional way
// Sri Lankan rice-mill batches are costed. TotalCostFor100Kg is computed as
// paddyCostPer100kg + expensePerKgRice*riceOutputKg rather than the
// algebraically equal paddyCostPer100kg + totalProcessingExpense: the per-kg
// expense is a line item of its own and the decimal division is not exact, so
// the sequence of operations must stay as the breakdown presents it.
//
// RiceOutputKg of zero collapses every ratio output to zero instead of
// dividing. A negative adjusted price (byproduct revenue above cost) is valid
// and is not clamped.
func CalculatePricing(in PricingInput) PricingResult {
	out := PricingResult{ProfitPercentage: in.ProfitPercentage}

	out.ElectricityCost = in.ElectricityEnd.Sub(in.ElectricityStart).Mul(in.ElectricityUnitPrice)

	for _, l := range in.Labor {
		out.LaborCost = out.LaborCost.Add(l.DayRate.Mul(l.DaysWorked))
	}
	for _, e := range in.OtherExpenses {
		out.OtherExpensesCost = out.OtherExpensesCost.Add(e.Amount)
	}
	out.TotalProcessingExpense = out.ElectricityCost.Add(out.LaborCost).Add(out.OtherExpensesCost)

	out.PaddyCostPer100Kg = hundred.Mul(in.PaddyPricePerKg)

	if in.RiceOutputKg.IsPositive() {
		out.ExpensePerKgRice = out.TotalProcessingExpense.Div(in.RiceOutputKg)
	}
	out.TotalCostFor100Kg = out.PaddyCostPer100Kg.Add(out.ExpensePerKgRice.Mul(in.RiceOutputKg))

	for _, b := range in.Byproducts {
		out.ProfitFromByproducts = out.ProfitFromByproducts.Add(b.YieldKg.Mul(b.RatePerKg))
	}

	if in.RiceOutputKg.IsPositive() {
		out.AdjustedRicePrice = out.TotalCostFor100Kg.Sub(out.ProfitFromByproducts).Div(in.RiceOutputKg)
		out.RecommendedSellingPrice = out.AdjustedRicePrice.Mul(
			decimal.NewFromInt(1).Add(in.ProfitPercentage.Div(hundred)),
		)
	}

	return out
}

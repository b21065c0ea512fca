package milling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	domainmilling "github.com/chamodh/ricemill-api/internal/domain/milling"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

// MillDefaults are the configured per-kg byproduct rates and the default
// target margin, applied when a conversion does not override them.
type MillDefaults struct {
	ByproductRates   map[string]decimal.Decimal
	ProfitPercentage decimal.Decimal
}

// RecordConversionUseCase records a milling run: validates the conversion
// inputs, prices them, and writes the batch together with the aggregate
// ledgers in one transaction. The conversion key makes re-invocation unable
// to double-count the aggregates.
type RecordConversionUseCase struct {
	txRunner     TxRunner
	batchRepo    repository.BatchRepository
	purchaseRepo repository.PaddyPurchaseRepository
	employeeRepo repository.EmployeeRepository
	defaults     MillDefaults
	now          func() time.Time
}

// NewRecordConversionUseCase builds the use case.
func NewRecordConversionUseCase(
	txRunner TxRunner,
	batchRepo repository.BatchRepository,
	purchaseRepo repository.PaddyPurchaseRepository,
	employeeRepo repository.EmployeeRepository,
	defaults MillDefaults,
) *RecordConversionUseCase {
	return &RecordConversionUseCase{
		txRunner:     txRunner,
		batchRepo:    batchRepo,
		purchaseRepo: purchaseRepo,
		employeeRepo: employeeRepo,
		defaults:     defaults,
		now:          time.Now,
	}
}

// RecordConversion validates and persists one conversion. Validation failures
// abort before any write; on success the batch, the stock totals, the product
// inventory and the source purchase flip are one atomic commit.
func (uc *RecordConversionUseCase) RecordConversion(ctx context.Context, scope domain.Scope, in dto.RecordConversionRequest) (*dto.ConversionBatchResponse, error) {
	outputs, err := normalizeOutputs(in.Outputs)
	if err != nil {
		return nil, err
	}
	if in.ElectricityStart == nil || in.ElectricityEnd == nil {
		return nil, domain.ErrInvalidInput
	}
	if !in.ElectricityEnd.GreaterThan(*in.ElectricityStart) {
		return nil, domain.ErrInvalidInput
	}
	if in.PaddyQuantityKg.IsNegative() || in.PaddyPricePerKg.IsNegative() || in.ElectricityUnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var purchase *entity.PaddyPurchase
	if in.SourcePurchaseID != "" {
		purchase, err = uc.purchaseRepo.GetByID(ctx, scope, in.SourcePurchaseID)
		if err != nil {
			return nil, err
		}
		if purchase.Status != entity.PurchaseStatusAvailable {
			return nil, domain.ErrConflict
		}
	}

	labor, err := uc.resolveLabor(ctx, scope, in.Labor)
	if err != nil {
		return nil, err
	}

	riceOutput := outputs[domainmilling.ProductRice]
	if in.RiceOutputKgOverride != nil {
		riceOutput = *in.RiceOutputKgOverride
	}
	profitPct := uc.defaults.ProfitPercentage
	if in.ProfitPercentage != nil {
		profitPct = *in.ProfitPercentage
	}

	pricing := domainmilling.CalculatePricing(domainmilling.PricingInput{
		RiceOutputKg:         riceOutput,
		PaddyPricePerKg:      in.PaddyPricePerKg,
		ElectricityStart:     *in.ElectricityStart,
		ElectricityEnd:       *in.ElectricityEnd,
		ElectricityUnitPrice: in.ElectricityUnitPrice,
		Labor:                labor,
		OtherExpenses:        expenseLines(in.OtherExpenses),
		Byproducts:           uc.byproductLines(outputs, in.ByproductRates),
		ProfitPercentage:     profitPct,
	})

	now := uc.now()
	conversionKey := in.ConversionKey
	if conversionKey == "" {
		conversionKey = uuid.New().String()
	}

	batch := &entity.ConversionBatch{
		ID:               uuid.New().String(),
		OwnerID:          scope.OwnerID,
		BusinessID:       scope.BusinessID,
		BatchNumber:      domainmilling.NewConversionBatchNumber(now),
		ConversionKey:    conversionKey,
		SourcePurchaseID: in.SourcePurchaseID,
		PaddyType:        in.PaddyType,
		PaddyQuantityKg:  in.PaddyQuantityKg,
		PaddyPricePerKg:  in.PaddyPricePerKg,
		ElectricityStart: *in.ElectricityStart,
		ElectricityEnd:   *in.ElectricityEnd,
		Pricing: entity.PricingSnapshot{
			AdjustedRicePrice:       pricing.AdjustedRicePrice,
			RecommendedSellingPrice: pricing.RecommendedSellingPrice,
			ProfitFromByproducts:    pricing.ProfitFromByproducts,
			TotalProcessingExpense:  pricing.TotalProcessingExpense,
			ProfitPercentage:        pricing.ProfitPercentage,
		},
		Status:    entity.BatchStatusAvailable,
		CreatedAt: now,
	}
	for _, productType := range domainmilling.ProductTypes {
		batch.Products = append(batch.Products, entity.BatchProduct{
			ProductType: productType,
			OutputKg:    outputs[productType],
			RemainingKg: outputs[productType],
		})
	}

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		_ repository.BaggedStockRepository,
		totalsRepo repository.StockTotalsRepository,
		inventoryRepo repository.ProductInventoryRepository,
		purchaseRepo repository.PaddyPurchaseRepository,
	) error {
		if err := batchRepo.Create(ctx, batch); err != nil {
			return err
		}
		if err := uc.accumulateAggregates(ctx, scope, totalsRepo, inventoryRepo, in.PaddyType, outputs, now); err != nil {
			return err
		}
		if purchase != nil {
			return purchaseRepo.MarkConverted(ctx, scope, purchase.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := batchResponse(batch)
	return &resp, nil
}

// accumulateAggregates applies this conversion's original outputs to the two
// denormalized views: the production ledger and the per-product inventory.
// Runs inside the conversion transaction.
func (uc *RecordConversionUseCase) accumulateAggregates(
	ctx context.Context,
	scope domain.Scope,
	totalsRepo repository.StockTotalsRepository,
	inventoryRepo repository.ProductInventoryRepository,
	paddyType string,
	outputs map[string]decimal.Decimal,
	now time.Time,
) error {
	riceKg := outputs[domainmilling.ProductRice]
	if riceKg.IsPositive() {
		slug := domainmilling.Slugify(paddyType)
		if err := totalsRepo.AddRice(ctx, scope, slug, riceKg); err != nil {
			return err
		}
		inv := &entity.ProductInventory{
			OwnerID:           scope.OwnerID,
			BusinessID:        scope.BusinessID,
			ProductID:         domainmilling.RiceInventoryID(paddyType),
			ProductType:       domainmilling.ProductRice,
			SubType:           paddyType,
			OriginalPaddyType: paddyType,
			CurrentStockKg:    riceKg,
			Unit:              "kg",
			Category:          entity.CategoryMainProduct,
			DisplayName:       paddyType,
			UpdatedAt:         now,
		}
		if err := inventoryRepo.Accumulate(ctx, inv, riceKg); err != nil {
			return err
		}
	}
	for _, productType := range domainmilling.ByproductTypes {
		kg := outputs[productType]
		if !kg.IsPositive() {
			continue
		}
		if err := totalsRepo.AddByproduct(ctx, scope, productType, kg); err != nil {
			return err
		}
		inv := &entity.ProductInventory{
			OwnerID:        scope.OwnerID,
			BusinessID:     scope.BusinessID,
			ProductID:      domainmilling.ByproductSlug(productType),
			ProductType:    productType,
			CurrentStockKg: kg,
			Unit:           "kg",
			Category:       entity.CategoryByproduct,
			DisplayName:    domainmilling.ByproductDisplayName(productType),
			UpdatedAt:      now,
		}
		if err := inventoryRepo.Accumulate(ctx, inv, kg); err != nil {
			return err
		}
	}
	return nil
}

// PreviewPricing recomputes the cost-allocation breakdown from raw inputs,
// without writing anything. Serves the reactive breakdown view.
func (uc *RecordConversionUseCase) PreviewPricing(ctx context.Context, scope domain.Scope, in dto.PreviewPricingRequest) (*dto.PricingResponse, error) {
	labor, err := uc.resolveLabor(ctx, scope, in.Labor)
	if err != nil {
		return nil, err
	}
	profitPct := uc.defaults.ProfitPercentage
	if in.ProfitPercentage != nil {
		profitPct = *in.ProfitPercentage
	}
	result := domainmilling.CalculatePricing(domainmilling.PricingInput{
		RiceOutputKg:         in.RiceOutputKg,
		PaddyPricePerKg:      in.PaddyPricePerKg,
		ElectricityStart:     in.ElectricityStart,
		ElectricityEnd:       in.ElectricityEnd,
		ElectricityUnitPrice: in.ElectricityUnitPrice,
		Labor:                labor,
		OtherExpenses:        expenseLines(in.OtherExpenses),
		Byproducts:           uc.byproductLinesFromYields(in.ByproductYields, in.ByproductRates),
		ProfitPercentage:     profitPct,
	})
	resp := pricingResponse(result)
	return &resp, nil
}

// GetBatch returns one conversion batch.
func (uc *RecordConversionUseCase) GetBatch(ctx context.Context, scope domain.Scope, id string) (*dto.ConversionBatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := batchResponse(batch)
	return &resp, nil
}

// ListBatches returns conversion batches for the scope, newest first.
func (uc *RecordConversionUseCase) ListBatches(ctx context.Context, scope domain.Scope, page dto.PageRequest) ([]dto.ConversionBatchResponse, error) {
	page.DefaultPage()
	batches, err := uc.batchRepo.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConversionBatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, batchResponse(b))
	}
	return out, nil
}

func (uc *RecordConversionUseCase) resolveLabor(ctx context.Context, scope domain.Scope, lines []dto.LaborLineRequest) ([]domainmilling.LaborLine, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	out := make([]domainmilling.LaborLine, 0, len(lines))
	for _, l := range lines {
		if l.DaysWorked.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		emp, err := uc.employeeRepo.GetByID(ctx, scope, l.EmployeeID)
		if err != nil {
			return nil, err
		}
		out = append(out, domainmilling.LaborLine{
			EmployeeID: emp.ID,
			DayRate:    emp.DayRate,
			DaysWorked: l.DaysWorked,
		})
	}
	return out, nil
}

// byproductLines prices the four rated byproduct streams of a conversion.
// Flour carries no rate and never contributes to the cost offset.
func (uc *RecordConversionUseCase) byproductLines(outputs, rateOverrides map[string]decimal.Decimal) []domainmilling.ByproductLine {
	return uc.byproductLinesFromYields(outputs, rateOverrides)
}

func (uc *RecordConversionUseCase) byproductLinesFromYields(yields, rateOverrides map[string]decimal.Decimal) []domainmilling.ByproductLine {
	out := make([]domainmilling.ByproductLine, 0, len(uc.defaults.ByproductRates))
	for _, productType := range domainmilling.ByproductTypes {
		rate, ok := uc.defaults.ByproductRates[productType]
		if override, has := rateOverrides[productType]; has {
			rate, ok = override, true
		}
		if !ok {
			continue
		}
		out = append(out, domainmilling.ByproductLine{
			ProductType: productType,
			YieldKg:     yields[productType],
			RatePerKg:   rate,
		})
	}
	return out
}

func expenseLines(lines []dto.ExpenseLineRequest) []domainmilling.ExpenseLine {
	out := make([]domainmilling.ExpenseLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, domainmilling.ExpenseLine{Description: l.Description, Amount: l.Amount})
	}
	return out
}

// normalizeOutputs validates the six product quantities: known keys only,
// none negative, and at least one positive (a conversion that produced
// nothing is rejected).
func normalizeOutputs(in map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(domainmilling.ProductTypes))
	sum := decimal.Zero
	for productType, kg := range in {
		if !domainmilling.IsProductType(productType) {
			return nil, domain.ErrInvalidInput
		}
		if kg.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		out[productType] = kg
		sum = sum.Add(kg)
	}
	if !sum.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	return out, nil
}

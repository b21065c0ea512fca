package milling

import (
	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	domainmilling "github.com/chamodh/ricemill-api/internal/domain/milling"
)

func batchResponse(b *entity.ConversionBatch) dto.ConversionBatchResponse {
	out := dto.ConversionBatchResponse{
		ID:               b.ID,
		BatchNumber:      b.BatchNumber,
		PaddyType:        b.PaddyType,
		PaddyQuantityKg:  b.PaddyQuantityKg,
		PaddyPricePerKg:  b.PaddyPricePerKg,
		ElectricityStart: b.ElectricityStart,
		ElectricityEnd:   b.ElectricityEnd,
		Pricing: dto.PricingSnapshotResponse{
			AdjustedRicePrice:       b.Pricing.AdjustedRicePrice,
			RecommendedSellingPrice: b.Pricing.RecommendedSellingPrice,
			ProfitFromByproducts:    b.Pricing.ProfitFromByproducts,
			TotalProcessingExpense:  b.Pricing.TotalProcessingExpense,
			ProfitPercentage:        b.Pricing.ProfitPercentage,
		},
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
	for _, p := range b.Products {
		out.Products = append(out.Products, dto.BatchProductResponse{
			ProductType: p.ProductType,
			OutputKg:    p.OutputKg,
			RemainingKg: p.RemainingKg,
		})
	}
	return out
}

func baggedResponse(i *entity.BaggedStockItem) dto.BaggedStockResponse {
	return dto.BaggedStockResponse{
		ID:                      i.ID,
		SourceBatchID:           i.SourceBatchID,
		SourceBatchNumber:       i.SourceBatchNumber,
		ProductType:             i.ProductType,
		RiceType:                i.RiceType,
		ItemName:                i.ItemName,
		BagSizeKg:               i.BagSizeKg,
		Quantity:                i.Quantity,
		TotalWeightKg:           i.TotalWeightKg,
		PricePerKg:              i.PricePerKg,
		RecommendedSellingPrice: i.RecommendedSellingPrice,
		ProductCode:             i.ProductCode,
		Status:                  i.Status,
		CreatedAt:               i.CreatedAt,
		UpdatedAt:               i.UpdatedAt,
	}
}

func pricingResponse(r domainmilling.PricingResult) dto.PricingResponse {
	return dto.PricingResponse{
		ElectricityCost:         r.ElectricityCost,
		LaborCost:               r.LaborCost,
		OtherExpensesCost:       r.OtherExpensesCost,
		TotalProcessingExpense:  r.TotalProcessingExpense,
		PaddyCostPer100Kg:       r.PaddyCostPer100Kg,
		ExpensePerKgRice:        r.ExpensePerKgRice,
		TotalCostFor100Kg:       r.TotalCostFor100Kg,
		ProfitFromByproducts:    r.ProfitFromByproducts,
		AdjustedRicePrice:       r.AdjustedRicePrice,
		RecommendedSellingPrice: r.RecommendedSellingPrice,
		ProfitPercentage:        r.ProfitPercentage,
	}
}

func inventoryResponse(inv *entity.ProductInventory) dto.ProductInventoryResponse {
	return dto.ProductInventoryResponse{
		ProductID:         inv.ProductID,
		ProductType:       inv.ProductType,
		SubType:           inv.SubType,
		OriginalPaddyType: inv.OriginalPaddyType,
		CurrentStockKg:    inv.CurrentStockKg,
		Unit:              inv.Unit,
		Category:          inv.Category,
		DisplayName:       inv.DisplayName,
		UpdatedAt:         inv.UpdatedAt,
	}
}

func totalsResponse(t *entity.StockTotals) dto.StockTotalsResponse {
	return dto.StockTotalsResponse{Rice: t.Rice, Byproducts: t.Byproducts}
}

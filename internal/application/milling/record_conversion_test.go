package milling_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/application/milling"
	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	domainmilling "github.com/chamodh/ricemill-api/internal/domain/milling"
)

var testScope = domain.Scope{OwnerID: "owner-1", BusinessID: "biz-1"}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func testDefaults() milling.MillDefaults {
	return milling.MillDefaults{
		ByproductRates: map[string]decimal.Decimal{
			domainmilling.ProductHunuSahal:   d("120"),
			domainmilling.ProductKadunuSahal: d("100"),
			domainmilling.ProductRicePolish:  d("80"),
			domainmilling.ProductDahaiyya:    d("60"),
		},
		ProfitPercentage: d("10"),
	}
}

func newConversionUC(s *memStore) *milling.RecordConversionUseCase {
	return milling.NewRecordConversionUseCase(
		&fakeTxRunner{s},
		&fakeBatchRepo{s},
		&fakePurchaseRepo{s},
		&fakeEmployeeRepo{s},
		testDefaults(),
	)
}

func seedEmployee(s *memStore, id, name string, dayRate decimal.Decimal) {
	s.employees[id] = &entity.Employee{
		ID: id, OwnerID: testScope.OwnerID, BusinessID: testScope.BusinessID,
		Name: name, DayRate: dayRate, Active: true, CreatedAt: time.Now(),
	}
}

func seedPurchase(s *memStore, id, paddyType string) {
	s.purchases[id] = &entity.PaddyPurchase{
		ID: id, OwnerID: testScope.OwnerID, BusinessID: testScope.BusinessID,
		BuyerName: "W.M. Bandara", PaddyType: paddyType,
		QuantityKg: d("1000"), UnitPrice: d("100"), TotalAmount: d("100000"),
		BatchNumber: "B20250114-001", Status: entity.PurchaseStatusAvailable,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

func baseConversionRequest() dto.RecordConversionRequest {
	return dto.RecordConversionRequest{
		ConversionKey:   "conv-1",
		PaddyType:       "Sudu Kakulu",
		PaddyQuantityKg: d("1000"),
		PaddyPricePerKg: d("100"),
		Outputs: map[string]decimal.Decimal{
			domainmilling.ProductRice:        d("350"),
			domainmilling.ProductHunuSahal:   d("40"),
			domainmilling.ProductKadunuSahal: d("30"),
			domainmilling.ProductRicePolish:  d("20"),
			domainmilling.ProductDahaiyya:    d("10"),
			domainmilling.ProductFlour:       d("15"),
		},
		ElectricityStart:     dp("1000"),
		ElectricityEnd:       dp("1150"),
		ElectricityUnitPrice: d("5"),
		OtherExpenses: []dto.ExpenseLineRequest{
			{Description: "transport", Amount: d("500")},
		},
	}
}

func TestRecordConversion_HappyPath(t *testing.T) {
	s := newMemStore()
	seedEmployee(s, "e1", "Sunil", d("1500"))
	seedEmployee(s, "e2", "Kamal", d("1500"))
	seedPurchase(s, "p1", "Sudu Kakulu")
	uc := newConversionUC(s)

	req := baseConversionRequest()
	req.SourcePurchaseID = "p1"
	req.Labor = []dto.LaborLineRequest{
		{EmployeeID: "e1", DaysWorked: d("1")},
		{EmployeeID: "e2", DaysWorked: d("1")},
	}

	resp, err := uc.RecordConversion(context.Background(), testScope, req)
	require.NoError(t, err)

	assert.Regexp(t, `^BATCH_\d{14}_[0-9a-z]{4}$`, resp.BatchNumber)
	assert.Equal(t, "Sudu Kakulu", resp.PaddyType)
	assert.Equal(t, entity.BatchStatusAvailable, resp.Status)

	// six product streams, remaining starts at the full output
	require.Len(t, resp.Products, 6)
	byType := map[string]dto.BatchProductResponse{}
	for _, p := range resp.Products {
		byType[p.ProductType] = p
	}
	assert.True(t, byType[domainmilling.ProductRice].OutputKg.Equal(d("350")))
	assert.True(t, byType[domainmilling.ProductRice].RemainingKg.Equal(d("350")))
	assert.True(t, byType[domainmilling.ProductFlour].OutputKg.Equal(d("15")))

	// pricing snapshot matches the cost allocation for these inputs
	assert.True(t, resp.Pricing.ProfitFromByproducts.Equal(d("10000")), "byproducts: got %s", resp.Pricing.ProfitFromByproducts)
	assert.True(t, resp.Pricing.TotalProcessingExpense.Equal(d("4250")), "expense: got %s", resp.Pricing.TotalProcessingExpense)
	assert.True(t, resp.Pricing.AdjustedRicePrice.Round(6).Equal(d("12.142857")), "adjusted: got %s", resp.Pricing.AdjustedRicePrice)
	assert.True(t, resp.Pricing.RecommendedSellingPrice.Round(6).Equal(d("13.357143")), "recommended: got %s", resp.Pricing.RecommendedSellingPrice)

	// production ledger and product inventory accumulated in the same commit
	assert.True(t, s.totalsRice["sudu_kakulu"].Equal(d("350")))
	assert.True(t, s.totalsByprod[domainmilling.ProductHunuSahal].Equal(d("40")))
	assert.True(t, s.totalsByprod[domainmilling.ProductFlour].Equal(d("15")), "flour enters the ledger even though it is unrated")
	require.Contains(t, s.inventory, "rice_sudu_kakulu")
	assert.True(t, s.inventory["rice_sudu_kakulu"].CurrentStockKg.Equal(d("350")))
	require.Contains(t, s.inventory, "hunu_sahal")
	assert.True(t, s.inventory["hunu_sahal"].CurrentStockKg.Equal(d("40")))
	assert.Equal(t, entity.CategoryByproduct, s.inventory["hunu_sahal"].Category)

	// the source lot cannot be converted twice
	assert.Equal(t, entity.PurchaseStatusConverted, s.purchases["p1"].Status)
}

func TestRecordConversion_AccumulatesAcrossConversions(t *testing.T) {
	s := newMemStore()
	uc := newConversionUC(s)

	req := baseConversionRequest()
	req.ConversionKey = "conv-1"
	_, err := uc.RecordConversion(context.Background(), testScope, req)
	require.NoError(t, err)

	req2 := baseConversionRequest()
	req2.ConversionKey = "conv-2"
	_, err = uc.RecordConversion(context.Background(), testScope, req2)
	require.NoError(t, err)

	assert.True(t, s.totalsRice["sudu_kakulu"].Equal(d("700")))
	assert.True(t, s.inventory["rice_sudu_kakulu"].CurrentStockKg.Equal(d("700")))
	assert.True(t, s.totalsByprod[domainmilling.ProductDahaiyya].Equal(d("20")))
}

func TestRecordConversion_DuplicateKeyDoesNotDoubleCount(t *testing.T) {
	s := newMemStore()
	uc := newConversionUC(s)

	req := baseConversionRequest()
	_, err := uc.RecordConversion(context.Background(), testScope, req)
	require.NoError(t, err)

	_, err = uc.RecordConversion(context.Background(), testScope, req)
	require.ErrorIs(t, err, domain.ErrDuplicate)

	// the replay must not touch the aggregates
	assert.True(t, s.totalsRice["sudu_kakulu"].Equal(d("350")))
	assert.Len(t, s.batches, 1)
}

func TestRecordConversion_ConvertedPurchaseRejected(t *testing.T) {
	s := newMemStore()
	seedPurchase(s, "p1", "Sudu Kakulu")
	s.purchases["p1"].Status = entity.PurchaseStatusConverted
	uc := newConversionUC(s)

	req := baseConversionRequest()
	req.SourcePurchaseID = "p1"

	_, err := uc.RecordConversion(context.Background(), testScope, req)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, s.batches)
}

func TestRecordConversion_Validation(t *testing.T) {
	s := newMemStore()
	uc := newConversionUC(s)

	t.Run("unknown output key", func(t *testing.T) {
		req := baseConversionRequest()
		req.Outputs["husk"] = d("5")
		_, err := uc.RecordConversion(context.Background(), testScope, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("negative electricity unit price", func(t *testing.T) {
		req := baseConversionRequest()
		req.ElectricityUnitPrice = d("-5")
		_, err := uc.RecordConversion(context.Background(), testScope, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("negative output", func(t *testing.T) {
		req := baseConversionRequest()
		req.Outputs[domainmilling.ProductFlour] = d("-1")
		_, err := uc.RecordConversion(context.Background(), testScope, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("all outputs zero", func(t *testing.T) {
		req := baseConversionRequest()
		req.Outputs = map[string]decimal.Decimal{domainmilling.ProductRice: decimal.Zero}
		_, err := uc.RecordConversion(context.Background(), testScope, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("electricity end not above start", func(t *testing.T) {
		req := baseConversionRequest()
		req.ElectricityEnd = dp("1000")
		_, err := uc.RecordConversion(context.Background(), testScope, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing electricity reading", func(t *testing.T) {
		req := baseConversionRequest()
		req.ElectricityStart = nil
		_, err := uc.RecordConversion(context.Background(), testScope, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown employee", func(t *testing.T) {
		req := baseConversionRequest()
		req.Labor = []dto.LaborLineRequest{{EmployeeID: "ghost", DaysWorked: d("1")}}
		_, err := uc.RecordConversion(context.Background(), testScope, req)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("negative days worked", func(t *testing.T) {
		seedEmployee(s, "e1", "Sunil", d("1500"))
		req := baseConversionRequest()
		req.Labor = []dto.LaborLineRequest{{EmployeeID: "e1", DaysWorked: d("-1")}}
		_, err := uc.RecordConversion(context.Background(), testScope, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	assert.Empty(t, s.batches, "no validation failure may leave a batch behind")
}

func TestRecordConversion_RateOverridesAndProfitOverride(t *testing.T) {
	s := newMemStore()
	uc := newConversionUC(s)

	req := baseConversionRequest()
	req.Outputs = map[string]decimal.Decimal{
		domainmilling.ProductRice:      d("100"),
		domainmilling.ProductHunuSahal: d("10"),
	}
	req.ElectricityStart = dp("0")
	req.ElectricityEnd = dp("100")
	req.ElectricityUnitPrice = d("10") // electricity 1000, no labor
	req.OtherExpenses = nil
	req.ByproductRates = map[string]decimal.Decimal{domainmilling.ProductHunuSahal: d("200")}
	req.ProfitPercentage = dp("20")

	resp, err := uc.RecordConversion(context.Background(), testScope, req)
	require.NoError(t, err)

	// byproduct offset uses the overridden rate: 10 * 200 = 2000
	assert.True(t, resp.Pricing.ProfitFromByproducts.Equal(d("2000")))
	// adjusted = (10000 + 1000 - 2000) / 100 = 90; recommended at 20% = 108
	assert.True(t, resp.Pricing.AdjustedRicePrice.Equal(d("90")), "adjusted: got %s", resp.Pricing.AdjustedRicePrice)
	assert.True(t, resp.Pricing.RecommendedSellingPrice.Equal(d("108")), "recommended: got %s", resp.Pricing.RecommendedSellingPrice)
	assert.True(t, resp.Pricing.ProfitPercentage.Equal(d("20")))
}

func TestPreviewPricing_ComputesWithoutWriting(t *testing.T) {
	s := newMemStore()
	uc := newConversionUC(s)

	resp, err := uc.PreviewPricing(context.Background(), testScope, dto.PreviewPricingRequest{
		RiceOutputKg:         d("100"),
		PaddyPricePerKg:      d("20"),
		ElectricityStart:     d("200"),
		ElectricityEnd:       d("300"),
		ElectricityUnitPrice: d("4"),
		OtherExpenses: []dto.ExpenseLineRequest{
			{Description: "labor", Amount: d("600")},
		},
		ByproductYields:  map[string]decimal.Decimal{domainmilling.ProductHunuSahal: d("5")},
		ByproductRates:   map[string]decimal.Decimal{domainmilling.ProductHunuSahal: d("100")},
		ProfitPercentage: dp("20"),
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalProcessingExpense.Equal(d("1000")))
	assert.True(t, resp.AdjustedRicePrice.Equal(d("25")), "adjusted: got %s", resp.AdjustedRicePrice)
	assert.True(t, resp.RecommendedSellingPrice.Equal(d("30")))

	assert.Empty(t, s.batches, "preview must not persist anything")
	assert.Empty(t, s.totalsRice)
	assert.Empty(t, s.inventory)
}

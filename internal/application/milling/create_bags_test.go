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

// seedBatch stores an available conversion batch with rice and hunu sahal to
// draw bags from.
func seedBatch(s *memStore, id string) *entity.ConversionBatch {
	b := &entity.ConversionBatch{
		ID:            id,
		OwnerID:       testScope.OwnerID,
		BusinessID:    testScope.BusinessID,
		BatchNumber:   "BATCH_20250114093045_k7x2",
		ConversionKey: "seed-" + id,
		PaddyType:     "Sudu Kakulu",
		Pricing: entity.PricingSnapshot{
			AdjustedRicePrice:       d("12.50"),
			RecommendedSellingPrice: d("13.75"),
			ProfitPercentage:        d("10"),
		},
		Products: []entity.BatchProduct{
			{ProductType: domainmilling.ProductRice, OutputKg: d("40"), RemainingKg: d("40")},
			{ProductType: domainmilling.ProductHunuSahal, OutputKg: d("10"), RemainingKg: d("10")},
		},
		Status:    entity.BatchStatusAvailable,
		CreatedAt: time.Now(),
	}
	s.batches[id] = b
	s.conversionKeys[b.ConversionKey] = true
	return b
}

func newBagsUC(s *memStore) *milling.CreateBagsUseCase {
	return milling.NewCreateBagsUseCase(&fakeTxRunner{s}, domainmilling.DefaultCodeRegistry())
}

func TestCreateBags_NewLine(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1")
	uc := newBagsUC(s)

	resp, err := uc.CreateBags(context.Background(), testScope, dto.CreateBagsRequest{
		BatchID:     "b1",
		ProductType: domainmilling.ProductRice,
		RiceType:    "Sudu Kakulu",
		BagSizeKg:   d("5"),
		BagCount:    3,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Quantity)
	assert.True(t, resp.TotalWeightKg.Equal(d("15")))
	assert.Equal(t, "Sudu Kakulu 5kg", resp.ItemName)
	assert.Equal(t, "SK5-7x2", resp.ProductCode)
	assert.True(t, resp.PricePerKg.Equal(d("12.50")), "bag line prices at the batch cost basis")
	assert.True(t, resp.RecommendedSellingPrice.Equal(d("13.75")))
	assert.Equal(t, entity.BaggedStatusAvailable, resp.Status)

	// remaining drops by the bagged weight
	rice := s.batches["b1"].Product(domainmilling.ProductRice)
	assert.True(t, rice.RemainingKg.Equal(d("25")), "remaining: got %s", rice.RemainingKg)
}

func TestCreateBags_MergesIntoExistingLine(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1")
	uc := newBagsUC(s)

	req := dto.CreateBagsRequest{
		BatchID:     "b1",
		ProductType: domainmilling.ProductRice,
		RiceType:    "Sudu Kakulu",
		BagSizeKg:   d("5"),
		BagCount:    2,
	}
	first, err := uc.CreateBags(context.Background(), testScope, req)
	require.NoError(t, err)

	second, err := uc.CreateBags(context.Background(), testScope, req)
	require.NoError(t, err)

	// same line, not a duplicate
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(4), second.Quantity)
	assert.True(t, second.TotalWeightKg.Equal(d("20")))
	assert.Len(t, s.bagged, 1)

	// the stored line agrees with the merged response
	stored := s.bagged[first.ID]
	assert.Equal(t, int64(4), stored.Quantity)
	assert.True(t, stored.TotalWeightKg.Equal(d("20")))

	rice := s.batches["b1"].Product(domainmilling.ProductRice)
	assert.True(t, rice.RemainingKg.Equal(d("20")))
}

func TestCreateBags_DifferentSizeGetsOwnLine(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1")
	uc := newBagsUC(s)

	req := dto.CreateBagsRequest{
		BatchID:     "b1",
		ProductType: domainmilling.ProductRice,
		RiceType:    "Sudu Kakulu",
		BagSizeKg:   d("5"),
		BagCount:    2,
	}
	_, err := uc.CreateBags(context.Background(), testScope, req)
	require.NoError(t, err)

	req.BagSizeKg = d("10")
	_, err = uc.CreateBags(context.Background(), testScope, req)
	require.NoError(t, err)

	assert.Len(t, s.bagged, 2)
}

func TestCreateBags_InsufficientRemaining(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1") // 40 kg rice remaining
	uc := newBagsUC(s)

	_, err := uc.CreateBags(context.Background(), testScope, dto.CreateBagsRequest{
		BatchID:     "b1",
		ProductType: domainmilling.ProductRice,
		RiceType:    "Sudu Kakulu",
		BagSizeKg:   d("25"),
		BagCount:    10, // 250 kg requested
	})
	require.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	// nothing was bagged, nothing was decremented
	assert.Empty(t, s.bagged)
	rice := s.batches["b1"].Product(domainmilling.ProductRice)
	assert.True(t, rice.RemainingKg.Equal(d("40")))
}

func TestCreateBags_ExhaustsBatch(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1")
	uc := newBagsUC(s)

	_, err := uc.CreateBags(context.Background(), testScope, dto.CreateBagsRequest{
		BatchID: "b1", ProductType: domainmilling.ProductRice, RiceType: "Sudu Kakulu",
		BagSizeKg: d("10"), BagCount: 4, // all 40 kg of rice
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusAvailable, s.batches["b1"].Status, "hunu sahal still remains")

	_, err = uc.CreateBags(context.Background(), testScope, dto.CreateBagsRequest{
		BatchID: "b1", ProductType: domainmilling.ProductHunuSahal,
		BagSizeKg: d("5"), BagCount: 2, // all 10 kg of hunu sahal
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BatchStatusExhausted, s.batches["b1"].Status,
		"batch flips to exhausted when the last kilogram is bagged")
}

func TestCreateBags_ByproductLine(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1")
	uc := newBagsUC(s)

	resp, err := uc.CreateBags(context.Background(), testScope, dto.CreateBagsRequest{
		BatchID:     "b1",
		ProductType: domainmilling.ProductHunuSahal,
		BagSizeKg:   d("5"),
		BagCount:    1,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hunu Sahal 5kg", resp.ItemName)
	assert.Equal(t, "HS5-7x2", resp.ProductCode)
	assert.Empty(t, resp.RiceType)
}

func TestCreateBags_Validation(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1")
	uc := newBagsUC(s)

	cases := []struct {
		name string
		req  dto.CreateBagsRequest
		want error
	}{
		{
			name: "rice without rice type",
			req:  dto.CreateBagsRequest{BatchID: "b1", ProductType: domainmilling.ProductRice, BagSizeKg: d("5"), BagCount: 1},
			want: domain.ErrInvalidInput,
		},
		{
			name: "unknown product type",
			req:  dto.CreateBagsRequest{BatchID: "b1", ProductType: "husk", BagSizeKg: d("5"), BagCount: 1},
			want: domain.ErrInvalidInput,
		},
		{
			name: "zero bag size",
			req:  dto.CreateBagsRequest{BatchID: "b1", ProductType: domainmilling.ProductHunuSahal, BagSizeKg: decimal.Zero, BagCount: 1},
			want: domain.ErrInvalidInput,
		},
		{
			name: "zero bag count",
			req:  dto.CreateBagsRequest{BatchID: "b1", ProductType: domainmilling.ProductHunuSahal, BagSizeKg: d("5"), BagCount: 0},
			want: domain.ErrInvalidInput,
		},
		{
			name: "unknown batch",
			req:  dto.CreateBagsRequest{BatchID: "ghost", ProductType: domainmilling.ProductHunuSahal, BagSizeKg: d("5"), BagCount: 1},
			want: domain.ErrNotFound,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := uc.CreateBags(context.Background(), testScope, c.req)
			assert.ErrorIs(t, err, c.want)
		})
	}
	assert.Empty(t, s.bagged)
}

package milling_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamodh/ricemill-api/internal/application/milling"
	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	domainmilling "github.com/chamodh/ricemill-api/internal/domain/milling"
)

func seedBagLine(s *memStore, id string, quantity int64) *entity.BaggedStockItem {
	item := &entity.BaggedStockItem{
		ID:                id,
		OwnerID:           testScope.OwnerID,
		BusinessID:        testScope.BusinessID,
		SourceBatchID:     "b1",
		SourceBatchNumber: "BATCH_20250114093045_k7x2",
		ProductType:       domainmilling.ProductRice,
		RiceType:          "Sudu Kakulu",
		ItemName:          "Sudu Kakulu 5kg",
		BagSizeKg:         d("5"),
		Quantity:          quantity,
		TotalWeightKg:     d("5").Mul(decimal.NewFromInt(quantity)),
		PricePerKg:        d("12.50"),
		ProductCode:       "SK5-7x2",
		Status:            entity.BaggedStatusAvailable,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	s.bagged[id] = item
	return item
}

func TestSellBags_Decrements(t *testing.T) {
	s := newMemStore()
	seedBagLine(s, "l1", 10)
	uc := milling.NewSellBagsUseCase(&fakeTxRunner{s})

	resp, err := uc.SellBags(context.Background(), testScope, "l1", 3)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.Quantity)
	assert.True(t, resp.TotalWeightKg.Equal(d("35")), "weight: got %s", resp.TotalWeightKg)
	assert.Equal(t, entity.BaggedStatusAvailable, resp.Status)

	// the stored ledger row carries the same post-sale figures as the response
	stored := s.bagged["l1"]
	assert.Equal(t, resp.Quantity, stored.Quantity)
	assert.True(t, stored.TotalWeightKg.Equal(resp.TotalWeightKg))
	assert.Equal(t, resp.Status, stored.Status)
}

func TestSellBags_LastBagFlipsSoldOut(t *testing.T) {
	s := newMemStore()
	seedBagLine(s, "l1", 2)
	uc := milling.NewSellBagsUseCase(&fakeTxRunner{s})

	resp, err := uc.SellBags(context.Background(), testScope, "l1", 2)
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.Quantity)
	assert.True(t, resp.TotalWeightKg.IsZero())
	assert.Equal(t, entity.BaggedStatusSoldOut, resp.Status)
	// the line stays in the ledger, sold down to zero
	assert.Contains(t, s.bagged, "l1")
}

func TestSellBags_Oversell(t *testing.T) {
	s := newMemStore()
	seedBagLine(s, "l1", 2)
	uc := milling.NewSellBagsUseCase(&fakeTxRunner{s})

	_, err := uc.SellBags(context.Background(), testScope, "l1", 3)
	require.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	assert.Equal(t, int64(2), s.bagged["l1"].Quantity, "a rejected sale changes nothing")
}

func TestSellBags_SoldOutLineRejected(t *testing.T) {
	s := newMemStore()
	line := seedBagLine(s, "l1", 0)
	line.Status = entity.BaggedStatusSoldOut
	uc := milling.NewSellBagsUseCase(&fakeTxRunner{s})

	_, err := uc.SellBags(context.Background(), testScope, "l1", 1)
	assert.ErrorIs(t, err, domain.ErrSoldOut)
}

func TestSellBags_Validation(t *testing.T) {
	s := newMemStore()
	seedBagLine(s, "l1", 2)
	uc := milling.NewSellBagsUseCase(&fakeTxRunner{s})

	_, err := uc.SellBags(context.Background(), testScope, "l1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SellBags(context.Background(), testScope, "ghost", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

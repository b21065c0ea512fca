package milling_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/application/milling"
	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory repositories standing in for the PostgreSQL layer. One store per
// test; the fake TxRunner hands out repositories bound to it, so the use
// cases run unchanged. Rollback is not simulated: tests that expect an error
// arrange for it to fire before any write.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	batches        map[string]*entity.ConversionBatch
	conversionKeys map[string]bool
	bagged         map[string]*entity.BaggedStockItem
	totalsRice     map[string]decimal.Decimal
	totalsByprod   map[string]decimal.Decimal
	inventory      map[string]*entity.ProductInventory
	purchases      map[string]*entity.PaddyPurchase
	employees      map[string]*entity.Employee
	bagSizes       map[string]decimal.Decimal
}

func newMemStore() *memStore {
	return &memStore{
		batches:        map[string]*entity.ConversionBatch{},
		conversionKeys: map[string]bool{},
		bagged:         map[string]*entity.BaggedStockItem{},
		totalsRice:     map[string]decimal.Decimal{},
		totalsByprod:   map[string]decimal.Decimal{},
		inventory:      map[string]*entity.ProductInventory{},
		purchases:      map[string]*entity.PaddyPurchase{},
		employees:      map[string]*entity.Employee{},
		bagSizes:       map[string]decimal.Decimal{},
	}
}

// ─── batch repository ────────────────────────────────────────────────────────

type fakeBatchRepo struct{ s *memStore }

func (r *fakeBatchRepo) Create(_ context.Context, batch *entity.ConversionBatch) error {
	if r.s.conversionKeys[batch.ConversionKey] {
		return domain.ErrDuplicate
	}
	r.s.conversionKeys[batch.ConversionKey] = true
	r.s.batches[batch.ID] = batch
	return nil
}

func (r *fakeBatchRepo) GetByID(_ context.Context, _ domain.Scope, id string) (*entity.ConversionBatch, error) {
	b, ok := r.s.batches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (r *fakeBatchRepo) List(_ context.Context, _ domain.Scope, limit, offset int) ([]*entity.ConversionBatch, error) {
	var out []*entity.ConversionBatch
	for _, b := range r.s.batches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBatchRepo) GetProductForUpdate(_ context.Context, _ domain.Scope, batchID, productType string) (*entity.BatchProduct, error) {
	b, ok := r.s.batches[batchID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := b.Product(productType)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeBatchRepo) DecrementRemaining(_ context.Context, _ domain.Scope, batchID, productType string, kg decimal.Decimal) error {
	b, ok := r.s.batches[batchID]
	if !ok {
		return domain.ErrNotFound
	}
	p := b.Product(productType)
	if p == nil {
		return domain.ErrNotFound
	}
	next := p.RemainingKg.Sub(kg)
	if next.IsNegative() {
		return domain.ErrInsufficientQuantity
	}
	p.RemainingKg = next
	return nil
}

func (r *fakeBatchRepo) SumRemaining(_ context.Context, _ domain.Scope, batchID string) (decimal.Decimal, error) {
	b, ok := r.s.batches[batchID]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	sum := decimal.Zero
	for _, p := range b.Products {
		sum = sum.Add(p.RemainingKg)
	}
	return sum, nil
}

func (r *fakeBatchRepo) UpdateStatus(_ context.Context, _ domain.Scope, batchID, status string) error {
	b, ok := r.s.batches[batchID]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	return nil
}

// ─── bagged stock repository ─────────────────────────────────────────────────

type fakeBaggedRepo struct{ s *memStore }

// copyBagged mirrors the row-scan of the real repo: callers get their own
// copy, so mutating it never touches the stored entity.
func copyBagged(i *entity.BaggedStockItem) *entity.BaggedStockItem {
	c := *i
	return &c
}

func (r *fakeBaggedRepo) Create(_ context.Context, item *entity.BaggedStockItem) error {
	r.s.bagged[item.ID] = item
	return nil
}

func (r *fakeBaggedRepo) GetByID(_ context.Context, _ domain.Scope, id string) (*entity.BaggedStockItem, error) {
	i, ok := r.s.bagged[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyBagged(i), nil
}

func (r *fakeBaggedRepo) List(_ context.Context, _ domain.Scope, status string, limit, offset int) ([]*entity.BaggedStockItem, error) {
	var out []*entity.BaggedStockItem
	for _, i := range r.s.bagged {
		if status == "" || i.Status == status {
			out = append(out, copyBagged(i))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBaggedRepo) FindAvailableLineForUpdate(_ context.Context, _ domain.Scope, batchID, productType, riceType string, bagSizeKg decimal.Decimal) (*entity.BaggedStockItem, error) {
	for _, i := range r.s.bagged {
		if i.Status == entity.BaggedStatusAvailable &&
			i.SourceBatchID == batchID &&
			i.ProductType == productType &&
			i.RiceType == riceType &&
			i.BagSizeKg.Equal(bagSizeKg) {
			return copyBagged(i), nil
		}
	}
	return nil, nil
}

func (r *fakeBaggedRepo) GetForUpdate(_ context.Context, _ domain.Scope, id string) (*entity.BaggedStockItem, error) {
	return r.GetByID(context.Background(), domain.Scope{}, id)
}

func (r *fakeBaggedRepo) AddQuantity(_ context.Context, _ domain.Scope, id string, deltaBags int64, deltaWeightKg decimal.Decimal) error {
	i, ok := r.s.bagged[id]
	if !ok {
		return domain.ErrNotFound
	}
	if i.Quantity+deltaBags < 0 || i.TotalWeightKg.Add(deltaWeightKg).IsNegative() {
		return domain.ErrInsufficientQuantity
	}
	i.Quantity += deltaBags
	i.TotalWeightKg = i.TotalWeightKg.Add(deltaWeightKg)
	return nil
}

func (r *fakeBaggedRepo) UpdateStatus(_ context.Context, _ domain.Scope, id, status string) error {
	i, ok := r.s.bagged[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Status = status
	return nil
}

// ─── stock totals repository ─────────────────────────────────────────────────

type fakeTotalsRepo struct{ s *memStore }

func (r *fakeTotalsRepo) Get(_ context.Context, scope domain.Scope) (*entity.StockTotals, error) {
	t := entity.NewStockTotals(scope.OwnerID, scope.BusinessID)
	for k, v := range r.s.totalsRice {
		t.Rice[k] = v
	}
	for k, v := range r.s.totalsByprod {
		t.Byproducts[k] = v
	}
	return t, nil
}

func (r *fakeTotalsRepo) AddRice(_ context.Context, _ domain.Scope, paddyTypeSlug string, kg decimal.Decimal) error {
	r.s.totalsRice[paddyTypeSlug] = r.s.totalsRice[paddyTypeSlug].Add(kg)
	return nil
}

func (r *fakeTotalsRepo) AddByproduct(_ context.Context, _ domain.Scope, productType string, kg decimal.Decimal) error {
	r.s.totalsByprod[productType] = r.s.totalsByprod[productType].Add(kg)
	return nil
}

// ─── product inventory repository ────────────────────────────────────────────

type fakeInventoryRepo struct{ s *memStore }

func (r *fakeInventoryRepo) Accumulate(_ context.Context, inv *entity.ProductInventory, deltaKg decimal.Decimal) error {
	if existing, ok := r.s.inventory[inv.ProductID]; ok {
		existing.CurrentStockKg = existing.CurrentStockKg.Add(deltaKg)
		existing.DisplayName = inv.DisplayName
		existing.UpdatedAt = inv.UpdatedAt
		return nil
	}
	cp := *inv
	r.s.inventory[inv.ProductID] = &cp
	return nil
}

func (r *fakeInventoryRepo) Get(_ context.Context, _ domain.Scope, productID string) (*entity.ProductInventory, error) {
	inv, ok := r.s.inventory[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (r *fakeInventoryRepo) List(_ context.Context, _ domain.Scope) ([]*entity.ProductInventory, error) {
	var out []*entity.ProductInventory
	for _, inv := range r.s.inventory {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// ─── paddy purchase repository ───────────────────────────────────────────────

type fakePurchaseRepo struct{ s *memStore }

func (r *fakePurchaseRepo) Create(_ context.Context, p *entity.PaddyPurchase) error {
	r.s.purchases[p.ID] = p
	return nil
}

func (r *fakePurchaseRepo) GetByID(_ context.Context, _ domain.Scope, id string) (*entity.PaddyPurchase, error) {
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakePurchaseRepo) List(_ context.Context, _ domain.Scope, status string, limit, offset int) ([]*entity.PaddyPurchase, error) {
	var out []*entity.PaddyPurchase
	for _, p := range r.s.purchases {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePurchaseRepo) NextDailySequence(_ context.Context, _ domain.Scope, day time.Time) (int, error) {
	prefix := "B" + day.Format("20060102") + "-"
	n := 0
	for _, p := range r.s.purchases {
		if strings.HasPrefix(p.BatchNumber, prefix) {
			n++
		}
	}
	return n + 1, nil
}

func (r *fakePurchaseRepo) MarkConverted(_ context.Context, _ domain.Scope, id string) error {
	p, ok := r.s.purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Status != entity.PurchaseStatusAvailable {
		return domain.ErrConflict
	}
	p.Status = entity.PurchaseStatusConverted
	return nil
}

// ─── employee repository ─────────────────────────────────────────────────────

type fakeEmployeeRepo struct{ s *memStore }

func (r *fakeEmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	r.s.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, _ domain.Scope, id string) (*entity.Employee, error) {
	e, ok := r.s.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context, _ domain.Scope) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range r.s.employees {
		if e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

// ─── bag size repository ─────────────────────────────────────────────────────

type fakeBagSizeRepo struct{ s *memStore }

func (r *fakeBagSizeRepo) List(_ context.Context, _ domain.Scope) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, sz := range r.s.bagSizes {
		out = append(out, sz)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out, nil
}

func (r *fakeBagSizeRepo) Add(_ context.Context, _ domain.Scope, sizeKg decimal.Decimal) error {
	key := sizeKg.String()
	if _, ok := r.s.bagSizes[key]; ok {
		return domain.ErrDuplicate
	}
	r.s.bagSizes[key] = sizeKg
	return nil
}

func (r *fakeBagSizeRepo) Remove(_ context.Context, _ domain.Scope, sizeKg decimal.Decimal) error {
	key := sizeKg.String()
	if _, ok := r.s.bagSizes[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.bagSizes, key)
	return nil
}

// ─── transaction runner ──────────────────────────────────────────────────────

type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.BatchRepository,
	repository.BaggedStockRepository,
	repository.StockTotalsRepository,
	repository.ProductInventoryRepository,
	repository.PaddyPurchaseRepository,
) error) error {
	return fn(
		&fakeBatchRepo{t.s},
		&fakeBaggedRepo{t.s},
		&fakeTotalsRepo{t.s},
		&fakeInventoryRepo{t.s},
		&fakePurchaseRepo{t.s},
	)
}

func (t *fakeTxRunner) RunReadOnly(ctx context.Context, fn func(
	repository.BatchRepository,
	repository.BaggedStockRepository,
	repository.StockTotalsRepository,
	repository.ProductInventoryRepository,
	repository.BagSizeRepository,
) error) error {
	return fn(
		&fakeBatchRepo{t.s},
		&fakeBaggedRepo{t.s},
		&fakeTotalsRepo{t.s},
		&fakeInventoryRepo{t.s},
		&fakeBagSizeRepo{t.s},
	)
}

var _ milling.TxRunner = (*fakeTxRunner)(nil)

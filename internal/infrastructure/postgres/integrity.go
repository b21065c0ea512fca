package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/domain/milling"
)

// TotalsDrift is one production-ledger row whose value no longer matches the
// sum of the batch outputs behind it.
type TotalsDrift struct {
	OwnerID       string
	BusinessID    string
	ProductKey    string
	PaddyTypeSlug string
	LedgerKg      decimal.Decimal
	ProducedKg    decimal.Decimal
}

// IntegrityReader cross-checks the denormalized stock_totals ledger against
// the batch outputs it was accumulated from. Both are written in the same
// transaction, so any drift means a bug or manual data edit.
type IntegrityReader struct {
	q Querier
}

func NewIntegrityReader(q Querier) *IntegrityReader {
	return &IntegrityReader{q: q}
}

type ledgerKey struct {
	ownerID       string
	businessID    string
	productKey    string
	paddyTypeSlug string
}

// FindTotalsDrift returns every ledger row that disagrees with production,
// across all scopes. An empty slice means the ledger is consistent.
func (r *IntegrityReader) FindTotalsDrift(ctx context.Context) ([]TotalsDrift, error) {
	produced, err := r.productionSums(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := r.ledgerRows(ctx)
	if err != nil {
		return nil, err
	}

	var drifts []TotalsDrift
	for key, producedKg := range produced {
		if ledger[key].Equal(producedKg) {
			delete(ledger, key)
			continue
		}
		drifts = append(drifts, TotalsDrift{
			OwnerID:       key.ownerID,
			BusinessID:    key.businessID,
			ProductKey:    key.productKey,
			PaddyTypeSlug: key.paddyTypeSlug,
			LedgerKg:      ledger[key],
			ProducedKg:    producedKg,
		})
		delete(ledger, key)
	}
	// ledger rows with no production behind them
	for key, ledgerKg := range ledger {
		if ledgerKg.IsZero() {
			continue
		}
		drifts = append(drifts, TotalsDrift{
			OwnerID:       key.ownerID,
			BusinessID:    key.businessID,
			ProductKey:    key.productKey,
			PaddyTypeSlug: key.paddyTypeSlug,
			LedgerKg:      ledgerKg,
			ProducedKg:    decimal.Zero,
		})
	}
	return drifts, nil
}

// productionSums groups batch outputs the same way the ledger is keyed:
// rice by the slug of the paddy type, byproducts by product type alone.
func (r *IntegrityReader) productionSums(ctx context.Context) (map[ledgerKey]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT cb.owner_id, cb.business_id, bp.product_type, cb.paddy_type, SUM(bp.output_kg)
		FROM batch_products bp
		JOIN conversion_batches cb ON cb.id = bp.batch_id
		GROUP BY cb.owner_id, cb.business_id, bp.product_type, cb.paddy_type`)
	if err != nil {
		return nil, fmt.Errorf("sum batch outputs: %w", err)
	}
	defer rows.Close()

	sums := make(map[ledgerKey]decimal.Decimal)
	for rows.Next() {
		var ownerID, businessID, productType, paddyType string
		var kg decimal.Decimal
		if err := rows.Scan(&ownerID, &businessID, &productType, &paddyType, &kg); err != nil {
			return nil, fmt.Errorf("scan batch output sum: %w", err)
		}
		if kg.IsZero() {
			continue
		}
		key := ledgerKey{ownerID: ownerID, businessID: businessID, productKey: productType}
		if productType == milling.ProductRice {
			key.paddyTypeSlug = milling.Slugify(paddyType)
		}
		sums[key] = sums[key].Add(kg)
	}
	return sums, rows.Err()
}

func (r *IntegrityReader) ledgerRows(ctx context.Context) (map[ledgerKey]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT owner_id, business_id, product_key, paddy_type_slug, total_kg
		FROM stock_totals`)
	if err != nil {
		return nil, fmt.Errorf("read stock totals: %w", err)
	}
	defer rows.Close()

	ledger := make(map[ledgerKey]decimal.Decimal)
	for rows.Next() {
		var key ledgerKey
		var kg decimal.Decimal
		if err := rows.Scan(&key.ownerID, &key.businessID, &key.productKey, &key.paddyTypeSlug, &kg); err != nil {
			return nil, fmt.Errorf("scan stock total: %w", err)
		}
		ledger[key] = kg
	}
	return ledger, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

var _ repository.PaddyPurchaseRepository = (*PaddyPurchaseRepo)(nil)

// PaddyPurchaseRepo implements PaddyPurchaseRepository over PostgreSQL.
type PaddyPurchaseRepo struct {
	q Querier
}

// NewPaddyPurchaseRepository builds the adapter. Pass pool or tx (Querier).
func NewPaddyPurchaseRepository(q Querier) *PaddyPurchaseRepo {
	return &PaddyPurchaseRepo{q: q}
}

const purchaseColumns = `
	id, owner_id, business_id, buyer_name, paddy_type, quantity_kg,
	unit_price, total_amount, batch_number, status, created_at, updated_at`

// Create inserts a purchase. A duplicate batch number surfaces as ErrDuplicate.
func (r *PaddyPurchaseRepo) Create(ctx context.Context, p *entity.PaddyPurchase) error {
	query := `
		INSERT INTO paddy_purchases (` + purchaseColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OwnerID, p.BusinessID, p.BuyerName, p.PaddyType, p.QuantityKg,
		p.UnitPrice, p.TotalAmount, p.BatchNumber, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert paddy purchase: %w", err)
	}
	return nil
}

// GetByID returns one purchase.
func (r *PaddyPurchaseRepo) GetByID(ctx context.Context, scope domain.Scope, id string) (*entity.PaddyPurchase, error) {
	query := `SELECT ` + purchaseColumns + `
		FROM paddy_purchases
		WHERE owner_id = $1 AND business_id = $2 AND id = $3`
	p, err := scanPurchase(r.q.QueryRow(ctx, query, scope.OwnerID, scope.BusinessID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get paddy purchase: %w", err)
	}
	return p, nil
}

// List returns purchases for the scope, newest first. Empty status means all.
func (r *PaddyPurchaseRepo) List(ctx context.Context, scope domain.Scope, status string, limit, offset int) ([]*entity.PaddyPurchase, error) {
	query := `SELECT ` + purchaseColumns + `
		FROM paddy_purchases
		WHERE owner_id = $1 AND business_id = $2 AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, scope.OwnerID, scope.BusinessID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list paddy purchases: %w", err)
	}
	defer rows.Close()

	var out []*entity.PaddyPurchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan paddy purchase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// NextDailySequence returns the next B<YYYYMMDD>-<NNN> sequence for the day.
func (r *PaddyPurchaseRepo) NextDailySequence(ctx context.Context, scope domain.Scope, day time.Time) (int, error) {
	prefix := "B" + day.Format("20060102") + "-%"
	var count int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM paddy_purchases
		WHERE owner_id = $1 AND business_id = $2 AND batch_number LIKE $3`,
		scope.OwnerID, scope.BusinessID, prefix,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("next purchase sequence: %w", err)
	}
	return count + 1, nil
}

// MarkConverted flips an available purchase to converted. ErrConflict when it
// already was (or was otherwise not available).
func (r *PaddyPurchaseRepo) MarkConverted(ctx context.Context, scope domain.Scope, id string) error {
	query := `
		UPDATE paddy_purchases SET status = $1, updated_at = now()
		WHERE owner_id = $2 AND business_id = $3 AND id = $4 AND status = $5`
	tag, err := r.q.Exec(ctx, query,
		entity.PurchaseStatusConverted, scope.OwnerID, scope.BusinessID, id,
		entity.PurchaseStatusAvailable,
	)
	if err != nil {
		return fmt.Errorf("mark purchase converted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func scanPurchase(row pgx.Row) (*entity.PaddyPurchase, error) {
	var p entity.PaddyPurchase
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.BusinessID, &p.BuyerName, &p.PaddyType, &p.QuantityKg,
		&p.UnitPrice, &p.TotalAmount, &p.BatchNumber, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

var _ repository.BagSizeRepository = (*BagSizeRepo)(nil)

// BagSizeRepo implements BagSizeRepository over PostgreSQL.
type BagSizeRepo struct {
	q Querier
}

func NewBagSizeRepository(q Querier) *BagSizeRepo {
	return &BagSizeRepo{q: q}
}

func (r *BagSizeRepo) List(ctx context.Context, scope domain.Scope) ([]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT size_kg FROM bag_sizes
		WHERE owner_id = $1 AND business_id = $2
		ORDER BY size_kg`,
		scope.OwnerID, scope.BusinessID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bag sizes: %w", err)
	}
	defer rows.Close()

	var out []decimal.Decimal
	for rows.Next() {
		var size decimal.Decimal
		if err := rows.Scan(&size); err != nil {
			return nil, fmt.Errorf("scan bag size: %w", err)
		}
		out = append(out, size)
	}
	return out, rows.Err()
}

func (r *BagSizeRepo) Add(ctx context.Context, scope domain.Scope, sizeKg decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO bag_sizes (owner_id, business_id, size_kg)
		VALUES ($1, $2, $3)`,
		scope.OwnerID, scope.BusinessID, sizeKg,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("add bag size: %w", err)
	}
	return nil
}

func (r *BagSizeRepo) Remove(ctx context.Context, scope domain.Scope, sizeKg decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `
		DELETE FROM bag_sizes
		WHERE owner_id = $1 AND business_id = $2 AND size_kg = $3`,
		scope.OwnerID, scope.BusinessID, sizeKg,
	)
	if err != nil {
		return fmt.Errorf("remove bag size: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implements EmployeeRepository over PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (id, owner_id, business_id, name, day_rate, active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.OwnerID, e.BusinessID, e.Name, e.DayRate, e.Active, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, scope domain.Scope, id string) (*entity.Employee, error) {
	query := `
		SELECT id, owner_id, business_id, name, day_rate, active, created_at
		FROM employees
		WHERE owner_id = $1 AND business_id = $2 AND id = $3`
	var e entity.Employee
	err := r.q.QueryRow(ctx, query, scope.OwnerID, scope.BusinessID, id).Scan(
		&e.ID, &e.OwnerID, &e.BusinessID, &e.Name, &e.DayRate, &e.Active, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepo) ListActive(ctx context.Context, scope domain.Scope) ([]*entity.Employee, error) {
	query := `
		SELECT id, owner_id, business_id, name, day_rate, active, created_at
		FROM employees
		WHERE owner_id = $1 AND business_id = $2 AND active
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, scope.OwnerID, scope.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.BusinessID, &e.Name, &e.DayRate, &e.Active, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

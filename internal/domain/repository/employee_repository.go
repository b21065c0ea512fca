package repository

import (
	"context"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
)

// EmployeeRepository is the persistence port for mill laborers.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, scope domain.Scope, id string) (*entity.Employee, error)
	ListActive(ctx context.Context, scope domain.Scope) ([]*entity.Employee, error)
}

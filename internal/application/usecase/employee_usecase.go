package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

// EmployeeUseCase manages mill laborers; the cost allocation reads day rates
// from here.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase builds the use case.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create registers an employee with a daily rate.
func (uc *EmployeeUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.DayRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	emp := &entity.Employee{
		ID:         uuid.New().String(),
		OwnerID:    scope.OwnerID,
		BusinessID: scope.BusinessID,
		Name:       in.Name,
		DayRate:    in.DayRate,
		Active:     true,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, emp); err != nil {
		return nil, err
	}
	resp := employeeResponse(emp)
	return &resp, nil
}

// List returns all active employees for the scope.
func (uc *EmployeeUseCase) List(ctx context.Context, scope domain.Scope) ([]dto.EmployeeResponse, error) {
	employees, err := uc.repo.ListActive(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employeeResponse(e))
	}
	return out, nil
}

func employeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{ID: e.ID, Name: e.Name, DayRate: e.DayRate, Active: e.Active}
}

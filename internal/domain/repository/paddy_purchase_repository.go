package repository

import (
	"context"
	"time"

	"github.com/chamodh/ricemill-api/internal/domain"
	"github.com/chamodh/ricemill-api/internal/domain/entity"
)

// PaddyPurchaseRepository is the persistence port for raw paddy lots.
type PaddyPurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.PaddyPurchase) error
	GetByID(ctx context.Context, scope domain.Scope, id string) (*entity.PaddyPurchase, error)
	// List returns purchases for the scope, newest first. Empty status means all.
	List(ctx context.Context, scope domain.Scope, status string, limit, offset int) ([]*entity.PaddyPurchase, error)
	// NextDailySequence returns the next B<YYYYMMDD>-<NNN> sequence for the day.
	NextDailySequence(ctx context.Context, scope domain.Scope, day time.Time) (int, error)
	// MarkConverted flips an available purchase to converted; ErrConflict if it
	// already was.
	MarkConverted(ctx context.Context, scope domain.Scope, id string) error
}

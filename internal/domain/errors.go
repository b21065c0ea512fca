package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicate            = errors.New("duplicate resource")
	ErrForbidden            = errors.New("access denied")
	ErrConflict             = errors.New("conflict with current state")
	ErrInsufficientQuantity = errors.New("insufficient quantity in batch")
	ErrSoldOut              = errors.New("bagged stock line is sold out")
)

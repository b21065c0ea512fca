package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a mill laborer with a daily rate; the cost allocation looks up
// rates here when a conversion names who worked the run.
type Employee struct {
	ID         string
	OwnerID    string
	BusinessID string
	Name       string
	DayRate    decimal.Decimal
	Active     bool
	CreatedAt  time.Time
}

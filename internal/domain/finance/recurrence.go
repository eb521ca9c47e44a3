package finance

import (
	"time"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/finman/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recurrence is a monthly debt template. Each time NextRunDate comes due
// the scheduler materializes a debt from it and advances the schedule.
type Recurrence struct {
	shared.ClientAggregateRoot
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description string
	Amount      decimal.Decimal
	// DueDay anchors the emitted debt's due date within the month.
	DueDay      int
	NextRunDate time.Time
	Active      bool
}

// NewRecurrence creates an active monthly recurrence
func NewRecurrence(clientID, accountID uuid.UUID, description string, amount decimal.Decimal, dueDay int, firstRun time.Time) (*Recurrence, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Recurrence description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Recurrence amount must be positive")
	}
	if dueDay < 1 || dueDay > 31 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Due day must be between 1 and 31")
	}
	return &Recurrence{
		ClientAggregateRoot: shared.NewClientAggregateRoot(clientID),
		AccountID:           accountID,
		Description:         description,
		Amount:              amount,
		DueDay:              dueDay,
		NextRunDate:         firstRun,
		Active:              true,
	}, nil
}

// IsDue reports whether the recurrence should emit a debt at the given time
func (r *Recurrence) IsDue(now time.Time) bool {
	return r.Active && !r.NextRunDate.After(now)
}

// EmitDueDate returns the due date of the debt emitted for the current run,
// anchored on DueDay in the run's month with end-of-month clamping.
func (r *Recurrence) EmitDueDate() time.Time {
	return valueobject.DayClampedDate(r.NextRunDate.Year(), r.NextRunDate.Month(), r.DueDay)
}

// Advance moves NextRunDate forward one month, keeping the anchor day
func (r *Recurrence) Advance() {
	r.NextRunDate = valueobject.AddMonthsClamped(r.NextRunDate, 1)
	r.UpdatedAt = time.Now()
}

// Deactivate stops the recurrence from emitting further debts
func (r *Recurrence) Deactivate() {
	r.Active = false
	r.UpdatedAt = time.Now()
}

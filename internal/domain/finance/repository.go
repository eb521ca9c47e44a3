package finance

import (
	"context"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DebtRepository persists Debt aggregates
type DebtRepository interface {
	// FindByID loads a debt scoped to its owning client
	FindByID(ctx context.Context, clientID, id uuid.UUID) (*Debt, error)
	// FindByIdentification loads a debt by its short serial key
	FindByIdentification(ctx context.Context, clientID uuid.UUID, identification int64) (*Debt, error)
	FindAllForClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Debt, error)
	// Save inserts or updates without a version check
	Save(ctx context.Context, debt *Debt) error
	// SaveWithLock updates only when the stored version matches the
	// aggregate's previous version, returning ErrConcurrencyConflict
	// when another writer got there first
	SaveWithLock(ctx context.Context, debt *Debt) error
}

// InstallmentRepository persists the installment ledger of a debt
type InstallmentRepository interface {
	// InsertBatch inserts a full plan atomically
	InsertBatch(ctx context.Context, installments []Installment) error
	FindByDebt(ctx context.Context, debtID uuid.UUID) ([]Installment, error)
	// FindByPayment finds the installment settled by the given payment
	FindByPayment(ctx context.Context, paymentID uuid.UUID) (*Installment, error)
	Update(ctx context.Context, installment *Installment) error
}

// PaymentRepository persists immutable payment records
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAllForClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Payment, error)
	Insert(ctx context.Context, payment *Payment) error
	// Delete removes a payment record; only the refund path may call it
	Delete(ctx context.Context, id uuid.UUID) error
}

// FinancialInstrumentRepository persists financial instruments
type FinancialInstrumentRepository interface {
	FindByID(ctx context.Context, clientID, id uuid.UUID) (*FinancialInstrument, error)
	// FindByCode resolves the 4-character identification code
	FindByCode(ctx context.Context, clientID uuid.UUID, code string) (*FinancialInstrument, error)
	FindAllForClient(ctx context.Context, clientID uuid.UUID) ([]FinancialInstrument, error)
	Save(ctx context.Context, instrument *FinancialInstrument) error
}

// CategoryRepository persists categories
type CategoryRepository interface {
	FindByName(ctx context.Context, clientID uuid.UUID, name string) (*Category, error)
	Save(ctx context.Context, category *Category) error
}

// IncomeRepository persists income records
type IncomeRepository interface {
	FindAllForClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Income, error)
	Save(ctx context.Context, income *Income) error
}

// RecurrenceRepository persists recurring debt templates
type RecurrenceRepository interface {
	// FindDue returns active recurrences whose NextRunDate is not in the future
	FindDue(ctx context.Context) ([]Recurrence, error)
	FindAllForClient(ctx context.Context, clientID uuid.UUID) ([]Recurrence, error)
	Save(ctx context.Context, recurrence *Recurrence) error
}

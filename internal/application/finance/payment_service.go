package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService is the payment coordinator. It owns the four lifecycle
// operations against the (debt, installments, payments) tuple: applying a
// payment, applying a diverging payment via reconciliation, listing, and
// reversal. The debt aggregate enforces the monetary invariants; this
// service sequences the loads, the validation and the persistence.
type PaymentService struct {
	debtRepo        finance.DebtRepository
	installmentRepo finance.InstallmentRepository
	paymentRepo     finance.PaymentRepository
	instrumentRepo  finance.FinancialInstrumentRepository
	eventBus        shared.EventPublisher
	logger          *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	debtRepo finance.DebtRepository,
	installmentRepo finance.InstallmentRepository,
	paymentRepo finance.PaymentRepository,
	instrumentRepo finance.FinancialInstrumentRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		debtRepo:        debtRepo,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
		instrumentRepo:  instrumentRepo,
		eventBus:        eventBus,
		logger:          logger,
	}
}

// CreatePaymentRequest carries a payment to apply. The debt and the
// instrument can each be referenced by opaque ID or by their short
// human identification.
type CreatePaymentRequest struct {
	ClientID           uuid.UUID
	DebtID             *uuid.UUID
	DebtIdentification *int64
	InstrumentID       *uuid.UUID
	InstrumentCode     string
	// Amount is optional; when absent the scheduled amount is used
	// (the open installment's amount, or the debt's remaining amount).
	Amount      *decimal.Decimal
	PaymentDate time.Time
	Reconcile   bool
}

// CreatePayment applies a payment to a debt.
//
// Pipeline: resolve debt and instrument, pick the target installment
// (smallest unpaid sequence) for installment debts, build the payment,
// validate unless reconciling, insert the payment, apply to installment
// and debt, persist the debt under its optimistic lock. The payment
// insert comes first: a crash between insert and debt update leaves a
// recoverable record keyed by payment id.
func (s *PaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*finance.Payment, error) {
	debt, err := s.resolveDebt(ctx, req)
	if err != nil {
		return nil, err
	}

	instrument, err := s.resolveInstrument(ctx, req)
	if err != nil {
		return nil, err
	}

	var installments []finance.Installment
	var target *finance.Installment
	if debt.HasInstallments() {
		installments, err = s.installmentRepo.FindByDebt(ctx, debt.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load installments: %w", err)
		}
		target = finance.LatestUnpaid(installments)
		if target == nil {
			return nil, shared.NewDomainError("INVALID_STATE", "All installments are already paid")
		}
	}

	amount := s.defaultAmount(debt, target, req.Amount)

	payment, err := finance.NewPayment(debt, instrument.ID, amount, req.PaymentDate)
	if err != nil {
		return nil, err
	}

	// Reconciliation exists precisely because the actual amount diverges
	// from the scheduled one, so scheduled-amount validation is skipped.
	if !req.Reconcile {
		if target != nil {
			if err := target.ValidatePayment(amount); err != nil {
				return nil, err
			}
		} else {
			if err := debt.ValidatePaymentAmount(amount); err != nil {
				return nil, err
			}
		}
	}

	if err := s.paymentRepo.Insert(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	if target != nil {
		if err := target.ProcessPayment(payment.ID); err != nil {
			return nil, err
		}
		if err := s.installmentRepo.Update(ctx, target); err != nil {
			return nil, fmt.Errorf("failed to update installment: %w", err)
		}
	}

	if req.Reconcile {
		settles := target == nil || finance.LatestUnpaid(installments) == nil
		if err := debt.ReconcileWithActualPayment(payment.ID, amount, settles); err != nil {
			return nil, err
		}
	} else {
		if err := debt.ProcessPayment(payment.ID, amount); err != nil {
			return nil, err
		}
	}

	if err := s.debtRepo.SaveWithLock(ctx, debt); err != nil {
		return nil, fmt.Errorf("failed to save debt: %w", err)
	}

	s.publishEvents(ctx, debt)

	s.logger.Info("payment applied",
		zap.String("payment_id", payment.ID.String()),
		zap.String("debt_id", debt.ID.String()),
		zap.String("amount", amount.String()),
		zap.Bool("reconcile", req.Reconcile),
		zap.String("status", string(debt.Status)))

	return payment, nil
}

// RefundPayment reverses a payment: the settled installment (if any) is
// reopened, the debt sums are rewound and the payment record is deleted.
func (s *PaymentService) RefundPayment(ctx context.Context, clientID, paymentID uuid.UUID) error {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		return shared.ErrNotFound
	}
	if !payment.BelongsTo(clientID) {
		return shared.ErrForbidden
	}

	debt, err := s.debtRepo.FindByID(ctx, clientID, payment.DebtID)
	if err != nil {
		return fmt.Errorf("failed to load debt: %w", err)
	}
	if debt == nil {
		return shared.ErrNotFound
	}

	if debt.HasInstallments() {
		installment, err := s.installmentRepo.FindByPayment(ctx, payment.ID)
		if err != nil {
			return fmt.Errorf("failed to look up installment: %w", err)
		}
		if installment != nil {
			if err := installment.ReversePayment(); err != nil {
				return err
			}
			if err := s.installmentRepo.Update(ctx, installment); err != nil {
				return fmt.Errorf("failed to update installment: %w", err)
			}
		}
	}

	if err := debt.ReversePayment(payment.ID, payment.Amount); err != nil {
		return err
	}
	if err := s.debtRepo.SaveWithLock(ctx, debt); err != nil {
		return fmt.Errorf("failed to save debt: %w", err)
	}

	if err := s.paymentRepo.Delete(ctx, payment.ID); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	s.publishEvents(ctx, debt)

	s.logger.Info("payment reversed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("debt_id", debt.ID.String()),
		zap.String("status", string(debt.Status)))

	return nil
}

// GetPayment returns a single payment scoped to its owner
func (s *PaymentService) GetPayment(ctx context.Context, clientID, paymentID uuid.UUID) (*finance.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		return nil, shared.ErrNotFound
	}
	if !payment.BelongsTo(clientID) {
		return nil, shared.ErrForbidden
	}
	return payment, nil
}

// ListPayments returns the client's payments
func (s *PaymentService) ListPayments(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]finance.Payment, error) {
	payments, err := s.paymentRepo.FindAllForClient(ctx, clientID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *PaymentService) resolveDebt(ctx context.Context, req CreatePaymentRequest) (*finance.Debt, error) {
	var debt *finance.Debt
	var err error

	switch {
	case req.DebtID != nil:
		debt, err = s.debtRepo.FindByID(ctx, req.ClientID, *req.DebtID)
	case req.DebtIdentification != nil:
		debt, err = s.debtRepo.FindByIdentification(ctx, req.ClientID, *req.DebtIdentification)
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Debt reference is required")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load debt: %w", err)
	}
	if debt == nil {
		return nil, shared.ErrNotFound
	}
	return debt, nil
}

func (s *PaymentService) resolveInstrument(ctx context.Context, req CreatePaymentRequest) (*finance.FinancialInstrument, error) {
	var instrument *finance.FinancialInstrument
	var err error

	switch {
	case req.InstrumentID != nil:
		instrument, err = s.instrumentRepo.FindByID(ctx, req.ClientID, *req.InstrumentID)
	case req.InstrumentCode != "":
		instrument, err = s.instrumentRepo.FindByCode(ctx, req.ClientID, req.InstrumentCode)
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Instrument reference is required")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load instrument: %w", err)
	}
	if instrument == nil {
		return nil, shared.ErrNotFound
	}
	return instrument, nil
}

// defaultAmount picks the scheduled amount when the request omits one:
// the open installment's amount for installment debts, the remaining
// balance otherwise.
func (s *PaymentService) defaultAmount(debt *finance.Debt, target *finance.Installment, requested *decimal.Decimal) decimal.Decimal {
	if requested != nil {
		return *requested
	}
	if target != nil {
		return target.Amount
	}
	return debt.RemainingAmount
}

// publishEvents hands the aggregate's pending events to the bus.
// Delivery is best-effort and never gates the caller's response.
func (s *PaymentService) publishEvents(ctx context.Context, debt *finance.Debt) {
	events := debt.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	debt.ClearDomainEvents()
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events",
			zap.String("debt_id", debt.ID.String()),
			zap.Error(err))
	}
}

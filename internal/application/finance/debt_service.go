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

// DebtService creates and queries debts. Creation covers the whole shape
// a debt can take: plain, installment-based (the plan is built and stored
// in the same operation) and already-paid (a settling payment is attached
// through the payment coordinator).
type DebtService struct {
	debtRepo        finance.DebtRepository
	installmentRepo finance.InstallmentRepository
	instrumentRepo  finance.FinancialInstrumentRepository
	categoryRepo    finance.CategoryRepository
	paymentService  *PaymentService
	eventBus        shared.EventPublisher
	logger          *zap.Logger
}

// NewDebtService creates a new DebtService
func NewDebtService(
	debtRepo finance.DebtRepository,
	installmentRepo finance.InstallmentRepository,
	instrumentRepo finance.FinancialInstrumentRepository,
	categoryRepo finance.CategoryRepository,
	paymentService *PaymentService,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *DebtService {
	return &DebtService{
		debtRepo:        debtRepo,
		installmentRepo: installmentRepo,
		instrumentRepo:  instrumentRepo,
		categoryRepo:    categoryRepo,
		paymentService:  paymentService,
		eventBus:        eventBus,
		logger:          logger,
	}
}

// CreateDebtRequest carries a debt to create
type CreateDebtRequest struct {
	ClientID       uuid.UUID
	InstrumentID   *uuid.UUID
	InstrumentCode string
	CategoryName   string
	Description    string
	TotalAmount    decimal.Decimal
	DueDate        time.Time
	// InstallmentCount > 1 builds an installment plan anchored on DueDate
	InstallmentCount *int
	// IsPaid attaches a settling payment at creation ("baixa")
	IsPaid bool
}

// CreateDebt creates a debt, its installment plan when requested, and an
// immediate settling payment when IsPaid is set. IsPaid and an installment
// plan are mutually exclusive: the settling payment covers the full total,
// which contradicts a schedule of future installments.
func (s *DebtService) CreateDebt(ctx context.Context, req CreateDebtRequest) (*finance.Debt, error) {
	if req.IsPaid && req.InstallmentCount != nil && *req.InstallmentCount > 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "A debt cannot be created both paid and in installments")
	}

	instrument, err := s.resolveInstrument(ctx, req)
	if err != nil {
		return nil, err
	}

	debt, err := finance.NewDebt(req.ClientID, instrument.ID, req.Description, req.TotalAmount, req.DueDate)
	if err != nil {
		return nil, err
	}

	if req.CategoryName != "" {
		category, err := s.resolveCategory(ctx, req.ClientID, req.CategoryName)
		if err != nil {
			return nil, err
		}
		debt.CategoryID = &category.ID
	}

	if req.InstallmentCount != nil && *req.InstallmentCount > 1 {
		if err := debt.SetInstallmentCount(*req.InstallmentCount); err != nil {
			return nil, err
		}
	}

	if err := s.debtRepo.Save(ctx, debt); err != nil {
		return nil, fmt.Errorf("failed to save debt: %w", err)
	}

	if debt.HasInstallments() {
		plan, err := finance.BuildInstallmentPlan(debt, debt.DueDate)
		if err != nil {
			return nil, err
		}
		if err := s.installmentRepo.InsertBatch(ctx, plan); err != nil {
			return nil, fmt.Errorf("failed to save installment plan: %w", err)
		}
	}

	s.publishEvents(ctx, debt)

	if req.IsPaid {
		if _, err := s.paymentService.CreatePayment(ctx, CreatePaymentRequest{
			ClientID:     req.ClientID,
			DebtID:       &debt.ID,
			InstrumentID: &instrument.ID,
			PaymentDate:  req.DueDate,
		}); err != nil {
			return nil, err
		}
		// reload to reflect the settling payment
		debt, err = s.debtRepo.FindByID(ctx, req.ClientID, debt.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload debt: %w", err)
		}
	}

	s.logger.Info("debt created",
		zap.String("debt_id", debt.ID.String()),
		zap.Int64("identification", debt.Identification),
		zap.String("total", debt.TotalAmount.String()),
		zap.Bool("installments", debt.HasInstallments()),
		zap.Bool("paid", req.IsPaid))

	return debt, nil
}

// GetDebt returns a debt with its installments loaded, scoped to the client
func (s *DebtService) GetDebt(ctx context.Context, clientID, debtID uuid.UUID) (*finance.Debt, []finance.Installment, error) {
	debt, err := s.debtRepo.FindByID(ctx, clientID, debtID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load debt: %w", err)
	}
	if debt == nil {
		return nil, nil, shared.ErrNotFound
	}

	var installments []finance.Installment
	if debt.HasInstallments() {
		installments, err = s.installmentRepo.FindByDebt(ctx, debt.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load installments: %w", err)
		}
		finance.SortBySequence(installments)
	}
	return debt, installments, nil
}

// ListDebts returns the client's debts
func (s *DebtService) ListDebts(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]finance.Debt, error) {
	debts, err := s.debtRepo.FindAllForClient(ctx, clientID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	return debts, nil
}

// ListOpenDebts returns the client's debts that still have an open balance
func (s *DebtService) ListOpenDebts(ctx context.Context, clientID uuid.UUID) ([]finance.Debt, error) {
	filter := shared.DefaultFilter()
	filter.Filters["open"] = true
	return s.ListDebts(ctx, clientID, filter)
}

func (s *DebtService) resolveInstrument(ctx context.Context, req CreateDebtRequest) (*finance.FinancialInstrument, error) {
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

// resolveCategory finds the named category, creating it on first use
func (s *DebtService) resolveCategory(ctx context.Context, clientID uuid.UUID, name string) (*finance.Category, error) {
	category, err := s.categoryRepo.FindByName(ctx, clientID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category != nil {
		return category, nil
	}

	category, err = finance.NewCategory(clientID, name)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return category, nil
}

func (s *DebtService) publishEvents(ctx context.Context, debt *finance.Debt) {
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

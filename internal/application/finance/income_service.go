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

// IncomeService records and lists incomes
type IncomeService struct {
	incomeRepo     finance.IncomeRepository
	instrumentRepo finance.FinancialInstrumentRepository
	categoryRepo   finance.CategoryRepository
	logger         *zap.Logger
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(
	incomeRepo finance.IncomeRepository,
	instrumentRepo finance.FinancialInstrumentRepository,
	categoryRepo finance.CategoryRepository,
	logger *zap.Logger,
) *IncomeService {
	return &IncomeService{
		incomeRepo:     incomeRepo,
		instrumentRepo: instrumentRepo,
		categoryRepo:   categoryRepo,
		logger:         logger,
	}
}

// CreateIncomeRequest carries an income to record
type CreateIncomeRequest struct {
	ClientID       uuid.UUID
	InstrumentID   *uuid.UUID
	InstrumentCode string
	CategoryName   string
	Description    string
	Amount         decimal.Decimal
	ReceiptDate    time.Time
}

// CreateIncome records money received into an instrument
func (s *IncomeService) CreateIncome(ctx context.Context, req CreateIncomeRequest) (*finance.Income, error) {
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

	income, err := finance.NewIncome(req.ClientID, instrument.ID, req.Description, req.Amount, req.ReceiptDate)
	if err != nil {
		return nil, err
	}

	if req.CategoryName != "" {
		category, err := s.categoryRepo.FindByName(ctx, req.ClientID, req.CategoryName)
		if err != nil {
			return nil, fmt.Errorf("failed to load category: %w", err)
		}
		if category == nil {
			category, err = finance.NewCategory(req.ClientID, req.CategoryName)
			if err != nil {
				return nil, err
			}
			if err := s.categoryRepo.Save(ctx, category); err != nil {
				return nil, fmt.Errorf("failed to save category: %w", err)
			}
		}
		income.CategoryID = &category.ID
	}

	if err := s.incomeRepo.Save(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to save income: %w", err)
	}

	s.logger.Info("income recorded",
		zap.String("income_id", income.ID.String()),
		zap.String("amount", income.Amount.String()))

	return income, nil
}

// ListIncomes returns the client's income records
func (s *IncomeService) ListIncomes(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]finance.Income, error) {
	incomes, err := s.incomeRepo.FindAllForClient(ctx, clientID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	return incomes, nil
}

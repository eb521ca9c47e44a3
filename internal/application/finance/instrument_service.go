package finance

import (
	"context"
	"fmt"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InstrumentService manages financial instruments
type InstrumentService struct {
	instrumentRepo finance.FinancialInstrumentRepository
	logger         *zap.Logger
}

// NewInstrumentService creates a new InstrumentService
func NewInstrumentService(instrumentRepo finance.FinancialInstrumentRepository, logger *zap.Logger) *InstrumentService {
	return &InstrumentService{
		instrumentRepo: instrumentRepo,
		logger:         logger,
	}
}

// CreateInstrumentRequest carries a financial instrument to create
type CreateInstrumentRequest struct {
	ClientID           uuid.UUID
	Name               string
	Type               finance.InstrumentType
	IdentificationCode string
	// Credit-card cycle days; ignored for other types
	StatementClosingDay int
	PaymentDueDay       int
}

// CreateInstrument creates a financial instrument of the requested type.
// The 4-character identification code must be unique per client.
func (s *InstrumentService) CreateInstrument(ctx context.Context, req CreateInstrumentRequest) (*finance.FinancialInstrument, error) {
	existing, err := s.instrumentRepo.FindByCode(ctx, req.ClientID, req.IdentificationCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check instrument code: %w", err)
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	var instrument *finance.FinancialInstrument
	switch req.Type {
	case finance.InstrumentTypeBankAccount:
		instrument, err = finance.NewBankAccount(req.ClientID, req.Name, req.IdentificationCode)
	case finance.InstrumentTypeCreditCard:
		instrument, err = finance.NewCreditCard(req.ClientID, req.Name, req.IdentificationCode, req.StatementClosingDay, req.PaymentDueDay)
	case finance.InstrumentTypeInvestmentBox:
		instrument, err = finance.NewInvestmentBox(req.ClientID, req.Name, req.IdentificationCode)
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown instrument type")
	}
	if err != nil {
		return nil, err
	}

	if err := s.instrumentRepo.Save(ctx, instrument); err != nil {
		return nil, fmt.Errorf("failed to save instrument: %w", err)
	}

	s.logger.Info("instrument created",
		zap.String("instrument_id", instrument.ID.String()),
		zap.String("type", string(instrument.Type)),
		zap.String("code", instrument.IdentificationCode))

	return instrument, nil
}

// GetInstrument returns a single instrument scoped to the client
func (s *InstrumentService) GetInstrument(ctx context.Context, clientID, id uuid.UUID) (*finance.FinancialInstrument, error) {
	instrument, err := s.instrumentRepo.FindByID(ctx, clientID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load instrument: %w", err)
	}
	if instrument == nil {
		return nil, shared.ErrNotFound
	}
	return instrument, nil
}

// ListInstruments returns all of the client's instruments
func (s *InstrumentService) ListInstruments(ctx context.Context, clientID uuid.UUID) ([]finance.FinancialInstrument, error) {
	instruments, err := s.instrumentRepo.FindAllForClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", err)
	}
	return instruments, nil
}

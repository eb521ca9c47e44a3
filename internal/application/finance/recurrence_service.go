package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecurrenceService manages recurring debt templates and materializes
// the debts they are due to emit.
type RecurrenceService struct {
	recurrenceRepo finance.RecurrenceRepository
	debtService    *DebtService
	logger         *zap.Logger
}

// NewRecurrenceService creates a new RecurrenceService
func NewRecurrenceService(
	recurrenceRepo finance.RecurrenceRepository,
	debtService *DebtService,
	logger *zap.Logger,
) *RecurrenceService {
	return &RecurrenceService{
		recurrenceRepo: recurrenceRepo,
		debtService:    debtService,
		logger:         logger,
	}
}

// CreateRecurrenceRequest carries a recurrence to create
type CreateRecurrenceRequest struct {
	ClientID     uuid.UUID
	InstrumentID uuid.UUID
	CategoryName string
	Description  string
	Amount       decimal.Decimal
	DueDay       int
	FirstRun     time.Time
}

// CreateRecurrence creates an active monthly recurrence
func (s *RecurrenceService) CreateRecurrence(ctx context.Context, req CreateRecurrenceRequest) (*finance.Recurrence, error) {
	recurrence, err := finance.NewRecurrence(req.ClientID, req.InstrumentID, req.Description, req.Amount, req.DueDay, req.FirstRun)
	if err != nil {
		return nil, err
	}

	if err := s.recurrenceRepo.Save(ctx, recurrence); err != nil {
		return nil, fmt.Errorf("failed to save recurrence: %w", err)
	}
	return recurrence, nil
}

// ListRecurrences returns the client's recurrences
func (s *RecurrenceService) ListRecurrences(ctx context.Context, clientID uuid.UUID) ([]finance.Recurrence, error) {
	recurrences, err := s.recurrenceRepo.FindAllForClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurrences: %w", err)
	}
	return recurrences, nil
}

// EmitDueDebts materializes a debt for every recurrence whose run date has
// arrived and advances each schedule one month. Failures on one template
// never block the rest; the scheduler retries on its next tick.
func (s *RecurrenceService) EmitDueDebts(ctx context.Context, now time.Time) (int, error) {
	due, err := s.recurrenceRepo.FindDue(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load due recurrences: %w", err)
	}

	emitted := 0
	for i := range due {
		recurrence := &due[i]
		if !recurrence.IsDue(now) {
			continue
		}

		_, err := s.debtService.CreateDebt(ctx, CreateDebtRequest{
			ClientID:     recurrence.ClientID,
			InstrumentID: &recurrence.AccountID,
			Description:  recurrence.Description,
			TotalAmount:  recurrence.Amount,
			DueDate:      recurrence.EmitDueDate(),
		})
		if err != nil {
			s.logger.Error("failed to emit recurring debt",
				zap.String("recurrence_id", recurrence.ID.String()),
				zap.Error(err))
			continue
		}

		recurrence.Advance()
		if err := s.recurrenceRepo.Save(ctx, recurrence); err != nil {
			s.logger.Error("failed to advance recurrence",
				zap.String("recurrence_id", recurrence.ID.String()),
				zap.Error(err))
			continue
		}
		emitted++
	}

	if emitted > 0 {
		s.logger.Info("recurring debts emitted", zap.Int("count", emitted))
	}
	return emitted, nil
}

package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFinancialInstrumentRepository implements FinancialInstrumentRepository using GORM
type GormFinancialInstrumentRepository struct {
	db *gorm.DB
}

// NewGormFinancialInstrumentRepository creates a new GormFinancialInstrumentRepository
func NewGormFinancialInstrumentRepository(db *gorm.DB) *GormFinancialInstrumentRepository {
	return &GormFinancialInstrumentRepository{db: db}
}

// FindByID finds a financial instrument by ID within a client scope.
// Returns (nil, nil) when no instrument matches.
func (r *GormFinancialInstrumentRepository) FindByID(ctx context.Context, clientID, id uuid.UUID) (*finance.FinancialInstrument, error) {
	var model models.FinancialInstrumentModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND id = ?", clientID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode resolves the 4-character identification code within a client scope
func (r *GormFinancialInstrumentRepository) FindByCode(ctx context.Context, clientID uuid.UUID, code string) (*finance.FinancialInstrument, error) {
	var model models.FinancialInstrumentModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND identification_code = ?", clientID, strings.ToLower(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForClient finds all financial instruments of a client
func (r *GormFinancialInstrumentRepository) FindAllForClient(ctx context.Context, clientID uuid.UUID) ([]finance.FinancialInstrument, error) {
	var rows []models.FinancialInstrumentModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	instruments := make([]finance.FinancialInstrument, 0, len(rows))
	for i := range rows {
		instruments = append(instruments, *rows[i].ToDomain())
	}
	return instruments, nil
}

// Save creates or updates a financial instrument
func (r *GormFinancialInstrumentRepository) Save(ctx context.Context, instrument *finance.FinancialInstrument) error {
	var model models.FinancialInstrumentModel
	model.FromDomain(instrument)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormFinancialInstrumentRepository implements FinancialInstrumentRepository
var _ finance.FinancialInstrumentRepository = (*GormFinancialInstrumentRepository)(nil)

package persistence

import (
	"context"
	"time"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecurrenceRepository implements RecurrenceRepository using GORM
type GormRecurrenceRepository struct {
	db *gorm.DB
}

// NewGormRecurrenceRepository creates a new GormRecurrenceRepository
func NewGormRecurrenceRepository(db *gorm.DB) *GormRecurrenceRepository {
	return &GormRecurrenceRepository{db: db}
}

// FindDue returns active recurrences across all clients whose next run
// date is not in the future
func (r *GormRecurrenceRepository) FindDue(ctx context.Context) ([]finance.Recurrence, error) {
	var rows []models.RecurrenceModel
	if err := r.db.WithContext(ctx).
		Where("active = ? AND next_run_date <= ?", true, time.Now().UTC()).
		Order("next_run_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	recurrences := make([]finance.Recurrence, 0, len(rows))
	for i := range rows {
		recurrences = append(recurrences, *rows[i].ToDomain())
	}
	return recurrences, nil
}

// FindAllForClient finds all recurrences of a client
func (r *GormRecurrenceRepository) FindAllForClient(ctx context.Context, clientID uuid.UUID) ([]finance.Recurrence, error) {
	var rows []models.RecurrenceModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("description ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	recurrences := make([]finance.Recurrence, 0, len(rows))
	for i := range rows {
		recurrences = append(recurrences, *rows[i].ToDomain())
	}
	return recurrences, nil
}

// Save creates or updates a recurrence
func (r *GormRecurrenceRepository) Save(ctx context.Context, recurrence *finance.Recurrence) error {
	var model models.RecurrenceModel
	model.FromDomain(recurrence)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormRecurrenceRepository implements RecurrenceRepository
var _ finance.RecurrenceRepository = (*GormRecurrenceRepository)(nil)

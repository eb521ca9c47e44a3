package persistence

import (
	"context"
	"errors"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/finman/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID.
// Returns (nil, nil) when no payment matches.
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForClient finds all payments for a client matching the filter
func (r *GormPaymentRepository) FindAllForClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]finance.Payment, error) {
	var rows []models.PaymentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("client_id = ?", clientID), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	payments := make([]finance.Payment, 0, len(rows))
	for i := range rows {
		payments = append(payments, *rows[i].ToDomain())
	}
	return payments, nil
}

// Insert inserts a new payment record. Payments are immutable; there is
// no update path.
func (r *GormPaymentRepository) Insert(ctx context.Context, payment *finance.Payment) error {
	var model models.PaymentModel
	model.FromDomain(payment)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Delete removes a payment record
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "debt_id":
			query = query.Where("debt_id = ?", value)
		case "instrument_id":
			query = query.Where("instrument_id = ?", value)
		case "paid_before":
			query = query.Where("payment_date <= ?", value)
		case "paid_after":
			query = query.Where("payment_date >= ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, PaymentSortFields, "payment_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)

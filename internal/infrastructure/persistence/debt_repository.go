package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/finman/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDebtRepository implements DebtRepository using GORM
type GormDebtRepository struct {
	db *gorm.DB
}

// NewGormDebtRepository creates a new GormDebtRepository
func NewGormDebtRepository(db *gorm.DB) *GormDebtRepository {
	return &GormDebtRepository{db: db}
}

// FindByID finds a debt by ID within a client scope.
// Returns (nil, nil) when no debt matches.
func (r *GormDebtRepository) FindByID(ctx context.Context, clientID, id uuid.UUID) (*finance.Debt, error) {
	var model models.DebtModel
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

// FindByIdentification finds a debt by its serial identification within a client scope
func (r *GormDebtRepository) FindByIdentification(ctx context.Context, clientID uuid.UUID, identification int64) (*finance.Debt, error) {
	var model models.DebtModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND identification = ?", clientID, identification).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForClient finds all debts for a client matching the filter
func (r *GormDebtRepository) FindAllForClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]finance.Debt, error) {
	var rows []models.DebtModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DebtModel{}).Where("client_id = ?", clientID), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	debts := make([]finance.Debt, 0, len(rows))
	for i := range rows {
		debts = append(debts, *rows[i].ToDomain())
	}
	return debts, nil
}

// Save creates or updates a debt without a version check.
// After an insert the store-assigned identification is copied back onto
// the aggregate.
func (r *GormDebtRepository) Save(ctx context.Context, debt *finance.Debt) error {
	var model models.DebtModel
	model.FromDomain(debt)

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}

	if debt.Identification == 0 {
		var stored models.DebtModel
		if err := r.db.WithContext(ctx).
			Select("identification").
			Where("id = ?", debt.ID).
			First(&stored).Error; err != nil {
			return err
		}
		debt.Identification = stored.Identification
	}
	return nil
}

// SaveWithLock updates a debt with optimistic concurrency control.
// The update only applies when the stored version still matches the
// version the aggregate was loaded with; otherwise ErrConcurrencyConflict
// is returned and the in-memory version is left untouched.
func (r *GormDebtRepository) SaveWithLock(ctx context.Context, debt *finance.Debt) error {
	loadedVersion := debt.Version
	debt.IncrementVersion()

	var model models.DebtModel
	model.FromDomain(debt)

	result := r.db.WithContext(ctx).
		Model(&models.DebtModel{}).
		Where("id = ? AND version = ?", debt.ID, loadedVersion).
		Updates(map[string]interface{}{
			"category_id":      model.CategoryID,
			"description":      model.Description,
			"total_amount":     model.TotalAmount,
			"paid_amount":      model.PaidAmount,
			"discount_amount":  model.DiscountAmount,
			"remaining_amount": model.RemainingAmount,
			"due_date":         model.DueDate,
			"status":           model.Status,
			"version":          model.Version,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		debt.Version = loadedVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		debt.Version = loadedVersion
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormDebtRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "open":
			query = query.Where("status <> ?", string(finance.DebtStatusSettled))
		case "status":
			query = query.Where("status = ?", value)
		case "account_id":
			query = query.Where("account_id = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "due_before":
			query = query.Where("due_date <= ?", value)
		case "due_after":
			query = query.Where("due_date >= ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, DebtSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormDebtRepository implements DebtRepository
var _ finance.DebtRepository = (*GormDebtRepository)(nil)

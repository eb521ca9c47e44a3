package persistence

import (
	"context"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/finman/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormIncomeRepository implements IncomeRepository using GORM
type GormIncomeRepository struct {
	db *gorm.DB
}

// NewGormIncomeRepository creates a new GormIncomeRepository
func NewGormIncomeRepository(db *gorm.DB) *GormIncomeRepository {
	return &GormIncomeRepository{db: db}
}

// FindAllForClient finds all income records for a client matching the filter
func (r *GormIncomeRepository) FindAllForClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]finance.Income, error) {
	var rows []models.IncomeModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.IncomeModel{}).Where("client_id = ?", clientID), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	incomes := make([]finance.Income, 0, len(rows))
	for i := range rows {
		incomes = append(incomes, *rows[i].ToDomain())
	}
	return incomes, nil
}

// Save creates or updates an income record
func (r *GormIncomeRepository) Save(ctx context.Context, income *finance.Income) error {
	var model models.IncomeModel
	model.FromDomain(income)
	return r.db.WithContext(ctx).Save(&model).Error
}

// applyFilter applies filter options to the query
func (r *GormIncomeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "account_id":
			query = query.Where("account_id = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "received_before":
			query = query.Where("receipt_date <= ?", value)
		case "received_after":
			query = query.Where("receipt_date >= ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, IncomeSortFields, "receipt_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormIncomeRepository implements IncomeRepository
var _ finance.IncomeRepository = (*GormIncomeRepository)(nil)

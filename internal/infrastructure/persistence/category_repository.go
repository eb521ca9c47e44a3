package persistence

import (
	"context"
	"errors"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByName finds a category by its exact name within a client scope.
// Returns (nil, nil) when no category matches.
func (r *GormCategoryRepository) FindByName(ctx context.Context, clientID uuid.UUID, name string) (*finance.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND name = ?", clientID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *finance.Category) error {
	var model models.CategoryModel
	model.FromDomain(category)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ finance.CategoryRepository = (*GormCategoryRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements InstallmentRepository using GORM
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GormInstallmentRepository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

// InsertBatch inserts a full installment plan atomically
func (r *GormInstallmentRepository) InsertBatch(ctx context.Context, installments []finance.Installment) error {
	if len(installments) == 0 {
		return nil
	}

	rows := make([]models.InstallmentModel, len(installments))
	for i := range installments {
		rows[i].FromDomain(&installments[i])
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}

// FindByDebt finds all installments of a debt ordered by sequence
func (r *GormInstallmentRepository) FindByDebt(ctx context.Context, debtID uuid.UUID) ([]finance.Installment, error) {
	var rows []models.InstallmentModel
	if err := r.db.WithContext(ctx).
		Where("debt_id = ?", debtID).
		Order("sequence ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	installments := make([]finance.Installment, 0, len(rows))
	for i := range rows {
		installments = append(installments, rows[i].ToDomain())
	}
	return installments, nil
}

// FindByPayment finds the installment settled by the given payment.
// Returns (nil, nil) when no installment references the payment.
func (r *GormInstallmentRepository) FindByPayment(ctx context.Context, paymentID uuid.UUID) (*finance.Installment, error) {
	var model models.InstallmentModel
	if err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	installment := model.ToDomain()
	return &installment, nil
}

// Update updates a single installment identified by (debt_id, sequence)
func (r *GormInstallmentRepository) Update(ctx context.Context, installment *finance.Installment) error {
	var model models.InstallmentModel
	model.FromDomain(installment)

	return r.db.WithContext(ctx).
		Model(&models.InstallmentModel{}).
		Where("debt_id = ? AND sequence = ?", installment.DebtID, installment.Sequence).
		Updates(map[string]interface{}{
			"amount":     model.Amount,
			"due_date":   model.DueDate,
			"is_paid":    model.IsPaid,
			"payment_id": model.PaymentID,
			"updated_at": model.UpdatedAt,
		}).Error
}

// Ensure GormInstallmentRepository implements InstallmentRepository
var _ finance.InstallmentRepository = (*GormInstallmentRepository)(nil)

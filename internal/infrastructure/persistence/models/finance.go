package models

import (
	"time"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtModel is the persistence model for the Debt aggregate.
type DebtModel struct {
	ClientAggregateModel
	// Identification is a store-assigned serial alternate key.
	Identification   int64           `gorm:"autoIncrement;uniqueIndex;not null"`
	AccountID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID       *uuid.UUID      `gorm:"type:uuid;index"`
	Description      string          `gorm:"type:varchar(500);not null"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaidAmount       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	DiscountAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	RemainingAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DueDate          time.Time       `gorm:"not null;index"`
	Status            string     `gorm:"type:varchar(20);not null;index"`
	InstallmentCount  *int
	DiscountPaymentID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (DebtModel) TableName() string {
	return "finance_manager.debts"
}

// ToDomain converts the persistence model to a domain Debt aggregate
func (m *DebtModel) ToDomain() *finance.Debt {
	debt := &finance.Debt{
		Identification:   m.Identification,
		AccountID:        m.AccountID,
		CategoryID:       m.CategoryID,
		Description:      m.Description,
		TotalAmount:      m.TotalAmount,
		PaidAmount:       m.PaidAmount,
		DiscountAmount:   m.DiscountAmount,
		RemainingAmount:  m.RemainingAmount,
		DueDate:          m.DueDate,
		Status:            finance.DebtStatus(m.Status),
		InstallmentCount:  m.InstallmentCount,
		DiscountPaymentID: m.DiscountPaymentID,
	}
	m.PopulateClientAggregateRoot(&debt.ClientAggregateRoot)
	return debt
}

// FromDomain populates the persistence model from a domain Debt aggregate.
// Identification stays untouched when zero so the store can assign it.
func (m *DebtModel) FromDomain(d *finance.Debt) {
	m.FromDomainClientAggregateRoot(d.ClientAggregateRoot)
	m.Identification = d.Identification
	m.AccountID = d.AccountID
	m.CategoryID = d.CategoryID
	m.Description = d.Description
	m.TotalAmount = d.TotalAmount
	m.PaidAmount = d.PaidAmount
	m.DiscountAmount = d.DiscountAmount
	m.RemainingAmount = d.RemainingAmount
	m.DueDate = d.DueDate
	m.Status = string(d.Status)
	m.InstallmentCount = d.InstallmentCount
	m.DiscountPaymentID = d.DiscountPaymentID
}

// InstallmentModel is the persistence model for one slice of an
// installment plan. Its identity is the pair (debt_id, sequence).
type InstallmentModel struct {
	DebtID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Sequence  int             `gorm:"primaryKey"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DueDate   time.Time       `gorm:"not null"`
	IsPaid    bool            `gorm:"not null;default:false"`
	PaymentID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "finance_manager.installments"
}

// ToDomain converts the persistence model to a domain Installment
func (m *InstallmentModel) ToDomain() finance.Installment {
	return finance.Installment{
		DebtID:    m.DebtID,
		Sequence:  m.Sequence,
		Amount:    m.Amount,
		DueDate:   m.DueDate,
		IsPaid:    m.IsPaid,
		PaymentID: m.PaymentID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Installment
func (m *InstallmentModel) FromDomain(i *finance.Installment) {
	m.DebtID = i.DebtID
	m.Sequence = i.Sequence
	m.Amount = i.Amount
	m.DueDate = i.DueDate
	m.IsPaid = i.IsPaid
	m.PaymentID = i.PaymentID
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}

// PaymentModel is the persistence model for immutable payment records
type PaymentModel struct {
	BaseModel
	DebtID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	InstrumentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentDate  time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "finance_manager.payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		BaseEntity:   m.BaseModel.ToDomain(),
		DebtID:       m.DebtID,
		InstrumentID: m.InstrumentID,
		ClientID:     m.ClientID,
		Amount:       m.Amount,
		PaymentDate:  m.PaymentDate,
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.DebtID = p.DebtID
	m.InstrumentID = p.InstrumentID
	m.ClientID = p.ClientID
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
}

// FinancialInstrumentModel is the persistence model for financial instruments
type FinancialInstrumentModel struct {
	ClientAggregateModel
	Name                string `gorm:"type:varchar(200);not null"`
	Type                string `gorm:"type:varchar(20);not null"`
	IdentificationCode  string `gorm:"type:varchar(4);not null;index:idx_instrument_client_code,unique,composite:client_id"`
	StatementClosingDay int    `gorm:"not null;default:0"`
	PaymentDueDay       int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (FinancialInstrumentModel) TableName() string {
	return "finance_manager.financial_instruments"
}

// ToDomain converts the persistence model to a domain FinancialInstrument
func (m *FinancialInstrumentModel) ToDomain() *finance.FinancialInstrument {
	instrument := &finance.FinancialInstrument{
		Name:                m.Name,
		Type:                finance.InstrumentType(m.Type),
		IdentificationCode:  m.IdentificationCode,
		StatementClosingDay: m.StatementClosingDay,
		PaymentDueDay:       m.PaymentDueDay,
	}
	m.PopulateClientAggregateRoot(&instrument.ClientAggregateRoot)
	return instrument
}

// FromDomain populates the persistence model from a domain FinancialInstrument
func (m *FinancialInstrumentModel) FromDomain(f *finance.FinancialInstrument) {
	m.FromDomainClientAggregateRoot(f.ClientAggregateRoot)
	m.Name = f.Name
	m.Type = string(f.Type)
	m.IdentificationCode = f.IdentificationCode
	m.StatementClosingDay = f.StatementClosingDay
	m.PaymentDueDay = f.PaymentDueDay
}

// CategoryModel is the persistence model for categories
type CategoryModel struct {
	ClientAggregateModel
	Name string `gorm:"type:varchar(100);not null;index:idx_category_client_name,unique,composite:client_id"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "finance_manager.categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *finance.Category {
	category := &finance.Category{Name: m.Name}
	m.PopulateClientAggregateRoot(&category.ClientAggregateRoot)
	return category
}

// FromDomain populates the persistence model from a domain Category
func (m *CategoryModel) FromDomain(c *finance.Category) {
	m.FromDomainClientAggregateRoot(c.ClientAggregateRoot)
	m.Name = c.Name
}

// IncomeModel is the persistence model for income records
type IncomeModel struct {
	ClientAggregateModel
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ReceiptDate time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (IncomeModel) TableName() string {
	return "finance_manager.incomes"
}

// ToDomain converts the persistence model to a domain Income
func (m *IncomeModel) ToDomain() *finance.Income {
	income := &finance.Income{
		AccountID:   m.AccountID,
		CategoryID:  m.CategoryID,
		Description: m.Description,
		Amount:      m.Amount,
		ReceiptDate: m.ReceiptDate,
	}
	m.PopulateClientAggregateRoot(&income.ClientAggregateRoot)
	return income
}

// FromDomain populates the persistence model from a domain Income
func (m *IncomeModel) FromDomain(i *finance.Income) {
	m.FromDomainClientAggregateRoot(i.ClientAggregateRoot)
	m.AccountID = i.AccountID
	m.CategoryID = i.CategoryID
	m.Description = i.Description
	m.Amount = i.Amount
	m.ReceiptDate = i.ReceiptDate
}

// RecurrenceModel is the persistence model for recurring debt templates
type RecurrenceModel struct {
	ClientAggregateModel
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DueDay      int             `gorm:"not null"`
	NextRunDate time.Time       `gorm:"not null;index"`
	Active      bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (RecurrenceModel) TableName() string {
	return "finance_manager.recurrences"
}

// ToDomain converts the persistence model to a domain Recurrence
func (m *RecurrenceModel) ToDomain() *finance.Recurrence {
	recurrence := &finance.Recurrence{
		AccountID:   m.AccountID,
		CategoryID:  m.CategoryID,
		Description: m.Description,
		Amount:      m.Amount,
		DueDay:      m.DueDay,
		NextRunDate: m.NextRunDate,
		Active:      m.Active,
	}
	m.PopulateClientAggregateRoot(&recurrence.ClientAggregateRoot)
	return recurrence
}

// FromDomain populates the persistence model from a domain Recurrence
func (m *RecurrenceModel) FromDomain(r *finance.Recurrence) {
	m.FromDomainClientAggregateRoot(r.ClientAggregateRoot)
	m.AccountID = r.AccountID
	m.CategoryID = r.CategoryID
	m.Description = r.Description
	m.Amount = r.Amount
	m.DueDay = r.DueDay
	m.NextRunDate = r.NextRunDate
	m.Active = r.Active
}

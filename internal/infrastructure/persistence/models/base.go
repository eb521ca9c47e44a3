package models

import (
	"time"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// ClientAggregateModel provides common persistence fields for client-scoped
// aggregate roots.
type ClientAggregateModel struct {
	AggregateModel
	ClientID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainClientAggregateRoot populates ClientAggregateModel from domain ClientAggregateRoot
func (m *ClientAggregateModel) FromDomainClientAggregateRoot(c shared.ClientAggregateRoot) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.ClientID = c.ClientID
}

// PopulateClientAggregateRoot populates a domain ClientAggregateRoot from persistence model
func (m *ClientAggregateModel) PopulateClientAggregateRoot(c *shared.ClientAggregateRoot) {
	c.BaseAggregateRoot.BaseEntity.ID = m.ID
	c.BaseAggregateRoot.BaseEntity.CreatedAt = m.CreatedAt
	c.BaseAggregateRoot.BaseEntity.UpdatedAt = m.UpdatedAt
	c.BaseAggregateRoot.Version = m.Version
	c.ClientID = m.ClientID
}

package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

// ClientAggregateRoot extends BaseAggregateRoot with per-client ownership.
// Every finance aggregate belongs to exactly one client (the authenticated
// user) and all reads and writes are scoped by that ID.
type ClientAggregateRoot struct {
	BaseAggregateRoot
	ClientID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewClientAggregateRoot creates a new client-scoped aggregate root
func NewClientAggregateRoot(clientID uuid.UUID) ClientAggregateRoot {
	return ClientAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		ClientID:          clientID,
	}
}

// BelongsTo reports whether the aggregate is owned by the given client
func (c *ClientAggregateRoot) BelongsTo(clientID uuid.UUID) bool {
	return c.ClientID == clientID
}

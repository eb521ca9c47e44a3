package finance

import (
	"strings"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category labels debts and incomes. Categories are resolved by name at
// creation time and auto-created when missing.
type Category struct {
	shared.ClientAggregateRoot
	Name string
}

// NewCategory creates a category owned by the given client
func NewCategory(clientID uuid.UUID, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category name cannot be empty")
	}
	return &Category{
		ClientAggregateRoot: shared.NewClientAggregateRoot(clientID),
		Name:                name,
	}, nil
}

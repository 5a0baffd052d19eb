package budget

import (
	"context"

	"bizledger/internal/core/id"
	"bizledger/internal/domain"
)

// Repository defines the interface for Budget persistence.
type Repository interface {
	domain.CatalogRepository[*Budget]

	// ListByAccount retrieves budgets attached to one analytical account.
	ListByAccount(ctx context.Context, accountID id.ID) ([]*Budget, error)
}

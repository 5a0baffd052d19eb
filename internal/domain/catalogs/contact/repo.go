package contact

import (
	"context"

	"bizledger/internal/core/id"
	"bizledger/internal/domain"
)

// Repository defines the interface for Contact persistence.
type Repository interface {
	domain.CatalogRepository[*Contact]

	// FindByTaxID retrieves a contact by tax ID (unique among non-deleted contacts).
	FindByTaxID(ctx context.Context, taxID string) (*Contact, error)

	// GetForUpdate retrieves a contact with row lock (for transactional updates).
	GetForUpdate(ctx context.Context, id id.ID) (*Contact, error)
}

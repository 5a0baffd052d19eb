package contact

import (
	"context"
	"fmt"
	"time"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/id"
	"bizledger/internal/domain"
	"bizledger/pkg/numerator"
)

// Service provides business logic for the Contact catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Contact] // Embedded for delegation
	repo                             Repository
	numerator                        *numerator.Service
}

// NewService creates a new Contact service.
func NewService(
	repo Repository,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Contact]{
		Repo:       repo,
		TxManager:  nil, // Will be obtained from context
		Numerator:  numerator,
		EntityName: "contact",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	// Register hooks for entity-specific logic
	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks before create.
func (s *Service) prepareForCreate(ctx context.Context, c *Contact) error {
	// Generate code if not provided
	if c.Code == "" {
		cfg := numerator.DefaultConfig("CT")
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	// Check tax ID uniqueness
	if c.TaxID != nil && *c.TaxID != "" {
		exists, err := s.checkTaxIDExists(ctx, *c.TaxID, c.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewConflict("contact with this tax ID already exists").
				WithDetail("taxId", c.TaxID)
		}
	}

	return nil
}

// prepareForUpdate handles uniqueness checks before update.
func (s *Service) prepareForUpdate(ctx context.Context, c *Contact) error {
	// Check tax ID uniqueness (exclude current record)
	if c.TaxID != nil && *c.TaxID != "" {
		exists, err := s.checkTaxIDExists(ctx, *c.TaxID, c.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewConflict("contact with this tax ID already exists").
				WithDetail("taxId", c.TaxID)
		}
	}

	return nil
}

// --- Entity-specific methods (not in base CatalogService) ---

// FindByTaxID retrieves a contact by tax ID.
func (s *Service) FindByTaxID(ctx context.Context, taxID string) (*Contact, error) {
	return s.repo.FindByTaxID(ctx, taxID)
}

// checkTaxIDExists checks if a tax ID is already used by another contact.
func (s *Service) checkTaxIDExists(ctx context.Context, taxID string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByTaxID(ctx, taxID)
	if err != nil {
		// Not found is OK; other errors must be propagated (DB errors, timeouts, etc.).
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	// If found and it's a different record
	return existing.ID != excludeID, nil
}

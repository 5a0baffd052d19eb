package budget

import (
	"context"
	"fmt"
	"time"

	"bizledger/internal/core/id"
	"bizledger/internal/domain"
	"bizledger/pkg/numerator"
)

// Service provides business logic for the Budget catalog.
type Service struct {
	*domain.CatalogService[*Budget]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Budget service.
func NewService(
	repo Repository,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Budget]{
		Repo:       repo,
		TxManager:  nil, // Will be obtained from context
		Numerator:  numerator,
		EntityName: "budget",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate generates a code when none was supplied.
func (s *Service) prepareForCreate(ctx context.Context, b *Budget) error {
	if b.Code == "" {
		cfg := numerator.DefaultConfig("BG")
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		b.Code = code
	}
	return nil
}

// ListByAccount retrieves budgets attached to one analytical account.
func (s *Service) ListByAccount(ctx context.Context, accountID id.ID) ([]*Budget, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

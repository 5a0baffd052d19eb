package analytic

import (
	"context"
	"fmt"
	"time"

	"bizledger/internal/domain"
	"bizledger/pkg/numerator"
)

// Service provides business logic for the AnalyticalAccount catalog.
type Service struct {
	*domain.CatalogService[*AnalyticalAccount]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new AnalyticalAccount service.
func NewService(
	repo Repository,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*AnalyticalAccount]{
		Repo:       repo,
		TxManager:  nil, // Will be obtained from context
		Numerator:  numerator,
		EntityName: "analytical account",
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
func (s *Service) prepareForCreate(ctx context.Context, a *AnalyticalAccount) error {
	if a.Code == "" {
		cfg := numerator.DefaultConfig("AA")
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		a.Code = code
	}
	return nil
}

package reports

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"bizledger/internal/core/apperror"
)

// Service assembles the dashboard snapshot.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetDashboardStats collects all dashboard aggregates concurrently. The
// result is all-or-nothing: the first failing query cancels the rest and the
// whole call fails, a dashboard with silently missing numbers is worse than
// an explicit error.
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int, name string, fn func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}

	count(&stats.ContactCount, "contacts", s.repo.CountContacts)
	count(&stats.ProductCount, "products", s.repo.CountProducts)
	count(&stats.AnalyticalAccountCount, "analytical accounts", s.repo.CountAnalyticalAccounts)
	count(&stats.SalesOrderCount, "sales orders", s.repo.CountSalesOrders)
	count(&stats.PurchaseOrderCount, "purchase orders", s.repo.CountPurchaseOrders)
	count(&stats.UnpaidInvoiceCount, "unpaid invoices", s.repo.CountUnpaidInvoices)

	g.Go(func() error {
		n, total, err := s.repo.ActiveBudgets(gctx)
		if err != nil {
			return fmt.Errorf("active budgets: %w", err)
		}
		stats.ActiveBudgetCount = n
		stats.ActiveBudgetTotal = total
		return nil
	})

	if err := g.Wait(); err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewUnavailable("dashboard", err)
	}

	return &stats, nil
}

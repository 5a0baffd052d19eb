package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

type stubRepo struct {
	contacts  int
	products  int
	accounts  int
	sales     int
	purchases int
	unpaid    int

	budgetCount int
	budgetTotal decimal.Decimal

	failOn string
}

func (r *stubRepo) count(name string, v int) (int, error) {
	if r.failOn == name {
		return 0, errors.New("query failed")
	}
	return v, nil
}

func (r *stubRepo) CountContacts(ctx context.Context) (int, error) {
	return r.count("contacts", r.contacts)
}
func (r *stubRepo) CountProducts(ctx context.Context) (int, error) {
	return r.count("products", r.products)
}
func (r *stubRepo) CountAnalyticalAccounts(ctx context.Context) (int, error) {
	return r.count("accounts", r.accounts)
}
func (r *stubRepo) CountSalesOrders(ctx context.Context) (int, error) {
	return r.count("sales", r.sales)
}
func (r *stubRepo) CountPurchaseOrders(ctx context.Context) (int, error) {
	return r.count("purchases", r.purchases)
}
func (r *stubRepo) CountUnpaidInvoices(ctx context.Context) (int, error) {
	return r.count("unpaid", r.unpaid)
}
func (r *stubRepo) ActiveBudgets(ctx context.Context) (int, decimal.Decimal, error) {
	if r.failOn == "budgets" {
		return 0, decimal.Zero, errors.New("query failed")
	}
	return r.budgetCount, r.budgetTotal, nil
}

func TestGetDashboardStats(t *testing.T) {
	repo := &stubRepo{
		contacts:    12,
		products:    40,
		accounts:    5,
		sales:       7,
		purchases:   3,
		unpaid:      9,
		budgetCount: 2,
		budgetTotal: decimal.RequireFromString("15000"),
	}
	svc := NewService(repo)

	stats, err := svc.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardStats failed: %v", err)
	}

	if stats.ContactCount != 12 || stats.ProductCount != 40 || stats.AnalyticalAccountCount != 5 {
		t.Errorf("catalog counts mismatch: %+v", stats)
	}
	if stats.SalesOrderCount != 7 || stats.PurchaseOrderCount != 3 {
		t.Errorf("order counts mismatch: %+v", stats)
	}
	if stats.UnpaidInvoiceCount != 9 {
		t.Errorf("unpaid invoice count mismatch: %d", stats.UnpaidInvoiceCount)
	}
	if stats.ActiveBudgetCount != 2 || !stats.ActiveBudgetTotal.Equal(decimal.RequireFromString("15000")) {
		t.Errorf("budget aggregates mismatch: %+v", stats)
	}
}

func TestGetDashboardStats_AllOrNothing(t *testing.T) {
	for _, failOn := range []string{"contacts", "unpaid", "budgets"} {
		t.Run(failOn, func(t *testing.T) {
			repo := &stubRepo{contacts: 1, failOn: failOn}
			svc := NewService(repo)

			stats, err := svc.GetDashboardStats(context.Background())
			if err == nil {
				t.Fatal("expected failure to propagate")
			}
			if stats != nil {
				t.Error("no partial result on failure")
			}
		})
	}
}

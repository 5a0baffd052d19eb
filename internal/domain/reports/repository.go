package reports

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the data access interface behind the dashboard.
// Each method maps to a single aggregate query.
type Repository interface {
	CountContacts(ctx context.Context) (int, error)
	CountProducts(ctx context.Context) (int, error)
	CountAnalyticalAccounts(ctx context.Context) (int, error)
	CountSalesOrders(ctx context.Context) (int, error)
	CountPurchaseOrders(ctx context.Context) (int, error)
	CountUnpaidInvoices(ctx context.Context) (int, error)

	// ActiveBudgets returns the count and summed amount of active budgets
	// in one query.
	ActiveBudgets(ctx context.Context) (int, decimal.Decimal, error)
}

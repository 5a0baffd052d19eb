// Package reports provides aggregated reporting over the ledger, currently
// the dashboard statistics block.
package reports

import (
	"github.com/shopspring/decimal"
)

// DashboardStats is the aggregate snapshot shown on the dashboard.
type DashboardStats struct {
	ContactCount           int `json:"contactCount"`
	ProductCount           int `json:"productCount"`
	AnalyticalAccountCount int `json:"analyticalAccountCount"`
	SalesOrderCount        int `json:"salesOrderCount"`
	PurchaseOrderCount     int `json:"purchaseOrderCount"`

	// UnpaidInvoiceCount covers issued invoices that still carry an open
	// payment state: status not in {DRAFT, CANCELLED} and not fully paid.
	UnpaidInvoiceCount int `json:"unpaidInvoiceCount"`

	ActiveBudgetCount int             `json:"activeBudgetCount"`
	ActiveBudgetTotal decimal.Decimal `json:"activeBudgetTotal"`
}

package dto

import (
	"github.com/shopspring/decimal"

	"bizledger/internal/domain/reports"
)

// DashboardStatsResponse is the aggregated dashboard snapshot.
type DashboardStatsResponse struct {
	ContactCount           int             `json:"contactCount"`
	ProductCount           int             `json:"productCount"`
	AnalyticalAccountCount int             `json:"analyticalAccountCount"`
	SalesOrderCount        int             `json:"salesOrderCount"`
	PurchaseOrderCount     int             `json:"purchaseOrderCount"`
	UnpaidInvoiceCount     int             `json:"unpaidInvoiceCount"`
	ActiveBudgetCount      int             `json:"activeBudgetCount"`
	ActiveBudgetTotal      decimal.Decimal `json:"activeBudgetTotal"`
}

// FromDashboardStats converts the domain snapshot to a response DTO.
func FromDashboardStats(s *reports.DashboardStats) *DashboardStatsResponse {
	return &DashboardStatsResponse{
		ContactCount:           s.ContactCount,
		ProductCount:           s.ProductCount,
		AnalyticalAccountCount: s.AnalyticalAccountCount,
		SalesOrderCount:        s.SalesOrderCount,
		PurchaseOrderCount:     s.PurchaseOrderCount,
		UnpaidInvoiceCount:     s.UnpaidInvoiceCount,
		ActiveBudgetCount:      s.ActiveBudgetCount,
		ActiveBudgetTotal:      s.ActiveBudgetTotal,
	}
}

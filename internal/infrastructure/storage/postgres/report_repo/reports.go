// Package report_repo provides the PostgreSQL implementation of the
// dashboard aggregate queries.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"bizledger/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo() *ReportRepo {
	return &ReportRepo{
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ReportRepo) getTxManager(ctx context.Context) *postgres.TxManager {
	return postgres.MustGetTxManager(ctx)
}

func (r *ReportRepo) countWhere(ctx context.Context, table string, conds ...squirrel.Sqlizer) (int, error) {
	q := r.builder.
		Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"deletion_mark": false})
	for _, c := range conds {
		q = q.Where(c)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}

	return count, nil
}

func (r *ReportRepo) CountContacts(ctx context.Context) (int, error) {
	return r.countWhere(ctx, "cat_contacts")
}

func (r *ReportRepo) CountProducts(ctx context.Context) (int, error) {
	return r.countWhere(ctx, "cat_products")
}

func (r *ReportRepo) CountAnalyticalAccounts(ctx context.Context) (int, error) {
	return r.countWhere(ctx, "cat_analytical_accounts")
}

func (r *ReportRepo) CountSalesOrders(ctx context.Context) (int, error) {
	return r.countWhere(ctx, "doc_sales_orders")
}

func (r *ReportRepo) CountPurchaseOrders(ctx context.Context) (int, error) {
	return r.countWhere(ctx, "doc_purchase_orders")
}

// CountUnpaidInvoices counts issued invoices that are not fully paid.
// Drafts and cancelled invoices are not outstanding receivables.
func (r *ReportRepo) CountUnpaidInvoices(ctx context.Context) (int, error) {
	return r.countWhere(ctx, "doc_customer_invoices",
		squirrel.NotEq{"status": []string{"DRAFT", "CANCELLED"}},
		squirrel.NotEq{"payment_status": "PAID"},
	)
}

// ActiveBudgets returns the count and summed amount of active budgets.
func (r *ReportRepo) ActiveBudgets(ctx context.Context) (int, decimal.Decimal, error) {
	q := r.builder.
		Select("COUNT(*)", "COALESCE(SUM(amount), 0)").
		From("cat_budgets").
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"active": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("build query: %w", err)
	}

	var count int
	var total decimal.Decimal
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count, &total); err != nil {
		return 0, decimal.Zero, fmt.Errorf("active budgets: %w", err)
	}

	return count, total, nil
}

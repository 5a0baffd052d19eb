package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/id"
	"bizledger/internal/domain"
	"bizledger/internal/domain/documents/invoice"
	"bizledger/internal/infrastructure/storage/postgres"
)

const (
	invoicesTable     = "doc_customer_invoices"
	invoiceLinesTable = "doc_customer_invoice_lines"
)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.CustomerInvoice]
}

// NewInvoiceRepo creates a new customer invoice repository.
func NewInvoiceRepo() *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*invoice.CustomerInvoice](
			invoicesTable,
			postgres.ExtractDBColumns[invoice.CustomerInvoice](),
			func() *invoice.CustomerInvoice { return &invoice.CustomerInvoice{} },
		),
	}
}

func (r *InvoiceRepo) GetLines(ctx context.Context, invID id.ID) ([]invoice.InvoiceLine, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "product_id", "description",
			"quantity", "unit_price", "amount", "analytical_account_id",
		).
		From(invoiceLinesTable).
		Where(squirrel.Eq{"document_id": invID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []invoice.InvoiceLine
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

func (r *InvoiceRepo) SaveLines(ctx context.Context, invID id.ID, lines []invoice.InvoiceLine) error {
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + invoiceLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, invID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(invoiceLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "product_id", "description",
			"quantity", "unit_price", "amount", "analytical_account_id",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, invID, line.LineNo, line.ProductID, line.Description,
			line.Quantity, line.UnitPrice, line.Amount, line.AnalyticalAccountID,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// UpdateStatus writes only the status column. Content columns stay untouched
// so a status transition never races a concurrent edit of the lines.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, invID id.ID, status invoice.Status) error {
	q := r.Builder().
		Update(invoicesTable).
		Set("status", status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": invID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update status: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(invoicesTable, invID.String())
	}

	return nil
}

// UpdatePayment writes the received amount and payment status together.
func (r *InvoiceRepo) UpdatePayment(ctx context.Context, invID id.ID, received decimal.Decimal, status invoice.PaymentStatus) error {
	q := r.Builder().
		Update(invoicesTable).
		Set("received_amount", received).
		Set("payment_status", status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": invID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update payment: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(invoicesTable, invID.String())
	}

	return nil
}

// CountByYear counts non-deleted invoices dated in the given year.
func (r *InvoiceRepo) CountByYear(ctx context.Context, year int) (int, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(invoicesTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Expr("EXTRACT(YEAR FROM date) = ?", year))

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count by year: %w", err)
	}

	return count, nil
}

func (r *InvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) (domain.ListResult[*invoice.CustomerInvoice], error) {
	result := domain.ListResult[*invoice.CustomerInvoice]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect(ctx)

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	if filter.SalesOrderID != nil {
		q = q.Where(squirrel.Eq{"sales_order_id": *filter.SalesOrderID})
	}

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}

	if filter.PaymentStatus != nil {
		q = q.Where(squirrel.Eq{"payment_status": *filter.PaymentStatus})
	}

	if filter.Unpaid {
		q = q.Where(squirrel.NotEq{"status": []invoice.Status{invoice.StatusDraft, invoice.StatusCancelled}}).
			Where(squirrel.NotEq{"payment_status": invoice.PaymentPaid})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.DueBefore != nil {
		q = q.Where(squirrel.Lt{"due_date": *filter.DueBefore})
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy := "date DESC"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}

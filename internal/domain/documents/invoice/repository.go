package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/id"
	"bizledger/internal/domain"
)

// Repository defines operations for customer invoice documents.
type Repository interface {
	Create(ctx context.Context, inv *CustomerInvoice) error
	GetByID(ctx context.Context, invID id.ID) (*CustomerInvoice, error)
	GetByNumber(ctx context.Context, number string) (*CustomerInvoice, error)
	Update(ctx context.Context, inv *CustomerInvoice) error
	Delete(ctx context.Context, invID id.ID) error

	GetLines(ctx context.Context, invID id.ID) ([]InvoiceLine, error)
	SaveLines(ctx context.Context, invID id.ID, lines []InvoiceLine) error

	// UpdateStatus persists only the status column. Guards run in the
	// service; the repository write is the acknowledgment after which
	// in-memory state may change.
	UpdateStatus(ctx context.Context, invID id.ID, status Status) error

	// UpdatePayment persists received amount and payment status together.
	UpdatePayment(ctx context.Context, invID id.ID, received decimal.Decimal, status PaymentStatus) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*CustomerInvoice], error)
	GetForUpdate(ctx context.Context, invID id.ID) (*CustomerInvoice, error)

	// CountByYear returns how many invoices exist with a number issued in
	// the given year, for draft number placeholders.
	CountByYear(ctx context.Context, year int) (int, error)
}

// ListFilter for filtering customer invoices.
type ListFilter struct {
	domain.ListFilter

	CustomerID    *id.ID
	SalesOrderID  *id.ID
	Status        *Status
	PaymentStatus *PaymentStatus
	DateFrom      *time.Time
	DateTo        *time.Time
	DueBefore     *time.Time

	// Unpaid selects invoices still carrying an open balance
	// (payment status != PAID, lifecycle status not DRAFT or CANCELLED).
	Unpaid bool
}

// Package invoice provides the CustomerInvoice document and its lifecycle.
// An invoice starts as an editable draft, gets posted, is sent to the
// customer and may be cancelled; payments accumulate against it along the way.
package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/entity"
	"bizledger/internal/core/id"
	"bizledger/internal/core/types"
	"bizledger/internal/domain/catalogs/product"
)

// Status is the invoice lifecycle state.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPosted    Status = "POSTED"
	StatusSent      Status = "SENT"
	StatusCancelled Status = "CANCELLED"
)

// NormalizeStatus maps external status spellings onto the canonical set,
// case-insensitively. Some upstream systems report posted invoices as
// CONFIRMED.
func NormalizeStatus(raw string) (Status, error) {
	upper := strings.ToUpper(raw)
	switch Status(upper) {
	case StatusDraft, StatusPosted, StatusSent, StatusCancelled:
		return Status(upper), nil
	}
	if upper == "CONFIRMED" {
		return StatusPosted, nil
	}
	return "", apperror.NewValidation("unknown invoice status").
		WithDetail("field", "status").
		WithDetail("value", raw)
}

// CanTransitionTo reports whether the state machine allows moving to target.
//
//	DRAFT  -> POSTED            (confirm)
//	POSTED -> SENT              (send)
//	POSTED -> CANCELLED         (cancel)
//	SENT   -> CANCELLED         (cancel)
//
// CANCELLED is terminal; a draft cannot be cancelled, only deleted.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusPosted
	case StatusPosted:
		return target == StatusSent || target == StatusCancelled
	case StatusSent:
		return target == StatusCancelled
	}
	return false
}

// PaymentStatus is the canonical payment state reported by the ledger.
type PaymentStatus string

const (
	PaymentUnset   PaymentStatus = ""
	PaymentNotPaid PaymentStatus = "NOT_PAID"
	PaymentPartial PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid    PaymentStatus = "PAID"
)

// CustomerInvoice is the invoice aggregate root.
type CustomerInvoice struct {
	entity.Document

	// Customer reference
	entity.CustomerAware

	// SalesOrderID optionally links the invoice to an upstream sales order.
	// When set the order must belong to the same customer.
	SalesOrderID *id.ID `db:"sales_order_id" json:"salesOrderId,omitempty"`

	// DueDate is the payment deadline, required before save
	DueDate time.Time `db:"due_date" json:"dueDate"`

	// Status is the lifecycle state
	Status Status `db:"status" json:"status"`

	// PaymentStatus is the explicit payment state. The persisted record is
	// the source of truth; in-memory drafts may not carry it yet, in which
	// case it is derived from the amounts (see ResolvePaymentStatus).
	PaymentStatus PaymentStatus `db:"payment_status" json:"paymentStatus,omitempty"`

	// ReceivedAmount is the money already collected against this invoice
	ReceivedAmount decimal.Decimal `db:"received_amount" json:"receivedAmount"`

	// TotalAmount is the stored total. Nil for unsaved drafts, whose total
	// is derived from the lines instead.
	TotalAmount *decimal.Decimal `db:"total_amount" json:"totalAmount,omitempty"`

	// Table part: invoice lines
	Lines []InvoiceLine `db:"-" json:"lines"`
}

// InvoiceLine represents one billed position.
type InvoiceLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID   id.ID           `db:"product_id" json:"productId"`
	Description string          `db:"description" json:"description"`
	Quantity    types.Quantity  `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`

	// AnalyticalAccountID tags the line for budget tracking
	AnalyticalAccountID *id.ID `db:"analytical_account_id" json:"analyticalAccountId,omitempty"`
}

// LineAmount computes quantity times unit price for one line.
func LineAmount(quantity types.Quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(quantity.Decimal())
}

// NewCustomerInvoice creates a draft invoice for a customer with one empty line.
func NewCustomerInvoice(customerID id.ID) *CustomerInvoice {
	inv := &CustomerInvoice{
		Document:      entity.NewDocument(),
		CustomerAware: entity.CustomerAware{CustomerID: customerID},
		Status:        StatusDraft,
	}
	inv.Lines = []InvoiceLine{{
		LineID:   id.New(),
		LineNo:   1,
		Quantity: types.One(),
	}}
	return inv
}

// AddLine appends a line and recomputes its amount.
func (inv *CustomerInvoice) AddLine(productID id.ID, description string, quantity types.Quantity, unitPrice decimal.Decimal) {
	line := InvoiceLine{
		LineID:      id.New(),
		LineNo:      len(inv.Lines) + 1,
		ProductID:   productID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      LineAmount(quantity, unitPrice),
	}
	inv.Lines = append(inv.Lines, line)
}

// ComputeTotal sums quantity times price over all lines. Pure, commutative
// under line reordering, and zero for an empty line set.
func ComputeTotal(lines []InvoiceLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineAmount(line.Quantity, line.UnitPrice))
	}
	return total
}

// EffectiveTotal prefers the stored total when present and falls back to the
// line-derived total for unsaved drafts.
func (inv *CustomerInvoice) EffectiveTotal() decimal.Decimal {
	if inv.TotalAmount != nil {
		return *inv.TotalAmount
	}
	return ComputeTotal(inv.Lines)
}

// Balance is the outstanding amount: effective total minus received amount.
// Overpayment yields a negative balance; it is never clamped.
func (inv *CustomerInvoice) Balance() decimal.Decimal {
	return inv.EffectiveTotal().Sub(inv.ReceivedAmount)
}

// ResolvePaymentStatus resolves the payment state with documented precedence:
// an explicit stored status wins; only when it is absent do the amounts
// decide (received >= total with a positive total means paid, any received
// money means partially paid, otherwise not paid).
func (inv *CustomerInvoice) ResolvePaymentStatus() PaymentStatus {
	if inv.PaymentStatus != PaymentUnset {
		return inv.PaymentStatus
	}
	total := inv.EffectiveTotal()
	switch {
	case inv.ReceivedAmount.GreaterThanOrEqual(total) && total.IsPositive():
		return PaymentPaid
	case inv.ReceivedAmount.IsPositive():
		return PaymentPartial
	default:
		return PaymentNotPaid
	}
}

// CanEdit reports whether lines, dates, customer and sales order may still
// change: only drafts with no received payments are editable.
func (inv *CustomerInvoice) CanEdit() bool {
	return inv.Status == StatusDraft && inv.ReceivedAmount.IsZero()
}

// CanRegisterPayment gates the payment-recording workflow: drafts cannot
// take payments, and settled invoices have nothing left to pay.
func (inv *CustomerInvoice) CanRegisterPayment() bool {
	return inv.Status != StatusDraft && inv.Balance().IsPositive()
}

// Violation describes one save-blocking problem.
type Violation struct {
	Field   string `json:"field"`
	LineNo  int    `json:"lineNo,omitempty"`
	Message string `json:"message"`
}

// ValidateForSave collects every save-blocking violation in stable order:
// missing customer, missing due date, empty line list, lines without a
// product. All violations are accumulated rather than stopping at the first.
func (inv *CustomerInvoice) ValidateForSave() []Violation {
	var violations []Violation

	if id.IsNil(inv.CustomerID) {
		violations = append(violations, Violation{
			Field:   "customerId",
			Message: "customer is required",
		})
	}

	if inv.DueDate.IsZero() {
		violations = append(violations, Violation{
			Field:   "dueDate",
			Message: "due date is required",
		})
	}

	if len(inv.Lines) == 0 {
		violations = append(violations, Violation{
			Field:   "lines",
			Message: "at least one line is required",
		})
	}

	for i, line := range inv.Lines {
		if id.IsNil(line.ProductID) {
			violations = append(violations, Violation{
				Field:   "lines",
				LineNo:  i + 1,
				Message: "product is required",
			})
		}
		if line.Quantity <= 0 {
			violations = append(violations, Violation{
				Field:   "lines",
				LineNo:  i + 1,
				Message: "quantity must be positive",
			})
		}
		if line.UnitPrice.IsNegative() {
			violations = append(violations, Violation{
				Field:   "lines",
				LineNo:  i + 1,
				Message: "unit price cannot be negative",
			})
		}
	}

	return violations
}

// Validate implements entity.Validatable. It folds the collected violations
// into one structured validation error.
func (inv *CustomerInvoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	violations := inv.ValidateForSave()
	if len(violations) == 0 {
		return nil
	}

	first := violations[0]
	err := apperror.NewValidation(first.Message).
		WithDetail("field", first.Field).
		WithDetail("violations", violations)
	if first.LineNo > 0 {
		err = err.WithDetail("lineNo", first.LineNo)
	}
	return err
}

// ApplyProductDefaults overwrites the line's price and description from the
// product's current sale price and name. Quantity and the analytical account
// are deliberately left untouched: the defaults are a convenience, manual
// edits persist until the product reference changes again.
func (inv *CustomerInvoice) ApplyProductDefaults(lineID id.ID, p *product.Product) error {
	for i := range inv.Lines {
		if inv.Lines[i].LineID != lineID {
			continue
		}
		inv.Lines[i].ProductID = p.ID
		inv.Lines[i].UnitPrice = p.SalePrice
		inv.Lines[i].Description = p.Name
		inv.Lines[i].Amount = LineAmount(inv.Lines[i].Quantity, p.SalePrice)
		return nil
	}
	return apperror.NewNotFound("invoice line", lineID.String())
}

// RecalculateLineAmounts refreshes the derived amount of every line.
func (inv *CustomerInvoice) RecalculateLineAmounts() {
	for i := range inv.Lines {
		inv.Lines[i].Amount = LineAmount(inv.Lines[i].Quantity, inv.Lines[i].UnitPrice)
	}
}

// NextInvoiceNumber builds a display number for a fresh draft from the count
// of invoices already issued in a year: INV-<year>-<count+1>, zero padded to
// three digits. The number assigned by the database-backed sequence on save
// is authoritative; this placeholder only labels unsaved drafts.
func NextInvoiceNumber(existingCount int, year int) string {
	return fmt.Sprintf("INV-%d-%03d", year, existingCount+1)
}

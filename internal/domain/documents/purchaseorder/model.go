// Package purchaseorder provides the PurchaseOrder document: goods or
// services ordered from a supplier.
package purchaseorder

import (
	"context"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/entity"
	"bizledger/internal/core/id"
	"bizledger/internal/core/types"
)

// Status is the order workflow state.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusConfirmed Status = "CONFIRMED"
	StatusDone      Status = "DONE"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// PurchaseOrder represents an order placed with a supplier.
type PurchaseOrder struct {
	entity.Document

	// Supplier reference (a contact with vendor type)
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	Status Status `db:"status" json:"status"`

	// Totals (calculated from lines)
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`

	Lines []OrderLine `db:"-" json:"lines"`
}

// OrderLine represents a line in the order.
type OrderLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID   id.ID           `db:"product_id" json:"productId"`
	Description string          `db:"description" json:"description,omitempty"`
	Quantity    types.Quantity  `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
}

// NewPurchaseOrder creates a new draft order for a supplier.
func NewPurchaseOrder(supplierID id.ID) *PurchaseOrder {
	return &PurchaseOrder{
		Document:   entity.NewDocument(),
		SupplierID: supplierID,
		Status:     StatusDraft,
		Lines:      make([]OrderLine, 0),
	}
}

// AddLine adds a line and recalculates totals.
func (o *PurchaseOrder) AddLine(productID id.ID, description string, quantity types.Quantity, unitPrice decimal.Decimal) {
	line := OrderLine{
		LineID:      id.New(),
		LineNo:      len(o.Lines) + 1,
		ProductID:   productID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      unitPrice.Mul(quantity.Decimal()),
	}
	o.Lines = append(o.Lines, line)
	o.RecalculateTotals()
}

// RecalculateTotals refreshes line amounts and the order total.
func (o *PurchaseOrder) RecalculateTotals() {
	total := decimal.Zero
	for i := range o.Lines {
		o.Lines[i].Amount = o.Lines[i].UnitPrice.Mul(o.Lines[i].Quantity.Decimal())
		total = total.Add(o.Lines[i].Amount)
	}
	o.TotalAmount = total
}

// Validate implements entity.Validatable.
func (o *PurchaseOrder) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}

	if o.Status != "" && !o.Status.Valid() {
		return apperror.NewValidation("unknown order status").
			WithDetail("field", "status").
			WithDetail("status", string(o.Status))
	}

	if len(o.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range o.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

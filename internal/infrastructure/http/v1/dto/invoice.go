package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/id"
	"bizledger/internal/core/types"
	"bizledger/internal/domain/documents/invoice"
)

// --- Request DTOs ---

type CreateInvoiceRequest struct {
	Number       string               `json:"number,omitempty"`
	Date         *time.Time           `json:"date,omitempty"`
	CustomerID   string               `json:"customerId" binding:"required"`
	SalesOrderID string               `json:"salesOrderId,omitempty"`
	DueDate      time.Time            `json:"dueDate" binding:"required"`
	Comment      string               `json:"comment,omitempty"`
	Lines        []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

type InvoiceLineRequest struct {
	ProductID           string          `json:"productId" binding:"required"`
	Description         string          `json:"description,omitempty"`
	Quantity            float64         `json:"quantity" binding:"required,gt=0"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	AnalyticalAccountID string          `json:"analyticalAccountId,omitempty"`
}

func (r *CreateInvoiceRequest) ToEntity() *invoice.CustomerInvoice {
	customerID, _ := id.Parse(r.CustomerID)

	inv := invoice.NewCustomerInvoice(customerID)
	inv.Number = r.Number
	inv.DueDate = r.DueDate
	inv.Comment = r.Comment

	if r.Date != nil {
		inv.Date = *r.Date
	}
	if r.SalesOrderID != "" {
		orderID, _ := id.Parse(r.SalesOrderID)
		inv.SalesOrderID = &orderID
	}

	inv.Lines = inv.Lines[:0]
	for _, line := range r.Lines {
		applyInvoiceLine(inv, line)
	}

	return inv
}

func applyInvoiceLine(inv *invoice.CustomerInvoice, line InvoiceLineRequest) {
	productID, _ := id.Parse(line.ProductID)
	inv.AddLine(productID, line.Description, types.NewQuantityFromFloat64(line.Quantity), line.UnitPrice)

	if line.AnalyticalAccountID != "" {
		accountID, err := id.Parse(line.AnalyticalAccountID)
		if err == nil {
			inv.Lines[len(inv.Lines)-1].AnalyticalAccountID = &accountID
		}
	}
}

type UpdateInvoiceRequest struct {
	Date         *time.Time           `json:"date,omitempty"`
	CustomerID   *string              `json:"customerId,omitempty"`
	SalesOrderID *string              `json:"salesOrderId,omitempty"`
	DueDate      *time.Time           `json:"dueDate,omitempty"`
	Comment      *string              `json:"comment,omitempty"`
	Lines        []InvoiceLineRequest `json:"lines,omitempty"`
}

func (r *UpdateInvoiceRequest) ApplyTo(inv *invoice.CustomerInvoice) {
	if r.Date != nil {
		inv.Date = *r.Date
	}
	if r.CustomerID != nil {
		customerID, _ := id.Parse(*r.CustomerID)
		inv.CustomerID = customerID
	}
	if r.SalesOrderID != nil {
		if *r.SalesOrderID == "" {
			inv.SalesOrderID = nil
		} else {
			orderID, _ := id.Parse(*r.SalesOrderID)
			inv.SalesOrderID = &orderID
		}
	}
	if r.DueDate != nil {
		inv.DueDate = *r.DueDate
	}
	if r.Comment != nil {
		inv.Comment = *r.Comment
	}

	if r.Lines != nil {
		inv.Lines = make([]invoice.InvoiceLine, 0, len(r.Lines))
		for _, line := range r.Lines {
			applyInvoiceLine(inv, line)
		}
	}
}

// UpdateInvoiceStatusRequest carries the requested lifecycle state.
// CONFIRMED is accepted as an alias for POSTED.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// --- Response DTOs ---

type InvoiceResponse struct {
	ID             string                `json:"id"`
	Number         string                `json:"number"`
	Date           time.Time             `json:"date"`
	CustomerID     string                `json:"customerId"`
	SalesOrderID   string                `json:"salesOrderId,omitempty"`
	DueDate        time.Time             `json:"dueDate"`
	Status         string                `json:"status"`
	PaymentStatus  string                `json:"paymentStatus"`
	TotalAmount    decimal.Decimal       `json:"totalAmount"`
	ReceivedAmount decimal.Decimal       `json:"receivedAmount"`
	Balance        decimal.Decimal       `json:"balance"`
	CanEdit        bool                  `json:"canEdit"`
	Comment        string                `json:"comment,omitempty"`
	Lines          []InvoiceLineResponse `json:"lines,omitempty"`
	DeletionMark   bool                  `json:"deletionMark,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

type InvoiceLineResponse struct {
	LineID              string          `json:"lineId"`
	LineNo              int             `json:"lineNo"`
	ProductID           string          `json:"productId"`
	Description         string          `json:"description,omitempty"`
	Quantity            float64         `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	Amount              decimal.Decimal `json:"amount"`
	AnalyticalAccountID string          `json:"analyticalAccountId,omitempty"`
}

func FromInvoice(inv *invoice.CustomerInvoice) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:             inv.ID.String(),
		Number:         inv.Number,
		Date:           inv.Date,
		CustomerID:     inv.CustomerID.String(),
		DueDate:        inv.DueDate,
		Status:         string(inv.Status),
		PaymentStatus:  string(inv.ResolvePaymentStatus()),
		TotalAmount:    inv.EffectiveTotal(),
		ReceivedAmount: inv.ReceivedAmount,
		Balance:        inv.Balance(),
		CanEdit:        inv.CanEdit(),
		Comment:        inv.Comment,
		DeletionMark:   inv.DeletionMark,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}

	if inv.SalesOrderID != nil {
		resp.SalesOrderID = inv.SalesOrderID.String()
	}

	resp.Lines = make([]InvoiceLineResponse, len(inv.Lines))
	for i, line := range inv.Lines {
		resp.Lines[i] = InvoiceLineResponse{
			LineID:      line.LineID.String(),
			LineNo:      line.LineNo,
			ProductID:   line.ProductID.String(),
			Description: line.Description,
			Quantity:    line.Quantity.Float64(),
			UnitPrice:   line.UnitPrice,
			Amount:      line.Amount,
		}
		if line.AnalyticalAccountID != nil {
			resp.Lines[i].AnalyticalAccountID = line.AnalyticalAccountID.String()
		}
	}

	return resp
}

type InvoiceListResponse struct {
	Items      []*InvoiceResponse `json:"items"`
	TotalCount int                `json:"totalCount"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

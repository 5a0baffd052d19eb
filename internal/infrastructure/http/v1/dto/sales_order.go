package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/id"
	"bizledger/internal/core/types"
	"bizledger/internal/domain/documents/salesorder"
)

// --- Request DTOs ---

type CreateSalesOrderRequest struct {
	Number     string             `json:"number,omitempty"`
	Date       *time.Time         `json:"date,omitempty"`
	CustomerID string             `json:"customerId" binding:"required"`
	Status     string             `json:"status,omitempty"`
	Comment    string             `json:"comment,omitempty"`
	Lines      []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

type OrderLineRequest struct {
	ProductID   string          `json:"productId" binding:"required"`
	Description string          `json:"description,omitempty"`
	Quantity    float64         `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

func (r *CreateSalesOrderRequest) ToEntity() *salesorder.SalesOrder {
	customerID, _ := id.Parse(r.CustomerID)

	order := salesorder.NewSalesOrder(customerID)
	order.Number = r.Number
	order.Comment = r.Comment

	if r.Date != nil {
		order.Date = *r.Date
	}
	if r.Status != "" {
		order.Status = salesorder.Status(r.Status)
	}

	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		order.AddLine(productID, line.Description, types.NewQuantityFromFloat64(line.Quantity), line.UnitPrice)
	}

	return order
}

type UpdateSalesOrderRequest struct {
	Date       *time.Time         `json:"date,omitempty"`
	CustomerID *string            `json:"customerId,omitempty"`
	Status     *string            `json:"status,omitempty"`
	Comment    *string            `json:"comment,omitempty"`
	Lines      []OrderLineRequest `json:"lines,omitempty"`
}

func (r *UpdateSalesOrderRequest) ApplyTo(order *salesorder.SalesOrder) {
	if r.Date != nil {
		order.Date = *r.Date
	}
	if r.CustomerID != nil {
		customerID, _ := id.Parse(*r.CustomerID)
		order.CustomerID = customerID
	}
	if r.Status != nil {
		order.Status = salesorder.Status(*r.Status)
	}
	if r.Comment != nil {
		order.Comment = *r.Comment
	}

	if r.Lines != nil {
		order.Lines = make([]salesorder.OrderLine, 0, len(r.Lines))
		for _, line := range r.Lines {
			productID, _ := id.Parse(line.ProductID)
			order.AddLine(productID, line.Description, types.NewQuantityFromFloat64(line.Quantity), line.UnitPrice)
		}
	}
}

// --- Response DTOs ---

type SalesOrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Date         time.Time           `json:"date"`
	CustomerID   string              `json:"customerId"`
	Status       string              `json:"status"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	Comment      string              `json:"comment,omitempty"`
	Lines        []OrderLineResponse `json:"lines,omitempty"`
	DeletionMark bool                `json:"deletionMark,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type OrderLineResponse struct {
	LineID      string          `json:"lineId"`
	LineNo      int             `json:"lineNo"`
	ProductID   string          `json:"productId"`
	Description string          `json:"description,omitempty"`
	Quantity    float64         `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

func fromOrderLines[L any](lines []L, conv func(L) OrderLineResponse) []OrderLineResponse {
	out := make([]OrderLineResponse, len(lines))
	for i, line := range lines {
		out[i] = conv(line)
	}
	return out
}

func FromSalesOrder(order *salesorder.SalesOrder) *SalesOrderResponse {
	return &SalesOrderResponse{
		ID:          order.ID.String(),
		Number:      order.Number,
		Date:        order.Date,
		CustomerID:  order.CustomerID.String(),
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		Comment:     order.Comment,
		Lines: fromOrderLines(order.Lines, func(line salesorder.OrderLine) OrderLineResponse {
			return OrderLineResponse{
				LineID:      line.LineID.String(),
				LineNo:      line.LineNo,
				ProductID:   line.ProductID.String(),
				Description: line.Description,
				Quantity:    line.Quantity.Float64(),
				UnitPrice:   line.UnitPrice,
				Amount:      line.Amount,
			}
		}),
		DeletionMark: order.DeletionMark,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

type SalesOrderListResponse struct {
	Items      []*SalesOrderResponse `json:"items"`
	TotalCount int                   `json:"totalCount"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`
}

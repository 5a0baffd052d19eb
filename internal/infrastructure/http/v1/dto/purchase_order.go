package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/id"
	"bizledger/internal/core/types"
	"bizledger/internal/domain/documents/purchaseorder"
)

// --- Request DTOs ---

type CreatePurchaseOrderRequest struct {
	Number     string             `json:"number,omitempty"`
	Date       *time.Time         `json:"date,omitempty"`
	SupplierID string             `json:"supplierId" binding:"required"`
	Status     string             `json:"status,omitempty"`
	Comment    string             `json:"comment,omitempty"`
	Lines      []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

func (r *CreatePurchaseOrderRequest) ToEntity() *purchaseorder.PurchaseOrder {
	supplierID, _ := id.Parse(r.SupplierID)

	order := purchaseorder.NewPurchaseOrder(supplierID)
	order.Number = r.Number
	order.Comment = r.Comment

	if r.Date != nil {
		order.Date = *r.Date
	}
	if r.Status != "" {
		order.Status = purchaseorder.Status(r.Status)
	}

	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		order.AddLine(productID, line.Description, types.NewQuantityFromFloat64(line.Quantity), line.UnitPrice)
	}

	return order
}

type UpdatePurchaseOrderRequest struct {
	Date       *time.Time         `json:"date,omitempty"`
	SupplierID *string            `json:"supplierId,omitempty"`
	Status     *string            `json:"status,omitempty"`
	Comment    *string            `json:"comment,omitempty"`
	Lines      []OrderLineRequest `json:"lines,omitempty"`
}

func (r *UpdatePurchaseOrderRequest) ApplyTo(order *purchaseorder.PurchaseOrder) {
	if r.Date != nil {
		order.Date = *r.Date
	}
	if r.SupplierID != nil {
		supplierID, _ := id.Parse(*r.SupplierID)
		order.SupplierID = supplierID
	}
	if r.Status != nil {
		order.Status = purchaseorder.Status(*r.Status)
	}
	if r.Comment != nil {
		order.Comment = *r.Comment
	}

	if r.Lines != nil {
		order.Lines = make([]purchaseorder.OrderLine, 0, len(r.Lines))
		for _, line := range r.Lines {
			productID, _ := id.Parse(line.ProductID)
			order.AddLine(productID, line.Description, types.NewQuantityFromFloat64(line.Quantity), line.UnitPrice)
		}
	}
}

// --- Response DTOs ---

type PurchaseOrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Date         time.Time           `json:"date"`
	SupplierID   string              `json:"supplierId"`
	Status       string              `json:"status"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	Comment      string              `json:"comment,omitempty"`
	Lines        []OrderLineResponse `json:"lines,omitempty"`
	DeletionMark bool                `json:"deletionMark,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func FromPurchaseOrder(order *purchaseorder.PurchaseOrder) *PurchaseOrderResponse {
	return &PurchaseOrderResponse{
		ID:          order.ID.String(),
		Number:      order.Number,
		Date:        order.Date,
		SupplierID:  order.SupplierID.String(),
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		Comment:     order.Comment,
		Lines: fromOrderLines(order.Lines, func(line purchaseorder.OrderLine) OrderLineResponse {
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

type PurchaseOrderListResponse struct {
	Items      []*PurchaseOrderResponse `json:"items"`
	TotalCount int                      `json:"totalCount"`
	Limit      int                      `json:"limit"`
	Offset     int                      `json:"offset"`
}

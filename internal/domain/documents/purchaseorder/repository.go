package purchaseorder

import (
	"context"
	"time"

	"bizledger/internal/core/id"
	"bizledger/internal/domain"
)

// Repository defines operations for purchase orders.
type Repository interface {
	Create(ctx context.Context, order *PurchaseOrder) error
	GetByID(ctx context.Context, orderID id.ID) (*PurchaseOrder, error)
	GetByNumber(ctx context.Context, number string) (*PurchaseOrder, error)
	Update(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, orderID id.ID) error

	GetLines(ctx context.Context, orderID id.ID) ([]OrderLine, error)
	SaveLines(ctx context.Context, orderID id.ID, lines []OrderLine) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error)
	Count(ctx context.Context) (int, error)
}

// ListFilter for filtering purchase orders.
type ListFilter struct {
	domain.ListFilter

	SupplierID *id.ID
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
}

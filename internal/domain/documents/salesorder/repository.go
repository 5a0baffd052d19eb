package salesorder

import (
	"context"
	"time"

	"bizledger/internal/core/id"
	"bizledger/internal/domain"
)

// Repository defines operations for sales orders.
type Repository interface {
	Create(ctx context.Context, order *SalesOrder) error
	GetByID(ctx context.Context, orderID id.ID) (*SalesOrder, error)
	GetByNumber(ctx context.Context, number string) (*SalesOrder, error)
	Update(ctx context.Context, order *SalesOrder) error
	Delete(ctx context.Context, orderID id.ID) error

	GetLines(ctx context.Context, orderID id.ID) ([]OrderLine, error)
	SaveLines(ctx context.Context, orderID id.ID, lines []OrderLine) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesOrder], error)
	Count(ctx context.Context) (int, error)
}

// ListFilter for filtering sales orders.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
}

package entity

import (
	"context"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/id"
)

// CustomerAware is a trait for documents tied to a customer contact.
// Used for composition in models like CustomerInvoice and SalesOrder.
type CustomerAware struct {
	// CustomerID references the contact this document belongs to
	CustomerID id.ID `db:"customer_id" json:"customerId"`
}

// ValidateCustomer ensures a customer is set.
func (c *CustomerAware) ValidateCustomer(ctx context.Context) error {
	if id.IsNil(c.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	return nil
}

// GetCustomerID returns the customer ID (useful for interfaces).
func (c *CustomerAware) GetCustomerID() id.ID {
	return c.CustomerID
}

// ICustomerAware is an interface for any document that belongs to a customer.
type ICustomerAware interface {
	GetCustomerID() id.ID
	ValidateCustomer(ctx context.Context) error
}

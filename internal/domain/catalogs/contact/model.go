// Package contact provides the Contact catalog.
// Contacts represent business partners: customers, vendors, etc.
package contact

import (
	"context"
	"regexp"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/entity"
)

// Pre-compiled regex patterns for validation (performance optimization)
var (
	whitespaceRE = regexp.MustCompile(`\s`)
	taxIDRE      = regexp.MustCompile(`^[0-9A-Za-z-]{4,20}$`)
	emailRE      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ContactType defines the role of a contact.
type ContactType string

const (
	TypeCustomer ContactType = "customer"
	TypeVendor   ContactType = "vendor"
	TypeBoth     ContactType = "both"
	TypeOther    ContactType = "other"
)

// Contact represents a business partner (customer, vendor, etc.).
type Contact struct {
	entity.Catalog

	// Type defines whether this is a customer, vendor, or both
	Type ContactType `db:"type" json:"type"`

	// TaxID is the contact's tax identification number
	TaxID *string `db:"tax_id" json:"taxId,omitempty"`

	// BillingAddress is the address invoices are issued to
	BillingAddress *string `db:"billing_address" json:"billingAddress,omitempty"`

	// ShippingAddress is the physical delivery address
	ShippingAddress *string `db:"shipping_address" json:"shippingAddress,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// ContactPerson is the primary contact name
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// Comment is a free-form note
	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewContact creates a new Contact with required fields.
func NewContact(code, name string, contactType ContactType) *Contact {
	return &Contact{
		Catalog: entity.NewCatalog(code, name),
		Type:    contactType,
	}
}

// Validate implements entity.Validatable interface.
func (c *Contact) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	// Type validation
	if !isValidContactType(c.Type) {
		return apperror.NewValidation("invalid contact type").
			WithDetail("field", "type").
			WithDetail("value", string(c.Type))
	}

	// Tax ID validation (if provided)
	if c.TaxID != nil && *c.TaxID != "" {
		if err := validateTaxID(*c.TaxID); err != nil {
			return err
		}
	}

	// Email validation (if provided)
	if c.Email != nil && *c.Email != "" && !isValidEmail(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

// IsCustomer returns true if the contact can be invoiced.
func (c *Contact) IsCustomer() bool {
	return c.Type == TypeCustomer || c.Type == TypeBoth
}

// IsVendor returns true if the contact can supply purchase orders.
func (c *Contact) IsVendor() bool {
	return c.Type == TypeVendor || c.Type == TypeBoth
}

// --- Validation Helpers ---

func isValidContactType(t ContactType) bool {
	switch t {
	case TypeCustomer, TypeVendor, TypeBoth, TypeOther:
		return true
	}
	return false
}

func validateTaxID(taxID string) error {
	cleaned := whitespaceRE.ReplaceAllString(taxID, "")
	if !taxIDRE.MatchString(cleaned) {
		return apperror.NewValidation("invalid tax ID format").
			WithDetail("field", "taxId")
	}
	return nil
}

func isValidEmail(email string) bool {
	return emailRE.MatchString(email)
}

package dto

import (
	"bizledger/internal/core/entity"
	"bizledger/internal/domain/catalogs/contact"
)

// --- Request DTOs ---

// CreateContactRequest is the request body for creating a contact.
type CreateContactRequest struct {
	Code            string              `json:"code"`
	Name            string              `json:"name" binding:"required"`
	Type            contact.ContactType `json:"type" binding:"required"`
	TaxID           *string             `json:"taxId"`
	BillingAddress  *string             `json:"billingAddress"`
	ShippingAddress *string             `json:"shippingAddress"`
	Phone           *string             `json:"phone"`
	Email           *string             `json:"email"`
	ContactPerson   *string             `json:"contactPerson"`
	Comment         *string             `json:"comment"`
	ParentID        *string             `json:"parentId"`
	IsFolder        bool                `json:"isFolder"`
	Attributes      entity.Attributes   `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateContactRequest) ToEntity() *contact.Contact {
	c := contact.NewContact(r.Code, r.Name, r.Type)
	c.TaxID = r.TaxID
	c.BillingAddress = r.BillingAddress
	c.ShippingAddress = r.ShippingAddress
	c.Phone = r.Phone
	c.Email = r.Email
	c.ContactPerson = r.ContactPerson
	c.Comment = r.Comment
	c.ParentID = r.ParentID
	c.IsFolder = r.IsFolder
	c.Attributes = r.Attributes
	return c
}

// UpdateContactRequest is the request body for updating a contact.
type UpdateContactRequest struct {
	Code            string              `json:"code"`
	Name            string              `json:"name" binding:"required"`
	Type            contact.ContactType `json:"type" binding:"required"`
	TaxID           *string             `json:"taxId"`
	BillingAddress  *string             `json:"billingAddress"`
	ShippingAddress *string             `json:"shippingAddress"`
	Phone           *string             `json:"phone"`
	Email           *string             `json:"email"`
	ContactPerson   *string             `json:"contactPerson"`
	Comment         *string             `json:"comment"`
	ParentID        *string             `json:"parentId"`
	IsFolder        bool                `json:"isFolder"`
	Attributes      entity.Attributes   `json:"attributes"`
	Version         int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateContactRequest) ApplyTo(c *contact.Contact) {
	c.Code = r.Code
	c.Name = r.Name
	c.Type = r.Type
	c.TaxID = r.TaxID
	c.BillingAddress = r.BillingAddress
	c.ShippingAddress = r.ShippingAddress
	c.Phone = r.Phone
	c.Email = r.Email
	c.ContactPerson = r.ContactPerson
	c.Comment = r.Comment
	c.ParentID = r.ParentID
	c.IsFolder = r.IsFolder
	c.Attributes = r.Attributes
	c.Version = r.Version
}

// --- Response DTOs ---

// ContactResponse is the response body for a contact.
type ContactResponse struct {
	ID              string              `json:"id"`
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Type            contact.ContactType `json:"type"`
	TaxID           *string             `json:"taxId,omitempty"`
	BillingAddress  *string             `json:"billingAddress,omitempty"`
	ShippingAddress *string             `json:"shippingAddress,omitempty"`
	Phone           *string             `json:"phone,omitempty"`
	Email           *string             `json:"email,omitempty"`
	ContactPerson   *string             `json:"contactPerson,omitempty"`
	Comment         *string             `json:"comment,omitempty"`
	ParentID        *string             `json:"parentId,omitempty"`
	IsFolder        bool                `json:"isFolder"`
	DeletionMark    bool                `json:"deletionMark"`
	Version         int                 `json:"version"`
	Attributes      entity.Attributes   `json:"attributes,omitempty"`
}

// FromContact creates response DTO from domain entity.
func FromContact(c *contact.Contact) *ContactResponse {
	return &ContactResponse{
		ID:              c.ID.String(),
		Code:            c.Code,
		Name:            c.Name,
		Type:            c.Type,
		TaxID:           c.TaxID,
		BillingAddress:  c.BillingAddress,
		ShippingAddress: c.ShippingAddress,
		Phone:           c.Phone,
		Email:           c.Email,
		ContactPerson:   c.ContactPerson,
		Comment:         c.Comment,
		ParentID:        c.ParentID,
		IsFolder:        c.IsFolder,
		DeletionMark:    c.DeletionMark,
		Version:         c.Version,
		Attributes:      c.Attributes,
	}
}

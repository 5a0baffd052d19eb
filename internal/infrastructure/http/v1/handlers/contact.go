package handlers

import (
	"bizledger/internal/domain/catalogs/contact"
	"bizledger/internal/infrastructure/http/v1/dto"
)

// ContactHTTPHandler keeps the generic handler signature readable.
type ContactHTTPHandler = CatalogHandler[
	*contact.Contact,
	dto.CreateContactRequest,
	dto.UpdateContactRequest,
]

// NewContactHandler wires the generic catalog handler for contacts.
func NewContactHandler(
	base *BaseHandler,
	service *contact.Service,
) *ContactHTTPHandler {
	config := CatalogHandlerConfig[
		*contact.Contact,
		dto.CreateContactRequest,
		dto.UpdateContactRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "contact",

		MapCreateDTO: func(req dto.CreateContactRequest) *contact.Contact {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateContactRequest, existing *contact.Contact) *contact.Contact {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *contact.Contact) any {
			return dto.FromContact(entity)
		},
	}

	return NewCatalogHandler(base, config)
}

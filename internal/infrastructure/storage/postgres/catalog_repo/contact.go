package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"bizledger/internal/core/apperror"
	"bizledger/internal/domain/catalogs/contact"
	"bizledger/internal/infrastructure/storage/postgres"
)

const contactTable = "cat_contacts"

// ContactRepo implements contact.Repository.
type ContactRepo struct {
	*BaseCatalogRepo[*contact.Contact]
}

// NewContactRepo creates a new contact repository.
func NewContactRepo() *ContactRepo {
	return &ContactRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*contact.Contact](
			contactTable,
			postgres.ExtractDBColumns[contact.Contact](),
			func() *contact.Contact { return &contact.Contact{} },
		),
	}
}

// FindByTaxID retrieves a contact by tax id.
func (r *ContactRepo) FindByTaxID(ctx context.Context, taxID string) (*contact.Contact, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"tax_id": taxID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("contact", taxID)
		}
		return nil, err
	}
	return c, nil
}

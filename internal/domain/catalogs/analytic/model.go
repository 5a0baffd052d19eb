// Package analytic provides the AnalyticalAccount catalog.
// Analytical accounts tag revenue and cost lines for budget tracking.
package analytic

import (
	"context"

	"bizledger/internal/core/entity"
)

// AnalyticalAccount represents a cost/revenue attribution tag usable on
// invoice and order lines.
type AnalyticalAccount struct {
	entity.Catalog

	// Description is a free-form note about what the account tracks
	Description *string `db:"description" json:"description,omitempty"`

	// Active indicates whether the account accepts new postings
	Active bool `db:"active" json:"active"`
}

// NewAnalyticalAccount creates a new AnalyticalAccount with required fields.
func NewAnalyticalAccount(code, name string) *AnalyticalAccount {
	return &AnalyticalAccount{
		Catalog: entity.NewCatalog(code, name),
		Active:  true,
	}
}

// Validate implements entity.Validatable interface.
func (a *AnalyticalAccount) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	// Code is auto-generated when absent, nothing else to check here
	return nil
}

// Package budget provides the Budget catalog.
// A budget caps spending or tracks revenue for one analytical account over a
// calendar period.
package budget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/entity"
	"bizledger/internal/core/id"
)

// Budget represents a planned amount for an analytical account.
type Budget struct {
	entity.Catalog

	// AnalyticalAccountID is the account this budget tracks
	AnalyticalAccountID id.ID `db:"analytical_account_id" json:"analyticalAccountId"`

	// Amount is the planned amount for the period
	Amount decimal.Decimal `db:"amount" json:"amount"`

	// PeriodStart and PeriodEnd bound the budget period (inclusive)
	PeriodStart time.Time `db:"period_start" json:"periodStart"`
	PeriodEnd   time.Time `db:"period_end" json:"periodEnd"`

	// Active indicates whether the budget participates in dashboard totals
	Active bool `db:"active" json:"active"`
}

// NewBudget creates a new Budget with required fields.
func NewBudget(name string, accountID id.ID, amount decimal.Decimal, start, end time.Time) *Budget {
	return &Budget{
		Catalog:             entity.NewCatalog("", name),
		AnalyticalAccountID: accountID,
		Amount:              amount,
		PeriodStart:         start,
		PeriodEnd:           end,
		Active:              true,
	}
}

// Validate implements entity.Validatable interface.
func (b *Budget) Validate(ctx context.Context) error {
	if err := b.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(b.AnalyticalAccountID) {
		return apperror.NewValidation("analytical account is required").
			WithDetail("field", "analyticalAccountId")
	}

	if !b.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	if b.PeriodStart.IsZero() || b.PeriodEnd.IsZero() {
		return apperror.NewValidation("budget period is required").
			WithDetail("field", "period")
	}

	if b.PeriodEnd.Before(b.PeriodStart) {
		return apperror.NewValidation("period end cannot precede period start").
			WithDetail("field", "periodEnd")
	}

	return nil
}

// CoversDate reports whether t falls inside the budget period.
func (b *Budget) CoversDate(t time.Time) bool {
	return !t.Before(b.PeriodStart) && !t.After(b.PeriodEnd)
}

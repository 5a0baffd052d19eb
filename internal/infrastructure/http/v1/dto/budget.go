package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/entity"
	"bizledger/internal/core/id"
	"bizledger/internal/domain/catalogs/budget"
)

// CreateBudgetRequest is the request body for creating a budget.
type CreateBudgetRequest struct {
	Code                string            `json:"code"`
	Name                string            `json:"name" binding:"required"`
	AnalyticalAccountID id.ID             `json:"analyticalAccountId" binding:"required"`
	Amount              decimal.Decimal   `json:"amount" binding:"required"`
	PeriodStart         time.Time         `json:"periodStart" binding:"required"`
	PeriodEnd           time.Time         `json:"periodEnd" binding:"required"`
	Active              *bool             `json:"active"`
	Attributes          entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateBudgetRequest) ToEntity() *budget.Budget {
	b := budget.NewBudget(r.Name, r.AnalyticalAccountID, r.Amount, r.PeriodStart, r.PeriodEnd)
	b.Code = r.Code
	if r.Active != nil {
		b.Active = *r.Active
	}
	b.Attributes = r.Attributes
	return b
}

// UpdateBudgetRequest is the request body for updating a budget.
type UpdateBudgetRequest struct {
	Code                string            `json:"code"`
	Name                string            `json:"name" binding:"required"`
	AnalyticalAccountID id.ID             `json:"analyticalAccountId" binding:"required"`
	Amount              decimal.Decimal   `json:"amount" binding:"required"`
	PeriodStart         time.Time         `json:"periodStart" binding:"required"`
	PeriodEnd           time.Time         `json:"periodEnd" binding:"required"`
	Active              bool              `json:"active"`
	Attributes          entity.Attributes `json:"attributes"`
	Version             int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateBudgetRequest) ApplyTo(b *budget.Budget) {
	b.Code = r.Code
	b.Name = r.Name
	b.AnalyticalAccountID = r.AnalyticalAccountID
	b.Amount = r.Amount
	b.PeriodStart = r.PeriodStart
	b.PeriodEnd = r.PeriodEnd
	b.Active = r.Active
	b.Attributes = r.Attributes
	b.Version = r.Version
}

// BudgetResponse is the response body for a budget.
type BudgetResponse struct {
	ID                  string            `json:"id"`
	Code                string            `json:"code"`
	Name                string            `json:"name"`
	AnalyticalAccountID string            `json:"analyticalAccountId"`
	Amount              decimal.Decimal   `json:"amount"`
	PeriodStart         time.Time         `json:"periodStart"`
	PeriodEnd           time.Time         `json:"periodEnd"`
	Active              bool              `json:"active"`
	DeletionMark        bool              `json:"deletionMark"`
	Version             int               `json:"version"`
	Attributes          entity.Attributes `json:"attributes,omitempty"`
}

// FromBudget creates response DTO from domain entity.
func FromBudget(b *budget.Budget) *BudgetResponse {
	return &BudgetResponse{
		ID:                  b.ID.String(),
		Code:                b.Code,
		Name:                b.Name,
		AnalyticalAccountID: b.AnalyticalAccountID.String(),
		Amount:              b.Amount,
		PeriodStart:         b.PeriodStart,
		PeriodEnd:           b.PeriodEnd,
		Active:              b.Active,
		DeletionMark:        b.DeletionMark,
		Version:             b.Version,
		Attributes:          b.Attributes,
	}
}

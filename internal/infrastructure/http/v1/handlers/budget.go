package handlers

import (
	"bizledger/internal/domain/catalogs/budget"
	"bizledger/internal/infrastructure/http/v1/dto"
)

// BudgetHTTPHandler keeps the generic handler signature readable.
type BudgetHTTPHandler = CatalogHandler[
	*budget.Budget,
	dto.CreateBudgetRequest,
	dto.UpdateBudgetRequest,
]

// NewBudgetHandler wires the generic catalog handler for budgets.
func NewBudgetHandler(
	base *BaseHandler,
	service *budget.Service,
) *BudgetHTTPHandler {
	config := CatalogHandlerConfig[
		*budget.Budget,
		dto.CreateBudgetRequest,
		dto.UpdateBudgetRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "budget",

		MapCreateDTO: func(req dto.CreateBudgetRequest) *budget.Budget {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateBudgetRequest, existing *budget.Budget) *budget.Budget {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *budget.Budget) any {
			return dto.FromBudget(entity)
		},
	}

	return NewCatalogHandler(base, config)
}

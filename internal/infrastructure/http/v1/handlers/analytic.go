package handlers

import (
	"bizledger/internal/domain/catalogs/analytic"
	"bizledger/internal/infrastructure/http/v1/dto"
)

// AnalyticHTTPHandler keeps the generic handler signature readable.
type AnalyticHTTPHandler = CatalogHandler[
	*analytic.AnalyticalAccount,
	dto.CreateAnalyticalAccountRequest,
	dto.UpdateAnalyticalAccountRequest,
]

// NewAnalyticHandler wires the generic catalog handler for analytical accounts.
func NewAnalyticHandler(
	base *BaseHandler,
	service *analytic.Service,
) *AnalyticHTTPHandler {
	config := CatalogHandlerConfig[
		*analytic.AnalyticalAccount,
		dto.CreateAnalyticalAccountRequest,
		dto.UpdateAnalyticalAccountRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "analytical_account",

		MapCreateDTO: func(req dto.CreateAnalyticalAccountRequest) *analytic.AnalyticalAccount {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateAnalyticalAccountRequest, existing *analytic.AnalyticalAccount) *analytic.AnalyticalAccount {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *analytic.AnalyticalAccount) any {
			return dto.FromAnalyticalAccount(entity)
		},
	}

	return NewCatalogHandler(base, config)
}

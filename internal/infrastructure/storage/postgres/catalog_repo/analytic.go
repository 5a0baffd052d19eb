package catalog_repo

import (
	"bizledger/internal/domain/catalogs/analytic"
	"bizledger/internal/infrastructure/storage/postgres"
)

const analyticTable = "cat_analytical_accounts"

// AnalyticRepo implements analytic.Repository.
type AnalyticRepo struct {
	*BaseCatalogRepo[*analytic.AnalyticalAccount]
}

// NewAnalyticRepo creates a new analytical account repository.
func NewAnalyticRepo() *AnalyticRepo {
	return &AnalyticRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*analytic.AnalyticalAccount](
			analyticTable,
			postgres.ExtractDBColumns[analytic.AnalyticalAccount](),
			func() *analytic.AnalyticalAccount { return &analytic.AnalyticalAccount{} },
		),
	}
}

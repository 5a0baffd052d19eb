package analytic

import (
	"bizledger/internal/domain"
)

// Repository defines the interface for AnalyticalAccount persistence.
type Repository interface {
	domain.CatalogRepository[*AnalyticalAccount]
}

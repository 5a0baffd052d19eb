package purchaseorder

import "bizledger/pkg/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for purchase orders.
	// Orders are internal references, gaps are acceptable.
	NumeratorStrategy = numerator.StrategyCached
)

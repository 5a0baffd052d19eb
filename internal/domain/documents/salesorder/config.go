package salesorder

import "bizledger/pkg/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for sales orders.
	// Orders are internal references, gaps are acceptable.
	NumeratorStrategy = numerator.StrategyCached
)

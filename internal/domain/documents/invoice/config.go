package invoice

import "bizledger/pkg/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for invoices.
	// Invoices are primary accounting documents, so numbers must be gapless.
	NumeratorStrategy = numerator.StrategyStrict
)

// NumberConfig yields numbers like INV-2024-003, matching the placeholder
// format used for unsaved drafts.
func NumberConfig() numerator.Config {
	return numerator.Config{
		Prefix:      "INV",
		IncludeYear: true,
		PadWidth:    3,
		ResetPeriod: "year",
	}
}

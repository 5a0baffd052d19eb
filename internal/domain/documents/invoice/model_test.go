package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/id"
	"bizledger/internal/core/types"
	"bizledger/internal/domain/catalogs/product"
)

func mustDec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testInvoice() *CustomerInvoice {
	inv := NewCustomerInvoice(id.New())
	inv.Date = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	inv.DueDate = time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	inv.Lines = nil
	inv.AddLine(id.New(), "Widget A", types.NewQuantityFromFloat64(2), mustDec("100"))
	inv.AddLine(id.New(), "Widget B", types.NewQuantityFromFloat64(1), mustDec("50"))
	return inv
}

func TestComputeTotal(t *testing.T) {
	inv := testInvoice()

	total := ComputeTotal(inv.Lines)
	if !total.Equal(mustDec("250")) {
		t.Errorf("total mismatch\nwant: 250\ngot:  %s", total)
	}

	// Order of lines must not matter
	reversed := []InvoiceLine{inv.Lines[1], inv.Lines[0]}
	if got := ComputeTotal(reversed); !got.Equal(total) {
		t.Errorf("total changed after reordering lines: %s vs %s", got, total)
	}

	if got := ComputeTotal(nil); !got.IsZero() {
		t.Errorf("empty line set should total zero, got %s", got)
	}
}

func TestComputeTotal_FractionalQuantity(t *testing.T) {
	var lines []InvoiceLine
	lines = append(lines, InvoiceLine{
		Quantity:  types.NewQuantityFromFloat64(2.5),
		UnitPrice: mustDec("10"),
	})

	if got := ComputeTotal(lines); !got.Equal(mustDec("25")) {
		t.Errorf("fractional quantity total\nwant: 25\ngot:  %s", got)
	}
}

func TestEffectiveTotal_StoredWins(t *testing.T) {
	inv := testInvoice()

	// No stored total: derive from lines
	if got := inv.EffectiveTotal(); !got.Equal(mustDec("250")) {
		t.Errorf("derived total\nwant: 250\ngot:  %s", got)
	}

	stored := mustDec("300")
	inv.TotalAmount = &stored
	if got := inv.EffectiveTotal(); !got.Equal(stored) {
		t.Errorf("stored total must win\nwant: 300\ngot:  %s", got)
	}
}

func TestBalance(t *testing.T) {
	inv := testInvoice()
	inv.ReceivedAmount = mustDec("100")

	if got := inv.Balance(); !got.Equal(mustDec("150")) {
		t.Errorf("balance mismatch\nwant: 150\ngot:  %s", got)
	}

	// Overpayment is reported as a negative balance, never clamped
	inv.ReceivedAmount = mustDec("300")
	if got := inv.Balance(); !got.Equal(mustDec("-50")) {
		t.Errorf("overpaid balance\nwant: -50\ngot:  %s", got)
	}
}

func TestResolvePaymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		explicit PaymentStatus
		total    string
		received string
		want     PaymentStatus
	}{
		{"explicit wins over amounts", PaymentPaid, "250", "0", PaymentPaid},
		{"fully received", PaymentUnset, "250", "250", PaymentPaid},
		{"overpaid", PaymentUnset, "250", "300", PaymentPaid},
		{"partially received", PaymentUnset, "250", "100", PaymentPartial},
		{"nothing received", PaymentUnset, "250", "0", PaymentNotPaid},
		{"zero total is never paid", PaymentUnset, "0", "0", PaymentNotPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := testInvoice()
			inv.PaymentStatus = tt.explicit
			total := mustDec(tt.total)
			inv.TotalAmount = &total
			inv.ReceivedAmount = mustDec(tt.received)

			if got := inv.ResolvePaymentStatus(); got != tt.want {
				t.Errorf("want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCanEdit(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		received string
		want     bool
	}{
		{"fresh draft", StatusDraft, "0", true},
		{"draft with payment", StatusDraft, "10", false},
		{"posted", StatusPosted, "0", false},
		{"sent", StatusSent, "0", false},
		{"cancelled", StatusCancelled, "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := testInvoice()
			inv.Status = tt.status
			inv.ReceivedAmount = mustDec(tt.received)
			if got := inv.CanEdit(); got != tt.want {
				t.Errorf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCanRegisterPayment(t *testing.T) {
	inv := testInvoice()

	// Drafts never accept payments
	if inv.CanRegisterPayment() {
		t.Error("draft should not accept payments")
	}

	inv.Status = StatusPosted
	if !inv.CanRegisterPayment() {
		t.Error("posted invoice with open balance should accept payments")
	}

	inv.ReceivedAmount = mustDec("250")
	if inv.CanRegisterPayment() {
		t.Error("settled invoice should not accept payments")
	}
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusDraft, StatusPosted, true},
		{StatusDraft, StatusSent, false},
		{StatusDraft, StatusCancelled, false},
		{StatusPosted, StatusSent, true},
		{StatusPosted, StatusCancelled, true},
		{StatusPosted, StatusDraft, false},
		{StatusSent, StatusCancelled, true},
		{StatusSent, StatusPosted, false},
		{StatusCancelled, StatusDraft, false},
		{StatusCancelled, StatusPosted, false},
		{StatusCancelled, StatusSent, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: want %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	if got, err := NormalizeStatus("CONFIRMED"); err != nil || got != StatusPosted {
		t.Errorf("CONFIRMED should normalize to POSTED, got %s (err %v)", got, err)
	}
	if got, err := NormalizeStatus("posted"); err != nil || got != StatusPosted {
		t.Errorf("lowercase should normalize, got %s (err %v)", got, err)
	}
	if got, err := NormalizeStatus("confirmed"); err != nil || got != StatusPosted {
		t.Errorf("lowercase synonym should normalize to POSTED, got %s (err %v)", got, err)
	}
	if got, err := NormalizeStatus("Sent"); err != nil || got != StatusSent {
		t.Errorf("mixed case should normalize, got %s (err %v)", got, err)
	}
	if _, err := NormalizeStatus("SHIPPED"); err == nil {
		t.Error("unknown status should be rejected")
	}
}

func TestValidateForSave_AccumulatesViolations(t *testing.T) {
	inv := &CustomerInvoice{}
	inv.Lines = []InvoiceLine{{LineNo: 1, Quantity: types.One(), UnitPrice: mustDec("10")}}

	violations := inv.ValidateForSave()
	if len(violations) < 3 {
		t.Fatalf("expected customer, due date and line violations, got %d: %+v",
			len(violations), violations)
	}

	// Missing customer must be reported first
	if violations[0].Field != "customerId" {
		t.Errorf("first violation should be customerId, got %s", violations[0].Field)
	}

	var hasDueDate, hasLineProduct bool
	for _, v := range violations {
		if v.Field == "dueDate" {
			hasDueDate = true
		}
		if v.Field == "lines" && v.LineNo == 1 {
			hasLineProduct = true
		}
	}
	if !hasDueDate {
		t.Error("missing due date violation")
	}
	if !hasLineProduct {
		t.Error("missing line product violation")
	}
}

func TestValidateForSave_ValidInvoice(t *testing.T) {
	inv := testInvoice()
	if violations := inv.ValidateForSave(); len(violations) != 0 {
		t.Errorf("expected no violations, got %+v", violations)
	}
}

func TestValidateForSave_EmptyLines(t *testing.T) {
	inv := testInvoice()
	inv.Lines = nil

	violations := inv.ValidateForSave()
	found := false
	for _, v := range violations {
		if v.Field == "lines" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a lines violation, got %+v", violations)
	}
}

func TestApplyProductDefaults(t *testing.T) {
	inv := testInvoice()
	line := inv.Lines[0]
	account := id.New()
	inv.Lines[0].AnalyticalAccountID = &account
	inv.Lines[0].Quantity = types.NewQuantityFromFloat64(3)

	widget := &product.Product{}
	widget.ID = id.New()
	widget.Name = "Widget"
	widget.SalePrice = mustDec("75")

	if err := inv.ApplyProductDefaults(line.LineID, widget); err != nil {
		t.Fatalf("ApplyProductDefaults failed: %v", err)
	}

	got := inv.Lines[0]
	if got.ProductID != widget.ID {
		t.Error("product reference not updated")
	}
	if !got.UnitPrice.Equal(mustDec("75")) {
		t.Errorf("unit price should follow the product, got %s", got.UnitPrice)
	}
	if got.Description != "Widget" {
		t.Errorf("description should follow the product name, got %q", got.Description)
	}
	if !got.Amount.Equal(mustDec("225")) {
		t.Errorf("amount should be recomputed, want 225, got %s", got.Amount)
	}

	// Quantity and analytical account are manual fields, the defaults must not touch them
	if got.Quantity != types.NewQuantityFromFloat64(3) {
		t.Errorf("quantity must not change, got %s", got.Quantity)
	}
	if got.AnalyticalAccountID == nil || *got.AnalyticalAccountID != account {
		t.Error("analytical account must not change")
	}
}

func TestApplyProductDefaults_UnknownLine(t *testing.T) {
	inv := testInvoice()
	if err := inv.ApplyProductDefaults(id.New(), &product.Product{}); err == nil {
		t.Error("expected not found error for unknown line")
	}
}

func TestNextInvoiceNumber(t *testing.T) {
	tests := []struct {
		count int
		year  int
		want  string
	}{
		{0, 2024, "INV-2024-001"},
		{2, 2024, "INV-2024-003"},
		{99, 2024, "INV-2024-100"},
		{999, 2025, "INV-2025-1000"},
	}

	for _, tt := range tests {
		if got := NextInvoiceNumber(tt.count, tt.year); got != tt.want {
			t.Errorf("NextInvoiceNumber(%d, %d)\nwant: %s\ngot:  %s",
				tt.count, tt.year, tt.want, got)
		}
	}
}

func TestNewCustomerInvoice(t *testing.T) {
	customerID := id.New()
	inv := NewCustomerInvoice(customerID)

	if inv.Status != StatusDraft {
		t.Errorf("new invoice should be a draft, got %s", inv.Status)
	}
	if inv.CustomerID != customerID {
		t.Error("customer not set")
	}
	if len(inv.Lines) != 1 {
		t.Fatalf("new invoice should start with one line, got %d", len(inv.Lines))
	}
	if inv.Lines[0].Quantity != types.One() {
		t.Errorf("initial line quantity should be 1, got %s", inv.Lines[0].Quantity)
	}
}

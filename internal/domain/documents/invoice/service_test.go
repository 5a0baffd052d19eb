package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/id"
	"bizledger/internal/domain"
)

// passthroughTxManager runs the function without a real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockRepo struct {
	invoices map[id.ID]*CustomerInvoice
	lines    map[id.ID][]InvoiceLine

	statusUpdates  []Status
	paymentUpdates int
	failUpdate     error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		invoices: make(map[id.ID]*CustomerInvoice),
		lines:    make(map[id.ID][]InvoiceLine),
	}
}

func (m *mockRepo) put(inv *CustomerInvoice) {
	cp := *inv
	m.invoices[inv.ID] = &cp
	m.lines[inv.ID] = append([]InvoiceLine(nil), inv.Lines...)
}

func (m *mockRepo) Create(ctx context.Context, inv *CustomerInvoice) error {
	m.put(inv)
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, invID id.ID) (*CustomerInvoice, error) {
	inv, ok := m.invoices[invID]
	if !ok {
		return nil, apperror.NewNotFound("customer_invoice", invID.String())
	}
	cp := *inv
	return &cp, nil
}

func (m *mockRepo) GetByNumber(ctx context.Context, number string) (*CustomerInvoice, error) {
	for _, inv := range m.invoices {
		if inv.Number == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("customer_invoice", number)
}

func (m *mockRepo) Update(ctx context.Context, inv *CustomerInvoice) error {
	if _, ok := m.invoices[inv.ID]; !ok {
		return apperror.NewNotFound("customer_invoice", inv.ID.String())
	}
	m.put(inv)
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, invID id.ID) error {
	delete(m.invoices, invID)
	return nil
}

func (m *mockRepo) GetLines(ctx context.Context, invID id.ID) ([]InvoiceLine, error) {
	return append([]InvoiceLine(nil), m.lines[invID]...), nil
}

func (m *mockRepo) SaveLines(ctx context.Context, invID id.ID, lines []InvoiceLine) error {
	m.lines[invID] = append([]InvoiceLine(nil), lines...)
	return nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, invID id.ID, status Status) error {
	if m.failUpdate != nil {
		return m.failUpdate
	}
	inv, ok := m.invoices[invID]
	if !ok {
		return apperror.NewNotFound("customer_invoice", invID.String())
	}
	inv.Status = status
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockRepo) UpdatePayment(ctx context.Context, invID id.ID, received decimal.Decimal, status PaymentStatus) error {
	inv, ok := m.invoices[invID]
	if !ok {
		return apperror.NewNotFound("customer_invoice", invID.String())
	}
	inv.ReceivedAmount = received
	inv.PaymentStatus = status
	m.paymentUpdates++
	return nil
}

func (m *mockRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*CustomerInvoice], error) {
	var items []*CustomerInvoice
	for _, inv := range m.invoices {
		cp := *inv
		items = append(items, &cp)
	}
	return domain.ListResult[*CustomerInvoice]{Items: items, TotalCount: int64(len(items))}, nil
}

func (m *mockRepo) GetForUpdate(ctx context.Context, invID id.ID) (*CustomerInvoice, error) {
	return m.GetByID(ctx, invID)
}

func (m *mockRepo) CountByYear(ctx context.Context, year int) (int, error) {
	count := 0
	for _, inv := range m.invoices {
		if inv.Date.Year() == year {
			count++
		}
	}
	return count, nil
}

type resolverFunc func(ctx context.Context, orderID id.ID) (id.ID, error)

func (f resolverFunc) ResolveCustomer(ctx context.Context, orderID id.ID) (id.ID, error) {
	return f(ctx, orderID)
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, nil, nil, nil, passthroughTxManager{})
}

func storedInvoice(repo *mockRepo, status Status) *CustomerInvoice {
	inv := testInvoice()
	inv.Number = "INV-2024-001"
	inv.Status = status
	total := ComputeTotal(inv.Lines)
	inv.TotalAmount = &total
	repo.put(inv)
	return inv
}

func TestServiceCreate_Validates(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	inv := NewCustomerInvoice(id.Nil())
	err := svc.Create(context.Background(), inv)
	if err == nil {
		t.Fatal("expected validation error for missing customer")
	}

	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Errorf("expected %s, got %v", apperror.CodeValidation, err)
	}
	if len(repo.invoices) != 0 {
		t.Error("invalid invoice must not be persisted")
	}
}

func TestServiceCreate_ComputesTotal(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	inv := testInvoice()
	inv.Number = "INV-2024-001"
	if err := svc.Create(context.Background(), inv); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if inv.TotalAmount == nil || !inv.TotalAmount.Equal(mustDec("250")) {
		t.Errorf("stored total should be 250, got %v", inv.TotalAmount)
	}
	if inv.Status != StatusDraft {
		t.Errorf("created invoice should be a draft, got %s", inv.Status)
	}
	if inv.PaymentStatus != PaymentNotPaid {
		t.Errorf("created invoice should be not paid, got %s", inv.PaymentStatus)
	}
	if len(repo.lines[inv.ID]) != 2 {
		t.Error("lines not saved")
	}
}

func TestServiceCreate_SalesOrderCustomerMismatch(t *testing.T) {
	repo := newMockRepo()
	otherCustomer := id.New()
	svc := NewService(repo, resolverFunc(func(ctx context.Context, orderID id.ID) (id.ID, error) {
		return otherCustomer, nil
	}), nil, nil, passthroughTxManager{})

	inv := testInvoice()
	inv.Number = "INV-2024-001"
	orderID := id.New()
	inv.SalesOrderID = &orderID

	err := svc.Create(context.Background(), inv)
	if err == nil {
		t.Fatal("expected rejection for mismatched sales order customer")
	}
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestServiceUpdate_RejectsNonEditable(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	inv := storedInvoice(repo, StatusPosted)

	err := svc.Update(context.Background(), inv)
	if err == nil {
		t.Fatal("expected posted invoice to be read-only")
	}
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInvoiceNotEditable {
		t.Errorf("expected %s, got %v", apperror.CodeInvoiceNotEditable, err)
	}
}

func TestServiceUpdate_RejectsDraftWithPayment(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	inv := storedInvoice(repo, StatusDraft)
	repo.invoices[inv.ID].ReceivedAmount = mustDec("10")

	if err := svc.Update(context.Background(), inv); err == nil {
		t.Fatal("a draft with received money must be read-only")
	}
}

func TestServiceUpdate_PreservesNumberAndStatus(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	stored := storedInvoice(repo, StatusDraft)

	edited, _ := repo.GetByID(context.Background(), stored.ID)
	edited.Number = "INV-9999-001"
	edited.Lines = stored.Lines
	edited.Lines[0].UnitPrice = mustDec("200")

	if err := svc.Update(context.Background(), edited); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if edited.Number != "INV-2024-001" {
		t.Errorf("number must be immutable, got %s", edited.Number)
	}
	if edited.TotalAmount == nil || !edited.TotalAmount.Equal(mustDec("450")) {
		t.Errorf("total should be recomputed to 450, got %v", edited.TotalAmount)
	}
}

func TestServiceDelete_DraftOnly(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	draft := storedInvoice(repo, StatusDraft)
	if err := svc.Delete(context.Background(), draft.ID); err != nil {
		t.Fatalf("draft delete failed: %v", err)
	}

	posted := storedInvoice(repo, StatusPosted)
	if err := svc.Delete(context.Background(), posted.ID); err == nil {
		t.Error("posted invoice must not be deletable")
	}
}

func TestServiceConfirm(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	draft := storedInvoice(repo, StatusDraft)

	inv, err := svc.Confirm(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if inv.Status != StatusPosted {
		t.Errorf("want POSTED, got %s", inv.Status)
	}
	if len(repo.statusUpdates) != 1 || repo.statusUpdates[0] != StatusPosted {
		t.Error("status change not persisted")
	}
}

func TestServiceConfirm_RequiresPersistedNumber(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	inv := testInvoice()
	repo.put(inv) // stored but numberless

	if _, err := svc.Confirm(context.Background(), inv.ID); err == nil {
		t.Error("numberless invoice must not be confirmable")
	}
}

func TestServiceTransitions_Illegal(t *testing.T) {
	tests := []struct {
		name string
		from Status
		call func(svc *Service, invID id.ID) error
	}{
		{"send a draft", StatusDraft, func(svc *Service, invID id.ID) error {
			_, err := svc.Send(context.Background(), invID)
			return err
		}},
		{"cancel a draft", StatusDraft, func(svc *Service, invID id.ID) error {
			_, err := svc.Cancel(context.Background(), invID)
			return err
		}},
		{"confirm twice", StatusPosted, func(svc *Service, invID id.ID) error {
			_, err := svc.Confirm(context.Background(), invID)
			return err
		}},
		{"revive cancelled", StatusCancelled, func(svc *Service, invID id.ID) error {
			_, err := svc.Send(context.Background(), invID)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepo()
			svc := newTestService(repo)
			inv := storedInvoice(repo, tt.from)

			err := tt.call(svc, inv.ID)
			if err == nil {
				t.Fatal("expected transition to be rejected")
			}
			appErr, ok := apperror.AsAppError(err)
			if !ok || appErr.Code != apperror.CodeInvalidTransition {
				t.Errorf("expected %s, got %v", apperror.CodeInvalidTransition, err)
			}
			if len(repo.statusUpdates) != 0 {
				t.Error("rejected transition must not be persisted")
			}
		})
	}
}

func TestServiceTransition_RepoFailureLeavesStatus(t *testing.T) {
	repo := newMockRepo()
	repo.failUpdate = errors.New("connection reset")
	svc := newTestService(repo)
	draft := storedInvoice(repo, StatusDraft)

	if _, err := svc.Confirm(context.Background(), draft.ID); err == nil {
		t.Fatal("expected repository error to propagate")
	}

	stored, _ := repo.GetByID(context.Background(), draft.ID)
	if stored.Status != StatusDraft {
		t.Errorf("status must stay DRAFT after a failed write, got %s", stored.Status)
	}
}

func TestServiceUpdateStatus_NormalizesConfirmed(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	draft := storedInvoice(repo, StatusDraft)

	inv, err := svc.UpdateStatus(context.Background(), draft.ID, "CONFIRMED")
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if inv.Status != StatusPosted {
		t.Errorf("CONFIRMED should land on POSTED, got %s", inv.Status)
	}
}

func TestServiceUpdateStatus_RejectsDraftTarget(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	posted := storedInvoice(repo, StatusPosted)

	if _, err := svc.UpdateStatus(context.Background(), posted.ID, "DRAFT"); err == nil {
		t.Error("transition back to draft must be rejected")
	}
}

func TestServiceRegisterPayment(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	posted := storedInvoice(repo, StatusPosted)

	inv, err := svc.RegisterPayment(context.Background(), posted.ID, mustDec("100"))
	if err != nil {
		t.Fatalf("RegisterPayment failed: %v", err)
	}
	if !inv.ReceivedAmount.Equal(mustDec("100")) {
		t.Errorf("received amount should be 100, got %s", inv.ReceivedAmount)
	}
	if inv.PaymentStatus != PaymentPartial {
		t.Errorf("want PARTIALLY_PAID, got %s", inv.PaymentStatus)
	}
	if !inv.Balance().Equal(mustDec("150")) {
		t.Errorf("balance should be 150, got %s", inv.Balance())
	}

	// Second payment settles the invoice
	inv, err = svc.RegisterPayment(context.Background(), posted.ID, mustDec("150"))
	if err != nil {
		t.Fatalf("second payment failed: %v", err)
	}
	if inv.PaymentStatus != PaymentPaid {
		t.Errorf("want PAID, got %s", inv.PaymentStatus)
	}
	if repo.paymentUpdates != 2 {
		t.Errorf("expected 2 payment writes, got %d", repo.paymentUpdates)
	}
}

func TestServiceRegisterPayment_Gates(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	draft := storedInvoice(repo, StatusDraft)
	if _, err := svc.RegisterPayment(context.Background(), draft.ID, mustDec("10")); err == nil {
		t.Error("payments on drafts must be rejected")
	}

	settled := storedInvoice(repo, StatusPosted)
	repo.invoices[settled.ID].ReceivedAmount = mustDec("250")
	if _, err := svc.RegisterPayment(context.Background(), settled.ID, mustDec("10")); err == nil {
		t.Error("payments on settled invoices must be rejected")
	}

	posted := storedInvoice(repo, StatusPosted)
	if _, err := svc.RegisterPayment(context.Background(), posted.ID, mustDec("-5")); err == nil {
		t.Error("negative amounts must be rejected")
	}
	if _, err := svc.RegisterPayment(context.Background(), posted.ID, decimal.Zero); err == nil {
		t.Error("zero amounts must be rejected")
	}
}

func TestServiceDraftNumberPlaceholder(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	storedInvoice(repo, StatusPosted)
	storedInvoice(repo, StatusDraft)

	number, err := svc.DraftNumberPlaceholder(context.Background(), at)
	if err != nil {
		t.Fatalf("DraftNumberPlaceholder failed: %v", err)
	}
	if number != "INV-2024-003" {
		t.Errorf("want INV-2024-003, got %s", number)
	}
}

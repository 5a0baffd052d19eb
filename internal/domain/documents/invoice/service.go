package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/dbctx"
	"bizledger/internal/core/id"
	"bizledger/internal/core/tx"
	"bizledger/internal/domain"
	"bizledger/pkg/logger"
	"bizledger/pkg/numerator"
)

// OrderResolver resolves the owning customer of a sales order, for checking
// that a linked order belongs to the invoice's customer.
type OrderResolver interface {
	ResolveCustomer(ctx context.Context, orderID id.ID) (id.ID, error)
}

// Auditor records invoice change history. Implemented by the storage layer.
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes map[string]any) error
}

const auditEntityType = "customer_invoice"

// Service provides business operations for customer invoices: CRUD while the
// invoice is an editable draft, and the confirm/send/cancel transitions plus
// payment registration afterwards.
type Service struct {
	repo      Repository
	orders    OrderResolver // optional
	auditor   Auditor       // optional
	numerator *numerator.Service
	txManager tx.Manager // Optional. If nil, obtained from context.
}

// NewService creates a new customer invoice service.
func NewService(
	repo Repository,
	orders OrderResolver,
	auditor Auditor,
	numerator *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		orders:    orders,
		auditor:   auditor,
		numerator: numerator,
		txManager: txManager,
	}
}

func (s *Service) getTxManager(ctx context.Context) (tx.Manager, error) {
	if s.txManager != nil {
		return s.txManager, nil
	}
	return dbctx.GetTxManager(ctx)
}

// audit records a change entry; failures are logged, never fatal.
func (s *Service) audit(ctx context.Context, invID id.ID, action string, changes map[string]any) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.LogChange(ctx, auditEntityType, invID, action, changes); err != nil {
		logger.Warn(ctx, "audit log failed", "invoice_id", invID, "action", action, "error", err)
	}
}

// checkSalesOrder verifies a linked sales order belongs to the same customer.
func (s *Service) checkSalesOrder(ctx context.Context, inv *CustomerInvoice) error {
	if inv.SalesOrderID == nil || s.orders == nil {
		return nil
	}
	ownerID, err := s.orders.ResolveCustomer(ctx, *inv.SalesOrderID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("linked sales order does not exist").
				WithDetail("field", "salesOrderId")
		}
		return err
	}
	if ownerID != inv.CustomerID {
		return apperror.NewValidation("sales order belongs to a different customer").
			WithDetail("field", "salesOrderId").
			WithDetail("orderCustomerId", ownerID.String())
	}
	return nil
}

// Create persists a new draft invoice. The stored total is computed from the
// lines and the number comes from the gapless sequence; validation failures
// reject the save before any persistence is attempted.
func (s *Service) Create(ctx context.Context, inv *CustomerInvoice) error {
	if err := inv.Validate(ctx); err != nil {
		return err
	}

	if err := s.checkSalesOrder(ctx, inv); err != nil {
		return err
	}

	inv.Status = StatusDraft
	if inv.PaymentStatus == PaymentUnset {
		inv.PaymentStatus = PaymentNotPaid
	}
	inv.RecalculateLineAmounts()
	total := ComputeTotal(inv.Lines)
	inv.TotalAmount = &total

	if inv.Number == "" {
		number, err := s.numerator.GetNextNumber(ctx, NumberConfig(),
			&numerator.Options{Strategy: NumeratorStrategy}, inv.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		inv.Number = number
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		if err := s.repo.SaveLines(ctx, inv.ID, inv.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit(ctx, inv.ID, "create", map[string]any{
		"number": inv.Number,
		"total":  total.String(),
	})
	logger.Info(ctx, "invoice created", "id", inv.ID, "number", inv.Number, "total", total)
	return nil
}

// GetByID retrieves an invoice with lines.
func (s *Service) GetByID(ctx context.Context, invID id.ID) (*CustomerInvoice, error) {
	inv, err := s.repo.GetByID(ctx, invID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, invID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	inv.Lines = lines

	return inv, nil
}

// Update replaces an editable invoice's content. Once any payment is
// recorded or the status leaves DRAFT the invoice is read-only except for
// status transitions.
func (s *Service) Update(ctx context.Context, inv *CustomerInvoice) error {
	existing, err := s.repo.GetByID(ctx, inv.ID)
	if err != nil {
		return err
	}

	if !existing.CanEdit() {
		return apperror.NewInvoiceNotEditable(inv.ID.String()).
			WithDetail("status", string(existing.Status)).
			WithDetail("receivedAmount", existing.ReceivedAmount.String())
	}

	if err := inv.Validate(ctx); err != nil {
		return err
	}

	if err := s.checkSalesOrder(ctx, inv); err != nil {
		return err
	}

	// Number and status are immutable through this path
	inv.Number = existing.Number
	inv.Status = existing.Status
	inv.ReceivedAmount = existing.ReceivedAmount
	inv.RecalculateLineAmounts()
	total := ComputeTotal(inv.Lines)
	inv.TotalAmount = &total

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, inv); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		if err := s.repo.SaveLines(ctx, inv.ID, inv.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit(ctx, inv.ID, "update", map[string]any{
		"number": inv.Number,
		"total":  total.String(),
	})
	return nil
}

// Delete soft-deletes a draft invoice. Non-drafts must be cancelled instead.
func (s *Service) Delete(ctx context.Context, invID id.ID) error {
	inv, err := s.repo.GetByID(ctx, invID)
	if err != nil {
		return err
	}

	if inv.Status != StatusDraft {
		return apperror.NewBusinessRule(apperror.CodeInvoiceNotEditable,
			"only draft invoices can be deleted, cancel this one instead").
			WithDetail("status", string(inv.Status))
	}

	if err := s.repo.Delete(ctx, invID); err != nil {
		return err
	}

	s.audit(ctx, invID, "delete", map[string]any{"number": inv.Number})
	return nil
}

// transition moves an invoice to target after checking the state machine.
// Local state is never touched before the repository acknowledges the write;
// the returned invoice reflects the new status only on success.
func (s *Service) transition(ctx context.Context, invID id.ID, target Status) (*CustomerInvoice, error) {
	inv, err := s.GetByID(ctx, invID)
	if err != nil {
		return nil, err
	}

	if target == StatusPosted && !inv.IsPersisted() {
		return nil, apperror.NewBusinessRule(apperror.CodeInvalidTransition,
			"invoice must be saved before it can be confirmed")
	}

	if !inv.Status.CanTransitionTo(target) {
		return nil, apperror.NewInvalidTransition(string(inv.Status), string(target))
	}

	from := inv.Status
	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.UpdateStatus(ctx, invID, target)
	})
	if err != nil {
		return nil, err
	}

	// Acknowledged, safe to reflect locally
	inv.Status = target

	s.audit(ctx, invID, "status_change", map[string]any{
		"from": string(from),
		"to":   string(target),
	})
	logger.Info(ctx, "invoice status changed", "id", invID, "from", from, "to", target)
	return inv, nil
}

// Confirm posts a draft invoice.
func (s *Service) Confirm(ctx context.Context, invID id.ID) (*CustomerInvoice, error) {
	return s.transition(ctx, invID, StatusPosted)
}

// Send marks a posted invoice as sent to the customer. The SENT state is
// persisted like every other transition; earlier revisions of this workflow
// kept it client-side only, which let the flag silently revert on reload.
func (s *Service) Send(ctx context.Context, invID id.ID) (*CustomerInvoice, error) {
	return s.transition(ctx, invID, StatusSent)
}

// Cancel voids a posted or sent invoice. Cancelled is terminal.
func (s *Service) Cancel(ctx context.Context, invID id.ID) (*CustomerInvoice, error) {
	return s.transition(ctx, invID, StatusCancelled)
}

// UpdateStatus routes an external status-change request to the matching
// transition. CONFIRMED is accepted as a synonym for POSTED.
func (s *Service) UpdateStatus(ctx context.Context, invID id.ID, rawStatus string) (*CustomerInvoice, error) {
	target, err := NormalizeStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	switch target {
	case StatusPosted:
		return s.Confirm(ctx, invID)
	case StatusSent:
		return s.Send(ctx, invID)
	case StatusCancelled:
		return s.Cancel(ctx, invID)
	default:
		return nil, apperror.NewValidation("cannot transition an invoice back to draft").
			WithDetail("field", "status")
	}
}

// RegisterPayment records money received against an invoice. Gate: the
// invoice must have left draft and still carry an open balance. The received
// amount and the stored payment status move together in one transaction.
func (s *Service) RegisterPayment(ctx context.Context, invID id.ID, amount decimal.Decimal) (*CustomerInvoice, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount")
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	var inv *CustomerInvoice
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.repo.GetForUpdate(ctx, invID)
		if err != nil {
			return err
		}

		if !locked.CanRegisterPayment() {
			return apperror.NewBusinessRule(apperror.CodePaymentNotAllowed,
				"payments can only be registered on non-draft invoices with an open balance").
				WithDetail("status", string(locked.Status)).
				WithDetail("balance", locked.Balance().String())
		}

		locked.ReceivedAmount = locked.ReceivedAmount.Add(amount)

		// Re-derive the stored status from the new amounts
		locked.PaymentStatus = PaymentUnset
		locked.PaymentStatus = locked.ResolvePaymentStatus()

		if err := s.repo.UpdatePayment(ctx, invID, locked.ReceivedAmount, locked.PaymentStatus); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}

		inv = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, invID, "payment", map[string]any{
		"amount":        amount.String(),
		"received":      inv.ReceivedAmount.String(),
		"paymentStatus": string(inv.PaymentStatus),
	})
	logger.Info(ctx, "payment registered", "id", invID, "amount", amount, "received", inv.ReceivedAmount)
	return inv, nil
}

// List retrieves invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*CustomerInvoice], error) {
	return s.repo.List(ctx, filter)
}

// DraftNumberPlaceholder builds the display number a new in-memory draft
// shows before the sequence assigns the real one on save.
func (s *Service) DraftNumberPlaceholder(ctx context.Context, at time.Time) (string, error) {
	count, err := s.repo.CountByYear(ctx, at.Year())
	if err != nil {
		return "", err
	}
	return NextInvoiceNumber(count, at.Year()), nil
}

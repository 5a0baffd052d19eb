package purchaseorder

import (
	"context"
	"fmt"
	"time"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/dbctx"
	"bizledger/internal/core/id"
	"bizledger/internal/core/tx"
	"bizledger/internal/domain"
	"bizledger/pkg/logger"
	"bizledger/pkg/numerator"
)

// Service provides business operations for purchase orders.
type Service struct {
	repo      Repository
	numerator *numerator.Service
	txManager tx.Manager // Optional. If nil, obtained from context.
}

// NewService creates a new purchase order service.
func NewService(repo Repository, numerator *numerator.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
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

// Create creates a new purchase order.
func (s *Service) Create(ctx context.Context, order *PurchaseOrder) error {
	if order.Status == "" {
		order.Status = StatusDraft
	}
	if err := order.Validate(ctx); err != nil {
		return err
	}
	order.RecalculateTotals()

	if order.Number == "" {
		cfg := numerator.DefaultConfig("PO")
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		order.Number = number
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := s.repo.SaveLines(ctx, order.ID, order.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase order created", "id", order.ID, "number", order.Number)
	return nil
}

// GetByID retrieves an order with lines.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*PurchaseOrder, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	order.Lines = lines

	return order, nil
}

// Update updates a purchase order.
func (s *Service) Update(ctx context.Context, order *PurchaseOrder) error {
	existing, err := s.repo.GetByID(ctx, order.ID)
	if err != nil {
		return err
	}
	if existing.Status == StatusCancelled {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"cancelled orders cannot be modified")
	}

	if err := order.Validate(ctx); err != nil {
		return err
	}
	order.RecalculateTotals()

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if err := s.repo.SaveLines(ctx, order.ID, order.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes a draft or cancelled order.
func (s *Service) Delete(ctx context.Context, orderID id.ID) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == StatusConfirmed || order.Status == StatusDone {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"confirmed orders cannot be deleted, cancel first").
			WithDetail("status", string(order.Status))
	}
	return s.repo.Delete(ctx, orderID)
}

// List retrieves orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error) {
	return s.repo.List(ctx, filter)
}

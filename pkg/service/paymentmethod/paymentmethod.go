// Package paymentmethod manages the catalogue of funding channels.
package paymentmethod

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides payment method administration.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with the provided dependencies.
func New(deps config.Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: deps.Uow, logger: logger.With("service", "paymentmethod")}
}

// Input holds the editable fields of a payment method.
type Input struct {
	Name      string
	Type      paymentmethod.Type
	Details   map[string]string
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	Fee       decimal.Decimal
	FeeType   fee.Kind
}

func (in Input) apply(pm *paymentmethod.PaymentMethod) {
	pm.Name = strings.TrimSpace(in.Name)
	pm.Type = in.Type
	pm.Details = in.Details
	pm.MinAmount = in.MinAmount
	pm.MaxAmount = in.MaxAmount
	pm.Fee = in.Fee
	pm.FeeType = in.FeeType
}

// Create adds an active payment method.
func (s *Service) Create(ctx context.Context, in Input) (*paymentmethod.PaymentMethod, error) {
	logger := s.logger.With("name", in.Name, "type", in.Type)
	logger.Info("CreatePaymentMethod started")
	now := time.Now().UTC()
	pm := &paymentmethod.PaymentMethod{
		ID:        uuid.New(),
		Status:    paymentmethod.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(pm)
	if err := pm.Validate(); err != nil {
		logger.Error("CreatePaymentMethod failed: validation", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PaymentMethodRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, pm)
	})
	if err != nil {
		logger.Error("CreatePaymentMethod failed: transaction error", "error", err)
		return nil, err
	}
	logger.Info("CreatePaymentMethod successful", "paymentMethodID", pm.ID)
	return pm, nil
}

// Update replaces the editable fields. Status is left unchanged.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*paymentmethod.PaymentMethod, error) {
	return s.modify(ctx, "UpdatePaymentMethod", id, func(pm *paymentmethod.PaymentMethod) error {
		in.apply(pm)
		if err := pm.Validate(); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		return nil
	})
}

// SetStatus activates or deactivates a payment method. Inactive methods are
// rejected by new deposits and withdrawals.
func (s *Service) SetStatus(
	ctx context.Context,
	id uuid.UUID,
	status paymentmethod.Status,
) (*paymentmethod.PaymentMethod, error) {
	if status != paymentmethod.StatusActive && status != paymentmethod.StatusInactive {
		return nil, fmt.Errorf("payment method status %q: %w", status, domain.ErrValidation)
	}
	return s.modify(ctx, "SetPaymentMethodStatus", id, func(pm *paymentmethod.PaymentMethod) error {
		pm.Status = status
		return nil
	})
}

func (s *Service) modify(
	ctx context.Context,
	op string,
	id uuid.UUID,
	fn func(pm *paymentmethod.PaymentMethod) error,
) (pm *paymentmethod.PaymentMethod, err error) {
	logger := s.logger.With("paymentMethodID", id)
	logger.Info(op + " started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PaymentMethodRepository()
		if err != nil {
			return err
		}
		if pm, err = repo.Get(ctx, id); err != nil {
			return err
		}
		if err := fn(pm); err != nil {
			return err
		}
		pm.UpdatedAt = time.Now().UTC()
		return repo.Update(ctx, pm)
	})
	if err != nil {
		logger.Error(op+" failed", "error", err)
		return nil, err
	}
	logger.Info(op+" successful", "status", pm.Status)
	return pm, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*paymentmethod.PaymentMethod, error) {
	repo, err := s.uow.PaymentMethodRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// ListActive returns the methods users may choose from.
func (s *Service) ListActive(ctx context.Context) ([]*paymentmethod.PaymentMethod, error) {
	return s.list(ctx, true)
}

// List returns every method, active or not.
func (s *Service) List(ctx context.Context) ([]*paymentmethod.PaymentMethod, error) {
	return s.list(ctx, false)
}

func (s *Service) list(ctx context.Context, activeOnly bool) ([]*paymentmethod.PaymentMethod, error) {
	repo, err := s.uow.PaymentMethodRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, activeOnly)
}

package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/events"
	domainledger "github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/withdrawal"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/ledger"
	"github.com/amirasaad/bankcore/pkg/reference"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalRequest is the user input of CreateWithdrawal.
type WithdrawalRequest struct {
	Amount          decimal.Decimal
	PaymentMethodID uuid.UUID
	PaymentDetails  map[string]string
}

// CreateWithdrawal holds Amount on the user's balance and records a pending
// withdrawal. The fee comes out of Amount, so the user receives NetAmount.
func (s *Service) CreateWithdrawal(
	ctx context.Context,
	userID uuid.UUID,
	req WithdrawalRequest,
) (w *withdrawal.Withdrawal, err error) {
	started := time.Now()
	defer func() { s.observe(workflowWithdrawal, "create", started, err) }()

	logger := s.logger.With("userID", userID, "paymentMethodID", req.PaymentMethodID, "amount", req.Amount)
	logger.Info("CreateWithdrawal started")
	if !req.Amount.IsPositive() {
		logger.Error("CreateWithdrawal failed: invalid amount")
		return nil, domain.ErrInvalidAmount
	}

	err = s.withUserLocks(ctx, func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			u, err := loadActiveUser(ctx, uow, userID)
			if err != nil {
				return err
			}
			if !u.KycApproved() {
				return domain.ErrKycNotApproved
			}
			pm, err := loadPaymentMethod(ctx, uow, req.PaymentMethodID)
			if err != nil {
				return err
			}
			if err := pm.CheckAmount(req.Amount); err != nil {
				return err
			}
			charge := pm.FeeSpec().Compute(req.Amount)
			if !req.Amount.Sub(charge).IsPositive() {
				return fmt.Errorf("fee %s leaves nothing to pay out: %w", charge, domain.ErrInvalidAmount)
			}

			repo, err := uow.WithdrawalRepository()
			if err != nil {
				return err
			}
			w = withdrawal.New(userID, pm.ID, req.Amount, charge, req.PaymentDetails, s.refs.Next(reference.Withdrawal))
			if err := repo.Create(ctx, w); err != nil {
				return err
			}
			_, err = s.ledger.Debit(ctx, uow, ledger.Entry{
				UserID:      userID,
				Amount:      w.Amount,
				Type:        domainledger.TypeWithdrawal,
				Status:      domainledger.StatusPending,
				Reference:   w.Reference,
				Description: fmt.Sprintf("Withdrawal via %s", pm.Name),
				Metadata: map[string]any{
					domainledger.MetaWorkflow: workflowWithdrawal,
					domainledger.MetaEntityID: w.ID.String(),
				},
			})
			return err
		})
	}, userID)
	if err != nil {
		logger.Error("CreateWithdrawal failed: transaction error", "error", err)
		return nil, err
	}

	logger.Info("CreateWithdrawal successful", "withdrawalID", w.ID, "reference", w.Reference, "fee", w.Fee)
	s.emit(ctx, logger, events.NewWithdrawalRequested(userID, w.ID, w.Reference, w.Amount, w.Fee))
	return w, nil
}

// ProcessWithdrawal moves a withdrawal to processing, approves it (the hold
// becomes permanent) or rejects it (the full Amount is refunded).
func (s *Service) ProcessWithdrawal(
	ctx context.Context,
	withdrawalID uuid.UUID,
	decision workflow.Status,
	adminID uuid.UUID,
	note string,
) (w *withdrawal.Withdrawal, err error) {
	started := time.Now()
	defer func() { s.observe(workflowWithdrawal, "process", started, err) }()

	logger := s.logger.With("withdrawalID", withdrawalID, "decision", decision, "adminID", adminID)
	logger.Info("ProcessWithdrawal started")
	if !withdrawal.Machine.Allows(decision) {
		logger.Error("ProcessWithdrawal failed: invalid decision")
		return nil, domain.ErrInvalidDecision
	}

	current, err := s.GetWithdrawal(ctx, withdrawalID)
	if err != nil {
		logger.Error("ProcessWithdrawal failed: load withdrawal", "error", err)
		return nil, err
	}
	if err = workflow.AssertNotTerminal(current, domain.ErrAlreadyProcessed); err != nil {
		logger.Warn("ProcessWithdrawal failed: already processed", "status", current.Status)
		return nil, err
	}

	err = s.withUserLocks(ctx, func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.WithdrawalRepository()
			if err != nil {
				return err
			}
			w, err = repo.Get(ctx, withdrawalID)
			if err != nil {
				return err
			}
			from := w.Status
			if err := withdrawal.Machine.Transition(from, decision); err != nil {
				return err
			}
			w.MarkProcessed(decision, adminID, note, time.Now().UTC())
			ok, err := repo.Transition(ctx, w, from)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrAlreadyProcessed
			}

			switch decision {
			case workflow.StatusApproved:
				return s.settleHold(ctx, uow, w.UserID, w.Reference, domainledger.StatusCompleted)
			case workflow.StatusRejected:
				if err := s.settleHold(ctx, uow, w.UserID, w.Reference, domainledger.StatusFailed); err != nil {
					return err
				}
				_, err = s.ledger.Credit(ctx, uow, ledger.Entry{
					UserID:      w.UserID,
					Amount:      w.Amount,
					Type:        domainledger.TypeWithdrawal,
					Reference:   w.Reference,
					Description: "Withdrawal rejected: refund",
					Metadata: map[string]any{
						domainledger.MetaReversal: true,
						domainledger.MetaWorkflow: workflowWithdrawal,
						domainledger.MetaEntityID: w.ID.String(),
						domainledger.MetaAdminID:  adminID.String(),
					},
				})
				return err
			}
			return nil
		})
	}, current.UserID)
	if err != nil {
		logger.Error("ProcessWithdrawal failed: transaction error", "error", err)
		return nil, err
	}

	logger.Info("ProcessWithdrawal successful", "reference", w.Reference, "status", w.Status)
	s.emit(ctx, logger, events.NewWithdrawalProcessed(
		w.UserID, w.ID, adminID, w.Reference, string(w.Status), w.Amount, w.Status == workflow.StatusRejected,
	))
	return w, nil
}

// settleHold mirrors the workflow outcome onto the pending hold record.
func (s *Service) settleHold(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	ref string,
	to domainledger.Status,
) error {
	txs, err := uow.TransactionRepository()
	if err != nil {
		return err
	}
	n, err := txs.SetStatus(ctx, userID, ref, domainledger.StatusPending, to)
	if err != nil {
		return err
	}
	if n == 0 {
		s.logger.Warn("no pending hold record found", "userID", userID, "reference", ref)
	}
	return nil
}

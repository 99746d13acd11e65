package transaction

import (
	"context"
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/deposit"
	"github.com/amirasaad/bankcore/pkg/domain/events"
	domainledger "github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/ledger"
	"github.com/amirasaad/bankcore/pkg/reference"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositRequest is the user input of CreateDeposit.
type DepositRequest struct {
	Amount          decimal.Decimal
	PaymentMethodID uuid.UUID
	ProofImage      string
}

// CreateDeposit records a pending funding request. The balance is untouched
// until an admin approves it.
func (s *Service) CreateDeposit(
	ctx context.Context,
	userID uuid.UUID,
	req DepositRequest,
) (d *deposit.Deposit, err error) {
	started := time.Now()
	defer func() { s.observe(workflowDeposit, "create", started, err) }()

	logger := s.logger.With("userID", userID, "paymentMethodID", req.PaymentMethodID, "amount", req.Amount)
	logger.Info("CreateDeposit started")
	if !req.Amount.IsPositive() {
		logger.Error("CreateDeposit failed: invalid amount")
		return nil, domain.ErrInvalidAmount
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := loadActiveUser(ctx, uow, userID); err != nil {
			return err
		}
		pm, err := loadPaymentMethod(ctx, uow, req.PaymentMethodID)
		if err != nil {
			return err
		}
		if err := pm.CheckAmount(req.Amount); err != nil {
			return err
		}
		repo, err := uow.DepositRepository()
		if err != nil {
			return err
		}
		d = deposit.New(userID, pm.ID, req.Amount, s.refs.Next(reference.Deposit), req.ProofImage)
		return repo.Create(ctx, d)
	})
	if err != nil {
		logger.Error("CreateDeposit failed: transaction error", "error", err)
		return nil, err
	}

	logger.Info("CreateDeposit successful", "depositID", d.ID, "reference", d.Reference)
	s.emit(ctx, logger, events.NewDepositRequested(userID, d.ID, d.Reference, d.Amount))
	return d, nil
}

// ProcessDeposit approves or rejects a pending deposit. Approval credits
// the amount; rejection only records the note. A deposit is processed once.
func (s *Service) ProcessDeposit(
	ctx context.Context,
	depositID uuid.UUID,
	decision workflow.Status,
	adminID uuid.UUID,
	note string,
) (d *deposit.Deposit, err error) {
	started := time.Now()
	defer func() { s.observe(workflowDeposit, "process", started, err) }()

	logger := s.logger.With("depositID", depositID, "decision", decision, "adminID", adminID)
	logger.Info("ProcessDeposit started")
	if !deposit.Machine.Allows(decision) {
		logger.Error("ProcessDeposit failed: invalid decision")
		return nil, domain.ErrInvalidDecision
	}

	current, err := s.GetDeposit(ctx, depositID)
	if err != nil {
		logger.Error("ProcessDeposit failed: load deposit", "error", err)
		return nil, err
	}
	if err = workflow.AssertNotTerminal(current, domain.ErrAlreadyProcessed); err != nil {
		logger.Warn("ProcessDeposit failed: already processed", "status", current.Status)
		return nil, err
	}

	err = s.withUserLocks(ctx, func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.DepositRepository()
			if err != nil {
				return err
			}
			d, err = repo.Get(ctx, depositID)
			if err != nil {
				return err
			}
			from := d.Status
			if err := deposit.Machine.Transition(from, decision); err != nil {
				return err
			}
			d.MarkProcessed(decision, adminID, note, time.Now().UTC())
			ok, err := repo.Transition(ctx, d, from)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrAlreadyProcessed
			}
			if decision != workflow.StatusApproved {
				return nil
			}
			_, err = s.ledger.Credit(ctx, uow, ledger.Entry{
				UserID:      d.UserID,
				Amount:      d.Amount,
				Type:        domainledger.TypeDeposit,
				Reference:   d.Reference,
				Description: "Deposit approved",
				Metadata: map[string]any{
					domainledger.MetaWorkflow: workflowDeposit,
					domainledger.MetaEntityID: d.ID.String(),
					domainledger.MetaAdminID:  adminID.String(),
				},
			})
			return err
		})
	}, current.UserID)
	if err != nil {
		logger.Error("ProcessDeposit failed: transaction error", "error", err)
		return nil, err
	}

	logger.Info("ProcessDeposit successful", "reference", d.Reference, "status", d.Status)
	s.emit(ctx, logger, events.NewDepositProcessed(
		d.UserID, d.ID, adminID, d.Reference, string(d.Status), d.Amount,
	))
	return d, nil
}

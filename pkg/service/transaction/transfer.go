package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/events"
	domainledger "github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/transfer"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/ledger"
	"github.com/amirasaad/bankcore/pkg/reference"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInternalTransfer moves amount between two users of the system
// synchronously. Internal transfers are free and created completed.
func (s *Service) CreateInternalTransfer(
	ctx context.Context,
	senderID uuid.UUID,
	recipientAccountNumber string,
	amount decimal.Decimal,
	description string,
) (t *transfer.Transfer, err error) {
	started := time.Now()
	defer func() { s.observe(workflowTransfer, "create_internal", started, err) }()

	recipientAccountNumber = strings.TrimSpace(recipientAccountNumber)
	logger := s.logger.With("senderID", senderID, "recipientAccount", recipientAccountNumber, "amount", amount)
	logger.Info("CreateInternalTransfer started")

	var sender, recipient *user.User
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if sender, err = users.Get(ctx, senderID); err != nil {
			return err
		}
		if sender.AccountNumber == recipientAccountNumber {
			return domain.ErrSelfTransfer
		}
		if !amount.IsPositive() {
			return domain.ErrInvalidAmount
		}
		if sender.Restricted() {
			return domain.ErrAccountRestricted
		}
		recipient, err = users.GetByAccountNumber(ctx, recipientAccountNumber)
		if err != nil {
			if isNotFound(err) {
				return domain.ErrRecipientNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error("CreateInternalTransfer failed: validation", "error", err)
		return nil, err
	}

	if description == "" {
		description = "Transfer to " + recipient.AccountNumber
	}
	details := transfer.RecipientDetails{
		AccountNumber: recipient.AccountNumber,
		AccountName:   recipient.FullName,
	}
	t = transfer.New(
		senderID, transfer.TypeInternal, details, amount, decimal.Zero,
		workflow.StatusCompleted, s.refs.Next(reference.Transfer), description,
	)
	recipientID := recipient.ID
	t.RecipientID = &recipientID

	err = s.withUserLocks(ctx, func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.TransferRepository()
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, t); err != nil {
				return err
			}
			meta := func(counterparty uuid.UUID) map[string]any {
				return map[string]any{
					domainledger.MetaWorkflow:     workflowTransfer,
					domainledger.MetaEntityID:     t.ID.String(),
					domainledger.MetaCounterparty: counterparty.String(),
				}
			}
			if _, err := s.ledger.Debit(ctx, uow, ledger.Entry{
				UserID:      senderID,
				Amount:      amount,
				Type:        domainledger.TypeTransferOut,
				Reference:   t.Reference,
				Description: description,
				Metadata:    meta(recipientID),
			}); err != nil {
				return err
			}
			_, err = s.ledger.Credit(ctx, uow, ledger.Entry{
				UserID:      recipientID,
				Amount:      amount,
				Type:        domainledger.TypeTransferIn,
				Reference:   t.Reference,
				Description: "Transfer from " + sender.AccountNumber,
				Metadata:    meta(senderID),
			})
			return err
		})
	}, senderID, recipientID)
	if err != nil {
		logger.Error("CreateInternalTransfer failed: transaction error", "error", err)
		return nil, err
	}

	logger.Info("CreateInternalTransfer successful", "transferID", t.ID, "reference", t.Reference)
	s.emit(ctx, logger, events.NewTransferCreated(
		senderID, t.ID, t.RecipientID, t.Reference, string(t.Type), string(t.Status), t.Amount, t.Fee,
	))
	return t, nil
}

// CreateExternalTransfer holds Amount+Fee on the sender's balance and records
// a pending local or international transfer.
func (s *Service) CreateExternalTransfer(
	ctx context.Context,
	senderID uuid.UUID,
	kind transfer.Type,
	details transfer.RecipientDetails,
	amount decimal.Decimal,
	description string,
) (t *transfer.Transfer, err error) {
	started := time.Now()
	defer func() { s.observe(workflowTransfer, "create_external", started, err) }()

	logger := s.logger.With("senderID", senderID, "kind", kind, "amount", amount)
	logger.Info("CreateExternalTransfer started")
	if !kind.External() {
		logger.Error("CreateExternalTransfer failed: invalid transfer type")
		return nil, fmt.Errorf("transfer type %q: %w", kind, domain.ErrValidation)
	}
	if !amount.IsPositive() {
		logger.Error("CreateExternalTransfer failed: invalid amount")
		return nil, domain.ErrInvalidAmount
	}
	if err = details.Validate(kind); err != nil {
		logger.Error("CreateExternalTransfer failed: recipient details", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	spec := s.fees.Local
	if kind == transfer.TypeInternational {
		spec = s.fees.International
	}
	charge := spec.Compute(amount)
	if description == "" {
		description = fmt.Sprintf("%s transfer to %s", kind, details.AccountName)
	}

	err = s.withUserLocks(ctx, func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			if _, err := loadActiveUser(ctx, uow, senderID); err != nil {
				return err
			}
			t = transfer.New(
				senderID, kind, details, amount, charge,
				workflow.StatusPending, s.refs.Next(reference.Transfer), description,
			)
			if kind == transfer.TypeInternational {
				t.Requires = s.requires
			}
			repo, err := uow.TransferRepository()
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, t); err != nil {
				return err
			}
			_, err = s.ledger.Debit(ctx, uow, ledger.Entry{
				UserID:      senderID,
				Amount:      t.TotalAmount,
				Type:        domainledger.TypeTransferOut,
				Status:      domainledger.StatusPending,
				Reference:   t.Reference,
				Description: description,
				Metadata: map[string]any{
					domainledger.MetaWorkflow: workflowTransfer,
					domainledger.MetaEntityID: t.ID.String(),
					"fee":                     charge.String(),
				},
			})
			return err
		})
	}, senderID)
	if err != nil {
		logger.Error("CreateExternalTransfer failed: transaction error", "error", err)
		return nil, err
	}

	logger.Info("CreateExternalTransfer successful",
		"transferID", t.ID, "reference", t.Reference, "fee", t.Fee, "total", t.TotalAmount)
	s.emit(ctx, logger, events.NewTransferCreated(
		senderID, t.ID, nil, t.Reference, string(t.Type), string(t.Status), t.Amount, t.Fee,
	))
	return t, nil
}

// ProcessTransfer settles an external transfer. Completing keeps the hold;
// failing refunds TotalAmount. International transfers complete only after
// code verification.
func (s *Service) ProcessTransfer(
	ctx context.Context,
	transferID uuid.UUID,
	decision workflow.Status,
	adminID uuid.UUID,
	note string,
) (t *transfer.Transfer, err error) {
	started := time.Now()
	defer func() { s.observe(workflowTransfer, "process", started, err) }()

	logger := s.logger.With("transferID", transferID, "decision", decision, "adminID", adminID)
	logger.Info("ProcessTransfer started")
	if decision != workflow.StatusCompleted && decision != workflow.StatusFailed {
		logger.Error("ProcessTransfer failed: invalid decision")
		return nil, domain.ErrInvalidDecision
	}

	t, err = s.settleTransfer(ctx, logger, transferID, decision, adminID, note, func(t *transfer.Transfer) error {
		if t.Type == transfer.TypeInternal || t.Status.Terminal() {
			return domain.ErrAlreadyTerminal
		}
		if decision == workflow.StatusCompleted && t.Type == transfer.TypeInternational && !t.CodesVerified {
			return domain.ErrCodesNotVerified
		}
		return nil
	})
	if err != nil {
		logger.Error("ProcessTransfer failed: transaction error", "error", err)
		return nil, err
	}

	logger.Info("ProcessTransfer successful", "reference", t.Reference, "status", t.Status)
	refunded := decimal.Zero
	if t.Status == workflow.StatusFailed {
		refunded = t.TotalAmount
	}
	s.emit(ctx, logger, events.NewTransferProcessed(
		t.SenderID, t.ID, adminID, t.Reference, string(t.Status), refunded,
	))
	return t, nil
}

// CancelTransfer lets the sender withdraw a pending external transfer and
// refunds TotalAmount.
func (s *Service) CancelTransfer(
	ctx context.Context,
	transferID uuid.UUID,
	userID uuid.UUID,
) (t *transfer.Transfer, err error) {
	started := time.Now()
	defer func() { s.observe(workflowTransfer, "cancel", started, err) }()

	logger := s.logger.With("transferID", transferID, "userID", userID)
	logger.Info("CancelTransfer started")

	t, err = s.settleTransfer(ctx, logger, transferID, workflow.StatusCancelled, userID, "", func(t *transfer.Transfer) error {
		if t.SenderID != userID {
			return domain.ErrTransferNotFound
		}
		if t.Type == transfer.TypeInternal {
			return domain.ErrAlreadyTerminal
		}
		if t.Metadata == nil {
			t.Metadata = map[string]any{}
		}
		t.Metadata[transfer.MetaCancelledBy] = userID.String()
		return nil
	})
	if err != nil {
		logger.Error("CancelTransfer failed: transaction error", "error", err)
		return nil, err
	}

	logger.Info("CancelTransfer successful", "reference", t.Reference)
	s.emit(ctx, logger, events.TransferCancelled{TransferProcessed: events.NewTransferProcessed(
		t.SenderID, t.ID, userID, t.Reference, string(t.Status), t.TotalAmount,
	)})
	return t, nil
}

// settleTransfer moves a transfer to a terminal status under the sender's
// lock. check runs against the freshly loaded transfer before any write.
func (s *Service) settleTransfer(
	ctx context.Context,
	logger *slog.Logger,
	transferID uuid.UUID,
	to workflow.Status,
	actorID uuid.UUID,
	note string,
	check func(t *transfer.Transfer) error,
) (t *transfer.Transfer, err error) {
	current, err := s.GetTransfer(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if err := check(current); err != nil {
		return nil, err
	}
	if err := workflow.AssertNotTerminal(current, domain.ErrAlreadyTerminal); err != nil {
		logger.Warn("transfer already terminal", "status", current.Status)
		return nil, err
	}

	err = s.withUserLocks(ctx, func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.TransferRepository()
			if err != nil {
				return err
			}
			t, err = repo.Get(ctx, transferID)
			if err != nil {
				return err
			}
			if err := check(t); err != nil {
				return err
			}
			from := t.Status
			if err := transfer.Machine.Transition(from, to); err != nil {
				return err
			}
			t.MarkProcessed(to, actorID, note, time.Now().UTC())
			ok, err := repo.Transition(ctx, t, from)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrAlreadyTerminal
			}

			if to == workflow.StatusCompleted {
				return s.settleHold(ctx, uow, t.SenderID, t.Reference, domainledger.StatusCompleted)
			}
			holdStatus := domainledger.StatusFailed
			if to == workflow.StatusCancelled {
				holdStatus = domainledger.StatusCancelled
			}
			if err := s.settleHold(ctx, uow, t.SenderID, t.Reference, holdStatus); err != nil {
				return err
			}
			_, err = s.ledger.Credit(ctx, uow, ledger.Entry{
				UserID:      t.SenderID,
				Amount:      t.TotalAmount,
				Type:        domainledger.TypeTransferIn,
				Reference:   t.Reference,
				Description: fmt.Sprintf("Transfer %s: refund", to),
				Metadata: map[string]any{
					domainledger.MetaReversal: true,
					domainledger.MetaWorkflow: workflowTransfer,
					domainledger.MetaEntityID: t.ID.String(),
					domainledger.MetaAdminID:  actorID.String(),
				},
			})
			return err
		})
	}, current.SenderID)
	if err != nil {
		return nil, err
	}
	return t, nil
}

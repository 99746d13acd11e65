// Package ledger provides the only code path allowed to change a balance:
// a guarded adjustment paired with an immutable transaction record.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/metrics"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DirectionCredit = "credit"
	DirectionDebit  = "debit"
)

// Entry describes a single posting.
type Entry struct {
	UserID      uuid.UUID
	Field       user.BalanceField // defaults to user.FieldBalance
	Amount      decimal.Decimal
	Type        ledger.Type
	Status      ledger.Status // defaults to ledger.StatusCompleted
	Reference   string
	Description string
	Metadata    map[string]any
}

// Ledger posts credits and debits inside a caller-supplied UnitOfWork so the
// balance change and its record commit with the rest of the workflow.
type Ledger struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(m *metrics.Metrics, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{metrics: m, logger: logger}
}

// Credit increases the balance by e.Amount.
func (l *Ledger) Credit(ctx context.Context, uow repository.UnitOfWork, e Entry) (*ledger.Transaction, error) {
	return l.post(ctx, uow, e, DirectionCredit)
}

// Debit decreases the balance by e.Amount or fails with
// domain.ErrInsufficientBalance leaving the balance untouched.
func (l *Ledger) Debit(ctx context.Context, uow repository.UnitOfWork, e Entry) (*ledger.Transaction, error) {
	return l.post(ctx, uow, e, DirectionDebit)
}

func (l *Ledger) post(
	ctx context.Context,
	uow repository.UnitOfWork,
	e Entry,
	direction string,
) (*ledger.Transaction, error) {
	logger := l.logger.With(
		"userID", e.UserID,
		"reference", e.Reference,
		"type", e.Type,
		"direction", direction,
	)
	if !e.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if e.Field == "" {
		e.Field = user.FieldBalance
	}
	if !e.Field.Valid() {
		return nil, fmt.Errorf("balance field %q: %w", e.Field, domain.ErrValidation)
	}
	if e.Status == "" {
		e.Status = ledger.StatusCompleted
	}

	users, err := uow.UserRepository()
	if err != nil {
		return nil, err
	}
	txs, err := uow.TransactionRepository()
	if err != nil {
		return nil, err
	}

	delta := e.Amount
	if direction == DirectionDebit {
		delta = delta.Neg()
	}
	before, after, err := users.AdjustBalance(ctx, e.UserID, e.Field, delta)
	if err != nil {
		logger.Debug("posting rejected", "error", err)
		return nil, err
	}

	now := time.Now().UTC()
	metadata := e.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	tx := &ledger.Transaction{
		ID:            uuid.New(),
		UserID:        e.UserID,
		Type:          e.Type,
		Field:         e.Field,
		Amount:        e.Amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Status:        e.Status,
		Reference:     e.Reference,
		Description:   e.Description,
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := txs.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction record: %w", err)
	}

	l.metrics.ObservePosting(string(e.Type), string(e.Field), direction, e.Amount.InexactFloat64())
	logger.Debug("posting applied", "before", before, "after", after)
	return tx, nil
}

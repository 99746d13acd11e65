// Package transaction implements the deposit, withdrawal and transfer
// workflows on top of the ledger primitives.
//
// Every balance-changing operation validates its input, takes the per-user
// lock(s), and runs the workflow write together with its ledger postings in a
// single unit of work. Domain events are emitted only after commit.
package transaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/domain/transfer"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/pkg/eventbus"
	"github.com/amirasaad/bankcore/pkg/ledger"
	"github.com/amirasaad/bankcore/pkg/lock"
	"github.com/amirasaad/bankcore/pkg/metrics"
	"github.com/amirasaad/bankcore/pkg/reference"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
)

const (
	workflowDeposit    = "deposit"
	workflowWithdrawal = "withdrawal"
	workflowTransfer   = "transfer"
)

// Service is the TransactionService.
type Service struct {
	uow         repository.UnitOfWork
	ledger      *ledger.Ledger
	locker      lock.Locker
	bus         eventbus.Bus
	metrics     *metrics.Metrics
	refs        reference.Generator
	logger      *slog.Logger
	fees        fee.Schedule
	requires    transfer.Requirements
	pages       dto.PageDefaults
	lockTimeout time.Duration
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	locker := deps.Locker
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	refs := deps.References
	if refs == nil {
		refs = reference.New()
	}
	s := &Service{
		uow:      deps.Uow,
		ledger:   ledger.New(deps.Metrics, logger),
		locker:   locker,
		bus:      deps.EventBus,
		metrics:  deps.Metrics,
		refs:     refs,
		logger:   logger.With("service", "transaction"),
		fees:     fee.DefaultSchedule(),
		requires: transfer.Requirements{Tax: true, Imf: true},
		pages:    dto.PageDefaults{Limit: 10, MaxLimit: 100, NewestFirst: true},
	}
	if cfg := deps.Config; cfg != nil {
		if cfg.Transfer != nil {
			s.fees = cfg.Transfer.FeeSchedule()
			s.requires = transfer.Requirements{
				Tax: cfg.Transfer.RequireTaxCode,
				Imf: cfg.Transfer.RequireImfCode,
				Cot: cfg.Transfer.RequireCotCode,
			}
		}
		if cfg.Pagination != nil {
			s.pages = cfg.Pagination.Defaults()
		}
		if cfg.Lock != nil {
			s.lockTimeout = cfg.Lock.WaitTimeout
		}
	}
	return s
}

// withUserLocks runs fn while holding the balance locks of ids.
func (s *Service) withUserLocks(ctx context.Context, fn func() error, ids ...uuid.UUID) error {
	lockCtx := ctx
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}
	release, err := lock.LockUsers(lockCtx, s.locker, ids...)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

// emit publishes e after commit. Publishing failures never fail the operation.
func (s *Service) emit(ctx context.Context, logger *slog.Logger, e eventbus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		logger.Warn("event publish failed", "event", e.Type(), "error", err)
	}
}

func (s *Service) observe(workflow, operation string, started time.Time, err error) {
	s.metrics.ObserveOperation(workflow, operation, started, err)
}

// loadActiveUser returns the user and rejects restricted accounts.
func loadActiveUser(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*user.User, error) {
	users, err := uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Restricted() {
		return nil, domain.ErrAccountRestricted
	}
	return u, nil
}

// loadPaymentMethod returns an active payment method.
func loadPaymentMethod(
	ctx context.Context,
	uow repository.UnitOfWork,
	id uuid.UUID,
) (*paymentmethod.PaymentMethod, error) {
	repo, err := uow.PaymentMethodRepository()
	if err != nil {
		return nil, err
	}
	pm, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !pm.Active() {
		return nil, domain.ErrPaymentMethodNotFound
	}
	return pm, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUserNotFound)
}

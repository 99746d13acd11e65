// Package user provides account lookup and admin maintenance of users.
// Balance changes go through the ledger primitives under the user's lock.
package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/events"
	domainledger "github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/eventbus"
	"github.com/amirasaad/bankcore/pkg/ledger"
	"github.com/amirasaad/bankcore/pkg/lock"
	"github.com/amirasaad/bankcore/pkg/metrics"
	"github.com/amirasaad/bankcore/pkg/reference"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const accountNumberDigits = 10

// ErrInvalidAdjustment is returned when an adjustment kind or direction is unknown.
var ErrInvalidAdjustment = errors.New("invalid balance adjustment")

// Service provides user lookups and admin operations.
type Service struct {
	uow     repository.UnitOfWork
	ledger  *ledger.Ledger
	locker  lock.Locker
	bus     eventbus.Bus
	metrics *metrics.Metrics
	refs    reference.Generator
	logger  *slog.Logger
	timeout time.Duration
}

// New creates a new Service with the provided dependencies.
func New(deps config.Deps) *Service {
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
		uow:     deps.Uow,
		ledger:  ledger.New(deps.Metrics, logger),
		locker:  locker,
		bus:     deps.EventBus,
		metrics: deps.Metrics,
		refs:    refs,
		logger:  logger.With("service", "user"),
	}
	if deps.Config != nil && deps.Config.Lock != nil {
		s.timeout = deps.Config.Lock.WaitTimeout
	}
	return s
}

// CreateRequest holds the fields of a new user. An empty AccountNumber is
// generated.
type CreateRequest struct {
	Email         string
	FullName      string
	AccountNumber string
	Currency      string
}

// Create registers an active user with zero balances.
func (s *Service) Create(ctx context.Context, req CreateRequest) (u *user.User, err error) {
	logger := s.logger.With("email", req.Email)
	logger.Info("CreateUser started")
	accountNumber := strings.TrimSpace(req.AccountNumber)
	if accountNumber == "" {
		if accountNumber, err = newAccountNumber(); err != nil {
			logger.Error("CreateUser failed: account number", "error", err)
			return nil, err
		}
	}
	u, err = user.New(strings.TrimSpace(req.Email), strings.TrimSpace(req.FullName), accountNumber)
	if err != nil {
		logger.Error("CreateUser failed: invalid input", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if req.Currency != "" {
		u.Currency = strings.ToUpper(req.Currency)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		logger.Error("CreateUser failed: transaction error", "error", err)
		return nil, err
	}
	logger.Info("CreateUser successful", "userID", u.ID, "accountNumber", u.AccountNumber)
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

func (s *Service) GetByAccountNumber(ctx context.Context, accountNumber string) (*user.User, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.GetByAccountNumber(ctx, strings.TrimSpace(accountNumber))
}

// Balances is a snapshot of both balance fields.
type Balances struct {
	Balance        decimal.Decimal `json:"balance"`
	BitcoinBalance decimal.Decimal `json:"bitcoinBalance"`
	Currency       string          `json:"currency"`
}

// Balance returns the user's current balances.
func (s *Service) Balance(ctx context.Context, id uuid.UUID) (Balances, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return Balances{}, err
	}
	return Balances{Balance: u.Balance, BitcoinBalance: u.BitcoinBalance, Currency: u.Currency}, nil
}

// UpdateKycStatus records the outcome of identity verification.
func (s *Service) UpdateKycStatus(ctx context.Context, id uuid.UUID, status user.KycStatus) (*user.User, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("kyc status %q: %w", status, domain.ErrValidation)
	}
	return s.update(ctx, "UpdateKycStatus", id, func(u *user.User) { u.KycStatus = status })
}

// UpdateStatus changes the account status. Suspended and blocked accounts
// cannot initiate money movement.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status user.Status) (*user.User, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("user status %q: %w", status, domain.ErrValidation)
	}
	return s.update(ctx, "UpdateStatus", id, func(u *user.User) { u.Status = status })
}

// SetAuthorizationCodes replaces the stored TAX, IMF and COT codes.
// An empty code clears it.
func (s *Service) SetAuthorizationCodes(ctx context.Context, id uuid.UUID, codes user.Codes) (*user.User, error) {
	return s.update(ctx, "SetAuthorizationCodes", id, func(u *user.User) {
		u.TaxCode = strings.TrimSpace(codes.Tax)
		u.ImfCode = strings.TrimSpace(codes.Imf)
		u.CotCode = strings.TrimSpace(codes.Cot)
	})
}

func (s *Service) update(ctx context.Context, op string, id uuid.UUID, mutate func(*user.User)) (u *user.User, err error) {
	logger := s.logger.With("userID", id)
	logger.Info(op + " started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if u, err = repo.Get(ctx, id); err != nil {
			return err
		}
		mutate(u)
		u.UpdatedAt = time.Now().UTC()
		return repo.Update(ctx, u)
	})
	if err != nil {
		logger.Error(op+" failed: transaction error", "error", err)
		return nil, err
	}
	logger.Info(op + " successful")
	return u, nil
}

// Adjustment is an admin-initiated balance change.
type Adjustment struct {
	Field       user.BalanceField
	Amount      decimal.Decimal
	Direction   string // ledger.DirectionCredit or ledger.DirectionDebit
	Kind        domainledger.Type
	Description string
}

var adjustmentKinds = map[domainledger.Type]bool{
	domainledger.TypeBonus:      true,
	domainledger.TypeFee:        true,
	domainledger.TypeInvestment: true,
	domainledger.TypeLoan:       true,
}

// AdjustBalance posts an admin credit or debit against one balance field.
func (s *Service) AdjustBalance(
	ctx context.Context,
	id uuid.UUID,
	adj Adjustment,
	adminID uuid.UUID,
) (tx *domainledger.Transaction, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveOperation("adjustment", adj.Direction, started, err) }()

	logger := s.logger.With("userID", id, "adminID", adminID, "field", adj.Field, "amount", adj.Amount)
	logger.Info("AdjustBalance started")
	if !adjustmentKinds[adj.Kind] {
		logger.Error("AdjustBalance failed: invalid kind", "kind", adj.Kind)
		return nil, fmt.Errorf("kind %q: %w", adj.Kind, ErrInvalidAdjustment)
	}
	var post func(context.Context, repository.UnitOfWork, ledger.Entry) (*domainledger.Transaction, error)
	switch adj.Direction {
	case ledger.DirectionCredit:
		post = s.ledger.Credit
	case ledger.DirectionDebit:
		post = s.ledger.Debit
	default:
		logger.Error("AdjustBalance failed: invalid direction", "direction", adj.Direction)
		return nil, fmt.Errorf("direction %q: %w", adj.Direction, ErrInvalidAdjustment)
	}
	description := adj.Description
	if description == "" {
		description = fmt.Sprintf("Admin %s: %s", adj.Direction, adj.Kind)
	}

	lockCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	release, err := lock.LockUsers(lockCtx, s.locker, id)
	if err != nil {
		logger.Error("AdjustBalance failed: lock", "error", err)
		return nil, err
	}
	defer release()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tx, err = post(ctx, uow, ledger.Entry{
			UserID:      id,
			Field:       adj.Field,
			Amount:      adj.Amount,
			Type:        adj.Kind,
			Reference:   s.refs.Next(reference.Adjustment),
			Description: description,
			Metadata: map[string]any{
				domainledger.MetaWorkflow: "adjustment",
				domainledger.MetaAdminID:  adminID.String(),
			},
		})
		return err
	})
	if err != nil {
		logger.Error("AdjustBalance failed: transaction error", "error", err)
		return nil, err
	}

	logger.Info("AdjustBalance successful", "reference", tx.Reference, "balance", tx.BalanceAfter)
	if s.bus != nil {
		e := events.NewBalanceAdjusted(
			id, adminID, tx.Reference, string(tx.Field), adj.Direction, string(tx.Type), tx.Amount, tx.BalanceAfter,
		)
		if err := s.bus.Emit(ctx, e); err != nil {
			logger.Warn("event publish failed", "event", e.Type(), "error", err)
		}
	}
	return tx, nil
}

// newAccountNumber returns a random 10 digit account number without a
// leading zero.
func newAccountNumber() (string, error) {
	var b strings.Builder
	for i := 0; i < accountNumberDigits; i++ {
		max := int64(10)
		if i == 0 {
			max = 9
		}
		n, err := rand.Int(rand.Reader, big.NewInt(max))
		if err != nil {
			return "", err
		}
		d := n.Int64()
		if i == 0 {
			d++
		}
		b.WriteByte(byte('0' + d))
	}
	return b.String(), nil
}

// Package memory is an in-process UnitOfWork used by tests and by the
// server when DATABASE_DRIVER=memory.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/amirasaad/bankcore/pkg/domain/deposit"
	"github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/domain/transfer"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/domain/withdrawal"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
)

type store struct {
	mu             sync.Mutex
	users          map[uuid.UUID]user.User
	transactions   map[uuid.UUID]ledger.Transaction
	deposits       map[uuid.UUID]deposit.Deposit
	withdrawals    map[uuid.UUID]withdrawal.Withdrawal
	transfers      map[uuid.UUID]transfer.Transfer
	paymentMethods map[uuid.UUID]paymentmethod.PaymentMethod
}

func newStore() *store {
	return &store{
		users:          map[uuid.UUID]user.User{},
		transactions:   map[uuid.UUID]ledger.Transaction{},
		deposits:       map[uuid.UUID]deposit.Deposit{},
		withdrawals:    map[uuid.UUID]withdrawal.Withdrawal{},
		transfers:      map[uuid.UUID]transfer.Transfer{},
		paymentMethods: map[uuid.UUID]paymentmethod.PaymentMethod{},
	}
}

// snapshot copies the top-level maps. Stored values are never mutated in
// place, so a shallow copy is enough to roll back.
func (s *store) snapshot() *store {
	return &store{
		users:          maps.Clone(s.users),
		transactions:   maps.Clone(s.transactions),
		deposits:       maps.Clone(s.deposits),
		withdrawals:    maps.Clone(s.withdrawals),
		transfers:      maps.Clone(s.transfers),
		paymentMethods: maps.Clone(s.paymentMethods),
	}
}

func (s *store) restore(snap *store) {
	s.users = snap.users
	s.transactions = snap.transactions
	s.deposits = snap.deposits
	s.withdrawals = snap.withdrawals
	s.transfers = snap.transfers
	s.paymentMethods = snap.paymentMethods
}

// UoW serializes every Do call over a single store. A failed Do restores the
// store to its state before fn ran.
type UoW struct {
	s    *store
	inTx bool
}

var _ repository.UnitOfWork = (*UoW)(nil)

// NewUoW returns an empty in-memory unit of work.
func NewUoW() *UoW {
	return &UoW{s: newStore()}
}

func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.inTx {
		return fn(u)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	snap := u.s.snapshot()
	if err := fn(&UoW{s: u.s, inTx: true}); err != nil {
		u.s.restore(snap)
		return err
	}
	return nil
}

// guard locks the store for calls made outside Do.
func (u *UoW) guard() func() {
	if u.inTx {
		return func() {}
	}
	u.s.mu.Lock()
	return u.s.mu.Unlock
}

func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return &userRepo{u}, nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepo{u}, nil
}

func (u *UoW) DepositRepository() (repository.DepositRepository, error) {
	return &depositRepo{u}, nil
}

func (u *UoW) WithdrawalRepository() (repository.WithdrawalRepository, error) {
	return &withdrawalRepo{u}, nil
}

func (u *UoW) TransferRepository() (repository.TransferRepository, error) {
	return &transferRepo{u}, nil
}

func (u *UoW) PaymentMethodRepository() (repository.PaymentMethodRepository, error) {
	return &paymentMethodRepo{u}, nil
}

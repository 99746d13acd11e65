package repository

import (
	"context"

	"github.com/amirasaad/bankcore/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories obtained from the UoW passed to Do share its
// transaction; outside Do they run on the pooled connection.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a database transaction. Returning an error rolls back.
// Nested calls join the outer transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return NewUserRepository(u.session()), nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return NewTransactionRepository(u.session()), nil
}

func (u *UoW) DepositRepository() (repository.DepositRepository, error) {
	return NewDepositRepository(u.session()), nil
}

func (u *UoW) WithdrawalRepository() (repository.WithdrawalRepository, error) {
	return NewWithdrawalRepository(u.session()), nil
}

func (u *UoW) TransferRepository() (repository.TransferRepository, error) {
	return NewTransferRepository(u.session()), nil
}

func (u *UoW) PaymentMethodRepository() (repository.PaymentMethodRepository, error) {
	return NewPaymentMethodRepository(u.session()), nil
}

package repository

import (
	"context"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Repositories obtained from the UnitOfWork passed to Do share its database
// session, so every write made inside fn commits or rolls back together.
// Example usage:
//
//	err := uow.Do(ctx, func(tx UnitOfWork) error {
//		users, err := tx.UserRepository()
//		if err != nil {
//			return err
//		}
//		return users.Update(ctx, u)
//	})
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() (UserRepository, error)
	TransactionRepository() (TransactionRepository, error)
	DepositRepository() (DepositRepository, error)
	WithdrawalRepository() (WithdrawalRepository, error)
	TransferRepository() (TransferRepository, error)
	PaymentMethodRepository() (PaymentMethodRepository, error)
}

package repository

import (
	"context"

	"github.com/amirasaad/bankcore/pkg/domain/deposit"
	"github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/domain/transfer"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/domain/withdrawal"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*user.User, error)
	// Update persists profile fields (status, kyc, codes). Balances are
	// never written through Update.
	Update(ctx context.Context, u *user.User) error
	// AdjustBalance applies delta to field as one guarded write. A negative
	// delta only applies when the balance covers it, otherwise
	// domain.ErrInsufficientBalance is returned and nothing changes.
	// Unknown users yield domain.ErrUserNotFound.
	AdjustBalance(
		ctx context.Context,
		id uuid.UUID,
		field user.BalanceField,
		delta decimal.Decimal,
	) (before, after decimal.Decimal, err error)
}

// TransactionRepository defines the interface for ledger record access.
type TransactionRepository interface {
	Create(ctx context.Context, tx *ledger.Transaction) error
	Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	// SetStatus moves the user's records with the given reference from one
	// status to another and returns the number of records changed.
	SetStatus(
		ctx context.Context,
		userID uuid.UUID,
		reference string,
		from, to ledger.Status,
	) (int64, error)
	ListByReference(ctx context.Context, reference string) ([]*ledger.Transaction, error)
	List(ctx context.Context, filter dto.ListFilter) ([]*ledger.Transaction, int64, error)
}

// DepositRepository defines the interface for deposit access.
type DepositRepository interface {
	Create(ctx context.Context, d *deposit.Deposit) error
	Get(ctx context.Context, id uuid.UUID) (*deposit.Deposit, error)
	// Transition writes d's status and processing fields only if the stored
	// status still equals from. It reports whether the row was updated.
	Transition(ctx context.Context, d *deposit.Deposit, from workflow.Status) (bool, error)
	List(ctx context.Context, filter dto.ListFilter) ([]*deposit.Deposit, int64, error)
}

// WithdrawalRepository defines the interface for withdrawal access.
type WithdrawalRepository interface {
	Create(ctx context.Context, w *withdrawal.Withdrawal) error
	Get(ctx context.Context, id uuid.UUID) (*withdrawal.Withdrawal, error)
	Transition(ctx context.Context, w *withdrawal.Withdrawal, from workflow.Status) (bool, error)
	List(ctx context.Context, filter dto.ListFilter) ([]*withdrawal.Withdrawal, int64, error)
}

// TransferRepository defines the interface for transfer access.
type TransferRepository interface {
	Create(ctx context.Context, t *transfer.Transfer) error
	Get(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error)
	// Transition also persists CodesVerified and Metadata.
	Transition(ctx context.Context, t *transfer.Transfer, from workflow.Status) (bool, error)
	List(ctx context.Context, filter dto.ListFilter) ([]*transfer.Transfer, int64, error)
}

// PaymentMethodRepository defines the interface for payment method access.
type PaymentMethodRepository interface {
	Create(ctx context.Context, pm *paymentmethod.PaymentMethod) error
	Get(ctx context.Context, id uuid.UUID) (*paymentmethod.PaymentMethod, error)
	Update(ctx context.Context, pm *paymentmethod.PaymentMethod) error
	List(ctx context.Context, activeOnly bool) ([]*paymentmethod.PaymentMethod, error)
}

package ledger_test

import (
	"context"
	"testing"

	"github.com/amirasaad/bankcore/infra/repository/memory"
	"github.com/amirasaad/bankcore/pkg/domain"
	domainledger "github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/pkg/ledger"
	"github.com/amirasaad/bankcore/pkg/metrics"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, balance int64) (*memory.UoW, *ledger.Ledger, *user.User) {
	t.Helper()
	uow := memory.NewUoW()
	u, err := user.New("ledger@example.com", "Ledger User", "1000000001")
	require.NoError(t, err)
	u.Balance = decimal.NewFromInt(balance)
	users, _ := uow.UserRepository()
	require.NoError(t, users.Create(context.Background(), u))
	return uow, ledger.New(metrics.New(nil), nil), u
}

func TestLedger_DebitThenCreditRestoresBalance(t *testing.T) {
	uow, l, u := setup(t, 300)
	ctx := context.Background()

	for _, amount := range []int64{1, 150, 300} {
		var debit, credit *domainledger.Transaction
		err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
			var err error
			debit, err = l.Debit(ctx, tx, ledger.Entry{
				UserID:    u.ID,
				Amount:    decimal.NewFromInt(amount),
				Type:      domainledger.TypeWithdrawal,
				Reference: "REF",
			})
			if err != nil {
				return err
			}
			credit, err = l.Credit(ctx, tx, ledger.Entry{
				UserID:    u.ID,
				Amount:    decimal.NewFromInt(amount),
				Type:      domainledger.TypeWithdrawal,
				Reference: "REF",
			})
			return err
		})
		require.NoError(t, err)

		assert.True(t, debit.BalanceBefore.Equal(decimal.NewFromInt(300)))
		assert.True(t, debit.BalanceAfter.Equal(decimal.NewFromInt(300-amount)))
		assert.True(t, credit.BalanceBefore.Equal(debit.BalanceAfter))
		assert.True(t, credit.BalanceAfter.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, domainledger.StatusCompleted, credit.Status)
	}

	users, _ := uow.UserRepository()
	got, err := users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(300)))
}

func TestLedger_DebitInsufficientBalance(t *testing.T) {
	uow, l, u := setup(t, 10)
	ctx := context.Background()

	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		_, err := l.Debit(ctx, tx, ledger.Entry{
			UserID: u.ID,
			Amount: decimal.RequireFromString("10.01"),
			Type:   domainledger.TypeWithdrawal,
		})
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	txs, _ := uow.TransactionRepository()
	_, total, err := txs.List(ctx, domainFilter(u.ID))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestLedger_RejectsInvalidInput(t *testing.T) {
	uow, l, u := setup(t, 10)
	ctx := context.Background()

	_, err := l.Credit(ctx, uow, ledger.Entry{UserID: u.ID, Amount: decimal.Zero, Type: domainledger.TypeDeposit})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = l.Credit(ctx, uow, ledger.Entry{UserID: u.ID, Amount: decimal.NewFromInt(-5), Type: domainledger.TypeDeposit})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = l.Credit(ctx, uow, ledger.Entry{UserID: uuid.New(), Amount: decimal.NewFromInt(5), Type: domainledger.TypeDeposit})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = l.Credit(ctx, uow, ledger.Entry{UserID: u.ID, Field: "savings", Amount: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLedger_BitcoinField(t *testing.T) {
	uow, l, u := setup(t, 10)
	ctx := context.Background()

	tx, err := l.Credit(ctx, uow, ledger.Entry{
		UserID: u.ID,
		Field:  user.FieldBitcoinBalance,
		Amount: decimal.RequireFromString("0.25"),
		Type:   domainledger.TypeBonus,
	})
	require.NoError(t, err)
	assert.Equal(t, user.FieldBitcoinBalance, tx.Field)

	users, _ := uow.UserRepository()
	got, _ := users.Get(ctx, u.ID)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "0.25", got.BitcoinBalance.String())
}

func domainFilter(userID uuid.UUID) dto.ListFilter {
	return dto.ListFilter{Limit: 10}.ForUser(userID)
}

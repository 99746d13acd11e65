package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/deposit"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, uow *UoW, balance int64) *user.User {
	t.Helper()
	u, err := user.New(uuid.NewString()+"@example.com", "Test User", uuid.NewString()[:10])
	require.NoError(t, err)
	u.Balance = decimal.NewFromInt(balance)
	repo, err := uow.UserRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUoW_RollbackOnError(t *testing.T) {
	uow := NewUoW()
	u := seedUser(t, uow, 100)
	ctx := context.Background()

	boom := errors.New("boom")
	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		users, _ := tx.UserRepository()
		if _, _, err := users.AdjustBalance(ctx, u.ID, user.FieldBalance, decimal.NewFromInt(-40)); err != nil {
			return err
		}
		deposits, _ := tx.DepositRepository()
		d := deposit.New(u.ID, uuid.New(), decimal.NewFromInt(10), "DEP1", "")
		if err := deposits.Create(ctx, d); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	users, _ := uow.UserRepository()
	got, err := users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))

	deposits, _ := uow.DepositRepository()
	_, total, err := deposits.List(ctx, dto.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUserRepo_AdjustBalance(t *testing.T) {
	uow := NewUoW()
	u := seedUser(t, uow, 50)
	ctx := context.Background()
	users, _ := uow.UserRepository()

	before, after, err := users.AdjustBalance(ctx, u.ID, user.FieldBalance, decimal.NewFromInt(-50))
	require.NoError(t, err)
	assert.True(t, before.Equal(decimal.NewFromInt(50)))
	assert.True(t, after.IsZero())

	_, _, err = users.AdjustBalance(ctx, u.ID, user.FieldBalance, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	_, after, err = users.AdjustBalance(ctx, u.ID, user.FieldBitcoinBalance, decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	assert.Equal(t, "0.5", after.String())

	_, _, err = users.AdjustBalance(ctx, uuid.New(), user.FieldBalance, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepo_UpdateKeepsBalances(t *testing.T) {
	uow := NewUoW()
	u := seedUser(t, uow, 75)
	ctx := context.Background()
	users, _ := uow.UserRepository()

	u.Balance = decimal.NewFromInt(1_000_000)
	u.KycStatus = user.KycApproved
	require.NoError(t, users.Update(ctx, u))

	got, err := users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, user.KycApproved, got.KycStatus)
}

func TestDepositRepo_TransitionIsConditional(t *testing.T) {
	uow := NewUoW()
	ctx := context.Background()
	deposits, _ := uow.DepositRepository()

	d := deposit.New(uuid.New(), uuid.New(), decimal.NewFromInt(10), "DEP2", "")
	require.NoError(t, deposits.Create(ctx, d))

	d.MarkProcessed(workflow.StatusApproved, uuid.New(), "", time.Now())
	ok, err := deposits.Transition(ctx, d, workflow.StatusPending)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = deposits.Transition(ctx, d, workflow.StatusPending)
	require.NoError(t, err)
	assert.False(t, ok)

	dup := deposit.New(uuid.New(), uuid.New(), decimal.NewFromInt(10), "DEP2", "")
	assert.ErrorIs(t, deposits.Create(ctx, dup), domain.ErrAlreadyExists)
}

func TestDepositRepo_ListFilters(t *testing.T) {
	uow := NewUoW()
	ctx := context.Background()
	deposits, _ := uow.DepositRepository()
	owner := uuid.New()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		d := deposit.New(owner, uuid.New(), decimal.NewFromInt(int64(10+i)), "DEPX"+string(rune('A'+i)), "")
		d.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, deposits.Create(ctx, d))
	}
	other := deposit.New(uuid.New(), uuid.New(), decimal.NewFromInt(99), "DEPOTHER", "")
	require.NoError(t, deposits.Create(ctx, other))

	f := dto.ListFilter{Page: 1, Limit: 2, Sort: dto.SortNewest}.ForUser(owner)
	items, total, err := deposits.List(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 2)
	assert.Equal(t, "DEPXE", items[0].Reference)

	items, total, err = deposits.List(ctx, dto.ListFilter{Search: "other", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, other.ID, items[0].ID)
}

package transaction_test

import (
	"context"
	"sync"
	"testing"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/events"
	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/service/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeposit_ApproveCreditsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "0")
	pm := f.paymentMethod(t, 10, 10000, fee.Fixed(decimal.Zero))

	d, err := f.svc.CreateDeposit(ctx, u.ID, transaction.DepositRequest{Amount: dec("500"), PaymentMethodID: pm.ID})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPending, d.Status)
	assert.True(t, d.Amount.Equal(dec("500")))
	assert.True(t, f.balance(t, u.ID).IsZero(), "deposit must not fund before approval")

	d, err = f.svc.ProcessDeposit(ctx, d.ID, workflow.StatusApproved, f.admin, "")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, d.Status)
	require.NotNil(t, d.ProcessedBy)
	assert.Equal(t, f.admin, *d.ProcessedBy)
	assert.NotNil(t, d.ProcessedAt)
	assert.True(t, f.balance(t, u.ID).Equal(dec("500")))

	records := f.records(t, d.Reference)
	require.Len(t, records, 1)
	assert.Equal(t, ledger.TypeDeposit, records[0].Type)
	assert.True(t, records[0].Amount.Equal(dec("500")))
	assert.True(t, records[0].BalanceBefore.IsZero())
	assert.True(t, records[0].BalanceAfter.Equal(dec("500")))

	_, err = f.svc.ProcessDeposit(ctx, d.ID, workflow.StatusApproved, f.admin, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	_, err = f.svc.ProcessDeposit(ctx, d.ID, workflow.StatusRejected, f.admin, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.True(t, f.balance(t, u.ID).Equal(dec("500")))
	assert.Len(t, f.records(t, d.Reference), 1)

	assert.Equal(t, []string{events.TypeDepositRequested, events.TypeDepositProcessed}, f.bus.PublishedTypes())
}

func TestDeposit_ConcurrentApprovalsCreditOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "0")
	pm := f.paymentMethod(t, 10, 10000, fee.Fixed(decimal.Zero))
	d, err := f.svc.CreateDeposit(ctx, u.ID, transaction.DepositRequest{Amount: dec("250"), PaymentMethodID: pm.ID})
	require.NoError(t, err)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.ProcessDeposit(ctx, d.ID, workflow.StatusApproved, f.admin, "")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	}
	assert.Equal(t, 1, succeeded)
	assert.True(t, f.balance(t, u.ID).Equal(dec("250")))
}

func TestDeposit_RejectLeavesBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "40")
	pm := f.paymentMethod(t, 10, 10000, fee.Fixed(decimal.Zero))
	d, err := f.svc.CreateDeposit(ctx, u.ID, transaction.DepositRequest{Amount: dec("100"), PaymentMethodID: pm.ID})
	require.NoError(t, err)

	d, err = f.svc.ProcessDeposit(ctx, d.ID, workflow.StatusRejected, f.admin, "proof unreadable")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusRejected, d.Status)
	assert.Equal(t, "proof unreadable", d.AdminNote)
	assert.True(t, f.balance(t, u.ID).Equal(dec("40")))
	assert.Empty(t, f.records(t, d.Reference))
}

func TestDeposit_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "0")
	pm := f.paymentMethod(t, 10, 10000, fee.Fixed(decimal.Zero))

	_, err := f.svc.CreateDeposit(ctx, u.ID, transaction.DepositRequest{Amount: dec("5"), PaymentMethodID: pm.ID})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.EqualError(t, err, "Amount must be between 10 and 10000")

	_, err = f.svc.CreateDeposit(ctx, u.ID, transaction.DepositRequest{Amount: dec("10001"), PaymentMethodID: pm.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.CreateDeposit(ctx, u.ID, transaction.DepositRequest{Amount: dec("-1"), PaymentMethodID: pm.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.CreateDeposit(ctx, u.ID, transaction.DepositRequest{Amount: dec("50"), PaymentMethodID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrPaymentMethodNotFound)

	pm.Status = paymentmethod.StatusInactive
	repo, _ := f.uow.PaymentMethodRepository()
	require.NoError(t, repo.Update(ctx, pm))
	_, err = f.svc.CreateDeposit(ctx, u.ID, transaction.DepositRequest{Amount: dec("50"), PaymentMethodID: pm.ID})
	assert.ErrorIs(t, err, domain.ErrPaymentMethodNotFound)

	blocked := f.user(t, "0", withStatus(user.StatusBlocked))
	active := f.paymentMethod(t, 10, 100, fee.Fixed(decimal.Zero))
	_, err = f.svc.CreateDeposit(ctx, blocked.ID, transaction.DepositRequest{Amount: dec("50"), PaymentMethodID: active.ID})
	assert.ErrorIs(t, err, domain.ErrAccountRestricted)

	_, err = f.svc.CreateDeposit(ctx, uuid.New(), transaction.DepositRequest{Amount: dec("50"), PaymentMethodID: active.ID})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.Empty(t, f.bus.Published())
}

func TestProcessDeposit_InvalidDecisionAndMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ProcessDeposit(ctx, uuid.New(), workflow.StatusCompleted, f.admin, "")
	assert.ErrorIs(t, err, domain.ErrInvalidDecision)

	_, err = f.svc.ProcessDeposit(ctx, uuid.New(), workflow.StatusApproved, f.admin, "")
	assert.ErrorIs(t, err, domain.ErrDepositNotFound)
}

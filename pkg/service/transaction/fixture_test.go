package transaction_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/amirasaad/bankcore/infra/eventbus"
	"github.com/amirasaad/bankcore/infra/repository/memory"
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/lock"
	"github.com/amirasaad/bankcore/pkg/metrics"
	"github.com/amirasaad/bankcore/pkg/reference"
	"github.com/amirasaad/bankcore/pkg/service/transaction"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uow   *memory.UoW
	bus   *eventbus.MemoryEventBus
	svc   *transaction.Service
	admin uuid.UUID
	seq   int
}

func defaultConfig() *config.App {
	return &config.App{
		Transfer: &config.Transfer{
			LocalFeePercent:         1,
			InternationalFeePercent: 2,
			RequireTaxCode:          true,
			RequireImfCode:          true,
		},
		Pagination: &config.Pagination{DefaultLimit: 10, MaxLimit: 100, NewestFirst: true},
		Lock:       &config.Lock{WaitTimeout: 0},
	}
}

func newFixture(t *testing.T, mutate ...func(*config.App)) *fixture {
	t.Helper()
	cfg := defaultConfig()
	for _, m := range mutate {
		m(cfg)
	}
	uow := memory.NewUoW()
	bus := eventbus.NewWithMemory(slog.Default())
	svc := transaction.NewService(config.Deps{
		Uow:        uow,
		Locker:     lock.NewKeyedMutex(),
		EventBus:   bus,
		Metrics:    metrics.New(prometheus.NewRegistry()),
		References: reference.New(),
		Logger:     slog.Default(),
		Config:     cfg,
	})
	return &fixture{uow: uow, bus: bus, svc: svc, admin: uuid.New()}
}

type userOpt func(*user.User)

func withKyc(u *user.User) { u.KycStatus = user.KycApproved }

func withCodes(tax, imf, cot string) userOpt {
	return func(u *user.User) {
		u.TaxCode, u.ImfCode, u.CotCode = tax, imf, cot
	}
}

func withStatus(s user.Status) userOpt {
	return func(u *user.User) { u.Status = s }
}

func (f *fixture) user(t *testing.T, balance string, opts ...userOpt) *user.User {
	t.Helper()
	f.seq++
	u, err := user.New(
		uuid.NewString()+"@example.com",
		"Customer "+uuid.NewString()[:4],
		fmt.Sprintf("2000%06d", f.seq),
	)
	require.NoError(t, err)
	u.Balance = decimal.RequireFromString(balance)
	for _, o := range opts {
		o(u)
	}
	users, err := f.uow.UserRepository()
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func (f *fixture) paymentMethod(t *testing.T, min, max int64, spec fee.Spec) *paymentmethod.PaymentMethod {
	t.Helper()
	pm := &paymentmethod.PaymentMethod{
		ID:        uuid.New(),
		Name:      "Bank Transfer",
		Type:      paymentmethod.TypeBank,
		MinAmount: decimal.NewFromInt(min),
		MaxAmount: decimal.NewFromInt(max),
		Fee:       spec.Value,
		FeeType:   spec.Kind,
		Status:    paymentmethod.StatusActive,
	}
	require.NoError(t, pm.Validate())
	repo, err := f.uow.PaymentMethodRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), pm))
	return pm
}

func (f *fixture) balance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	users, err := f.uow.UserRepository()
	require.NoError(t, err)
	u, err := users.Get(context.Background(), id)
	require.NoError(t, err)
	return u.Balance
}

func (f *fixture) records(t *testing.T, ref string) []*ledger.Transaction {
	t.Helper()
	txs, err := f.uow.TransactionRepository()
	require.NoError(t, err)
	out, err := txs.ListByReference(context.Background(), ref)
	require.NoError(t, err)
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// split returns the non-reversal record of ref, and the reversal if any.
func split(records []*ledger.Transaction) (hold, reversal *ledger.Transaction) {
	for _, r := range records {
		if r.IsReversal() {
			reversal = r
		} else {
			hold = r
		}
	}
	return hold, reversal
}

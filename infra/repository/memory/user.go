package memory

import (
	"context"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type userRepo struct{ u *UoW }

func (r *userRepo) Create(_ context.Context, usr *user.User) error {
	defer r.u.guard()()
	if _, ok := r.u.s.users[usr.ID]; ok {
		return domain.ErrAlreadyExists
	}
	for _, existing := range r.u.s.users {
		if existing.AccountNumber == usr.AccountNumber || existing.Email == usr.Email {
			return domain.ErrAlreadyExists
		}
	}
	r.u.s.users[usr.ID] = *usr
	return nil
}

func (r *userRepo) Get(_ context.Context, id uuid.UUID) (*user.User, error) {
	defer r.u.guard()()
	usr, ok := r.u.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &usr, nil
}

func (r *userRepo) GetByAccountNumber(_ context.Context, accountNumber string) (*user.User, error) {
	defer r.u.guard()()
	for _, usr := range r.u.s.users {
		if usr.AccountNumber == accountNumber {
			return &usr, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) Update(_ context.Context, usr *user.User) error {
	defer r.u.guard()()
	stored, ok := r.u.s.users[usr.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	next := *usr
	next.Balance = stored.Balance
	next.BitcoinBalance = stored.BitcoinBalance
	r.u.s.users[usr.ID] = next
	return nil
}

func (r *userRepo) AdjustBalance(
	_ context.Context,
	id uuid.UUID,
	field user.BalanceField,
	delta decimal.Decimal,
) (decimal.Decimal, decimal.Decimal, error) {
	defer r.u.guard()()
	usr, ok := r.u.s.users[id]
	if !ok {
		return decimal.Zero, decimal.Zero, domain.ErrUserNotFound
	}
	before := usr.BalanceOf(field)
	after := before.Add(delta)
	if after.IsNegative() {
		return decimal.Zero, decimal.Zero, domain.ErrInsufficientBalance
	}
	usr.SetBalanceOf(field, after)
	r.u.s.users[id] = usr
	return before, after, nil
}

package memory

import (
	"context"
	"maps"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/deposit"
	"github.com/amirasaad/bankcore/pkg/domain/transfer"
	"github.com/amirasaad/bankcore/pkg/domain/withdrawal"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/google/uuid"
)

type depositRepo struct{ u *UoW }

func cloneDeposit(d deposit.Deposit) *deposit.Deposit { return &d }

func (r *depositRepo) Create(_ context.Context, d *deposit.Deposit) error {
	defer r.u.guard()()
	for _, existing := range r.u.s.deposits {
		if existing.ID == d.ID || existing.Reference == d.Reference {
			return domain.ErrAlreadyExists
		}
	}
	r.u.s.deposits[d.ID] = *d
	return nil
}

func (r *depositRepo) Get(_ context.Context, id uuid.UUID) (*deposit.Deposit, error) {
	defer r.u.guard()()
	d, ok := r.u.s.deposits[id]
	if !ok {
		return nil, domain.ErrDepositNotFound
	}
	return &d, nil
}

func (r *depositRepo) Transition(_ context.Context, d *deposit.Deposit, from workflow.Status) (bool, error) {
	defer r.u.guard()()
	stored, ok := r.u.s.deposits[d.ID]
	if !ok {
		return false, domain.ErrDepositNotFound
	}
	if stored.Status != from {
		return false, nil
	}
	r.u.s.deposits[d.ID] = *d
	return true, nil
}

func (r *depositRepo) List(_ context.Context, f dto.ListFilter) ([]*deposit.Deposit, int64, error) {
	defer r.u.guard()()
	items, total := list(r.u.s.deposits, f, func(d *deposit.Deposit) row {
		return row{
			userIDs:   []uuid.UUID{d.UserID},
			status:    string(d.Status),
			createdAt: d.CreatedAt,
			text:      []string{d.Reference, d.AdminNote},
		}
	}, cloneDeposit)
	return items, total, nil
}

type withdrawalRepo struct{ u *UoW }

func cloneWithdrawal(w withdrawal.Withdrawal) *withdrawal.Withdrawal {
	w.PaymentDetails = maps.Clone(w.PaymentDetails)
	return &w
}

func (r *withdrawalRepo) Create(_ context.Context, w *withdrawal.Withdrawal) error {
	defer r.u.guard()()
	for _, existing := range r.u.s.withdrawals {
		if existing.ID == w.ID || existing.Reference == w.Reference {
			return domain.ErrAlreadyExists
		}
	}
	r.u.s.withdrawals[w.ID] = *cloneWithdrawal(*w)
	return nil
}

func (r *withdrawalRepo) Get(_ context.Context, id uuid.UUID) (*withdrawal.Withdrawal, error) {
	defer r.u.guard()()
	w, ok := r.u.s.withdrawals[id]
	if !ok {
		return nil, domain.ErrWithdrawalNotFound
	}
	return cloneWithdrawal(w), nil
}

func (r *withdrawalRepo) Transition(_ context.Context, w *withdrawal.Withdrawal, from workflow.Status) (bool, error) {
	defer r.u.guard()()
	stored, ok := r.u.s.withdrawals[w.ID]
	if !ok {
		return false, domain.ErrWithdrawalNotFound
	}
	if stored.Status != from {
		return false, nil
	}
	r.u.s.withdrawals[w.ID] = *cloneWithdrawal(*w)
	return true, nil
}

func (r *withdrawalRepo) List(_ context.Context, f dto.ListFilter) ([]*withdrawal.Withdrawal, int64, error) {
	defer r.u.guard()()
	items, total := list(r.u.s.withdrawals, f, func(w *withdrawal.Withdrawal) row {
		return row{
			userIDs:   []uuid.UUID{w.UserID},
			status:    string(w.Status),
			createdAt: w.CreatedAt,
			text:      []string{w.Reference, w.AdminNote},
		}
	}, cloneWithdrawal)
	return items, total, nil
}

type transferRepo struct{ u *UoW }

func cloneTransfer(t transfer.Transfer) *transfer.Transfer {
	t.Metadata = maps.Clone(t.Metadata)
	return &t
}

func (r *transferRepo) Create(_ context.Context, t *transfer.Transfer) error {
	defer r.u.guard()()
	for _, existing := range r.u.s.transfers {
		if existing.ID == t.ID || existing.Reference == t.Reference {
			return domain.ErrAlreadyExists
		}
	}
	r.u.s.transfers[t.ID] = *cloneTransfer(*t)
	return nil
}

func (r *transferRepo) Get(_ context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	defer r.u.guard()()
	t, ok := r.u.s.transfers[id]
	if !ok {
		return nil, domain.ErrTransferNotFound
	}
	return cloneTransfer(t), nil
}

func (r *transferRepo) Transition(_ context.Context, t *transfer.Transfer, from workflow.Status) (bool, error) {
	defer r.u.guard()()
	stored, ok := r.u.s.transfers[t.ID]
	if !ok {
		return false, domain.ErrTransferNotFound
	}
	if stored.Status != from {
		return false, nil
	}
	r.u.s.transfers[t.ID] = *cloneTransfer(*t)
	return true, nil
}

func (r *transferRepo) List(_ context.Context, f dto.ListFilter) ([]*transfer.Transfer, int64, error) {
	defer r.u.guard()()
	items, total := list(r.u.s.transfers, f, func(t *transfer.Transfer) row {
		ids := []uuid.UUID{t.SenderID}
		if t.RecipientID != nil {
			ids = append(ids, *t.RecipientID)
		}
		return row{
			userIDs:   ids,
			status:    string(t.Status),
			kind:      string(t.Type),
			createdAt: t.CreatedAt,
			text: []string{
				t.Reference,
				t.Description,
				t.AdminNote,
				t.RecipientDetails.AccountName,
				t.RecipientDetails.AccountNumber,
			},
		}
	}, cloneTransfer)
	return items, total, nil
}

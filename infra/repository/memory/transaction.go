package memory

import (
	"context"
	"maps"
	"sort"
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/google/uuid"
)

type transactionRepo struct{ u *UoW }

func cloneTransaction(t ledger.Transaction) *ledger.Transaction {
	t.Metadata = maps.Clone(t.Metadata)
	return &t
}

func (r *transactionRepo) Create(_ context.Context, tx *ledger.Transaction) error {
	defer r.u.guard()()
	if _, ok := r.u.s.transactions[tx.ID]; ok {
		return domain.ErrAlreadyExists
	}
	r.u.s.transactions[tx.ID] = *cloneTransaction(*tx)
	return nil
}

func (r *transactionRepo) Get(_ context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	defer r.u.guard()()
	tx, ok := r.u.s.transactions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneTransaction(tx), nil
}

func (r *transactionRepo) SetStatus(
	_ context.Context,
	userID uuid.UUID,
	reference string,
	from, to ledger.Status,
) (int64, error) {
	defer r.u.guard()()
	var n int64
	now := time.Now().UTC()
	for id, tx := range r.u.s.transactions {
		if tx.UserID == userID && tx.Reference == reference && tx.Status == from {
			tx.Status = to
			tx.UpdatedAt = now
			r.u.s.transactions[id] = tx
			n++
		}
	}
	return n, nil
}

func (r *transactionRepo) ListByReference(_ context.Context, reference string) ([]*ledger.Transaction, error) {
	defer r.u.guard()()
	out := []*ledger.Transaction{}
	for _, tx := range r.u.s.transactions {
		if tx.Reference == reference {
			out = append(out, cloneTransaction(tx))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *transactionRepo) List(_ context.Context, f dto.ListFilter) ([]*ledger.Transaction, int64, error) {
	defer r.u.guard()()
	items, total := list(r.u.s.transactions, f, func(t *ledger.Transaction) row {
		return row{
			userIDs:   []uuid.UUID{t.UserID},
			status:    string(t.Status),
			kind:      string(t.Type),
			createdAt: t.CreatedAt,
			text:      []string{t.Reference, t.Description},
		}
	}, cloneTransaction)
	return items, total, nil
}

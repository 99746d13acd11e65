package memory

import (
	"context"
	"maps"
	"sort"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	"github.com/google/uuid"
)

type paymentMethodRepo struct{ u *UoW }

func clonePaymentMethod(pm paymentmethod.PaymentMethod) *paymentmethod.PaymentMethod {
	pm.Details = maps.Clone(pm.Details)
	return &pm
}

func (r *paymentMethodRepo) Create(_ context.Context, pm *paymentmethod.PaymentMethod) error {
	defer r.u.guard()()
	if _, ok := r.u.s.paymentMethods[pm.ID]; ok {
		return domain.ErrAlreadyExists
	}
	r.u.s.paymentMethods[pm.ID] = *clonePaymentMethod(*pm)
	return nil
}

func (r *paymentMethodRepo) Get(_ context.Context, id uuid.UUID) (*paymentmethod.PaymentMethod, error) {
	defer r.u.guard()()
	pm, ok := r.u.s.paymentMethods[id]
	if !ok {
		return nil, domain.ErrPaymentMethodNotFound
	}
	return clonePaymentMethod(pm), nil
}

func (r *paymentMethodRepo) Update(_ context.Context, pm *paymentmethod.PaymentMethod) error {
	defer r.u.guard()()
	if _, ok := r.u.s.paymentMethods[pm.ID]; !ok {
		return domain.ErrPaymentMethodNotFound
	}
	r.u.s.paymentMethods[pm.ID] = *clonePaymentMethod(*pm)
	return nil
}

func (r *paymentMethodRepo) List(_ context.Context, activeOnly bool) ([]*paymentmethod.PaymentMethod, error) {
	defer r.u.guard()()
	out := make([]*paymentmethod.PaymentMethod, 0, len(r.u.s.paymentMethods))
	for _, pm := range r.u.s.paymentMethods {
		if activeOnly && !pm.Active() {
			continue
		}
		out = append(out, clonePaymentMethod(pm))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

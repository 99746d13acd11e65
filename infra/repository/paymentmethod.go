package repository

import (
	"context"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a payment method repository on db.
func NewPaymentMethodRepository(db *gorm.DB) repository.PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(ctx context.Context, pm *paymentmethod.PaymentMethod) error {
	m := mapPaymentMethodToModel(pm)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *paymentMethodRepository) Get(ctx context.Context, id uuid.UUID) (*paymentmethod.PaymentMethod, error) {
	var m PaymentMethod
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrPaymentMethodNotFound)
	}
	return mapPaymentMethodToDomain(&m), nil
}

func (r *paymentMethodRepository) Update(ctx context.Context, pm *paymentmethod.PaymentMethod) error {
	m := mapPaymentMethodToModel(pm)
	res := r.db.WithContext(ctx).Model(&m).
		Select("name", "type", "details", "min_amount", "max_amount", "fee", "fee_type", "status", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPaymentMethodNotFound
	}
	return nil
}

func (r *paymentMethodRepository) List(ctx context.Context, activeOnly bool) ([]*paymentmethod.PaymentMethod, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("status = ?", string(paymentmethod.StatusActive))
	}
	var rows []PaymentMethod
	if err := q.Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*paymentmethod.PaymentMethod, 0, len(rows))
	for i := range rows {
		out = append(out, mapPaymentMethodToDomain(&rows[i]))
	}
	return out, nil
}

func mapPaymentMethodToModel(pm *paymentmethod.PaymentMethod) PaymentMethod {
	return PaymentMethod{
		ID:        pm.ID,
		Name:      pm.Name,
		Type:      string(pm.Type),
		Details:   pm.Details,
		MinAmount: pm.MinAmount,
		MaxAmount: pm.MaxAmount,
		Fee:       pm.Fee,
		FeeType:   string(pm.FeeType),
		Status:    string(pm.Status),
		CreatedAt: pm.CreatedAt,
		UpdatedAt: pm.UpdatedAt,
	}
}

func mapPaymentMethodToDomain(m *PaymentMethod) *paymentmethod.PaymentMethod {
	return &paymentmethod.PaymentMethod{
		ID:        m.ID,
		Name:      m.Name,
		Type:      paymentmethod.Type(m.Type),
		Details:   m.Details,
		MinAmount: m.MinAmount,
		MaxAmount: m.MaxAmount,
		Fee:       m.Fee,
		FeeType:   fee.Kind(m.FeeType),
		Status:    paymentmethod.Status(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

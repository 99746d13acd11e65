package repository

import (
	"context"
	"fmt"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository on db.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	m := mapUserToModel(u)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return mapUserToDomain(&m), nil
}

func (r *userRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Where("account_number = ?", accountNumber).First(&m).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return mapUserToDomain(&m), nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", u.ID).Updates(map[string]any{
		"email":      u.Email,
		"full_name":  u.FullName,
		"currency":   u.Currency,
		"status":     string(u.Status),
		"kyc_status": string(u.KycStatus),
		"tax_code":   u.TaxCode,
		"imf_code":   u.ImfCode,
		"cot_code":   u.CotCode,
		"updated_at": u.UpdatedAt,
	})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AdjustBalance issues a single conditional UPDATE: a debit only matches
// when the column covers it. The row is then re-read inside the same session
// to report the resulting balance.
func (r *userRepository) AdjustBalance(
	ctx context.Context,
	id uuid.UUID,
	field user.BalanceField,
	delta decimal.Decimal,
) (before, after decimal.Decimal, err error) {
	if !field.Valid() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("balance field %q: %w", field, domain.ErrValidation)
	}
	col := string(field)
	q := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id)
	if delta.IsNegative() {
		q = q.Where(col+" >= ?", delta.Neg())
	}
	res := q.Update(col, gorm.Expr(col+" + ?", delta))
	if res.Error != nil {
		return decimal.Zero, decimal.Zero, MapGormErrorToDomain(res.Error)
	}

	var m User
	if err := r.db.WithContext(ctx).Select("id", col).First(&m, "id = ?", id).Error; err != nil {
		return decimal.Zero, decimal.Zero, notFound(err, domain.ErrUserNotFound)
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, decimal.Zero, domain.ErrInsufficientBalance
	}
	after = m.Balance
	if field == user.FieldBitcoinBalance {
		after = m.BitcoinBalance
	}
	return after.Sub(delta), after, nil
}

func mapUserToModel(u *user.User) User {
	return User{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		AccountNumber:  u.AccountNumber,
		Currency:       u.Currency,
		Balance:        u.Balance,
		BitcoinBalance: u.BitcoinBalance,
		Status:         string(u.Status),
		KycStatus:      string(u.KycStatus),
		TaxCode:        u.TaxCode,
		ImfCode:        u.ImfCode,
		CotCode:        u.CotCode,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func mapUserToDomain(m *User) *user.User {
	return &user.User{
		ID:             m.ID,
		Email:          m.Email,
		FullName:       m.FullName,
		AccountNumber:  m.AccountNumber,
		Currency:       m.Currency,
		Balance:        m.Balance,
		BitcoinBalance: m.BitcoinBalance,
		Status:         user.Status(m.Status),
		KycStatus:      user.KycStatus(m.KycStatus),
		TaxCode:        m.TaxCode,
		ImfCode:        m.ImfCode,
		CotCode:        m.CotCode,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

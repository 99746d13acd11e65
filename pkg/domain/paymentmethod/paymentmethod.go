package paymentmethod

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the channel a payment method moves money through.
type Type string

const (
	TypeBank        Type = "bank"
	TypeCrypto      Type = "crypto"
	TypeCard        Type = "card"
	TypeMobileMoney Type = "mobile_money"
	TypePaypal      Type = "paypal"
)

func (t Type) Valid() bool {
	switch t {
	case TypeBank, TypeCrypto, TypeCard, TypeMobileMoney, TypePaypal:
		return true
	}
	return false
}

// Status toggles availability.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var (
	ErrNameRequired  = errors.New("payment method name is required")
	ErrInvalidType   = errors.New("invalid payment method type")
	ErrInvalidBounds = errors.New("min amount must be positive and not exceed max amount")
)

// PaymentMethod configures the bounds and fee of a funding channel.
type PaymentMethod struct {
	ID        uuid.UUID
	Name      string
	Type      Type
	Details   map[string]string
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	Fee       decimal.Decimal
	FeeType   fee.Kind
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the configuration invariants.
func (p *PaymentMethod) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if !p.Type.Valid() {
		return ErrInvalidType
	}
	if !p.MinAmount.IsPositive() || p.MaxAmount.LessThan(p.MinAmount) {
		return ErrInvalidBounds
	}
	return p.FeeSpec().Validate()
}

// Active reports whether the method may be used.
func (p *PaymentMethod) Active() bool {
	return p.Status == StatusActive
}

// FeeSpec returns the fee specification of the method.
func (p *PaymentMethod) FeeSpec() fee.Spec {
	return fee.Spec{Kind: p.FeeType, Value: p.Fee}
}

// CheckAmount returns an AmountOutOfRangeError when amount is outside [MinAmount, MaxAmount].
func (p *PaymentMethod) CheckAmount(amount decimal.Decimal) error {
	if amount.LessThan(p.MinAmount) || amount.GreaterThan(p.MaxAmount) {
		return &domain.AmountOutOfRangeError{Min: p.MinAmount, Max: p.MaxAmount}
	}
	return nil
}

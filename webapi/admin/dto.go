package admin

import (
	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	paymentmethodsvc "github.com/amirasaad/bankcore/pkg/service/paymentmethod"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateUserRequest is the body of POST /admin/users.
type CreateUserRequest struct {
	Email         string `json:"email" validate:"required,email,max=255"`
	FullName      string `json:"full_name" validate:"omitempty,max=255"`
	AccountNumber string `json:"account_number" validate:"omitempty,numeric,min=6,max=32"`
	Currency      string `json:"currency" validate:"omitempty,len=3,alpha"`
}

type KycRequest struct {
	Status string `json:"status" validate:"required,oneof=not_submitted pending approved rejected"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive dormant suspended blocked pending"`
}

// CodesRequest sets the authorization codes of a user. Empty clears a code.
type CodesRequest struct {
	TaxCode string `json:"tax_code" validate:"omitempty,max=64"`
	ImfCode string `json:"imf_code" validate:"omitempty,max=64"`
	CotCode string `json:"cot_code" validate:"omitempty,max=64"`
}

// AdjustRequest is the body of POST /admin/users/:id/adjust.
type AdjustRequest struct {
	Field       string          `json:"field" validate:"required,oneof=balance bitcoin_balance"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Direction   string          `json:"direction" validate:"required,oneof=credit debit"`
	Type        string          `json:"type" validate:"required,oneof=bonus fee investment loan"`
	Description string          `json:"description" validate:"omitempty,max=512"`
}

// PaymentMethodRequest is the body of POST and PUT /admin/payment-methods.
type PaymentMethodRequest struct {
	Name      string            `json:"name" validate:"required,max=128"`
	Type      string            `json:"type" validate:"required,oneof=bank crypto card mobile_money paypal"`
	Details   map[string]string `json:"details"`
	MinAmount decimal.Decimal   `json:"min_amount" validate:"gt=0"`
	MaxAmount decimal.Decimal   `json:"max_amount" validate:"gt=0"`
	Fee       decimal.Decimal   `json:"fee" validate:"gte=0"`
	FeeType   string            `json:"fee_type" validate:"required,oneof=fixed percentage"`
	Status    string            `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *PaymentMethodRequest) input() paymentmethodsvc.Input {
	return paymentmethodsvc.Input{
		Name:      r.Name,
		Type:      paymentmethod.Type(r.Type),
		Details:   r.Details,
		MinAmount: r.MinAmount,
		MaxAmount: r.MaxAmount,
		Fee:       r.Fee,
		FeeType:   fee.Kind(r.FeeType),
	}
}

package withdrawal

import (
	"time"

	"github.com/amirasaad/bankcore/pkg/domain/withdrawal"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateRequest is the body of POST /withdrawals.
type CreateRequest struct {
	Amount          decimal.Decimal   `json:"amount" validate:"gt=0"`
	PaymentMethodID string            `json:"payment_method_id" validate:"required,uuid"`
	PaymentDetails  map[string]string `json:"payment_details" validate:"omitempty,dive,keys,max=64,endkeys,max=256"`
}

// ProcessRequest is the body of POST /admin/withdrawals/:id/process.
type ProcessRequest struct {
	Decision string `json:"decision" validate:"required,oneof=processing approved rejected"`
	Note     string `json:"note" validate:"omitempty,max=512"`
}

// WithdrawalDTO is the API representation of a withdrawal.
type WithdrawalDTO struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Amount          decimal.Decimal   `json:"amount"`
	Fee             decimal.Decimal   `json:"fee"`
	NetAmount       decimal.Decimal   `json:"net_amount"`
	PaymentMethodID string            `json:"payment_method_id"`
	PaymentDetails  map[string]string `json:"payment_details,omitempty"`
	Status          string            `json:"status"`
	Reference       string            `json:"reference"`
	AdminNote       string            `json:"admin_note,omitempty"`
	ProcessedBy     string            `json:"processed_by,omitempty"`
	ProcessedAt     *time.Time        `json:"processed_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ToWithdrawalDTO maps a withdrawal to its API representation.
func ToWithdrawalDTO(w *withdrawal.Withdrawal) *WithdrawalDTO {
	if w == nil {
		return nil
	}
	out := &WithdrawalDTO{
		ID:              w.ID.String(),
		UserID:          w.UserID.String(),
		Amount:          w.Amount,
		Fee:             w.Fee,
		NetAmount:       w.NetAmount,
		PaymentMethodID: w.PaymentMethodID.String(),
		PaymentDetails:  w.PaymentDetails,
		Status:          string(w.Status),
		Reference:       w.Reference,
		AdminNote:       w.AdminNote,
		ProcessedAt:     w.ProcessedAt,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
	if w.ProcessedBy != nil {
		out.ProcessedBy = w.ProcessedBy.String()
	}
	return out
}

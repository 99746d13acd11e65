package deposit

import (
	"time"

	"github.com/amirasaad/bankcore/pkg/domain/deposit"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateRequest is the body of POST /deposits.
type CreateRequest struct {
	Amount          decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentMethodID string          `json:"payment_method_id" validate:"required,uuid"`
	ProofImage      string          `json:"proof_image" validate:"omitempty,max=512"`
}

// ProcessRequest is the body of POST /admin/deposits/:id/process.
type ProcessRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Note     string `json:"note" validate:"omitempty,max=512"`
}

// DepositDTO is the API representation of a deposit.
type DepositDTO struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethodID string          `json:"payment_method_id"`
	Status          string          `json:"status"`
	Reference       string          `json:"reference"`
	ProofImage      string          `json:"proof_image,omitempty"`
	AdminNote       string          `json:"admin_note,omitempty"`
	ProcessedBy     string          `json:"processed_by,omitempty"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToDepositDTO maps a deposit to its API representation.
func ToDepositDTO(d *deposit.Deposit) *DepositDTO {
	if d == nil {
		return nil
	}
	out := &DepositDTO{
		ID:              d.ID.String(),
		UserID:          d.UserID.String(),
		Amount:          d.Amount,
		PaymentMethodID: d.PaymentMethodID.String(),
		Status:          string(d.Status),
		Reference:       d.Reference,
		ProofImage:      d.ProofImage,
		AdminNote:       d.AdminNote,
		ProcessedAt:     d.ProcessedAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.ProcessedBy != nil {
		out.ProcessedBy = d.ProcessedBy.String()
	}
	return out
}

package transfer

import (
	"time"

	"github.com/amirasaad/bankcore/pkg/domain/transfer"
	"github.com/shopspring/decimal"
)

//revive:disable

// InternalRequest is the body of POST /transfers/internal.
type InternalRequest struct {
	RecipientAccountNumber string          `json:"recipient_account_number" validate:"required,max=64"`
	Amount                 decimal.Decimal `json:"amount" validate:"gt=0"`
	Description            string          `json:"description" validate:"omitempty,max=512"`
}

// Recipient identifies the destination of an external transfer.
type Recipient struct {
	AccountNumber string `json:"account_number" validate:"required,max=64"`
	AccountName   string `json:"account_name" validate:"required,max=255"`
	BankName      string `json:"bank_name" validate:"required,max=255"`
	BankCode      string `json:"bank_code" validate:"omitempty,max=64"`
	Country       string `json:"country" validate:"omitempty,max=64"`
	SwiftCode     string `json:"swift_code" validate:"omitempty,min=8,max=11,alphanum"`
	RoutingNumber string `json:"routing_number" validate:"omitempty,max=64"`
}

// ExternalRequest is the body of POST /transfers/external.
type ExternalRequest struct {
	Type        string          `json:"type" validate:"required,oneof=local international"`
	Recipient   Recipient       `json:"recipient"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Description string          `json:"description" validate:"omitempty,max=512"`
}

// VerifyRequest is the body of POST /transfers/:id/verify.
type VerifyRequest struct {
	TaxCode string `json:"tax_code" validate:"omitempty,max=64"`
	ImfCode string `json:"imf_code" validate:"omitempty,max=64"`
	CotCode string `json:"cot_code" validate:"omitempty,max=64"`
}

// ProcessRequest is the body of POST /admin/transfers/:id/process.
type ProcessRequest struct {
	Decision string `json:"decision" validate:"required,oneof=completed failed"`
	Note     string `json:"note" validate:"omitempty,max=512"`
}

// RecipientDTO is the API representation of the transfer destination.
type RecipientDTO struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	BankCode      string `json:"bank_code,omitempty"`
	Country       string `json:"country,omitempty"`
	SwiftCode     string `json:"swift_code,omitempty"`
	RoutingNumber string `json:"routing_number,omitempty"`
}

// RequiresDTO lists the codes an international transfer must verify.
type RequiresDTO struct {
	TaxCode bool `json:"tax_code"`
	ImfCode bool `json:"imf_code"`
	CotCode bool `json:"cot_code"`
}

// TransferDTO is the API representation of a transfer.
type TransferDTO struct {
	ID            string          `json:"id"`
	SenderID      string          `json:"sender_id"`
	RecipientID   string          `json:"recipient_id,omitempty"`
	Recipient     RecipientDTO    `json:"recipient"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description,omitempty"`
	Requires      RequiresDTO     `json:"requires"`
	CodesVerified bool            `json:"codes_verified"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
	AdminNote     string          `json:"admin_note,omitempty"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToTransferDTO maps a transfer to its API representation.
func ToTransferDTO(t *transfer.Transfer) *TransferDTO {
	if t == nil {
		return nil
	}
	r := t.RecipientDetails
	out := &TransferDTO{
		ID:       t.ID.String(),
		SenderID: t.SenderID.String(),
		Recipient: RecipientDTO{
			AccountNumber: r.AccountNumber,
			AccountName:   r.AccountName,
			BankName:      r.BankName,
			BankCode:      r.BankCode,
			Country:       r.Country,
			SwiftCode:     r.SwiftCode,
			RoutingNumber: r.RoutingNumber,
		},
		Type:          string(t.Type),
		Amount:        t.Amount,
		Fee:           t.Fee,
		TotalAmount:   t.TotalAmount,
		Status:        string(t.Status),
		Reference:     t.Reference,
		Description:   t.Description,
		Requires:      RequiresDTO{TaxCode: t.Requires.Tax, ImfCode: t.Requires.Imf, CotCode: t.Requires.Cot},
		CodesVerified: t.CodesVerified,
		Metadata:      t.Metadata,
		AdminNote:     t.AdminNote,
		ProcessedAt:   t.ProcessedAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.RecipientID != nil {
		out.RecipientID = t.RecipientID.String()
	}
	return out
}

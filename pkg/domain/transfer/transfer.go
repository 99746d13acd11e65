// Package transfer models internal, local and international transfers.
package transfer

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the transfer variant.
type Type string

const (
	TypeInternal      Type = "internal"
	TypeLocal         Type = "local"
	TypeInternational Type = "international"
)

func (t Type) Valid() bool {
	return t == TypeInternal || t == TypeLocal || t == TypeInternational
}

// External reports whether the transfer leaves the system.
func (t Type) External() bool {
	return t == TypeLocal || t == TypeInternational
}

// Machine is the transfer lifecycle. Internal transfers are created completed.
var Machine = workflow.NewMachine("transfer", domain.ErrAlreadyTerminal, map[workflow.Status][]workflow.Status{
	workflow.StatusPending: {
		workflow.StatusProcessing,
		workflow.StatusCompleted,
		workflow.StatusFailed,
		workflow.StatusCancelled,
	},
	workflow.StatusProcessing: {workflow.StatusCompleted, workflow.StatusFailed},
})

// Metadata keys.
const (
	MetaCodesVerifiedAt = "codesVerifiedAt"
	MetaVerifiedCodes   = "verifiedCodes"
	MetaCancelledBy     = "cancelledBy"
)

var (
	ErrRecipientAccountRequired = errors.New("recipient account number is required")
	ErrRecipientNameRequired    = errors.New("recipient account name is required")
	ErrBankNameRequired         = errors.New("recipient bank name is required")
	ErrSwiftRequired            = errors.New("swift code and country are required for international transfers")
)

// RecipientDetails identifies the destination account.
type RecipientDetails struct {
	AccountNumber string
	AccountName   string
	BankName      string
	BankCode      string
	Country       string
	SwiftCode     string
	RoutingNumber string
}

// Validate checks the details required by the given transfer type.
func (r RecipientDetails) Validate(t Type) error {
	if strings.TrimSpace(r.AccountNumber) == "" {
		return ErrRecipientAccountRequired
	}
	if t == TypeInternal {
		return nil
	}
	if strings.TrimSpace(r.AccountName) == "" {
		return ErrRecipientNameRequired
	}
	if strings.TrimSpace(r.BankName) == "" {
		return ErrBankNameRequired
	}
	if t == TypeInternational && (strings.TrimSpace(r.SwiftCode) == "" || strings.TrimSpace(r.Country) == "") {
		return ErrSwiftRequired
	}
	return nil
}

// Requirements lists the authorization codes an international transfer needs.
type Requirements struct {
	Tax bool
	Imf bool
	Cot bool
}

// Any reports whether at least one code is required.
func (r Requirements) Any() bool {
	return r.Tax || r.Imf || r.Cot
}

// Transfer moves TotalAmount (Amount + Fee) out of the sender's balance.
type Transfer struct {
	ID               uuid.UUID
	SenderID         uuid.UUID
	RecipientID      *uuid.UUID
	RecipientDetails RecipientDetails
	Type             Type
	Amount           decimal.Decimal
	Fee              decimal.Decimal
	TotalAmount      decimal.Decimal
	Status           workflow.Status
	Reference        string
	Description      string
	Requires         Requirements
	CodesVerified    bool
	Metadata         map[string]any
	AdminNote        string
	ProcessedBy      *uuid.UUID
	ProcessedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// New creates a transfer in the given status.
func New(
	senderID uuid.UUID,
	t Type,
	details RecipientDetails,
	amount, fee decimal.Decimal,
	status workflow.Status,
	reference, description string,
) *Transfer {
	now := time.Now().UTC()
	return &Transfer{
		ID:               uuid.New(),
		SenderID:         senderID,
		RecipientDetails: details,
		Type:             t,
		Amount:           amount,
		Fee:              fee,
		TotalAmount:      amount.Add(fee),
		Status:           status,
		Reference:        reference,
		Description:      description,
		Metadata:         map[string]any{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (t *Transfer) CurrentStatus() workflow.Status {
	return t.Status
}

// MarkProcessed stamps the admin decision.
func (t *Transfer) MarkProcessed(to workflow.Status, adminID uuid.UUID, note string, at time.Time) {
	t.Status = to
	t.AdminNote = note
	t.ProcessedBy = &adminID
	t.ProcessedAt = &at
	t.UpdatedAt = at
}

// Package ledger holds the append-only Transaction record written alongside
// every balance mutation.
package ledger

import (
	"time"

	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type classifies a ledger posting.
type Type string

const (
	TypeDeposit     Type = "deposit"
	TypeWithdrawal  Type = "withdrawal"
	TypeTransferIn  Type = "transfer_in"
	TypeTransferOut Type = "transfer_out"
	TypeBonus       Type = "bonus"
	TypeFee         Type = "fee"
	TypeInvestment  Type = "investment"
	TypeLoan        Type = "loan"
	TypeCardTopup   Type = "card_topup"
	TypeCardDeduct  Type = "card_deduct"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypeTransferIn, TypeTransferOut, TypeBonus,
		TypeFee, TypeInvestment, TypeLoan, TypeCardTopup, TypeCardDeduct:
		return true
	}
	return false
}

// Status mirrors the outcome of the workflow entity that produced the record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Metadata keys shared by postings.
const (
	MetaReversal     = "reversal"
	MetaWorkflow     = "workflow"
	MetaEntityID     = "entityId"
	MetaAdminID      = "adminId"
	MetaCounterparty = "counterparty"
)

// Transaction is an immutable audit record of a single balance mutation.
// Only Status may change after creation.
type Transaction struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Type          Type
	Field         user.BalanceField
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Status        Status
	Reference     string
	Description   string
	Metadata      map[string]any
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsReversal reports whether the posting compensates an earlier hold.
func (t *Transaction) IsReversal() bool {
	v, ok := t.Metadata[MetaReversal].(bool)
	return ok && v
}

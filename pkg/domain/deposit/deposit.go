// Package deposit models a user funding request awaiting admin approval.
package deposit

import (
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Machine is the deposit lifecycle: pending → approved | rejected.
var Machine = workflow.NewMachine("deposit", domain.ErrAlreadyProcessed, map[workflow.Status][]workflow.Status{
	workflow.StatusPending: {workflow.StatusApproved, workflow.StatusRejected},
})

// Deposit is credited to the user's balance only on approval.
type Deposit struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Amount          decimal.Decimal
	PaymentMethodID uuid.UUID
	Status          workflow.Status
	Reference       string
	ProofImage      string
	AdminNote       string
	ProcessedBy     *uuid.UUID
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// New creates a pending deposit.
func New(userID, paymentMethodID uuid.UUID, amount decimal.Decimal, reference, proofImage string) *Deposit {
	now := time.Now().UTC()
	return &Deposit{
		ID:              uuid.New(),
		UserID:          userID,
		Amount:          amount,
		PaymentMethodID: paymentMethodID,
		Status:          workflow.StatusPending,
		Reference:       reference,
		ProofImage:      proofImage,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (d *Deposit) CurrentStatus() workflow.Status {
	return d.Status
}

// MarkProcessed stamps the admin decision.
func (d *Deposit) MarkProcessed(to workflow.Status, adminID uuid.UUID, note string, at time.Time) {
	d.Status = to
	d.AdminNote = note
	d.ProcessedBy = &adminID
	d.ProcessedAt = &at
	d.UpdatedAt = at
}

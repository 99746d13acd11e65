// Package withdrawal models a debit request whose amount is held at creation.
package withdrawal

import (
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Machine is the withdrawal lifecycle.
var Machine = workflow.NewMachine("withdrawal", domain.ErrAlreadyProcessed, map[workflow.Status][]workflow.Status{
	workflow.StatusPending:    {workflow.StatusProcessing, workflow.StatusApproved, workflow.StatusRejected},
	workflow.StatusProcessing: {workflow.StatusApproved, workflow.StatusRejected},
})

// Withdrawal removes Amount from the balance at creation; rejection refunds Amount.
// NetAmount is what the user receives: Amount - Fee.
type Withdrawal struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Amount          decimal.Decimal
	Fee             decimal.Decimal
	NetAmount       decimal.Decimal
	PaymentMethodID uuid.UUID
	PaymentDetails  map[string]string
	Status          workflow.Status
	Reference       string
	AdminNote       string
	ProcessedBy     *uuid.UUID
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// New creates a pending withdrawal.
func New(
	userID, paymentMethodID uuid.UUID,
	amount, fee decimal.Decimal,
	details map[string]string,
	reference string,
) *Withdrawal {
	now := time.Now().UTC()
	return &Withdrawal{
		ID:              uuid.New(),
		UserID:          userID,
		Amount:          amount,
		Fee:             fee,
		NetAmount:       amount.Sub(fee),
		PaymentMethodID: paymentMethodID,
		PaymentDetails:  details,
		Status:          workflow.StatusPending,
		Reference:       reference,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (w *Withdrawal) CurrentStatus() workflow.Status {
	return w.Status
}

// MarkProcessed stamps the admin decision. Moving to processing keeps the
// processed fields empty.
func (w *Withdrawal) MarkProcessed(to workflow.Status, adminID uuid.UUID, note string, at time.Time) {
	w.Status = to
	w.UpdatedAt = at
	if note != "" {
		w.AdminNote = note
	}
	if to.Terminal() {
		w.ProcessedBy = &adminID
		w.ProcessedAt = &at
	}
}

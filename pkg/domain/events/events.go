// Package events holds the notifications emitted after ledger workflows commit.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeDepositRequested    = "deposit.requested"
	TypeDepositProcessed    = "deposit.processed"
	TypeWithdrawalRequested = "withdrawal.requested"
	TypeWithdrawalProcessed = "withdrawal.processed"
	TypeTransferCreated     = "transfer.created"
	TypeTransferVerified    = "transfer.verified"
	TypeTransferProcessed   = "transfer.processed"
	TypeTransferCancelled   = "transfer.cancelled"
	TypeBalanceAdjusted     = "balance.adjusted"
)

// Types lists every event type.
func Types() []string {
	return []string{
		TypeDepositRequested,
		TypeDepositProcessed,
		TypeWithdrawalRequested,
		TypeWithdrawalProcessed,
		TypeTransferCreated,
		TypeTransferVerified,
		TypeTransferProcessed,
		TypeTransferCancelled,
		TypeBalanceAdjusted,
	}
}

// Envelope carries the fields every event shares.
type Envelope struct {
	EventID    uuid.UUID `json:"eventId"`
	UserID     uuid.UUID `json:"userId"`
	Reference  string    `json:"reference"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newEnvelope(userID uuid.UUID, reference string) Envelope {
	return Envelope{
		EventID:    uuid.New(),
		UserID:     userID,
		Reference:  reference,
		OccurredAt: time.Now().UTC(),
	}
}

// Key is the partitioning key used by brokers: events of a user stay ordered.
func (e Envelope) Key() string {
	return e.UserID.String()
}

type DepositRequested struct {
	Envelope
	DepositID uuid.UUID       `json:"depositId"`
	Amount    decimal.Decimal `json:"amount"`
}

func (DepositRequested) Type() string { return TypeDepositRequested }

func NewDepositRequested(userID, depositID uuid.UUID, reference string, amount decimal.Decimal) DepositRequested {
	return DepositRequested{Envelope: newEnvelope(userID, reference), DepositID: depositID, Amount: amount}
}

type DepositProcessed struct {
	Envelope
	DepositID uuid.UUID       `json:"depositId"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	AdminID   uuid.UUID       `json:"adminId"`
}

func (DepositProcessed) Type() string { return TypeDepositProcessed }

func NewDepositProcessed(userID, depositID, adminID uuid.UUID, reference, status string, amount decimal.Decimal) DepositProcessed {
	return DepositProcessed{
		Envelope:  newEnvelope(userID, reference),
		DepositID: depositID,
		Status:    status,
		Amount:    amount,
		AdminID:   adminID,
	}
}

type WithdrawalRequested struct {
	Envelope
	WithdrawalID uuid.UUID       `json:"withdrawalId"`
	Amount       decimal.Decimal `json:"amount"`
	Fee          decimal.Decimal `json:"fee"`
}

func (WithdrawalRequested) Type() string { return TypeWithdrawalRequested }

func NewWithdrawalRequested(userID, withdrawalID uuid.UUID, reference string, amount, fee decimal.Decimal) WithdrawalRequested {
	return WithdrawalRequested{
		Envelope:     newEnvelope(userID, reference),
		WithdrawalID: withdrawalID,
		Amount:       amount,
		Fee:          fee,
	}
}

type WithdrawalProcessed struct {
	Envelope
	WithdrawalID uuid.UUID       `json:"withdrawalId"`
	Status       string          `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
	Refunded     bool            `json:"refunded"`
	AdminID      uuid.UUID       `json:"adminId"`
}

func (WithdrawalProcessed) Type() string { return TypeWithdrawalProcessed }

func NewWithdrawalProcessed(
	userID, withdrawalID, adminID uuid.UUID,
	reference, status string,
	amount decimal.Decimal,
	refunded bool,
) WithdrawalProcessed {
	return WithdrawalProcessed{
		Envelope:     newEnvelope(userID, reference),
		WithdrawalID: withdrawalID,
		Status:       status,
		Amount:       amount,
		Refunded:     refunded,
		AdminID:      adminID,
	}
}

type TransferCreated struct {
	Envelope
	TransferID  uuid.UUID       `json:"transferId"`
	Kind        string          `json:"kind"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	RecipientID *uuid.UUID      `json:"recipientId,omitempty"`
}

func (TransferCreated) Type() string { return TypeTransferCreated }

func NewTransferCreated(
	senderID, transferID uuid.UUID,
	recipientID *uuid.UUID,
	reference, kind, status string,
	amount, fee decimal.Decimal,
) TransferCreated {
	return TransferCreated{
		Envelope:    newEnvelope(senderID, reference),
		TransferID:  transferID,
		Kind:        kind,
		Status:      status,
		Amount:      amount,
		Fee:         fee,
		RecipientID: recipientID,
	}
}

type TransferVerified struct {
	Envelope
	TransferID uuid.UUID `json:"transferId"`
}

func (TransferVerified) Type() string { return TypeTransferVerified }

func NewTransferVerified(senderID, transferID uuid.UUID, reference string) TransferVerified {
	return TransferVerified{Envelope: newEnvelope(senderID, reference), TransferID: transferID}
}

type TransferProcessed struct {
	Envelope
	TransferID uuid.UUID       `json:"transferId"`
	Status     string          `json:"status"`
	Refunded   decimal.Decimal `json:"refunded"`
	ActorID    uuid.UUID       `json:"actorId"`
}

func (TransferProcessed) Type() string { return TypeTransferProcessed }

func NewTransferProcessed(
	senderID, transferID, actorID uuid.UUID,
	reference, status string,
	refunded decimal.Decimal,
) TransferProcessed {
	return TransferProcessed{
		Envelope:   newEnvelope(senderID, reference),
		TransferID: transferID,
		Status:     status,
		Refunded:   refunded,
		ActorID:    actorID,
	}
}

// TransferCancelled is a TransferProcessed raised by the sender.
type TransferCancelled struct {
	TransferProcessed
}

func (TransferCancelled) Type() string { return TypeTransferCancelled }

type BalanceAdjusted struct {
	Envelope
	Field     string          `json:"field"`
	Direction string          `json:"direction"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
	AdminID   uuid.UUID       `json:"adminId"`
}

func (BalanceAdjusted) Type() string { return TypeBalanceAdjusted }

func NewBalanceAdjusted(
	userID, adminID uuid.UUID,
	reference, field, direction, kind string,
	amount, balance decimal.Decimal,
) BalanceAdjusted {
	return BalanceAdjusted{
		Envelope:  newEnvelope(userID, reference),
		Field:     field,
		Direction: direction,
		Kind:      kind,
		Amount:    amount,
		Balance:   balance,
		AdminID:   adminID,
	}
}

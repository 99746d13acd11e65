package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a customer account.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusDormant   Status = "dormant"
	StatusSuspended Status = "suspended"
	StatusBlocked   Status = "blocked"
	StatusPending   Status = "pending"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDormant, StatusSuspended, StatusBlocked, StatusPending:
		return true
	}
	return false
}

// KycStatus is the identity verification state of a user.
type KycStatus string

const (
	KycNotSubmitted KycStatus = "not_submitted"
	KycPending      KycStatus = "pending"
	KycApproved     KycStatus = "approved"
	KycRejected     KycStatus = "rejected"
)

func (k KycStatus) Valid() bool {
	switch k {
	case KycNotSubmitted, KycPending, KycApproved, KycRejected:
		return true
	}
	return false
}

// BalanceField selects which of the two monetary balances a posting touches.
type BalanceField string

const (
	FieldBalance        BalanceField = "balance"
	FieldBitcoinBalance BalanceField = "bitcoin_balance"
)

// Valid reports whether f names a balance column.
func (f BalanceField) Valid() bool {
	return f == FieldBalance || f == FieldBitcoinBalance
}

// User holds the account identity and the two independently mutable balances.
//
// Invariants:
//   - AccountNumber is unique and is the key used by internal transfers.
//   - Balance and BitcoinBalance are never negative.
//   - Balances change only through the ledger primitives.
type User struct {
	ID             uuid.UUID
	Email          string
	FullName       string
	AccountNumber  string
	Currency       string
	Balance        decimal.Decimal
	BitcoinBalance decimal.Decimal
	Status         Status
	KycStatus      KycStatus
	TaxCode        string
	ImfCode        string
	CotCode        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New creates an active user with zero balances.
func New(email, fullName, accountNumber string) (*User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("email cannot be empty")
	}
	if strings.TrimSpace(accountNumber) == "" {
		return nil, errors.New("account number cannot be empty")
	}
	now := time.Now().UTC()
	return &User{
		ID:             uuid.New(),
		Email:          email,
		FullName:       fullName,
		AccountNumber:  accountNumber,
		Currency:       "USD",
		Balance:        decimal.Zero,
		BitcoinBalance: decimal.Zero,
		Status:         StatusActive,
		KycStatus:      KycNotSubmitted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// BalanceOf returns the value of the given balance field.
func (u *User) BalanceOf(f BalanceField) decimal.Decimal {
	if f == FieldBitcoinBalance {
		return u.BitcoinBalance
	}
	return u.Balance
}

// SetBalanceOf overwrites the given balance field. Repositories use it when
// applying a guarded adjustment.
func (u *User) SetBalanceOf(f BalanceField, v decimal.Decimal) {
	if f == FieldBitcoinBalance {
		u.BitcoinBalance = v
		return
	}
	u.Balance = v
}

// Restricted reports whether the account may not initiate money movement.
func (u *User) Restricted() bool {
	return u.Status == StatusSuspended || u.Status == StatusBlocked
}

// KycApproved reports whether identity verification has been approved.
func (u *User) KycApproved() bool {
	return u.KycStatus == KycApproved
}

// Codes are the authorization codes that gate international transfers.
type Codes struct {
	Tax string
	Imf string
	Cot string
}

// AuthorizationCodes returns the codes stored on the user.
func (u *User) AuthorizationCodes() Codes {
	return Codes{Tax: u.TaxCode, Imf: u.ImfCode, Cot: u.CotCode}
}

func (u *User) String() string {
	return fmt.Sprintf("User{%s %s}", u.ID, u.AccountNumber)
}

package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
)

// Ledger and workflow errors.
var (
	// ErrInvalidAmount is returned when an amount is not positive or falls outside
	// the bounds configured on a payment method.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance is returned when a debit would drive a balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrPaymentMethodNotFound is returned when a payment method is missing or inactive.
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	// ErrRecipientNotFound is returned when an internal transfer target does not resolve to a user.
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrSelfTransfer is returned when the internal transfer recipient is the sender.
	ErrSelfTransfer = errors.New("cannot transfer to your own account")
	// ErrKycNotApproved is returned when a withdrawal is attempted without approved KYC.
	ErrKycNotApproved = errors.New("kyc verification not approved")
	// ErrAlreadyProcessed is returned when a deposit or withdrawal has already reached a terminal state.
	ErrAlreadyProcessed = errors.New("already processed")
	// ErrAlreadyTerminal is returned when a transfer has already reached a terminal state.
	ErrAlreadyTerminal = errors.New("transfer already in a terminal state")
	// ErrInvalidCode is returned when a supplied authorization code does not match.
	ErrInvalidCode = errors.New("invalid code")
	// ErrUserNotFound is returned when a ledger primitive targets an unknown user.
	ErrUserNotFound = errors.New("user not found")

	ErrDepositNotFound    = errors.New("deposit not found")
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrTransferNotFound   = errors.New("transfer not found")

	// ErrAccountRestricted is returned when a suspended or blocked user initiates an operation.
	ErrAccountRestricted = errors.New("account is restricted")
	// ErrCodesNotVerified is returned when an international transfer is settled before code verification.
	ErrCodesNotVerified = errors.New("transfer codes not verified")
	// ErrInvalidTransition is returned when a status change is not part of the workflow.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidDecision is returned when an admin decision is not accepted by the workflow.
	ErrInvalidDecision = errors.New("invalid decision")
)

// InvalidCodeError names the authorization code that failed verification.
type InvalidCodeError struct {
	Code string // TAX, IMF or COT
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("Invalid %s code", e.Code)
}

// Is reports ErrInvalidCode so callers can match the kind with errors.Is.
func (e *InvalidCodeError) Is(target error) bool {
	return target == ErrInvalidCode
}

// AmountOutOfRangeError reports the bounds an amount must fall within.
type AmountOutOfRangeError struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func (e *AmountOutOfRangeError) Error() string {
	return fmt.Sprintf("Amount must be between %s and %s", e.Min.String(), e.Max.String())
}

func (e *AmountOutOfRangeError) Is(target error) bool {
	return target == ErrInvalidAmount
}

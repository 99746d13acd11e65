package account

import (
	"time"

	"github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/shopspring/decimal"
)

//revive:disable

// ProfileDTO is the caller's account and balances.
type ProfileDTO struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	FullName       string          `json:"full_name"`
	AccountNumber  string          `json:"account_number"`
	Currency       string          `json:"currency"`
	Balance        decimal.Decimal `json:"balance"`
	BitcoinBalance decimal.Decimal `json:"bitcoin_balance"`
	Status         string          `json:"status"`
	KycStatus      string          `json:"kyc_status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToProfileDTO maps a user to its API representation. Authorization codes
// are never exposed.
func ToProfileDTO(u *user.User) *ProfileDTO {
	if u == nil {
		return nil
	}
	return &ProfileDTO{
		ID:             u.ID.String(),
		Email:          u.Email,
		FullName:       u.FullName,
		AccountNumber:  u.AccountNumber,
		Currency:       u.Currency,
		Balance:        u.Balance,
		BitcoinBalance: u.BitcoinBalance,
		Status:         string(u.Status),
		KycStatus:      string(u.KycStatus),
		CreatedAt:      u.CreatedAt,
	}
}

// TransactionDTO is the API representation of a ledger record.
type TransactionDTO struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Field         string          `json:"field"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Status        string          `json:"status"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description,omitempty"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func ToTransactionDTO(tx *ledger.Transaction) *TransactionDTO {
	if tx == nil {
		return nil
	}
	return &TransactionDTO{
		ID:            tx.ID.String(),
		Type:          string(tx.Type),
		Field:         string(tx.Field),
		Amount:        tx.Amount,
		BalanceBefore: tx.BalanceBefore,
		BalanceAfter:  tx.BalanceAfter,
		Status:        string(tx.Status),
		Reference:     tx.Reference,
		Description:   tx.Description,
		Metadata:      tx.Metadata,
		CreatedAt:     tx.CreatedAt,
	}
}

// PaymentMethodDTO is the API representation of a payment method.
type PaymentMethodDTO struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	Details   map[string]string `json:"details,omitempty"`
	MinAmount decimal.Decimal   `json:"min_amount"`
	MaxAmount decimal.Decimal   `json:"max_amount"`
	Fee       decimal.Decimal   `json:"fee"`
	FeeType   string            `json:"fee_type"`
	Status    string            `json:"status"`
}

func ToPaymentMethodDTO(pm *paymentmethod.PaymentMethod) *PaymentMethodDTO {
	if pm == nil {
		return nil
	}
	return &PaymentMethodDTO{
		ID:        pm.ID.String(),
		Name:      pm.Name,
		Type:      string(pm.Type),
		Details:   pm.Details,
		MinAmount: pm.MinAmount,
		MaxAmount: pm.MaxAmount,
		Fee:       pm.Fee,
		FeeType:   string(pm.FeeType),
		Status:    string(pm.Status),
	}
}

// ToPaymentMethodDTOs maps a list of payment methods.
func ToPaymentMethodDTOs(pms []*paymentmethod.PaymentMethod) []*PaymentMethodDTO {
	out := make([]*PaymentMethodDTO, 0, len(pms))
	for _, pm := range pms {
		out = append(out, ToPaymentMethodDTO(pm))
	}
	return out
}

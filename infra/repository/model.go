package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is the users row. Balances are only written through AdjustBalance.
type User struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Email          string          `gorm:"uniqueIndex;not null;size:255"`
	FullName       string          `gorm:"size:255"`
	AccountNumber  string          `gorm:"uniqueIndex;not null;size:32"`
	Currency       string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Balance        decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	BitcoinBalance decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	Status         string          `gorm:"size:16;not null;index"`
	KycStatus      string          `gorm:"size:16;not null"`
	TaxCode        string          `gorm:"size:64"`
	ImfCode        string          `gorm:"size:64"`
	CotCode        string          `gorm:"size:64"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (User) TableName() string { return "users" }

// Transaction is the transactions row: one immutable ledger posting.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          string          `gorm:"size:32;not null;index"`
	Field         string          `gorm:"size:32;not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Status        string          `gorm:"size:16;not null;index"`
	Reference     string          `gorm:"size:64;not null;index"`
	Description   string          `gorm:"size:512"`
	Metadata      map[string]any  `gorm:"type:jsonb;serializer:json"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time
}

func (Transaction) TableName() string { return "transactions" }

// Deposit is the deposits row.
type Deposit struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	PaymentMethodID uuid.UUID       `gorm:"type:uuid;not null"`
	Status          string          `gorm:"size:16;not null;index"`
	Reference       string          `gorm:"size:64;not null;uniqueIndex"`
	ProofImage      string          `gorm:"size:512"`
	AdminNote       string          `gorm:"size:512"`
	ProcessedBy     *uuid.UUID      `gorm:"type:uuid"`
	ProcessedAt     *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

func (Deposit) TableName() string { return "deposits" }

// Withdrawal is the withdrawals row.
type Withdrawal struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal   `gorm:"type:numeric(20,8);not null"`
	Fee             decimal.Decimal   `gorm:"type:numeric(20,8);not null"`
	NetAmount       decimal.Decimal   `gorm:"type:numeric(20,8);not null"`
	PaymentMethodID uuid.UUID         `gorm:"type:uuid;not null"`
	PaymentDetails  map[string]string `gorm:"type:jsonb;serializer:json"`
	Status          string            `gorm:"size:16;not null;index"`
	Reference       string            `gorm:"size:64;not null;uniqueIndex"`
	AdminNote       string            `gorm:"size:512"`
	ProcessedBy     *uuid.UUID        `gorm:"type:uuid"`
	ProcessedAt     *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

func (Withdrawal) TableName() string { return "withdrawals" }

// RecipientDetails is embedded into transfers with the recipient_ prefix.
type RecipientDetails struct {
	AccountNumber string `gorm:"size:64"`
	AccountName   string `gorm:"size:255"`
	BankName      string `gorm:"size:255"`
	BankCode      string `gorm:"size:64"`
	Country       string `gorm:"size:64"`
	SwiftCode     string `gorm:"size:32"`
	RoutingNumber string `gorm:"size:64"`
}

// Transfer is the transfers row.
type Transfer struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	SenderID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	RecipientID      *uuid.UUID       `gorm:"type:uuid;index"`
	RecipientDetails RecipientDetails `gorm:"embedded;embeddedPrefix:recipient_"`
	Type             string           `gorm:"size:16;not null;index"`
	Amount           decimal.Decimal  `gorm:"type:numeric(20,8);not null"`
	Fee              decimal.Decimal  `gorm:"type:numeric(20,8);not null"`
	TotalAmount      decimal.Decimal  `gorm:"type:numeric(20,8);not null"`
	Status           string           `gorm:"size:16;not null;index"`
	Reference        string           `gorm:"size:64;not null;uniqueIndex"`
	Description      string           `gorm:"size:512"`
	RequiresTax      bool
	RequiresImf      bool
	RequiresCot      bool
	CodesVerified    bool
	Metadata         map[string]any `gorm:"type:jsonb;serializer:json"`
	AdminNote        string         `gorm:"size:512"`
	ProcessedBy      *uuid.UUID     `gorm:"type:uuid"`
	ProcessedAt      *time.Time
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

func (Transfer) TableName() string { return "transfers" }

// PaymentMethod is the payment_methods row.
type PaymentMethod struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name      string            `gorm:"size:128;not null"`
	Type      string            `gorm:"size:32;not null"`
	Details   map[string]string `gorm:"type:jsonb;serializer:json"`
	MinAmount decimal.Decimal   `gorm:"type:numeric(20,8);not null"`
	MaxAmount decimal.Decimal   `gorm:"type:numeric(20,8);not null"`
	Fee       decimal.Decimal   `gorm:"type:numeric(20,8);not null;default:0"`
	FeeType   string            `gorm:"size:16;not null"`
	Status    string            `gorm:"size:16;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PaymentMethod) TableName() string { return "payment_methods" }

package repository

import (
	"context"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/deposit"
	"github.com/amirasaad/bankcore/pkg/domain/transfer"
	"github.com/amirasaad/bankcore/pkg/domain/withdrawal"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	depositListing = listing{
		userCols:   []string{"user_id"},
		searchCols: []string{"reference", "admin_note"},
	}
	withdrawalListing = listing{
		userCols:   []string{"user_id"},
		searchCols: []string{"reference", "admin_note"},
	}
	transferListing = listing{
		userCols:   []string{"sender_id", "recipient_id"},
		typeCol:    "type",
		searchCols: []string{"reference", "description", "admin_note", "recipient_account_name", "recipient_account_number"},
	}
)

// processedColumns are the columns a workflow transition writes.
var processedColumns = []string{"status", "admin_note", "processed_by", "processed_at", "updated_at"}

// transition updates cols of m only while the stored status equals from.
func transition(ctx context.Context, db *gorm.DB, m any, from workflow.Status, cols []string) (bool, error) {
	res := db.WithContext(ctx).Model(m).Where("status = ?", string(from)).Select(cols).Updates(m)
	if res.Error != nil {
		return false, MapGormErrorToDomain(res.Error)
	}
	return res.RowsAffected == 1, nil
}

type depositRepository struct {
	db *gorm.DB
}

// NewDepositRepository creates a deposit repository on db.
func NewDepositRepository(db *gorm.DB) repository.DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) Create(ctx context.Context, d *deposit.Deposit) error {
	m := mapDepositToModel(d)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *depositRepository) Get(ctx context.Context, id uuid.UUID) (*deposit.Deposit, error) {
	var m Deposit
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrDepositNotFound)
	}
	return mapDepositToDomain(&m), nil
}

func (r *depositRepository) Transition(ctx context.Context, d *deposit.Deposit, from workflow.Status) (bool, error) {
	m := mapDepositToModel(d)
	return transition(ctx, r.db, &m, from, processedColumns)
}

func (r *depositRepository) List(ctx context.Context, f dto.ListFilter) ([]*deposit.Deposit, int64, error) {
	rows, total, err := list[Deposit](r.db.WithContext(ctx), depositListing, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*deposit.Deposit, 0, len(rows))
	for i := range rows {
		out = append(out, mapDepositToDomain(&rows[i]))
	}
	return out, total, nil
}

type withdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a withdrawal repository on db.
func NewWithdrawalRepository(db *gorm.DB) repository.WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

func (r *withdrawalRepository) Create(ctx context.Context, w *withdrawal.Withdrawal) error {
	m := mapWithdrawalToModel(w)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *withdrawalRepository) Get(ctx context.Context, id uuid.UUID) (*withdrawal.Withdrawal, error) {
	var m Withdrawal
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrWithdrawalNotFound)
	}
	return mapWithdrawalToDomain(&m), nil
}

func (r *withdrawalRepository) Transition(
	ctx context.Context,
	w *withdrawal.Withdrawal,
	from workflow.Status,
) (bool, error) {
	m := mapWithdrawalToModel(w)
	return transition(ctx, r.db, &m, from, processedColumns)
}

func (r *withdrawalRepository) List(ctx context.Context, f dto.ListFilter) ([]*withdrawal.Withdrawal, int64, error) {
	rows, total, err := list[Withdrawal](r.db.WithContext(ctx), withdrawalListing, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*withdrawal.Withdrawal, 0, len(rows))
	for i := range rows {
		out = append(out, mapWithdrawalToDomain(&rows[i]))
	}
	return out, total, nil
}

type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a transfer repository on db.
func NewTransferRepository(db *gorm.DB) repository.TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, t *transfer.Transfer) error {
	m := mapTransferToModel(t)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *transferRepository) Get(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	var m Transfer
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrTransferNotFound)
	}
	return mapTransferToDomain(&m), nil
}

func (r *transferRepository) Transition(ctx context.Context, t *transfer.Transfer, from workflow.Status) (bool, error) {
	m := mapTransferToModel(t)
	cols := append([]string{"codes_verified", "metadata"}, processedColumns...)
	return transition(ctx, r.db, &m, from, cols)
}

func (r *transferRepository) List(ctx context.Context, f dto.ListFilter) ([]*transfer.Transfer, int64, error) {
	rows, total, err := list[Transfer](r.db.WithContext(ctx), transferListing, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*transfer.Transfer, 0, len(rows))
	for i := range rows {
		out = append(out, mapTransferToDomain(&rows[i]))
	}
	return out, total, nil
}

func mapDepositToModel(d *deposit.Deposit) Deposit {
	return Deposit{
		ID:              d.ID,
		UserID:          d.UserID,
		Amount:          d.Amount,
		PaymentMethodID: d.PaymentMethodID,
		Status:          string(d.Status),
		Reference:       d.Reference,
		ProofImage:      d.ProofImage,
		AdminNote:       d.AdminNote,
		ProcessedBy:     d.ProcessedBy,
		ProcessedAt:     d.ProcessedAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func mapDepositToDomain(m *Deposit) *deposit.Deposit {
	return &deposit.Deposit{
		ID:              m.ID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		PaymentMethodID: m.PaymentMethodID,
		Status:          workflow.Status(m.Status),
		Reference:       m.Reference,
		ProofImage:      m.ProofImage,
		AdminNote:       m.AdminNote,
		ProcessedBy:     m.ProcessedBy,
		ProcessedAt:     m.ProcessedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func mapWithdrawalToModel(w *withdrawal.Withdrawal) Withdrawal {
	return Withdrawal{
		ID:              w.ID,
		UserID:          w.UserID,
		Amount:          w.Amount,
		Fee:             w.Fee,
		NetAmount:       w.NetAmount,
		PaymentMethodID: w.PaymentMethodID,
		PaymentDetails:  w.PaymentDetails,
		Status:          string(w.Status),
		Reference:       w.Reference,
		AdminNote:       w.AdminNote,
		ProcessedBy:     w.ProcessedBy,
		ProcessedAt:     w.ProcessedAt,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

func mapWithdrawalToDomain(m *Withdrawal) *withdrawal.Withdrawal {
	return &withdrawal.Withdrawal{
		ID:              m.ID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		Fee:             m.Fee,
		NetAmount:       m.NetAmount,
		PaymentMethodID: m.PaymentMethodID,
		PaymentDetails:  m.PaymentDetails,
		Status:          workflow.Status(m.Status),
		Reference:       m.Reference,
		AdminNote:       m.AdminNote,
		ProcessedBy:     m.ProcessedBy,
		ProcessedAt:     m.ProcessedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func mapTransferToModel(t *transfer.Transfer) Transfer {
	d := t.RecipientDetails
	return Transfer{
		ID:          t.ID,
		SenderID:    t.SenderID,
		RecipientID: t.RecipientID,
		RecipientDetails: RecipientDetails{
			AccountNumber: d.AccountNumber,
			AccountName:   d.AccountName,
			BankName:      d.BankName,
			BankCode:      d.BankCode,
			Country:       d.Country,
			SwiftCode:     d.SwiftCode,
			RoutingNumber: d.RoutingNumber,
		},
		Type:          string(t.Type),
		Amount:        t.Amount,
		Fee:           t.Fee,
		TotalAmount:   t.TotalAmount,
		Status:        string(t.Status),
		Reference:     t.Reference,
		Description:   t.Description,
		RequiresTax:   t.Requires.Tax,
		RequiresImf:   t.Requires.Imf,
		RequiresCot:   t.Requires.Cot,
		CodesVerified: t.CodesVerified,
		Metadata:      t.Metadata,
		AdminNote:     t.AdminNote,
		ProcessedBy:   t.ProcessedBy,
		ProcessedAt:   t.ProcessedAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func mapTransferToDomain(m *Transfer) *transfer.Transfer {
	d := m.RecipientDetails
	return &transfer.Transfer{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		RecipientDetails: transfer.RecipientDetails{
			AccountNumber: d.AccountNumber,
			AccountName:   d.AccountName,
			BankName:      d.BankName,
			BankCode:      d.BankCode,
			Country:       d.Country,
			SwiftCode:     d.SwiftCode,
			RoutingNumber: d.RoutingNumber,
		},
		Type:          transfer.Type(m.Type),
		Amount:        m.Amount,
		Fee:           m.Fee,
		TotalAmount:   m.TotalAmount,
		Status:        workflow.Status(m.Status),
		Reference:     m.Reference,
		Description:   m.Description,
		Requires:      transfer.Requirements{Tax: m.RequiresTax, Imf: m.RequiresImf, Cot: m.RequiresCot},
		CodesVerified: m.CodesVerified,
		Metadata:      m.Metadata,
		AdminNote:     m.AdminNote,
		ProcessedBy:   m.ProcessedBy,
		ProcessedAt:   m.ProcessedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

package repository

import (
	"context"

	"github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var transactionListing = listing{
	userCols:   []string{"user_id"},
	typeCol:    "type",
	searchCols: []string{"reference", "description"},
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a ledger record repository on db.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	m := mapTransactionToModel(tx)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapTransactionToDomain(&m), nil
}

func (r *transactionRepository) SetStatus(
	ctx context.Context,
	userID uuid.UUID,
	reference string,
	from, to ledger.Status,
) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("user_id = ? AND reference = ? AND status = ?", userID, reference, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return 0, MapGormErrorToDomain(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *transactionRepository) ListByReference(ctx context.Context, reference string) ([]*ledger.Transaction, error) {
	var rows []Transaction
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*ledger.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, mapTransactionToDomain(&rows[i]))
	}
	return out, nil
}

func (r *transactionRepository) List(ctx context.Context, f dto.ListFilter) ([]*ledger.Transaction, int64, error) {
	rows, total, err := list[Transaction](r.db.WithContext(ctx), transactionListing, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*ledger.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, mapTransactionToDomain(&rows[i]))
	}
	return out, total, nil
}

func mapTransactionToModel(tx *ledger.Transaction) Transaction {
	return Transaction{
		ID:            tx.ID,
		UserID:        tx.UserID,
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
		UpdatedAt:     tx.UpdatedAt,
	}
}

func mapTransactionToDomain(m *Transaction) *ledger.Transaction {
	return &ledger.Transaction{
		ID:            m.ID,
		UserID:        m.UserID,
		Type:          ledger.Type(m.Type),
		Field:         user.BalanceField(m.Field),
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Status:        ledger.Status(m.Status),
		Reference:     m.Reference,
		Description:   m.Description,
		Metadata:      m.Metadata,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}


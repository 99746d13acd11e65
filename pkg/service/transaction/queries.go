package transaction

import (
	"context"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/deposit"
	"github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/transfer"
	"github.com/amirasaad/bankcore/pkg/domain/withdrawal"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
)

// listPage normalizes f and fetches one page through fetch.
func listPage[T any](
	ctx context.Context,
	s *Service,
	f dto.ListFilter,
	fetch func(context.Context, repository.UnitOfWork, dto.ListFilter) ([]*T, int64, error),
) (dto.Page[*T], error) {
	f = f.Normalize(s.pages)
	items, total, err := fetch(ctx, s.uow, f)
	if err != nil {
		return dto.Page[*T]{}, err
	}
	return dto.NewPage(items, total, f), nil
}

func listDeposits(ctx context.Context, uow repository.UnitOfWork, f dto.ListFilter) ([]*deposit.Deposit, int64, error) {
	repo, err := uow.DepositRepository()
	if err != nil {
		return nil, 0, err
	}
	return repo.List(ctx, f)
}

func listWithdrawals(
	ctx context.Context,
	uow repository.UnitOfWork,
	f dto.ListFilter,
) ([]*withdrawal.Withdrawal, int64, error) {
	repo, err := uow.WithdrawalRepository()
	if err != nil {
		return nil, 0, err
	}
	return repo.List(ctx, f)
}

func listTransfers(ctx context.Context, uow repository.UnitOfWork, f dto.ListFilter) ([]*transfer.Transfer, int64, error) {
	repo, err := uow.TransferRepository()
	if err != nil {
		return nil, 0, err
	}
	return repo.List(ctx, f)
}

func listTransactions(
	ctx context.Context,
	uow repository.UnitOfWork,
	f dto.ListFilter,
) ([]*ledger.Transaction, int64, error) {
	repo, err := uow.TransactionRepository()
	if err != nil {
		return nil, 0, err
	}
	return repo.List(ctx, f)
}

// ListUserDeposits returns the user's deposits.
func (s *Service) ListUserDeposits(ctx context.Context, userID uuid.UUID, f dto.ListFilter) (dto.Page[*deposit.Deposit], error) {
	return listPage(ctx, s, f.ForUser(userID), listDeposits)
}

// ListDeposits returns deposits of all users.
func (s *Service) ListDeposits(ctx context.Context, f dto.ListFilter) (dto.Page[*deposit.Deposit], error) {
	return listPage(ctx, s, f, listDeposits)
}

func (s *Service) ListUserWithdrawals(
	ctx context.Context,
	userID uuid.UUID,
	f dto.ListFilter,
) (dto.Page[*withdrawal.Withdrawal], error) {
	return listPage(ctx, s, f.ForUser(userID), listWithdrawals)
}

func (s *Service) ListWithdrawals(ctx context.Context, f dto.ListFilter) (dto.Page[*withdrawal.Withdrawal], error) {
	return listPage(ctx, s, f, listWithdrawals)
}

// ListUserTransfers returns transfers the user sent or received.
func (s *Service) ListUserTransfers(
	ctx context.Context,
	userID uuid.UUID,
	f dto.ListFilter,
) (dto.Page[*transfer.Transfer], error) {
	return listPage(ctx, s, f.ForUser(userID), listTransfers)
}

func (s *Service) ListTransfers(ctx context.Context, f dto.ListFilter) (dto.Page[*transfer.Transfer], error) {
	return listPage(ctx, s, f, listTransfers)
}

// ListUserTransactions returns the user's ledger history.
func (s *Service) ListUserTransactions(
	ctx context.Context,
	userID uuid.UUID,
	f dto.ListFilter,
) (dto.Page[*ledger.Transaction], error) {
	return listPage(ctx, s, f.ForUser(userID), listTransactions)
}

func (s *Service) GetDeposit(ctx context.Context, id uuid.UUID) (*deposit.Deposit, error) {
	repo, err := s.uow.DepositRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// GetUserDeposit hides deposits the user does not own.
func (s *Service) GetUserDeposit(ctx context.Context, userID, id uuid.UUID) (*deposit.Deposit, error) {
	d, err := s.GetDeposit(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, domain.ErrDepositNotFound
	}
	return d, nil
}

func (s *Service) GetWithdrawal(ctx context.Context, id uuid.UUID) (*withdrawal.Withdrawal, error) {
	repo, err := s.uow.WithdrawalRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

func (s *Service) GetUserWithdrawal(ctx context.Context, userID, id uuid.UUID) (*withdrawal.Withdrawal, error) {
	w, err := s.GetWithdrawal(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.UserID != userID {
		return nil, domain.ErrWithdrawalNotFound
	}
	return w, nil
}

func (s *Service) GetTransfer(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	repo, err := s.uow.TransferRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// GetUserTransfer returns the transfer if the user sent or received it.
func (s *Service) GetUserTransfer(ctx context.Context, userID, id uuid.UUID) (*transfer.Transfer, error) {
	t, err := s.GetTransfer(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.SenderID != userID && (t.RecipientID == nil || *t.RecipientID != userID) {
		return nil, domain.ErrTransferNotFound
	}
	return t, nil
}

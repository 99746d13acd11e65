package transaction

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/events"
	"github.com/amirasaad/bankcore/pkg/domain/transfer"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/repository"
	"github.com/google/uuid"
)

// Code names as reported by domain.InvalidCodeError.
const (
	CodeTax = "TAX"
	CodeImf = "IMF"
	CodeCot = "COT"
)

// VerifyTransferCodes checks the authorization codes of a pending
// international transfer against the sender's stored codes, in the order
// TAX, IMF, COT. A code is checked when the transfer requires it or the
// caller supplied it. On success the transfer moves to processing.
func (s *Service) VerifyTransferCodes(
	ctx context.Context,
	transferID uuid.UUID,
	userID uuid.UUID,
	codes user.Codes,
) (t *transfer.Transfer, err error) {
	started := time.Now()
	defer func() { s.observe(workflowTransfer, "verify", started, err) }()

	logger := s.logger.With("transferID", transferID, "userID", userID)
	logger.Info("VerifyTransferCodes started")

	var verified []string
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransferRepository()
		if err != nil {
			return err
		}
		t, err = repo.Get(ctx, transferID)
		if err != nil {
			return err
		}
		if t.SenderID != userID {
			return domain.ErrTransferNotFound
		}
		if t.Type != transfer.TypeInternational {
			return fmt.Errorf("code verification applies to international transfers: %w", domain.ErrValidation)
		}
		if err := workflow.AssertNotTerminal(t, domain.ErrAlreadyTerminal); err != nil {
			return err
		}
		if t.Status != workflow.StatusPending || t.CodesVerified {
			return domain.ErrAlreadyProcessed
		}

		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		sender, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		if verified, err = checkCodes(t.Requires, codes, sender.AuthorizationCodes()); err != nil {
			return err
		}

		from := t.Status
		if err := transfer.Machine.Transition(from, workflow.StatusProcessing); err != nil {
			return err
		}
		now := time.Now().UTC()
		t.CodesVerified = true
		t.Status = workflow.StatusProcessing
		t.UpdatedAt = now
		if t.Metadata == nil {
			t.Metadata = map[string]any{}
		}
		t.Metadata[transfer.MetaCodesVerifiedAt] = now.Format(time.RFC3339)
		t.Metadata[transfer.MetaVerifiedCodes] = verified
		ok, err := repo.Transition(ctx, t, from)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyProcessed
		}
		return nil
	})
	if err != nil {
		logger.Warn("VerifyTransferCodes failed", "error", err)
		return nil, err
	}

	logger.Info("VerifyTransferCodes successful", "reference", t.Reference, "verified", verified)
	s.emit(ctx, logger, events.NewTransferVerified(userID, t.ID, t.Reference))
	return t, nil
}

// checkCodes returns the names of the verified codes or an
// *domain.InvalidCodeError naming the first mismatch.
func checkCodes(req transfer.Requirements, supplied, stored user.Codes) ([]string, error) {
	checks := []struct {
		name     string
		required bool
		supplied string
		stored   string
	}{
		{CodeTax, req.Tax, supplied.Tax, stored.Tax},
		{CodeImf, req.Imf, supplied.Imf, stored.Imf},
		{CodeCot, req.Cot, supplied.Cot, stored.Cot},
	}
	verified := make([]string, 0, len(checks))
	for _, c := range checks {
		if !c.required && c.supplied == "" {
			continue
		}
		if !codeMatches(c.supplied, c.stored) {
			return nil, &domain.InvalidCodeError{Code: c.name}
		}
		verified = append(verified, c.name)
	}
	return verified, nil
}

// codeMatches compares in constant time. An unset stored code never matches.
func codeMatches(supplied, stored string) bool {
	if stored == "" || supplied == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(stored)) == 1
}

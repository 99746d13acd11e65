package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/transfer"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/service/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyTransferCodes_WrongImfKeepsTransferUnverified(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sender := f.user(t, "5000", withCodes("TAX-1", "IMF-1", ""))
	tr, err := f.svc.CreateExternalTransfer(ctx, sender.ID, transfer.TypeInternational, internationalDetails(), dec("1000"), "")
	require.NoError(t, err)

	_, err = f.svc.VerifyTransferCodes(ctx, tr.ID, sender.ID, user.Codes{Tax: "TAX-1", Imf: "wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCode)
	var codeErr *domain.InvalidCodeError
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, transaction.CodeImf, codeErr.Code)
	assert.Contains(t, err.Error(), "IMF")

	stored, err := f.svc.GetTransfer(ctx, tr.ID)
	require.NoError(t, err)
	assert.False(t, stored.CodesVerified)
	assert.Equal(t, workflow.StatusPending, stored.Status)
}

func TestVerifyTransferCodes_ChecksInOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sender := f.user(t, "5000", withCodes("TAX-1", "IMF-1", ""))
	tr, err := f.svc.CreateExternalTransfer(ctx, sender.ID, transfer.TypeInternational, internationalDetails(), dec("100"), "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		codes user.Codes
		want  string
	}{
		{"missing tax", user.Codes{Imf: "IMF-1"}, transaction.CodeTax},
		{"both wrong", user.Codes{Tax: "x", Imf: "y"}, transaction.CodeTax},
		{"missing imf", user.Codes{Tax: "TAX-1"}, transaction.CodeImf},
		{"supplied cot never stored", user.Codes{Tax: "TAX-1", Imf: "IMF-1", Cot: "COT-1"}, transaction.CodeCot},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.VerifyTransferCodes(ctx, tr.ID, sender.ID, tc.codes)
			var codeErr *domain.InvalidCodeError
			require.True(t, errors.As(err, &codeErr), "got %v", err)
			assert.Equal(t, tc.want, codeErr.Code)
		})
	}
}

func TestVerifyTransferCodes_SuccessThenComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sender := f.user(t, "5000", withCodes("TAX-1", "IMF-1", ""))
	tr, err := f.svc.CreateExternalTransfer(ctx, sender.ID, transfer.TypeInternational, internationalDetails(), dec("1000"), "")
	require.NoError(t, err)

	tr, err = f.svc.VerifyTransferCodes(ctx, tr.ID, sender.ID, user.Codes{Tax: "TAX-1", Imf: "IMF-1"})
	require.NoError(t, err)
	assert.True(t, tr.CodesVerified)
	assert.Equal(t, workflow.StatusProcessing, tr.Status)
	assert.Equal(t, []string{transaction.CodeTax, transaction.CodeImf}, tr.Metadata[transfer.MetaVerifiedCodes])
	assert.NotEmpty(t, tr.Metadata[transfer.MetaCodesVerifiedAt])

	_, err = f.svc.VerifyTransferCodes(ctx, tr.ID, sender.ID, user.Codes{Tax: "TAX-1", Imf: "IMF-1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	_, err = f.svc.CancelTransfer(ctx, tr.ID, sender.ID)
	assert.Error(t, err, "only pending transfers can be cancelled")

	tr, err = f.svc.ProcessTransfer(ctx, tr.ID, workflow.StatusCompleted, f.admin, "")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusCompleted, tr.Status)
	assert.True(t, f.balance(t, sender.ID).Equal(dec("3980")))
	assert.Equal(t, ledger.StatusCompleted, f.records(t, tr.Reference)[0].Status)

	_, err = f.svc.VerifyTransferCodes(ctx, tr.ID, sender.ID, user.Codes{Tax: "TAX-1", Imf: "IMF-1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyTerminal)
}

func TestVerifyTransferCodes_CotRequiredByConfig(t *testing.T) {
	f := newFixture(t, func(cfg *config.App) { cfg.Transfer.RequireCotCode = true })
	ctx := context.Background()
	sender := f.user(t, "5000", withCodes("TAX-1", "IMF-1", "COT-1"))
	tr, err := f.svc.CreateExternalTransfer(ctx, sender.ID, transfer.TypeInternational, internationalDetails(), dec("100"), "")
	require.NoError(t, err)
	assert.True(t, tr.Requires.Cot)

	_, err = f.svc.VerifyTransferCodes(ctx, tr.ID, sender.ID, user.Codes{Tax: "TAX-1", Imf: "IMF-1"})
	var codeErr *domain.InvalidCodeError
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, transaction.CodeCot, codeErr.Code)

	tr, err = f.svc.VerifyTransferCodes(ctx, tr.ID, sender.ID, user.Codes{Tax: "TAX-1", Imf: "IMF-1", Cot: "COT-1"})
	require.NoError(t, err)
	assert.True(t, tr.CodesVerified)
}

func TestVerifyTransferCodes_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sender := f.user(t, "5000", withCodes("TAX-1", "IMF-1", ""))
	stranger := f.user(t, "0", withCodes("TAX-1", "IMF-1", ""))
	codes := user.Codes{Tax: "TAX-1", Imf: "IMF-1"}

	local, err := f.svc.CreateExternalTransfer(ctx, sender.ID, transfer.TypeLocal, localDetails(), dec("100"), "")
	require.NoError(t, err)
	_, err = f.svc.VerifyTransferCodes(ctx, local.ID, sender.ID, codes)
	assert.ErrorIs(t, err, domain.ErrValidation)

	intl, err := f.svc.CreateExternalTransfer(ctx, sender.ID, transfer.TypeInternational, internationalDetails(), dec("100"), "")
	require.NoError(t, err)
	_, err = f.svc.VerifyTransferCodes(ctx, intl.ID, stranger.ID, codes)
	assert.ErrorIs(t, err, domain.ErrTransferNotFound)

	unset := f.user(t, "5000")
	pending, err := f.svc.CreateExternalTransfer(ctx, unset.ID, transfer.TypeInternational, internationalDetails(), dec("100"), "")
	require.NoError(t, err)
	_, err = f.svc.VerifyTransferCodes(ctx, pending.ID, unset.ID, user.Codes{})
	assert.ErrorIs(t, err, domain.ErrInvalidCode, "unset stored codes never match")
}

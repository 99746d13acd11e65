package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_PairedUpAndDown(t *testing.T) {
	names, err := fs.Glob(files, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups[strings.TrimSuffix(n, ".up.sql")] = true
		case strings.HasSuffix(n, ".down.sql"):
			downs[strings.TrimSuffix(n, ".down.sql")] = true
		}
	}
	assert.Equal(t, ups, downs)
}

func TestMigrations_SourceParses(t *testing.T) {
	src, err := iofs.New(files, ".")
	require.NoError(t, err)
	defer src.Close() //nolint:errcheck

	v, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
}

func TestMigrations_BalanceGuard(t *testing.T) {
	b, err := fs.ReadFile(files, "000001_create_users.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "CHECK (balance >= 0)")
}

func TestMigrations_KycDefaultMatchesNewUsers(t *testing.T) {
	b, err := fs.ReadFile(files, "000001_create_users.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "kyc_status VARCHAR(16) NOT NULL DEFAULT '"+string(user.KycNotSubmitted)+"'")
}

package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()
	other := errors.New("connection refused")

	tests := []struct {
		name  string
		input error
		want  error
	}{
		{"duplicate key", gorm.ErrDuplicatedKey, domain.ErrAlreadyExists},
		{"record not found", gorm.ErrRecordNotFound, domain.ErrNotFound},
		{"check constraint", gorm.ErrCheckConstraintViolated, domain.ErrInsufficientBalance},
		{"joined duplicate key", errors.Join(errors.New("outer"), gorm.ErrDuplicatedKey), domain.ErrAlreadyExists},
		{"wrapped not found", fmt.Errorf("load user: %w", gorm.ErrRecordNotFound), domain.ErrNotFound},
		{"unmapped", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapGormErrorToDomain(tt.input), tt.want)
		})
	}
	assert.NoError(t, MapGormErrorToDomain(nil))
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, notFound(gorm.ErrRecordNotFound, domain.ErrDepositNotFound), domain.ErrDepositNotFound)
	assert.ErrorIs(t, notFound(gorm.ErrDuplicatedKey, domain.ErrDepositNotFound), domain.ErrAlreadyExists)
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	assert.NoError(t, WrapError(func() error { return nil }))
	assert.ErrorIs(t, WrapError(func() error { return gorm.ErrDuplicatedKey }), domain.ErrAlreadyExists)

	defer func() {
		assert.NotNil(t, recover(), "panics propagate")
	}()
	_ = WrapError(func() error { panic("boom") })
}

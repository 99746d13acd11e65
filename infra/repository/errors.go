package repository

import (
	"errors"

	"github.com/amirasaad/bankcore/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors, walking the
// wrapped chain. Errors without a mapping are returned unchanged.
//
// The check-constraint mapping relies on gorm.Config.TranslateError and the
// non-negative balance constraints of the users table.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return domain.ErrInsufficientBalance
	}
	return err
}

// notFound maps a missing row to the entity specific sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return MapGormErrorToDomain(err)
}

// WrapError runs a GORM operation and maps its error.
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(m).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}

package repository

import (
	"strings"

	"github.com/amirasaad/bankcore/pkg/dto"
	"gorm.io/gorm"
)

// listing names the columns a ListFilter applies to on one table.
type listing struct {
	userCols   []string
	typeCol    string
	searchCols []string
}

// where applies the filter predicates of f.
func (l listing) where(f dto.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.UserID != nil && len(l.userCols) > 0 {
			conds := make([]string, len(l.userCols))
			args := make([]any, len(l.userCols))
			for i, c := range l.userCols {
				conds[i] = c + " = ?"
				args[i] = *f.UserID
			}
			db = db.Where(strings.Join(conds, " OR "), args...)
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.Type != "" && l.typeCol != "" {
			db = db.Where(l.typeCol+" = ?", f.Type)
		}
		if f.From != nil {
			db = db.Where("created_at >= ?", *f.From)
		}
		if f.To != nil {
			db = db.Where("created_at <= ?", *f.To)
		}
		if q := strings.TrimSpace(f.Search); q != "" && len(l.searchCols) > 0 {
			conds := make([]string, len(l.searchCols))
			args := make([]any, len(l.searchCols))
			pattern := "%" + q + "%"
			for i, c := range l.searchCols {
				conds[i] = c + " ILIKE ?"
				args[i] = pattern
			}
			db = db.Where(strings.Join(conds, " OR "), args...)
		}
		return db
	}
}

// page orders and limits the query.
func page(f dto.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		order := "created_at DESC"
		if f.Sort == dto.SortOldest {
			order = "created_at ASC"
		}
		db = db.Order(order)
		if f.Limit > 0 {
			db = db.Offset(f.Offset()).Limit(f.Limit)
		}
		return db
	}
}

// list counts the matching rows of M and loads one page of them.
func list[M any](db *gorm.DB, l listing, f dto.ListFilter) ([]M, int64, error) {
	var total int64
	if err := db.Model(new(M)).Scopes(l.where(f)).Count(&total).Error; err != nil {
		return nil, 0, MapGormErrorToDomain(err)
	}
	var rows []M
	if err := db.Scopes(l.where(f), page(f)).Find(&rows).Error; err != nil {
		return nil, 0, MapGormErrorToDomain(err)
	}
	return rows, total, nil
}

// Package repository maps domain rows to the relational store through gorm.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// PageSize is the fixed number of rows per page.
const PageSize = 10

// ErrNotFound is returned by lookups that matched no row.
var ErrNotFound = errors.New("record not found")

// Query narrows a FindAll call. Page 0 means no pagination.
type Query struct {
	Filter string
	Page   int
}

func (q Query) Paginated() bool {
	return q.Page > 0
}

// Offset is the number of rows skipped for the requested page.
func (q Query) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * PageSize
}

func paginate(q Query) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !q.Paginated() {
			return db
		}
		return db.Offset(q.Offset()).Limit(PageSize)
	}
}

// containsFold is a case-insensitive substring match on column.
func containsFold(column, filter string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter == "" {
			return db
		}
		return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(filter)+"%")
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

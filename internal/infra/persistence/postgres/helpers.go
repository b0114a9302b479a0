package postgres

import (
	"coderr/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID returns a time-ordered UUID for a new row.
func newID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// paginate applies the page window to query. A zero limit returns every row.
func paginate(query *gorm.DB, page repository.Page) *gorm.DB {
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}

	return query
}

// orderClause renders ordering against column, falling back when ordering is nil.
func orderClause(ordering *repository.Ordering, columns map[string]string, fallback string) string {
	if ordering == nil {
		return fallback
	}

	column, ok := columns[ordering.Field]
	if !ok {
		return fallback
	}
	if ordering.Descending {
		return column + " DESC"
	}

	return column + " ASC"
}

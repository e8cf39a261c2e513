package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ledgerly/backend/internal/domain/shared"
)

// applyPagination adds LIMIT/OFFSET from the filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

// applyOrder adds ORDER BY, restricted to the given sortable columns to
// keep user input out of the SQL
func applyOrder(query *gorm.DB, filter shared.Filter, sortable map[string]bool, fallback string) *gorm.DB {
	column := filter.OrderBy
	if !sortable[column] {
		column = fallback
	}
	dir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		dir = "DESC"
	}
	return query.Order(fmt.Sprintf("%s %s", column, dir))
}

// applySearch adds a case-insensitive substring match over the given columns
func applySearch(query *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + term + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}

package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dukabook/backend/internal/domain/shared"
)

// applyFilter applies search, ordering and pagination to the query.
// searchColumns are the columns matched against filter.Search with ILIKE.
func applyFilter(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	query = applyFilterWithoutPagination(query, filter, searchColumns...)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies search and ordering only, used for counts
func applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	if filter.Search != "" && len(searchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		conditions := make([]string, len(searchColumns))
		args := make([]interface{}, len(searchColumns))
		for i, col := range searchColumns {
			conditions[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	for key, value := range filter.Filters {
		if isSafeColumn(key) {
			query = query.Where(key+" = ?", value)
		}
	}

	if filter.OrderBy != "" && isSafeColumn(filter.OrderBy) {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", filter.OrderBy, dir))
	}

	return query
}

// isSafeColumn accepts plain snake_case identifiers only, anything else is
// dropped rather than interpolated into the ORDER BY clause
func isSafeColumn(col string) bool {
	if col == "" {
		return false
	}
	for _, r := range col {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}

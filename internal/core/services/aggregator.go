package services

import (
	"strings"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

// SuccessToken is the status value that marks a row as successful.
const SuccessToken = "exitoso"

// SuccessPredicate decides whether a raw status cell is a success.
type SuccessPredicate func(status string) bool

// IsSuccess is the canonical predicate: the trimmed, lower-cased status
// equals SuccessToken.
func IsSuccess(status string) bool {
	return strings.ToLower(strings.TrimSpace(status)) == SuccessToken
}

// Aggregate groups rows by groupColumn and counts a group as successful if
// any of its rows satisfies isSuccess on statusColumn. The result's Total
// is the number of distinct groups. Rows with a blank group cell belong to
// no document and are ignored.
//
// Both columns must exist; otherwise a *domain.SchemaError lists every
// missing one. The table is not modified.
func Aggregate(table *domain.Table, groupColumn, statusColumn string, isSuccess SuccessPredicate) (domain.Outcome, error) {
	if err := table.Require(groupColumn, statusColumn); err != nil {
		return domain.Outcome{}, err
	}
	groupIdx, _ := table.ColumnIndex(groupColumn)
	statusIdx, _ := table.ColumnIndex(statusColumn)

	groups := make(map[string]bool, table.Len())
	for _, row := range table.Rows {
		key := row[groupIdx]
		if strings.TrimSpace(key) == "" {
			continue
		}
		groups[key] = groups[key] || isSuccess(row[statusIdx])
	}

	successful := 0
	for _, ok := range groups {
		if ok {
			successful++
		}
	}
	return domain.NewOutcome(successful, len(groups)), nil
}

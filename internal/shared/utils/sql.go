package utils

import "strings"

// JoinWithAnd joins WHERE clauses with AND.
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins WHERE clauses with OR.
func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}

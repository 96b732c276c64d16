package repository

import "strings"

// likeEscaper neutralizes LIKE wildcards. '!' is used as the escape
// character because MySQL reads a backslash in a string literal as an escape.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a case-insensitive substring pattern for s. Match it
// with containsClause.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// containsClause compares LOWER(column) against a containsPattern argument.
func containsClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '!'"
}

package utils

import (
	"fmt"
	"strings"
)

// WhereBuilder collects AND-ed conditions with positional $n arguments
type WhereBuilder struct {
	clauses []string
	args    []any
}

// Add appends a condition; every "?" in cond becomes the next placeholder.
func (w *WhereBuilder) Add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.clauses = append(w.clauses, cond)
}

// SQL renders " WHERE a AND b" or "" when empty
func (w *WhereBuilder) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + JoinWithAnd(w.clauses)
}

func (w *WhereBuilder) Args() []any { return w.args }

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// Package cond evaluates checklist visibility conditions.
//
// The grammar is deliberately tiny, matching exactly what algorithm files
// use. A condition is a conjunction of equality checks:
//
//	expr     = clause { "AND" clause }
//	clause   = ident "==" ("true" | "false")
//	ident    = [A-Za-z_][A-Za-z0-9_]*
//
// "AND" is case-insensitive. There is no OR, negation, or grouping; an
// expression using anything outside this grammar fails to parse.
package cond

import (
	"fmt"
	"regexp"
	"strings"
)

// Clause is a single "ident == bool" check.
type Clause struct {
	Ident string
	Want  bool
}

// Condition is a parsed visibility expression: all clauses must hold.
type Condition struct {
	Clauses []Clause
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parse parses a condition expression. An empty or blank expression is
// valid and always true.
func Parse(expr string) (Condition, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Condition{}, nil
	}

	var cond Condition
	for _, part := range splitAnd(expr) {
		part = strings.TrimSpace(part)
		lhs, rhs, ok := strings.Cut(part, "==")
		if !ok {
			return Condition{}, fmt.Errorf("condition %q: clause %q is not an equality check", expr, part)
		}
		ident := strings.TrimSpace(lhs)
		if !identRe.MatchString(ident) {
			return Condition{}, fmt.Errorf("condition %q: invalid identifier %q", expr, ident)
		}
		var want bool
		switch strings.TrimSpace(rhs) {
		case "true":
			want = true
		case "false":
			want = false
		default:
			return Condition{}, fmt.Errorf("condition %q: right side of %q must be true or false", expr, part)
		}
		cond.Clauses = append(cond.Clauses, Clause{Ident: ident, Want: want})
	}
	return cond, nil
}

// Eval evaluates the condition against checklist state. Identifiers absent
// from the map read as false.
func (c Condition) Eval(state map[string]bool) bool {
	for _, cl := range c.Clauses {
		if state[cl.Ident] != cl.Want {
			return false
		}
	}
	return true
}

// Visible is the checklist-facing helper: it parses and evaluates in one
// step, and fails open. A malformed expression keeps the item visible;
// hiding a step of a protocol on a parse error is the worse failure.
func Visible(expr string, state map[string]bool) bool {
	cond, err := Parse(expr)
	if err != nil {
		return true
	}
	return cond.Eval(state)
}

// splitAnd splits on the AND keyword, case-insensitively, without
// splitting inside identifiers (the keyword must stand alone).
func splitAnd(expr string) []string {
	fields := strings.Fields(expr)
	var parts []string
	var current []string
	for _, f := range fields {
		if strings.EqualFold(f, "and") {
			parts = append(parts, strings.Join(current, " "))
			current = nil
			continue
		}
		current = append(current, f)
	}
	parts = append(parts, strings.Join(current, " "))
	return parts
}

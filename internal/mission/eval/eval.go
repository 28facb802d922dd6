// Package eval evaluates mission completion conditions. Conditions are
// boolean expressions over journey facts (type, length, closed,
// distinct_vertices, distinct_edges) authored in mission catalogs, so the
// accepted grammar is deliberately narrow: comparisons and boolean logic
// only.
package eval

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/expr-lang/expr"
)

// Eval evaluates cond against vars. An empty condition is always true.
func Eval(cond string, vars map[string]any) (bool, error) {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return true, nil
	}

	if err := Validate(cond); err != nil {
		return false, err
	}

	out, err := expr.Eval(cond, vars)
	if err != nil {
		return false, err
	}

	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition must evaluate to bool (got %T)", out)
	}

	return b, nil
}

// Validate rejects condition constructs outside the supported grammar
// before the expression engine ever sees them. Catalog validation calls
// this at load time so a bad condition fails the catalog, not a mission
// mid-run.
func Validate(cond string) error {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return nil
	}

	for _, ch := range []rune{'{', '}', '[', ']', ';', ':', '?', '@', '#', '$', '\\'} {
		if strings.ContainsRune(cond, ch) {
			return fmt.Errorf("illegal character %q", ch)
		}
	}

	if strings.Contains(cond, ".") {
		return fmt.Errorf("dot access is not allowed")
	}

	for _, op := range []string{"+", "-", "*", "/", "%"} {
		if strings.Contains(cond, op) {
			return fmt.Errorf("arithmetic operator %q is not allowed", op)
		}
	}

	if ident := calledIdent(cond); ident != "" {
		return fmt.Errorf("function calls are not allowed (found %q(...))", ident)
	}

	return nil
}

// calledIdent returns the identifier preceding a "(" if the condition
// contains a function-call shape, or "" when parentheses are purely
// grouping.
func calledIdent(cond string) string {
	for i := 0; i < len(cond)-1; i++ {
		if cond[i] != '(' {
			continue
		}
		j := i - 1
		for j >= 0 && unicode.IsSpace(rune(cond[j])) {
			j--
		}
		if j < 0 || !(unicode.IsLetter(rune(cond[j])) || cond[j] == '_') {
			continue
		}
		k := j
		for k >= 0 && (unicode.IsLetter(rune(cond[k])) || unicode.IsDigit(rune(cond[k])) || cond[k] == '_') {
			k--
		}
		if ident := strings.TrimSpace(cond[k+1 : j+1]); ident != "" {
			return ident
		}
	}
	return ""
}

package version

import (
	"fmt"
	"strings"
)

// A Selector is a parsed version-range expression such as
// ">=3.2.0 <3.10.0" or "=3.11.0". Clauses are implicitly ANDed;
// the empty selector matches every version.
type Selector struct {
	clauses []clause
}

type clause struct {
	op  string
	ver string
}

var ops = []string{">=", "<=", ">", "<", "="}

// ParseSelector parses a selector expression. A malformed clause is a
// configuration error and fails fast.
func ParseSelector(expr string) (Selector, error) {
	var s Selector
	for _, field := range strings.Fields(expr) {
		var c clause
		for _, op := range ops {
			if rest, ok := strings.CutPrefix(field, op); ok {
				c = clause{op: op, ver: rest}
				break
			}
		}
		if c.op == "" {
			return Selector{}, fmt.Errorf("invalid version selector %q: clause %q has no comparison operator", expr, field)
		}
		if c.ver == "" {
			return Selector{}, fmt.Errorf("invalid version selector %q: clause %q has no version", expr, field)
		}
		if !wellFormed(c.ver) {
			return Selector{}, fmt.Errorf("invalid version selector %q: malformed version in clause %q", expr, field)
		}
		s.clauses = append(s.clauses, c)
	}
	return s, nil
}

// wellFormed reports whether every component of the stripped version
// is numeric.
func wellFormed(v string) bool {
	for _, part := range strings.Split(Strip(v), ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// MustParseSelector is ParseSelector for statically declared tables.
func MustParseSelector(expr string) Selector {
	s, err := ParseSelector(expr)
	if err != nil {
		panic(err)
	}
	return s
}

// Matches reports whether v satisfies every clause of the selector.
func (s Selector) Matches(v string) bool {
	for _, c := range s.clauses {
		cmp := Compare(v, c.ver)
		switch c.op {
		case "=":
			if cmp != 0 {
				return false
			}
		case "<":
			if cmp >= 0 {
				return false
			}
		case "<=":
			if cmp > 0 {
				return false
			}
		case ">":
			if cmp <= 0 {
				return false
			}
		case ">=":
			if cmp < 0 {
				return false
			}
		}
	}
	return true
}

// Matches parses expr and evaluates it against v in one step.
func Matches(expr, v string) (bool, error) {
	s, err := ParseSelector(expr)
	if err != nil {
		return false, err
	}
	return s.Matches(v), nil
}

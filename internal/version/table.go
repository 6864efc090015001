package version

import "fmt"

// An Entry pairs a selector with the value it maps to.
type Entry[T any] struct {
	Selector Selector
	Value    T
}

// A Table is an ordered selector -> value mapping. A concrete version
// may match zero, one, or several entries; resolution never assumes
// ranges are disjoint. Callers that need a single deterministic value
// declare non-overlapping ranges by convention; the table does not
// enforce it.
type Table[T any] struct {
	entries []Entry[T]
}

// NewTable builds a table from (selector expression, value) pairs in
// declaration order.
func NewTable[T any](pairs ...Entry[T]) Table[T] {
	return Table[T]{entries: pairs}
}

// On is a convenience constructor for a table entry.
func On[T any](expr string, value T) Entry[T] {
	return Entry[T]{Selector: MustParseSelector(expr), Value: value}
}

// Resolve returns the values of every entry whose selector matches v,
// in declaration order.
func (t Table[T]) Resolve(v string) []T {
	var out []T
	for _, e := range t.entries {
		if e.Selector.Matches(v) {
			out = append(out, e.Value)
		}
	}
	return out
}

// ResolveOne resolves v to exactly one value: the first matching entry
// in declaration order. A version matching no entry is an error, never
// a silent default. The pick is stable across runs for identical table
// contents.
func (t Table[T]) ResolveOne(v string) (T, error) {
	for _, e := range t.entries {
		if e.Selector.Matches(v) {
			return e.Value, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("no compatible mapping for version %s", v)
}

// ResolveAll resolves v against a list-valued table, concatenating the
// lists of every matching entry. Unlike ResolveOne this is a union,
// not a pick.
func ResolveAll[T any](t Table[[]T], v string) []T {
	var out []T
	for _, vals := range t.Resolve(v) {
		out = append(out, vals...)
	}
	return out
}

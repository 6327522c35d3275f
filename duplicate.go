package dupe

import (
	"reflect"

	"github.com/cottand/dupe/internal/iface"
)

// Duplicate returns a copy of v produced by v's own Clone method.
func Duplicate[T Cloner[T]](v T) T {
	return Grant(v).DuplicateAny().(granted[T]).v
}

// Handle returns a duplicate of the value behind h. The result has the same
// dynamic type as h, so calling a method on it runs the same code as calling
// it on h, and its state is whatever the dynamic type's own duplication
// produced.
//
// A nil h duplicates to nil. Handle panics with an error wrapping
// ErrNotDuplicable if the dynamic type of h can neither be asserted to
// Duplicable nor has a Clone method returning its own type (or an interface
// it implements). It panics with an *InvariantError if the duplicate
// comes back with a different dynamic type.
func Handle[I any](h I) I {
	src := any(h)
	if src == nil {
		return h
	}
	typ, data := iface.Words(src)
	if !iface.DataMatches(src, data) {
		panic(&InvariantError{
			Source: reflect.TypeOf(src),
			Reason: "data word does not match the address of the value",
		})
	}

	dup := duplicateAny(src)

	// the duplicate must carry the descriptor of the source, never another one
	if dupTyp, _ := iface.Words(dup); dupTyp != typ {
		panic(&InvariantError{
			Source:    reflect.TypeOf(src),
			Duplicate: reflect.TypeOf(dup),
			Reason:    "duplicate has a different dynamic type",
		})
	}
	return dup.(I)
}

// Slice duplicates every element of s with Handle.
func Slice[S ~[]I, I any](s S) S {
	if s == nil {
		return nil
	}
	out := make(S, len(s))
	for i, h := range s {
		out[i] = Handle(h)
	}
	return out
}

// Map duplicates every value of m with Handle. Keys are copied by assignment.
func Map[M ~map[K]I, K comparable, I any](m M) M {
	if m == nil {
		return nil
	}
	out := make(M, len(m))
	for k, h := range m {
		out[k] = Handle(h)
	}
	return out
}

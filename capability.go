// Package dupe duplicates values held behind interfaces without the caller
// knowing their concrete type.
//
// A value can be duplicated through an interface when its dynamic type either
// implements Duplicable or has a Clone method returning its own type (see
// Cloner). The second form needs no extra code from the type's author:
//
//	type Shape interface{ Area() float64 }
//
//	type Square struct{ Side float64 }
//
//	func (s *Square) Area() float64   { return s.Side * s.Side }
//	func (s *Square) Clone() *Square  { c := *s; return &c }
//
//	var a Shape = &Square{Side: 2}
//	b := dupe.Handle(a) // b is a new *Square behind a Shape
//
// The dupegen command writes owned handle types whose Clone method calls
// Handle, so structs holding interface values can implement Cloner field by
// field.
package dupe

// Cloner is implemented by types that know how to produce a copy of
// themselves. Clone must return a value that does not share mutable storage
// with the receiver, other than what the type deliberately shares.
type Cloner[T any] interface {
	Clone() T
}

// Duplicable is the capability Handle dispatches through.
type Duplicable interface {
	// DuplicateAny returns a newly allocated duplicate of the receiver with
	// the receiver's own dynamic type.
	//
	// It is not meant to be called directly: use Duplicate or Handle, which
	// check that the duplicate kept the receiver's dynamic type.
	DuplicateAny() any
}

// Grant returns v as a Duplicable. Any Cloner qualifies. Duplicates of the
// result are themselves granted values wrapping v.Clone(), so the result can
// be passed to Handle like any other Duplicable.
func Grant[T Cloner[T]](v T) Duplicable {
	return granted[T]{v: v}
}

type granted[T Cloner[T]] struct {
	v T
}

func (g granted[T]) DuplicateAny() any {
	return granted[T]{v: g.v.Clone()}
}

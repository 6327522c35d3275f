package dupe

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// ErrNotDuplicable is wrapped by the panic value of Handle when the dynamic
// type behind a handle has no way to duplicate itself.
var ErrNotDuplicable = errors.New("value is not duplicable")

// InvariantError is the panic value of Handle when an interface value does not
// decompose the way Handle expects, or when a duplicate comes back with a
// different dynamic type than its source.
//
// It is never returned as an error. Seeing one means either a Clone method
// returned a value of another concrete type, or the runtime representation of
// interface values changed.
type InvariantError struct {
	Source    reflect.Type
	Duplicate reflect.Type
	Reason    string
}

func (e *InvariantError) Error() string {
	if e.Duplicate == nil {
		return fmt.Sprintf("dupe: invariant violated for %v: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("dupe: invariant violated for %v (duplicate is %v): %s", e.Source, e.Duplicate, e.Reason)
}

func notDuplicable(t reflect.Type) error {
	return errors.Wrapf(ErrNotDuplicable, "%v has neither DuplicateAny nor a Clone method returning its own type", t)
}

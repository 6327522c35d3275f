// Package traits holds interfaces with handles generated by dupegen, so the
// generated code is compiled against the runtime package on every build.
package traits

//go:generate go run github.com/cottand/dupe/cmd/dupegen gen -p traits -o traits_dupe.go Trait "[T] Generic[T]" "[T comparable, U] Pair[T, U]" "[T] Bounded[T] where T: Capability"

type Capability interface{ Capable() }

type Trait interface{ Name() string }

type Generic[T any] interface{ Get() T }

type Pair[T comparable, U any] interface{ Both() (T, U) }

type Bounded[T Capability] interface{ Use(T) }

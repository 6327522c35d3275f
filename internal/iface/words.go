// Package iface reads the two machine words Go uses to represent an
// interface value: the type word identifying the dynamic type and its method
// table, and the data word pointing at (or holding) the value.
package iface

import (
	"reflect"
	"unsafe"
)

// eface mirrors the runtime layout of an empty interface.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// Words returns the type word and the data word of v. Two values have the
// same type word if and only if they have the same dynamic type.
func Words(v any) (typ, data unsafe.Pointer) {
	e := (*eface)(unsafe.Pointer(&v))
	return e.typ, e.data
}

// DataMatches reports whether data agrees with an independent read of v
// through reflect. Only kinds the runtime stores directly in the data word can
// be checked; for every other kind it reports true.
func DataMatches(v any, data unsafe.Pointer) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return rv.UnsafePointer() == data
	default:
		return true
	}
}

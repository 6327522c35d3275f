package dupe

import (
	"reflect"
	"sync"
)

// cloneMethods caches, per dynamic type, the index of its Clone method in the
// type's method set, or -1 when it has none that qualifies.
var cloneMethods sync.Map

func cloneMethodOf(t reflect.Type) (int, bool) {
	if idx, ok := cloneMethods.Load(t); ok {
		return idx.(int), idx.(int) >= 0
	}
	idx, _ := cloneMethods.LoadOrStore(t, findCloneMethod(t))
	return idx.(int), idx.(int) >= 0
}

// findCloneMethod looks for a method Clone() R where R is t itself or an
// interface type t implements.
func findCloneMethod(t reflect.Type) int {
	m, ok := t.MethodByName("Clone")
	if !ok {
		return -1
	}
	// m.Type includes the receiver as its first input.
	if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
		return -1
	}
	out := m.Type.Out(0)
	if out == t || (out.Kind() == reflect.Interface && t.Implements(out)) {
		return m.Index
	}
	return -1
}

// duplicateAny dispatches duplication through the dynamic type of src.
func duplicateAny(src any) any {
	if d, ok := src.(Duplicable); ok {
		return d.DuplicateAny()
	}
	t := reflect.TypeOf(src)
	idx, ok := cloneMethodOf(t)
	if !ok {
		panic(notDuplicable(t))
	}
	return reflect.ValueOf(src).Method(idx).Call(nil)[0].Interface()
}

// IsDuplicable reports whether Handle can duplicate v. A nil interface is
// duplicable: it duplicates to nil.
func IsDuplicable(v any) bool {
	if v == nil {
		return true
	}
	if _, ok := v.(Duplicable); ok {
		return true
	}
	_, ok := cloneMethodOf(reflect.TypeOf(v))
	return ok
}

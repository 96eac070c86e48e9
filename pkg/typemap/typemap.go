// Package typemap maps Go types to human-readable names.
//
// Types that have not been registered are named by reflect.Type.String.
package typemap

import (
	"reflect"
	"sync"
	"unsafe"
)

var (
	mu    sync.RWMutex
	names = map[reflect.Type]string{}
)

func init() {
	registerType(reflect.TypeFor[unsafe.Pointer](), "void*", true)
	registerType(reflect.TypeFor[[]byte](), "bytes", true)
	registerType(reflect.TypeFor[error](), "error", false)
}

// Register names T, and unless it has been registered before, also names *T
// as "name*", **T as "name**" and []T as "[]name".
func Register[T any](name string) {
	registerType(reflect.TypeFor[T](), name, false)
}

// RegisterTypeOnly names T without deriving the pointer and slice forms.
func RegisterTypeOnly[T any](name string) {
	registerType(reflect.TypeFor[T](), name, true)
}

func registerType(t reflect.Type, name string, typeOnly bool) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := names[t]; ok {
		return
	}
	names[t] = name
	if typeOnly {
		return
	}
	names[reflect.PointerTo(t)] = name + "*"
	names[reflect.PointerTo(reflect.PointerTo(t))] = name + "**"
	names[reflect.SliceOf(t)] = "[]" + name
}

// Lookup returns the name of t. A nil type is "void".
func Lookup(t reflect.Type) string {
	if t == nil {
		return "void"
	}
	mu.RLock()
	name, ok := names[t]
	mu.RUnlock()
	if ok {
		return name
	}
	return t.String()
}

// Of returns the name of the dynamic type of v.
func Of(v any) string { return Lookup(reflect.TypeOf(v)) }

// Package memlens captures read-only views of the memory behind pointers.
//
// A Lens copies the bytes behind a pointer when it is constructed and never
// reads the target again. A DynamicLens re-reads the target on every call to
// Memory for as long as the target is alive. Neither keeps its target alive:
// addresses are stored as plain integers and live targets are reached through
// weak pointers.
//
// Snapshots are ordered most significant byte first, regardless of the byte
// order of the host.
package memlens

import (
	"reflect"
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Kind is the ownership kind of the pointer a Lens was built from.
type Kind uint8

const (
	// RawPtr is a plain Go pointer or unsafe.Pointer.
	RawPtr Kind = iota
	// SharedPtr is a strong handle created with NewShared or Share.
	SharedPtr
	// WeakPtr is a weak handle obtained from a Shared handle.
	WeakPtr
)

func (k Kind) String() string {
	switch k {
	case RawPtr:
		return "raw"
	case SharedPtr:
		return "shared"
	case WeakPtr:
		return "weak"
	}
	return "unknown"
}

// Lens is an immutable snapshot of the memory behind a pointer.
type Lens struct {
	addr uintptr
	size int
	typ  reflect.Type
	kind Kind
	mem  []byte
}

// Address returns the address of the target, or 0 if the pointer was nil or
// expired.
func (l Lens) Address() uintptr { return l.addr }

// Size returns the declared size of the target in bytes. It is the size of
// the pointee type for typed pointers and the read size for untyped ones.
func (l Lens) Size() int { return l.size }

// Type returns the pointee type, or nil for untyped pointers.
func (l Lens) Type() reflect.Type { return l.typ }

// Kind returns the ownership kind of the pointer.
func (l Lens) Kind() Kind { return l.kind }

// IsNil reports whether the pointer was nil or expired when the lens was
// built.
func (l Lens) IsNil() bool { return l.addr == 0 }

// Memory returns a copy of the snapshot. It is empty for nil and expired
// pointers.
func (l Lens) Memory() []byte {
	if len(l.mem) == 0 {
		return nil
	}
	return append([]byte(nil), l.mem...)
}

// Of builds a Lens over p, which may be any Go pointer, an unsafe.Pointer or
// a Ref. An untyped pointer captures a single byte; use Untyped to capture
// more. Of panics if p is not pointer-like.
func Of(p any) Lens {
	switch p := p.(type) {
	case Ref:
		return p.Lens()
	case unsafe.Pointer:
		return Untyped(p, 1)
	}
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer {
		panic("memlens.Of: not a pointer: " + reflect.TypeOf(p).String())
	}
	return newLens(v.UnsafePointer(), v.Type().Elem(), RawPtr)
}

// IsPointer reports whether Of accepts p.
func IsPointer(p any) bool {
	switch p.(type) {
	case Ref, unsafe.Pointer:
		return true
	}
	return p != nil && reflect.TypeOf(p).Kind() == reflect.Pointer
}

// Raw builds a Lens over a typed pointer.
func Raw[T any](p *T) Lens {
	return newLens(unsafe.Pointer(p), reflect.TypeFor[T](), RawPtr)
}

// Untyped builds a Lens that captures n bytes starting at p. The caller is
// responsible for p pointing at n readable bytes.
func Untyped(p unsafe.Pointer, n int) Lens {
	if n < 0 {
		n = 0
	}
	l := Lens{addr: uintptr(p), size: n, kind: RawPtr}
	l.mem = snapshot(p, n)
	return l
}

func newLens(p unsafe.Pointer, t reflect.Type, k Kind) Lens {
	size := int(t.Size())
	return Lens{addr: uintptr(p), size: size, typ: t, kind: k, mem: snapshot(p, size)}
}

// snapshot copies n bytes at p, most significant byte first.
func snapshot(p unsafe.Pointer, n int) []byte {
	if p == nil || n == 0 {
		return nil
	}
	mem := make([]byte, n)
	copy(mem, unsafe.Slice((*byte)(p), n))
	runtime.KeepAlive(p)
	if !cpu.IsBigEndian {
		for i, j := 0, len(mem)-1; i < j; i, j = i+1, j-1 {
			mem[i], mem[j] = mem[j], mem[i]
		}
	}
	return mem
}

package memlens

import (
	"reflect"
	"runtime"
	"unsafe"
	"weak"
)

// Ref is implemented by the ownership-aware handles of this package.
type Ref interface {
	// RefKind returns SharedPtr or WeakPtr.
	RefKind() Kind
	// ElemType returns the type of the target.
	ElemType() reflect.Type
	// Deref returns the target value. The second return value is false if the
	// handle is nil or expired.
	Deref() (any, bool)
	// Lens returns a snapshot of the target.
	Lens() Lens
}

// Shared is a strong handle to a value. The value lives at least as long as
// any Shared handle to it.
type Shared[T any] struct {
	p *T
}

// NewShared allocates a copy of v and returns a strong handle to it.
func NewShared[T any](v T) Shared[T] {
	p := new(T)
	*p = v
	return Shared[T]{p}
}

// Share returns a strong handle to an existing pointer.
func Share[T any](p *T) Shared[T] { return Shared[T]{p} }

// Get returns the target, or nil for a zero handle.
func (s Shared[T]) Get() *T { return s.p }

// Weak returns a weak handle to the same target.
func (s Shared[T]) Weak() Weak[T] { return Weak[T]{weak.Make(s.p)} }

// Dynamic returns a lens that re-reads the target on each call to Memory.
// It only holds a weak reference to the target.
func (s Shared[T]) Dynamic() *DynamicLens { return dynamicOf(weak.Make(s.p), SharedPtr) }

func (s Shared[T]) RefKind() Kind          { return SharedPtr }
func (s Shared[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }

func (s Shared[T]) Deref() (any, bool) {
	if s.p == nil {
		return nil, false
	}
	return *s.p, true
}

func (s Shared[T]) Lens() Lens {
	return newLens(unsafe.Pointer(s.p), reflect.TypeFor[T](), SharedPtr)
}

// Weak is a weak handle to a value. It does not keep its target alive.
type Weak[T any] struct {
	w weak.Pointer[T]
}

// Get returns the target, or nil once it has been collected.
func (w Weak[T]) Get() *T { return w.w.Value() }

// Expired reports whether the target has been collected.
func (w Weak[T]) Expired() bool { return w.w.Value() == nil }

// Dynamic returns a lens that re-reads the target on each call to Memory.
func (w Weak[T]) Dynamic() *DynamicLens { return dynamicOf(w.w, WeakPtr) }

func (w Weak[T]) RefKind() Kind          { return WeakPtr }
func (w Weak[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }

func (w Weak[T]) Deref() (any, bool) {
	p := w.w.Value()
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Lens returns a snapshot of the target, or an empty lens if the target has
// been collected.
func (w Weak[T]) Lens() Lens {
	p := w.w.Value()
	l := newLens(unsafe.Pointer(p), reflect.TypeFor[T](), WeakPtr)
	runtime.KeepAlive(p)
	return l
}

// DynamicLens is a Lens whose memory is re-read on each call to Memory while
// its target is alive. Once the target is collected, Memory returns nil and
// Address returns 0.
type DynamicLens struct {
	Lens
	load func() Lens
}

func dynamicOf[T any](w weak.Pointer[T], k Kind) *DynamicLens {
	load := func() Lens {
		p := w.Value()
		l := newLens(unsafe.Pointer(p), reflect.TypeFor[T](), k)
		runtime.KeepAlive(p)
		return l
	}
	return &DynamicLens{Lens: load(), load: load}
}

// Refresh re-reads the target and returns the new snapshot.
func (d *DynamicLens) Refresh() Lens {
	d.Lens = d.load()
	return d.Lens
}

// Address returns the current address of the target, or 0 once it has been
// collected.
func (d *DynamicLens) Address() uintptr { return d.Refresh().Address() }

// Memory returns a fresh copy of the target's memory.
func (d *DynamicLens) Memory() []byte { return d.Refresh().Memory() }

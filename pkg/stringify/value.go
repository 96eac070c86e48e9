package stringify

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"src.squeak.sh/pkg/ioformat"
	"src.squeak.sh/pkg/memlens"
	"src.squeak.sh/pkg/typemap"
)

// Value is a renderable value. The set of implementations is closed; Classify
// maps any Go value to one of them.
type Value interface {
	accept(v visitor) string
}

// visitor has one method per Value variant, so that a variant without a
// renderer does not compile.
type visitor interface {
	signed(Signed) string
	unsigned(Unsigned) string
	real(Real) string
	truth(Truth) string
	char(Rune) string
	text(Text) string
	pointer(Pointer) string
	fault(Fault) string
	typeName(TypeName) string
	opaque(Opaque) string
}

type (
	// Signed is a signed integer.
	Signed int64
	// Unsigned is an unsigned integer.
	Unsigned uint64
	// Real is a floating-point number and the bit size it was parsed from.
	Real struct {
		V       float64
		BitSize int
	}
	// Truth is a boolean.
	Truth bool
	// Rune is a character. Go has no distinct character type, so callers
	// wrap runes in Rune to have them rendered under the char policy.
	Rune rune
	// Text is a string; it is rendered as is.
	Text string
	// Pointer is a pointer-like value. Deref is called only to render the
	// target in value mode.
	Pointer struct {
		Lens  memlens.Lens
		Deref func() (any, bool)
	}
	// Fault is an error.
	Fault struct{ Err error }
	// TypeName is a type.
	TypeName struct{ T reflect.Type }
	// Opaque is a value with no renderer. It renders as its type name.
	Opaque struct{ V any }
)

func (v Signed) accept(r visitor) string   { return r.signed(v) }
func (v Unsigned) accept(r visitor) string { return r.unsigned(v) }
func (v Real) accept(r visitor) string     { return r.real(v) }
func (v Truth) accept(r visitor) string    { return r.truth(v) }
func (v Rune) accept(r visitor) string     { return r.char(v) }
func (v Text) accept(r visitor) string     { return r.text(v) }
func (v Pointer) accept(r visitor) string  { return r.pointer(v) }
func (v Fault) accept(r visitor) string    { return r.fault(v) }
func (v TypeName) accept(r visitor) string { return r.typeName(v) }
func (v Opaque) accept(r visitor) string   { return r.opaque(v) }

// Classify maps v to a Value variant. Untyped pointers capture readSize
// bytes.
func Classify(v any, readSize int) Value {
	switch v := v.(type) {
	case Value:
		return v
	case nil:
		return Text("nil")
	case error:
		return Fault{v}
	case reflect.Type:
		return TypeName{v}
	case memlens.Ref:
		return Pointer{v.Lens(), v.Deref}
	case unsafe.Pointer:
		return Pointer{memlens.Untyped(v, readSize), nil}
	case fmt.Stringer:
		if reflect.TypeOf(v).Kind() != reflect.Pointer {
			return Text(v.String())
		}
	case string:
		return Text(v)
	case bool:
		return Truth(v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Signed(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Unsigned(rv.Uint())
	case reflect.Float32:
		return Real{rv.Float(), 32}
	case reflect.Float64:
		return Real{rv.Float(), 64}
	case reflect.Bool:
		return Truth(rv.Bool())
	case reflect.String:
		return Text(rv.String())
	case reflect.Pointer:
		deref := func() (any, bool) {
			if rv.IsNil() {
				return nil, false
			}
			return rv.Elem().Interface(), true
		}
		return Pointer{memlens.Of(v), deref}
	}
	return Opaque{v}
}

// maxDeref bounds how many pointers are followed in value mode.
const maxDeref = 8

// Renderer renders values under a format profile.
type Renderer struct {
	Format ioformat.Format
	// ReadSize is the number of bytes captured from untyped pointers. Values
	// below 1 are treated as 1.
	ReadSize int

	depth int
	// err receives the first failed request, if not nil.
	err *error
}

// Render renders v under f. It never panics: a panic raised while rendering,
// such as from a String method, renders as "[PANIC: ...]".
func Render(v any, f ioformat.Format) string {
	return Renderer{Format: f, ReadSize: 1}.Render(v)
}

// Render renders v under the profile of r.
func (r Renderer) Render(v any) (s string) {
	defer func() {
		if p := recover(); p != nil {
			s = fmt.Sprintf("[PANIC: %v]", p)
		}
	}()
	return Classify(v, max(r.ReadSize, 1)).accept(r)
}

// Check is like Render, but fails instead of rendering a request that can
// never succeed, such as a memory dump in a base other than 2, 8 or 16. The
// error is an *ioformat.InvalidArgumentError.
func (r Renderer) Check(v any) (string, error) {
	var err error
	r.err = &err
	s := r.Render(v)
	if err != nil {
		return "", err
	}
	return s, nil
}

func (r Renderer) fail(err error) string {
	if r.err != nil && *r.err == nil {
		*r.err = err
	}
	return Error(err)
}

func (r Renderer) signed(v Signed) string {
	f := r.Format
	return Integer(int64(v), f.Base, f.Sign, f.Case, f.Notation)
}

func (r Renderer) unsigned(v Unsigned) string {
	f := r.Format
	return Integer(uint64(v), f.Base, f.Sign, f.Case, f.Notation)
}

func (r Renderer) real(v Real) string {
	f := r.Format
	if v.BitSize == 32 {
		return Float(float32(v.V), f.Places, f.Sci, f.Sign)
	}
	return Float(v.V, f.Places, f.Sci, f.Sign)
}

func (r Renderer) truth(v Truth) string   { return Bool(bool(v), r.Format.Bool) }
func (r Renderer) char(v Rune) string     { return Char(rune(v), r.Format) }
func (r Renderer) text(v Text) string     { return string(v) }
func (r Renderer) fault(v Fault) string   { return Error(v.Err) }
func (r Renderer) opaque(v Opaque) string { return typemap.Of(v.V) }

func (r Renderer) typeName(v TypeName) string { return Type(v.T) }

func (r Renderer) pointer(v Pointer) string {
	switch r.Format.Ptr {
	case ioformat.PtrAddress:
		return Address(v.Lens, r.Format.Case)
	case ioformat.PtrType:
		return PointerTag(v.Lens)
	case ioformat.PtrMemory:
		s, err := Memory(v.Lens, r.Format)
		if err != nil {
			return r.fail(err)
		}
		return s
	}
	if v.Lens.IsNil() {
		return "(null pointer)"
	}
	if v.Lens.Type() == nil || v.Deref == nil {
		return "(void pointer)"
	}
	if r.depth >= maxDeref {
		return PointerTag(v.Lens)
	}
	target, ok := v.Deref()
	if !ok {
		return "(null pointer)"
	}
	r.depth++
	return Classify(target, max(r.ReadSize, 1)).accept(r)
}

// Type renders the human-readable name of t.
func Type(t reflect.Type) string { return typemap.Lookup(t) }

// Call renders a call of the function name with args, as in "f(1, true)".
func Call(f ioformat.Format, name string, args ...any) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(Render(arg, f))
	}
	sb.WriteByte(')')
	return sb.String()
}

var _ visitor = Renderer{}

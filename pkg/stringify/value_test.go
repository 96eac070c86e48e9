package stringify

import (
	"errors"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"unsafe"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	. "src.squeak.sh/pkg/ioformat"
	"src.squeak.sh/pkg/memlens"
	. "src.squeak.sh/pkg/tt"
)

type panicker struct{}

func (panicker) String() string { panic("boom") }

type celsius float64

func TestRender(t *testing.T) {
	x := 7
	var nilPtr *int
	px := &x

	Test(t, Fn("Render", Render), Table{
		Args(42, Default()).Rets("42"),
		Args(int8(-5), Default().With(Hex)).Rets("-0x5"),
		Args(uint8(255), Default().With(Bin)).Rets("0b11111111"),
		Args(uintptr(16), Default().With(Hex, CaseLower)).Rets("0x10"),
		Args(1.5, Default().With(DecimalPlaces(2))).Rets("1.50"),
		Args(float32(0.25), Default().With(DecimalPlaces(3))).Rets("0.250"),
		Args(celsius(21.5), Default().With(DecimalPlaces(1))).Rets("21.5"),
		Args(1e13, Default()).Rets("1.00000000000000e+13"),
		Args(true, Default().With(BoolTest)).Rets("PASS"),
		Args(false, Default().With(BoolScott)).Rets("nay"),
		Args(Rune('A'), Default()).Rets("A"),
		Args(Rune('A'), Default().With(AsInt)).Rets("65"),
		Args(Rune('A'), Default().With(AsInt, Hex)).Rets("0x41"),
		Args("hi", Default().With(Hex)).Rets("hi"),
		Args(nil, Default()).Rets("nil"),
		Args(errors.New("boom"), Default()).Rets("[ERROR: boom]"),
		Args(reflect.TypeFor[int](), Default()).Rets("int"),
		Args(map[string]int{}, Default()).Rets("map[string]int"),
		Args(Red, Default()).Rets("red"),
		Args(panicker{}, Default()).Rets("[PANIC: boom]"),
		// Pointers.
		Args(nilPtr, Default()).Rets("(null pointer)"),
		Args(px, Default()).Rets("7"),
		Args(&px, Default()).Rets("7"),
		Args(unsafe.Pointer(px), Default()).Rets("(void pointer)"),
		Args(px, Default().With(PtrType)).Rets("[int*]"),
		Args(nilPtr, Default().With(PtrAddress)).Rets("0x0000000000000000"),
		Args(memlens.NewShared(int16(9)), Default()).Rets("9"),
		Args(memlens.NewShared(int16(9)), Default().With(PtrType)).Rets("[shared<int16>]"),
		Args(memlens.Share[int16](nil), Default()).Rets("(null pointer)"),
	})
}

func TestRender_MemoryDump(t *testing.T) {
	v := int32(0x01020304)
	got := Render(&v, Default().With(PtrMemory, Hex, SepByte))
	if got != "01 02 03 04" {
		t.Errorf("memory dump = %q, want %q", got, "01 02 03 04")
	}
}

func TestRender_MemoryDumpInUnsupportedBase(t *testing.T) {
	v := int32(0x01020304)
	f := Default().With(PtrMemory, Dec)

	got := Render(&v, f)
	if !strings.HasPrefix(got, "[INVALID ARGUMENT ERROR: invalid base:") {
		t.Errorf("Render = %q, want an invalid argument error", got)
	}

	var argErr *InvalidArgumentError
	s, err := Renderer{Format: f}.Check(&v)
	if s != "" || !errors.As(err, &argErr) {
		t.Errorf("Check -> (%q, %v), want (\"\", *InvalidArgumentError)", s, err)
	}

	s, err = Renderer{Format: Default().With(PtrMemory, Hex, SepNone)}.Check(&v)
	if s != "01020304" || err != nil {
		t.Errorf("Check in hex -> (%q, %v)", s, err)
	}
}

func TestRenderer_ReadSize(t *testing.T) {
	v := uint32(0xAABBCCDD)
	r := Renderer{Format: Default().With(PtrMemory, Hex, SepNone), ReadSize: 4}
	if got := r.Render(unsafe.Pointer(&v)); got != "AABBCCDD" {
		t.Errorf("Render(unsafe.Pointer) with read size 4 = %q", got)
	}
	r.ReadSize = 0
	if got := r.Render(unsafe.Pointer(&v)); len(got) != 2 {
		t.Errorf("Render(unsafe.Pointer) with read size 0 = %q, want one byte", got)
	}
}

func TestRender_ExpiredWeak(t *testing.T) {
	w := memlens.NewShared([4]int64{1, 2, 3, 4}).Weak()
	for i := 0; i < 10 && !w.Expired(); i++ {
		runtime.GC()
	}
	if !w.Expired() {
		t.Skip("weak target was not collected")
	}
	if got := Render(w, Default()); got != "(null pointer)" {
		t.Errorf("Render(expired weak) = %q", got)
	}
	if got := Render(w, Default().With(PtrMemory, Hex)); got != "" {
		t.Errorf("memory dump of expired weak = %q, want empty", got)
	}
	if got := Render(w, Default().With(PtrAddress)); got != "0x0000000000000000" {
		t.Errorf("address of expired weak = %q", got)
	}
}

func TestCall(t *testing.T) {
	f := Default().With(DecimalPlaces(1))
	Test(t, Fn("Call", Call), Table{
		Args(f, "add", 1, 2.5, true).Rets("add(1, 2.5, true)"),
		Args(f, "noop").Rets("noop()"),
	})
}

func TestType(t *testing.T) {
	if got := Type(reflect.TypeFor[[]string]()); got != "[]string" {
		t.Errorf("Type([]string) = %q", got)
	}
}

func TestRenderProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("rendering is idempotent", prop.ForAll(
		func(n int64, f float64, s string, b bool) bool {
			for _, v := range []any{n, f, s, b} {
				if Render(v, Default()) != Render(v, Default()) {
					return false
				}
			}
			return true
		},
		gen.Int64(), gen.Float64(), gen.AnyString(), gen.Bool(),
	))

	properties.Property("integers render like Integer", prop.ForAll(
		func(n int64) bool {
			f := Default().With(Hex)
			return Render(n, f) == Integer(n, Hex, SignAuto, CaseUpper, NotationPrefix)
		},
		gen.Int64(),
	))

	properties.Property("strings render unchanged", prop.ForAll(
		func(s string) bool { return Render(s, Default()) == s && !strings.Contains(Render(s, Default()), "\033") },
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

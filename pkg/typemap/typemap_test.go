package typemap

import (
	"reflect"
	"testing"
	"unsafe"

	. "src.squeak.sh/pkg/tt"
)

type point struct{ x, y int }
type handle struct{}

func init() {
	Register[point]("Point")
	RegisterTypeOnly[handle]("Handle")
	// Registering again does not override.
	Register[point]("Other")
}

func TestLookup(t *testing.T) {
	Test(t, Fn("Lookup", Lookup), Table{
		Args(reflect.TypeFor[point]()).Rets("Point"),
		Args(reflect.TypeFor[*point]()).Rets("Point*"),
		Args(reflect.TypeFor[**point]()).Rets("Point**"),
		Args(reflect.TypeFor[[]point]()).Rets("[]Point"),
		Args(reflect.TypeFor[handle]()).Rets("Handle"),
		Args(reflect.TypeFor[*handle]()).Rets("*typemap.handle"),
		Args(reflect.TypeFor[unsafe.Pointer]()).Rets("void*"),
		Args(reflect.TypeFor[int32]()).Rets("int32"),
		Args(reflect.TypeFor[map[string]int]()).Rets("map[string]int"),
		Args(nil).Rets("void"),
	})
}

func TestOf(t *testing.T) {
	Test(t, Fn("Of", Of), Table{
		Args(point{}).Rets("Point"),
		Args(&point{}).Rets("Point*"),
		Args("x").Rets("string"),
		Args(nil).Rets("void"),
	})
}

package stringify

import (
	"fmt"
	"strings"

	"src.squeak.sh/pkg/ioformat"
	"src.squeak.sh/pkg/memlens"
	"src.squeak.sh/pkg/typemap"
)

const wordSize = 8

// byteWidth returns the number of digits of a zero-padded byte in base, or 0
// if base is not supported for memory dumps.
func byteWidth(base ioformat.Base) int {
	switch base {
	case ioformat.Bin:
		return 8
	case ioformat.Oct:
		return 4
	case ioformat.Hex:
		return 2
	}
	return 0
}

func errDumpBase(base ioformat.Base) error {
	return &ioformat.InvalidArgumentError{
		What:   "base",
		Reason: fmt.Sprintf("memory dumps support bases 2, 8 and 16, not %d", base),
	}
}

// Byte renders b zero-padded to 8, 4 or 2 digits in base 2, 8 or 16. Other
// bases are an *ioformat.InvalidArgumentError.
func Byte(b byte, base ioformat.Base, c ioformat.NumCase) (string, error) {
	width := byteWidth(base)
	if width == 0 {
		return "", errDumpBase(base)
	}
	return string(appendByte(nil, b, base, width, c)), nil
}

func appendByte(buf []byte, b byte, base ioformat.Base, width int, c ioformat.NumCase) []byte {
	digits := digitsUpper
	if c == ioformat.CaseLower {
		digits = digitsLower
	}
	start := len(buf)
	buf = append(buf, make([]byte, width)...)
	for i := width - 1; i >= 0; i-- {
		buf[start+i] = digits[b%byte(base)]
		b /= byte(base)
	}
	return buf
}

// Bytes renders data in order, each byte as by Byte. SepByte puts a space
// between bytes and SepWord puts a bar between groups of 8 bytes, written
// "| " when bytes are also separated. There is no trailing separator.
func Bytes(data []byte, sep ioformat.MemSep, base ioformat.Base, c ioformat.NumCase) (string, error) {
	width := byteWidth(base)
	if width == 0 {
		return "", errDumpBase(base)
	}
	bySpace := sep&ioformat.SepByte != 0
	byWord := sep&ioformat.SepWord != 0
	buf := make([]byte, 0, len(data)*(width+1)+len(data)/wordSize*2)
	for i, b := range data {
		if i > 0 {
			if byWord && i%wordSize == 0 {
				if bySpace {
					buf = append(buf, ' ')
				}
				buf = append(buf, '|')
			}
			if bySpace {
				buf = append(buf, ' ')
			}
		}
		buf = appendByte(buf, b, base, width, c)
	}
	return string(buf), nil
}

// Address renders the address of the target of l as "0x" followed by 16
// zero-padded hex digits. Nil and expired targets render as all zeros.
func Address(l memlens.Lens, c ioformat.NumCase) string {
	digits := Integer(uint64(l.Address()), ioformat.Hex, ioformat.SignAuto, c, ioformat.NotationNone)
	return "0x" + strings.Repeat("0", 16-len(digits)) + digits
}

// PointerTag renders a short description of the pointer behind l, such as
// "[int32*]", "[shared<int32>]" or "[weak<int32>]". Untyped pointers have
// the type "void".
func PointerTag(l memlens.Lens) string {
	name := typemap.Lookup(l.Type())
	switch l.Kind() {
	case memlens.SharedPtr:
		return "[shared<" + name + ">]"
	case memlens.WeakPtr:
		return "[weak<" + name + ">]"
	}
	return "[" + name + "*]"
}

// Memory renders the snapshot of l under the separator, base and case of f.
// Bases other than 2, 8 and 16 are an *ioformat.InvalidArgumentError.
func Memory(l memlens.Lens, f ioformat.Format) (string, error) {
	return Bytes(l.Memory(), f.MemSep, f.Base, f.Case)
}

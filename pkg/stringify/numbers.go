// Package stringify renders Go values to text under a format profile.
//
// The functions in this package are pure: the same value and flags always
// yield the same text. Functions with a Len counterpart share their helpers
// with it, so the length can be computed without rendering.
package stringify

import (
	"math"
	"strconv"
	"strings"
	"unsafe"

	"src.squeak.sh/pkg/ioformat"
)

const (
	digitsUpper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitsLower = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Integral is the set of integer types accepted by Integer.
type Integral interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// magnitude splits v into its sign and absolute value. It handles the
// minimum value of signed types.
func magnitude[T Integral](v T) (neg bool, mag uint64) {
	if v < 0 {
		return true, uint64(-(int64(v) + 1)) + 1
	}
	return false, uint64(v)
}

func clampBase(b ioformat.Base) uint64 {
	switch {
	case b < ioformat.MinBase:
		return uint64(ioformat.MinBase)
	case b > ioformat.MaxBase:
		return uint64(ioformat.MaxBase)
	}
	return uint64(b)
}

// basePrefix returns the prefix letter for base under prefix notation, or 0.
func basePrefix(base uint64) byte {
	switch base {
	case 2:
		return 'b'
	case 3:
		return 't'
	case 8:
		return 'o'
	case 12:
		return 'z'
	case 16:
		return 'x'
	}
	return 0
}

// baseMarks returns the prefix and the suffix that mark base.
func baseMarks(base uint64, n ioformat.BaseNotation) (prefix, suffix string) {
	if base == 10 || n == ioformat.NotationNone {
		return "", ""
	}
	if n == ioformat.NotationPrefix {
		if p := basePrefix(base); p != 0 {
			return "0" + string(p), ""
		}
	}
	return "", "_" + strconv.FormatUint(base, 10)
}

func signMark(neg bool, s ioformat.Sign) string {
	switch {
	case neg:
		return "-"
	case s == ioformat.SignAlways:
		return "+"
	}
	return ""
}

func countDigits(mag, base uint64) int {
	n := 1
	for mag >= base {
		mag /= base
		n++
	}
	return n
}

// Integer renders v in the given base, from 2 to 36. Bases out of range are
// clamped. Zero is always "0", with no sign and no base mark.
func Integer[T Integral](v T, base ioformat.Base, s ioformat.Sign, c ioformat.NumCase, n ioformat.BaseNotation) string {
	if v == 0 {
		return "0"
	}
	neg, mag := magnitude(v)
	b := clampBase(base)
	prefix, suffix := baseMarks(b, n)
	digits := digitsUpper
	if c == ioformat.CaseLower {
		digits = digitsLower
	}

	buf := make([]byte, countDigits(mag, b))
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = digits[mag%b]
		mag /= b
	}

	var sb strings.Builder
	sb.Grow(IntegerLen(v, base, s, n))
	sb.WriteString(signMark(neg, s))
	sb.WriteString(prefix)
	sb.Write(buf)
	sb.WriteString(suffix)
	return sb.String()
}

// IntegerLen returns the length of Integer(v, base, s, _, n).
func IntegerLen[T Integral](v T, base ioformat.Base, s ioformat.Sign, n ioformat.BaseNotation) int {
	if v == 0 {
		return 1
	}
	neg, mag := magnitude(v)
	b := clampBase(base)
	prefix, suffix := baseMarks(b, n)
	return len(signMark(neg, s)) + len(prefix) + countDigits(mag, b) + len(suffix)
}

// Magnitude thresholds beyond which SciAuto switches to scientific notation.
const (
	sciAbove = 12
	sciBelow = -5
)

// floatParts decomposes the absolute value of v, which must be finite, into
// the digits before and after the decimal point, and the exponent in
// scientific notation. frac is not truncated.
func floatParts(v float64, bitSize int, sci ioformat.SciNotation) (whole, frac string, exp int, useExp bool) {
	abs := math.Abs(v)
	if abs != 0 {
		e := strconv.FormatFloat(abs, 'e', -1, bitSize)
		i := strings.LastIndexByte(e, 'e')
		exp, _ = strconv.Atoi(e[i+1:])
		switch sci {
		case ioformat.SciAlways:
			useExp = true
		case ioformat.SciAuto:
			mag := decimalMagnitude(exp, e[:i])
			useExp = mag > sciAbove || mag < sciBelow
		}
		if useExp {
			whole, frac, _ = strings.Cut(e[:i], ".")
			return whole, frac, exp, true
		}
	}
	whole, frac, _ = strings.Cut(strconv.FormatFloat(abs, 'f', -1, bitSize), ".")
	return whole, frac, exp, false
}

// decimalMagnitude returns log10 of a value truncated toward zero, given the
// exponent and the mantissa of its shortest scientific form. Below 1, only
// exact powers of ten keep their exponent: 5e-6 has magnitude -5.
func decimalMagnitude(exp int, mantissa string) int {
	if exp < 0 && mantissa != "1" {
		return exp + 1
	}
	return exp
}

// fixPlaces truncates or zero-pads frac to exactly places digits.
func fixPlaces(frac string, places int) string {
	if len(frac) >= places {
		return frac[:places]
	}
	return frac + strings.Repeat("0", places-len(frac))
}

// Float renders v with exactly places fractional digits, truncated rather
// than rounded. Under SciAlways, or SciAuto with a decimal magnitude above 12
// or below -5, it renders a single whole digit and an exponent, as in
// "1.50e+13". NaN and infinities render as "NaN", "Inf" and "-Inf".
func Float[T ~float32 | ~float64](v T, places ioformat.DecimalPlaces, sci ioformat.SciNotation, s ioformat.Sign) string {
	f := float64(v)
	if tok, ok := nonFinite(f); ok {
		return tok
	}
	whole, frac, exp, useExp := floatParts(f, bitSize[T](), sci)

	var sb strings.Builder
	sb.WriteString(signMark(f < 0, s))
	sb.WriteString(whole)
	if places > 0 {
		sb.WriteByte('.')
		sb.WriteString(fixPlaces(frac, int(places)))
	}
	if useExp {
		sb.WriteByte('e')
		sb.WriteString(Integer(exp, ioformat.Dec, ioformat.SignAlways, ioformat.CaseUpper, ioformat.NotationNone))
	}
	return sb.String()
}

// FloatLen returns the length of Float(v, places, sci, s).
func FloatLen[T ~float32 | ~float64](v T, places ioformat.DecimalPlaces, sci ioformat.SciNotation, s ioformat.Sign) int {
	f := float64(v)
	if tok, ok := nonFinite(f); ok {
		return len(tok)
	}
	whole, _, exp, useExp := floatParts(f, bitSize[T](), sci)
	n := len(signMark(f < 0, s)) + len(whole)
	if places > 0 {
		n += 1 + int(places)
	}
	if useExp {
		n += 1 + IntegerLen(exp, ioformat.Dec, ioformat.SignAlways, ioformat.NotationNone)
	}
	return n
}

func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "Inf", true
	case math.IsInf(f, -1):
		return "-Inf", true
	}
	return "", false
}

func bitSize[T ~float32 | ~float64]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

package stringify

import (
	"math"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	. "src.squeak.sh/pkg/ioformat"
	. "src.squeak.sh/pkg/tt"
)

func TestInteger(t *testing.T) {
	Test(t, Fn("Integer", Integer[int64]), Table{
		Args(int64(0), Hex, SignAlways, CaseUpper, NotationPrefix).Rets("0"),
		Args(int64(10), Dec, SignAuto, CaseUpper, NotationPrefix).Rets("10"),
		Args(int64(10), Dec, SignAlways, CaseUpper, NotationPrefix).Rets("+10"),
		Args(int64(-10), Dec, SignAuto, CaseUpper, NotationPrefix).Rets("-10"),
		// Prefixed bases.
		Args(int64(5), Bin, SignAuto, CaseUpper, NotationPrefix).Rets("0b101"),
		Args(int64(5), Ter, SignAuto, CaseUpper, NotationPrefix).Rets("0t12"),
		Args(int64(8), Oct, SignAuto, CaseUpper, NotationPrefix).Rets("0o10"),
		Args(int64(13), Doz, SignAuto, CaseUpper, NotationPrefix).Rets("0z11"),
		Args(int64(255), Hex, SignAuto, CaseUpper, NotationPrefix).Rets("0xFF"),
		Args(int64(255), Hex, SignAuto, CaseLower, NotationPrefix).Rets("0xff"),
		// The sign comes before the prefix.
		Args(int64(-255), Hex, SignAuto, CaseUpper, NotationPrefix).Rets("-0xFF"),
		Args(int64(255), Hex, SignAlways, CaseUpper, NotationPrefix).Rets("+0xFF"),
		// Other bases are subscripted.
		Args(int64(35), B36, SignAuto, CaseUpper, NotationPrefix).Rets("Z_36"),
		Args(int64(7), Base(5), SignAuto, CaseUpper, NotationPrefix).Rets("12_5"),
		Args(int64(255), Hex, SignAuto, CaseUpper, NotationSubscript).Rets("FF_16"),
		Args(int64(10), Dec, SignAuto, CaseUpper, NotationSubscript).Rets("10"),
		Args(int64(-255), Hex, SignAuto, CaseUpper, NotationNone).Rets("-FF"),
		Args(int64(math.MinInt64), Dec, SignAuto, CaseUpper, NotationPrefix).
			Rets("-9223372036854775808"),
		// Out-of-range bases are clamped.
		Args(int64(3), Base(1), SignAuto, CaseUpper, NotationNone).Rets("11"),
	})
	Test(t, Fn("Integer", Integer[uint64]), Table{
		Args(uint64(math.MaxUint64), Hex, SignAuto, CaseUpper, NotationNone).
			Rets("FFFFFFFFFFFFFFFF"),
	})
}

func TestFloat(t *testing.T) {
	Test(t, Fn("Float", Float[float64]), Table{
		// Scientific notation thresholds.
		Args(1e13, DefaultPlaces, SciAuto, SignAuto).Rets("1.00000000000000e+13"),
		Args(1e11, DecimalPlaces(2), SciAuto, SignAuto).Rets("100000000000.00"),
		Args(1e12, DecimalPlaces(1), SciAuto, SignAuto).Rets("1000000000000.0"),
		Args(1.2345e-7, DecimalPlaces(3), SciAuto, SignAuto).Rets("1.234e-7"),
		Args(0.00001, DecimalPlaces(2), SciAuto, SignAuto).Rets("0.00"),
		// The magnitude is log10 truncated toward zero, so 5e-6 is -5.
		Args(5e-6, DecimalPlaces(8), SciAuto, SignAuto).Rets("0.00000500"),
		Args(1e-6, DecimalPlaces(2), SciAuto, SignAuto).Rets("1.00e-6"),
		Args(9.99e-7, DecimalPlaces(2), SciAuto, SignAuto).Rets("9.99e-7"),
		Args(1.5, DecimalPlaces(2), SciAlways, SignAuto).Rets("1.50e0"),
		Args(1e13, DecimalPlaces(0), SciNever, SignAuto).Rets("10000000000000"),
		// Digits are truncated, not rounded.
		Args(2.999, DecimalPlaces(2), SciNever, SignAuto).Rets("2.99"),
		Args(3.14159, DecimalPlaces(2), SciAuto, SignAuto).Rets("3.14"),
		// Leading zeros of the fraction are kept.
		Args(0.05, DecimalPlaces(3), SciAuto, SignAuto).Rets("0.050"),
		Args(-0.5, DecimalPlaces(3), SciAuto, SignAuto).Rets("-0.500"),
		Args(2.5, DecimalPlaces(1), SciAuto, SignAlways).Rets("+2.5"),
		Args(1.5, DecimalPlaces(0), SciAuto, SignAuto).Rets("1"),
		Args(0.0, DecimalPlaces(2), SciAuto, SignAuto).Rets("0.00"),
		// Non-finite values.
		Args(math.NaN(), DefaultPlaces, SciAuto, SignAuto).Rets("NaN"),
		Args(math.Inf(1), DefaultPlaces, SciAuto, SignAlways).Rets("Inf"),
		Args(math.Inf(-1), DefaultPlaces, SciAuto, SignAuto).Rets("-Inf"),
	})
	Test(t, Fn("Float", Float[float32]), Table{
		Args(float32(0.1), DecimalPlaces(3), SciAuto, SignAuto).Rets("0.100"),
	})
}

func TestIntegerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	for _, base := range []Base{Bin, Oct, Dec, Hex, B36} {
		properties.Property("round trip in base "+strconv.Itoa(int(base)), prop.ForAll(
			func(n int64) bool {
				s := Integer(n, base, SignAuto, CaseLower, NotationNone)
				parsed, err := strconv.ParseInt(s, int(base), 64)
				return err == nil && parsed == n
			},
			gen.Int64(),
		))
	}

	properties.Property("length helper agrees with render", prop.ForAll(
		func(n int64, base int, sign bool, notation int) bool {
			s := SignAuto
			if sign {
				s = SignAlways
			}
			b, no := Base(base), BaseNotation(notation)
			return IntegerLen(n, b, s, no) == len(Integer(n, b, s, CaseUpper, no))
		},
		gen.Int64(),
		gen.IntRange(2, 36),
		gen.Bool(),
		gen.IntRange(0, 2),
	))

	properties.Property("rendering is pure", prop.ForAll(
		func(n int64, base int) bool {
			b := Base(base)
			return Integer(n, b, SignAuto, CaseUpper, NotationPrefix) ==
				Integer(n, b, SignAuto, CaseUpper, NotationPrefix)
		},
		gen.Int64(),
		gen.IntRange(2, 36),
	))

	properties.TestingRun(t)
}

func TestFloatProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("length helper agrees with render", prop.ForAll(
		func(f float64, places uint8, sci int, sign bool) bool {
			s := SignAuto
			if sign {
				s = SignAlways
			}
			p, sn := DecimalPlaces(places%20), SciNotation(sci)
			return FloatLen(f, p, sn, s) == len(Float(f, p, sn, s))
		},
		gen.Float64(),
		gen.UInt8(),
		gen.IntRange(0, 2),
		gen.Bool(),
	))

	properties.Property("fixed notation truncates toward zero", prop.ForAll(
		func(f float64) bool {
			s := Float(f, DecimalPlaces(0), SciNever, SignAuto)
			return s == strconv.FormatFloat(math.Trunc(f), 'f', 0, 64) ||
				(s == "0" && math.Trunc(f) == 0)
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}

// Package ioformat defines the format profile of a channel: the flags that
// decide how numbers, booleans, characters and pointers are rendered, and the
// text attributes that style them on a terminal.
package ioformat

import "fmt"

// Flag is a single formatting flag. Each Flag overwrites exactly one field of
// a Format. The set of flag types is closed.
type Flag interface {
	applyTo(*Format)
}

// Base is the numeral base for integers, 2 to 36.
type Base uint8

// Common bases. Any value from 2 to 36 is valid.
const (
	Bin  Base = 2
	Ter  Base = 3
	Quat Base = 4
	Oct  Base = 8
	Dec  Base = 10
	Doz  Base = 12
	Hex  Base = 16
	Vig  Base = 20
	B36  Base = 36
)

// MinBase and MaxBase bound the valid numeral bases.
const (
	MinBase Base = 2
	MaxBase Base = 36
)

// Valid reports whether b is within [MinBase, MaxBase].
func (b Base) Valid() bool { return b >= MinBase && b <= MaxBase }

// BaseNotation decides how a non-decimal base is marked.
type BaseNotation uint8

const (
	// NotationPrefix marks bases 2, 3, 8, 12 and 16 with a prefix (0b, 0t,
	// 0o, 0z, 0x) and any other base with a subscript.
	NotationPrefix BaseNotation = iota
	// NotationSubscript marks every non-decimal base with a "_<base>" suffix.
	NotationSubscript
	// NotationNone leaves the base unmarked.
	NotationNone
)

// NumCase is the letter case of digits above 9.
type NumCase uint8

const (
	CaseLower NumCase = iota
	CaseUpper
)

// DecimalPlaces is the number of digits rendered after the decimal point of
// a float.
type DecimalPlaces uint8

// SciNotation is the policy for scientific notation of floats.
type SciNotation uint8

const (
	// SciNever always renders fixed notation.
	SciNever SciNotation = iota
	// SciAuto renders scientific notation for very large or very small
	// magnitudes.
	SciAuto
	// SciAlways always renders scientific notation.
	SciAlways
)

// Sign is the policy for rendering the sign of numbers.
type Sign uint8

const (
	// SignAuto only renders the sign of negative numbers.
	SignAuto Sign = iota
	// SignAlways renders "+" for positive numbers too.
	SignAlways
)

// BoolStyle is the textual style of booleans.
type BoolStyle uint8

const (
	BoolLower   BoolStyle = iota // true/false
	BoolUpper                    // True/False
	BoolCaps                     // TRUE/FALSE
	BoolNumeral                  // 1/0
	BoolTest                     // PASS/FAIL
	BoolScott                    // yea/nay
)

// CharValue decides whether runes render as characters or integers.
type CharValue uint8

const (
	AsChar CharValue = iota
	AsInt
)

// PtrMode decides what part of a pointer is rendered.
type PtrMode uint8

const (
	// PtrValue renders the pointee.
	PtrValue PtrMode = iota
	// PtrAddress renders the address.
	PtrAddress
	// PtrType renders a short type tag, such as [int*].
	PtrType
	// PtrMemory dumps the bytes behind the pointer.
	PtrMemory
)

// MemSep is the separator style of memory dumps. It is a bitset.
type MemSep uint8

const (
	// SepNone renders one long string.
	SepNone MemSep = 0
	// SepByte puts a space between bytes.
	SepByte MemSep = 1 << 0
	// SepWord puts a bar between words of 8 bytes.
	SepWord MemSep = 1 << 1
	// SepAll is SepByte and SepWord.
	SepAll = SepByte | SepWord
)

// Standard is the presentation standard for text attributes.
type Standard uint8

const (
	// StdNone renders no control sequences at all.
	StdNone Standard = iota
	// StdANSI renders ANSI SGR sequences.
	StdANSI
)

// Format is a full set of formatting flags. It is a comparable value; copies
// are independent.
type Format struct {
	Base     Base
	Notation BaseNotation
	Case     NumCase
	Places   DecimalPlaces
	Sci      SciNotation
	Sign     Sign
	Bool     BoolStyle
	Char     CharValue
	Ptr      PtrMode
	MemSep   MemSep
	Standard Standard
	Attr     Attr
	FG       FG
	BG       BG
}

// DefaultPlaces is the number of decimal places in the default profile.
const DefaultPlaces DecimalPlaces = 14

// Default returns the default format profile.
func Default() Format {
	return Format{
		Base:     Dec,
		Notation: NotationPrefix,
		Case:     CaseUpper,
		Places:   DefaultPlaces,
		Sci:      SciAuto,
		Sign:     SignAuto,
		Bool:     BoolLower,
		Char:     AsChar,
		Ptr:      PtrValue,
		MemSep:   SepAll,
		Standard: StdANSI,
	}
}

// With returns a copy of f with the flags applied in order. A nil flag is
// ignored.
func (f Format) With(flags ...Flag) Format {
	for _, flag := range flags {
		if flag != nil {
			flag.applyTo(&f)
		}
	}
	return f
}

// ResetAttributes returns a copy of f with the text attributes and colors
// cleared. Numeric and notation flags are kept.
func (f Format) ResetAttributes() Format {
	f.Attr = AttrNone
	f.FG = FGNone
	f.BG = BGNone
	return f
}

// Validate checks that every field of f is in range.
func (f Format) Validate() error {
	return CheckBase(f.Base)
}

// IsAttribute reports whether flag changes how text is styled, as opposed to
// what text is rendered.
func IsAttribute(flag Flag) bool {
	switch flag.(type) {
	case Attr, FG, BG, Standard:
		return true
	}
	return false
}

// InvalidArgumentError is returned for a formatting request that can never
// succeed, such as a numeral base out of range.
type InvalidArgumentError struct {
	What   string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.What, e.Reason)
}

// CheckBase returns an *InvalidArgumentError if b is not a valid base.
func CheckBase(b Base) error {
	if !b.Valid() {
		return &InvalidArgumentError{"base", fmt.Sprintf("%d is outside %d..%d", b, MinBase, MaxBase)}
	}
	return nil
}

func (b Base) applyTo(f *Format)          { f.Base = b }
func (n BaseNotation) applyTo(f *Format)  { f.Notation = n }
func (c NumCase) applyTo(f *Format)       { f.Case = c }
func (p DecimalPlaces) applyTo(f *Format) { f.Places = p }
func (s SciNotation) applyTo(f *Format)   { f.Sci = s }
func (s Sign) applyTo(f *Format)          { f.Sign = s }
func (b BoolStyle) applyTo(f *Format)     { f.Bool = b }
func (c CharValue) applyTo(f *Format)     { f.Char = c }
func (p PtrMode) applyTo(f *Format)       { f.Ptr = p }
func (m MemSep) applyTo(f *Format)        { f.MemSep = m }
func (s Standard) applyTo(f *Format)      { f.Standard = s }
func (a Attr) applyTo(f *Format)          { f.Attr = a }
func (c FG) applyTo(f *Format)            { f.FG = c }
func (c BG) applyTo(f *Format)            { f.BG = c }

package ioformat

import (
	"fmt"
	"strconv"
	"strings"

	"src.squeak.sh/pkg/ioctrl"
)

// Attr is a set of text attributes. Unlike the other flags it is a bitset;
// combine attributes with "|".
type Attr uint32

const (
	AttrNone Attr = 0
)

const (
	Bold Attr = 1 << iota
	Faint
	Italic
	Underline
	BlinkSlow
	BlinkFast
	Invert
	Invisible
	Strike
	DoubleUnderline

	NoBold
	NoItalic
	NoUnderline
	NoBlinkSlow
	NoBlinkFast
	NoInvert
	NoInvisible
	NoStrike
)

// Attributes that turn features on are emitted before those that turn them
// off.
var attrCodes = []struct {
	attr Attr
	code int
	name string
}{
	{Bold, 1, "bold"},
	{Faint, 2, "faint"},
	{Italic, 3, "italic"},
	{Underline, 4, "underline"},
	{BlinkSlow, 5, "blink"},
	{BlinkFast, 6, "fast-blink"},
	{Invert, 7, "invert"},
	{Invisible, 8, "invisible"},
	{Strike, 9, "strike"},
	{DoubleUnderline, 21, "double-underline"},
	{NoBold, 22, "no-bold"},
	{NoItalic, 23, "no-italic"},
	{NoUnderline, 24, "no-underline"},
	{NoBlinkSlow, 25, "no-blink"},
	{NoBlinkFast, 26, "no-fast-blink"},
	{NoInvert, 27, "no-invert"},
	{NoInvisible, 28, "no-invisible"},
	{NoStrike, 29, "no-strike"},
}

// Codes returns the SGR codes of a, in emission order.
func (a Attr) Codes() []int {
	var codes []int
	for _, ac := range attrCodes {
		if a&ac.attr != 0 {
			codes = append(codes, ac.code)
		}
	}
	return codes
}

func (a Attr) String() string {
	if a == AttrNone {
		return "none"
	}
	var names []string
	for _, ac := range attrCodes {
		if a&ac.attr != 0 {
			names = append(names, ac.name)
		}
	}
	return strings.Join(names, " ")
}

// Color is one of the eight standard ANSI colors, or none.
type Color uint8

const (
	ColorNone Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

var colorNames = [...]string{"none", "black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

func parseColor(name string) (Color, bool) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return ColorNone, false
}

// FG is a foreground color flag.
type FG Color

// BG is a background color flag.
type BG Color

// Foreground and background colors.
const (
	FGNone    = FG(ColorNone)
	FGBlack   = FG(Black)
	FGRed     = FG(Red)
	FGGreen   = FG(Green)
	FGYellow  = FG(Yellow)
	FGBlue    = FG(Blue)
	FGMagenta = FG(Magenta)
	FGCyan    = FG(Cyan)
	FGWhite   = FG(White)

	BGNone    = BG(ColorNone)
	BGBlack   = BG(Black)
	BGRed     = BG(Red)
	BGGreen   = BG(Green)
	BGYellow  = BG(Yellow)
	BGBlue    = BG(Blue)
	BGMagenta = BG(Magenta)
	BGCyan    = BG(Cyan)
	BGWhite   = BG(White)
)

func (c FG) code() int {
	if Color(c) == ColorNone || Color(c) > White {
		return 39
	}
	return 30 + int(c) - 1
}

func (c BG) code() int {
	if Color(c) == ColorNone || Color(c) > White {
		return 49
	}
	return 40 + int(c) - 1
}

// ControlSequence returns the control sequence that puts a terminal into the
// attribute state of f. Under StdANSI it is an SGR sequence of the form
// ESC [ attrs ; bg ; fg m, with attrs being "0" when no attribute is set.
// Under StdNone it is empty.
func (f Format) ControlSequence() string {
	if f.Standard != StdANSI {
		return ""
	}
	var sgr []string
	for _, code := range f.Attr.Codes() {
		sgr = append(sgr, strconv.Itoa(code))
	}
	if len(sgr) == 0 {
		sgr = append(sgr, "0")
	}
	sgr = append(sgr, strconv.Itoa(f.BG.code()), strconv.Itoa(f.FG.code()))
	return "\033[" + strings.Join(sgr, ";") + "m"
}

// CursorSequence returns the control sequence that moves the cursor one cell
// in the given direction, or "" under StdNone.
func (f Format) CursorSequence(c ioctrl.Cursor) string {
	if f.Standard != StdANSI {
		return ""
	}
	switch c {
	case ioctrl.CursorLeft:
		return "\033[1D"
	case ioctrl.CursorRight:
		return "\033[1C"
	}
	return ""
}

// ParseStyling parses a space-separated list of styling names into flags.
// Attribute names are kebab case, such as "bold" or "no-underline"; all of
// them are merged into a single Attr flag. Colors are "fg-<color>" and
// "bg-<color>", and a bare color name sets the foreground. "default" resets
// the attributes and "fg-default"/"bg-default" reset the colors.
func ParseStyling(s string) ([]Flag, error) {
	var (
		flags   []Flag
		attr    Attr
		hasAttr bool
	)
	for _, name := range strings.Fields(s) {
		flag, a, err := parseOneStyling(name)
		if err != nil {
			return nil, err
		}
		if flag != nil {
			flags = append(flags, flag)
			continue
		}
		attr |= a
		hasAttr = true
	}
	if hasAttr {
		flags = append([]Flag{attr}, flags...)
	}
	return flags, nil
}

func parseOneStyling(name string) (Flag, Attr, error) {
	switch {
	case name == "default" || name == "plain":
		return nil, AttrNone, nil
	case name == "fg-default":
		return FGNone, 0, nil
	case name == "bg-default":
		return BGNone, 0, nil
	case strings.HasPrefix(name, "fg-"):
		if c, ok := parseColor(name[len("fg-"):]); ok {
			return FG(c), 0, nil
		}
	case strings.HasPrefix(name, "bg-"):
		if c, ok := parseColor(name[len("bg-"):]); ok {
			return BG(c), 0, nil
		}
	default:
		for _, ac := range attrCodes {
			if ac.name == name {
				return nil, ac.attr, nil
			}
		}
		if c, ok := parseColor(name); ok {
			return FG(c), 0, nil
		}
	}
	return nil, 0, &InvalidArgumentError{"styling", strconv.Quote(name)}
}

// Package ioctrl defines the message-level controls of a channel: verbosity,
// category, control directives and echo modes.
//
// The numeric values of Category and Ctrl are part of the contract between a
// caller and a channel and never change.
package ioctrl

import (
	"fmt"
	"strings"
)

// Verbosity is the level of verbosity necessary for a message to display.
// Lower values are more essential.
type Verbosity uint8

const (
	// Quiet is for essential messages and errors only. Shipping default.
	Quiet Verbosity = iota
	// Normal is for common messages and errors.
	Normal
	// Chatty is for most messages; detailed testing and debugging.
	Chatty
	// TMI is absolutely everything.
	TMI
)

// Verbosities lists all verbosity tiers, most essential first.
var Verbosities = [...]Verbosity{Quiet, Normal, Chatty, TMI}

var verbosityNames = [...]string{"quiet", "normal", "chatty", "tmi"}

func (v Verbosity) String() string {
	if int(v) < len(verbosityNames) {
		return verbosityNames[v]
	}
	return fmt.Sprintf("verbosity(%d)", uint8(v))
}

// Valid reports whether v is one of the four tiers.
func (v Verbosity) Valid() bool { return v <= TMI }

// ParseVerbosity parses a verbosity name, or its numeric value.
func ParseVerbosity(s string) (Verbosity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range verbosityNames {
		if s == name || s == fmt.Sprint(i) {
			return Verbosity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown verbosity %q", s)
}

// Category classifies the purpose of a message. It is a bitmask; a message
// may belong to several categories at once.
type Category uint8

const (
	// CatNone is no category. It has no signal.
	CatNone Category = 0
	// CatNormal is the default, for anything that doesn't fit elsewhere.
	CatNormal Category = 1 << (iota - 1)
	// CatWarning is for warnings that are not necessarily errors.
	CatWarning
	// CatError is for error messages.
	CatError
	// CatDebug is for debug output, such as variable dumps.
	CatDebug
	// CatTesting is for messages that may be shut off during benchmarking.
	CatTesting
	// CatAll is every category. It has no signal.
	CatAll = CatNormal | CatWarning | CatError | CatDebug | CatTesting
)

// Categories lists the single-bit categories in dispatch order.
var Categories = [...]Category{CatNormal, CatWarning, CatError, CatDebug, CatTesting}

var categoryNames = map[Category]string{
	CatNormal:  "normal",
	CatWarning: "warning",
	CatError:   "error",
	CatDebug:   "debug",
	CatTesting: "testing",
}

// Has reports whether every bit of other is set in c.
func (c Category) Has(other Category) bool { return c&other == other }

// Intersects reports whether c and other share at least one bit.
func (c Category) Intersects(other Category) bool { return c&other != 0 }

// Single reports whether c has exactly one valid bit set.
func (c Category) Single() bool {
	_, ok := categoryNames[c]
	return ok
}

// Bits returns the single-bit categories set in c, in dispatch order.
func (c Category) Bits() []Category {
	var bits []Category
	for _, bit := range Categories {
		if c.Has(bit) {
			bits = append(bits, bit)
		}
	}
	return bits
}

func (c Category) String() string {
	switch c {
	case CatNone:
		return "none"
	case CatAll:
		return "all"
	}
	var names []string
	for _, bit := range c.Bits() {
		names = append(names, categoryNames[bit])
	}
	if rest := c &^ CatAll; rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint8(rest)))
	}
	return strings.Join(names, "|")
}

// ParseCategory parses a list of category names separated by "|", "," or
// spaces. The names "all" and "none" are also accepted.
func ParseCategory(s string) (Category, error) {
	var c Category
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '|' || r == ',' || r == ' '
	})
	for _, field := range fields {
		switch field {
		case "all":
			c |= CatAll
			continue
		case "none":
			continue
		}
		found := false
		for bit, name := range categoryNames {
			if name == field {
				c |= bit
				found = true
				break
			}
		}
		if !found {
			return CatNone, fmt.Errorf("unknown category %q", field)
		}
	}
	return c, nil
}

// EchoMode controls whether, and how, a channel copies messages to its
// standard sinks.
type EchoMode uint8

const (
	// EchoNone disables the echo.
	EchoNone EchoMode = iota
	// EchoDirect writes each message straight to the sink.
	EchoDirect
	// EchoBuffered writes through a buffer that is delivered on Flush.
	EchoBuffered
)

var echoModeNames = [...]string{"none", "direct", "buffered"}

func (m EchoMode) String() string {
	if int(m) < len(echoModeNames) {
		return echoModeNames[m]
	}
	return fmt.Sprintf("echo(%d)", uint8(m))
}

// ParseEchoMode parses an echo mode name.
func ParseEchoMode(s string) (EchoMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range echoModeNames {
		if s == name {
			return EchoMode(i), nil
		}
	}
	return EchoNone, fmt.Errorf("unknown echo mode %q", s)
}

// Cursor is a basic cursor movement.
type Cursor uint8

const (
	CursorLeft Cursor = iota
	CursorRight
)

// ReadSize is the number of bytes captured from an untyped pointer when its
// memory is dumped. It has no effect on typed pointers.
type ReadSize int

// DefaultReadSize is the read size of a fresh message.
const DefaultReadSize ReadSize = 1

// MarshalText implements encoding.TextMarshaler.
func (v Verbosity) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler with ParseVerbosity.
func (v *Verbosity) UnmarshalText(text []byte) error {
	parsed, err := ParseVerbosity(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler with ParseCategory.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m EchoMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler with ParseEchoMode.
func (m *EchoMode) UnmarshalText(text []byte) error {
	parsed, err := ParseEchoMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

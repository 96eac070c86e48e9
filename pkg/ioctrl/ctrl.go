package ioctrl

import "strings"

// Ctrl is a bitfield of control directives for a channel.
type Ctrl uint8

// Primitive directives.
const (
	// Send broadcasts the buffered message.
	Send Ctrl = 1 << iota
	// Clear resets the text attributes and drops the formatting of the
	// message after it is sent.
	Clear
	// CR appends a carriage return.
	CR
	// LF appends a line feed.
	LF
	// Flush delivers any bytes buffered by the echo sinks.
	Flush
)

// Composite directives.
const (
	// SendC sends with a carriage return, keeping formatting.
	SendC = Send | CR | Flush
	// SendL sends with a line feed, keeping formatting.
	SendL = Send | LF | Flush
	// End sends and clears formatting.
	End = Send | Clear
	// EndC ends with a carriage return, clearing formatting.
	EndC = Send | Clear | CR | Flush
	// EndL ends with a line feed, clearing formatting.
	EndL = Send | Clear | LF | Flush
)

// Has reports whether all directives of d are present in c.
func (c Ctrl) Has(d Ctrl) bool { return c&d == d }

var ctrlNames = []struct {
	c    Ctrl
	name string
}{
	{Send, "send"}, {Clear, "clear"}, {CR, "cr"}, {LF, "lf"}, {Flush, "flush"},
}

func (c Ctrl) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	for _, n := range ctrlNames {
		if c.Has(n.c) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// Package channel implements a structured console-broadcast channel.
//
// A Channel accumulates one message at a time in a buffer. Values inserted
// with Print are rendered under the current format profile; text attributes
// are turned into control sequences right before the first text they affect.
// Every message has a verbosity and a category, and a permission window
// decides whether it is processed at all: a denied message is never rendered.
// The Send directive broadcasts the buffered message to the observers
// connected to the Signals of the channel, and optionally echoes it to the
// standard sinks.
//
// A Channel is not safe for concurrent use. Callers that share one between
// goroutines must serialize access themselves. Observers are called
// synchronously on the goroutine that sends the message; a panicking observer
// panics the caller of Send.
package channel

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"src.squeak.sh/pkg/ioctrl"
	"src.squeak.sh/pkg/ioformat"
	"src.squeak.sh/pkg/logutil"
	"src.squeak.sh/pkg/stringify"
)

var logger = logutil.GetLogger("[channel] ")

// AllOffWarning is written to the error sink when every category has been
// suppressed.
const AllOffWarning = "WARNING: All message categories have been turned off!\n"

// Channel is a message channel. The zero value is not usable; use New.
type Channel struct {
	vrb      ioctrl.Verbosity
	cat      ioctrl.Category
	format   ioformat.Format
	base     ioformat.Format
	readSize ioctrl.ReadSize
	dirty    bool

	buf     strings.Builder
	gate    gate
	signals Signals

	echo   echo
	stdout sink
	stderr sink
	logger *log.Logger
}

// Option configures a Channel created by New.
type Option func(*Channel)

// WithStdout sets the standard sink of the echo. It defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *Channel) { c.stdout = newSink(w) }
}

// WithStderr sets the sink that receives echoed error messages. It defaults to
// os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(c *Channel) { c.stderr = newSink(w) }
}

// WithEcho configures the echo. It defaults to EchoBuffered for every
// verbosity and category.
func WithEcho(mode ioctrl.EchoMode, vrb ioctrl.Verbosity, cat ioctrl.Category) Option {
	return func(c *Channel) { c.echo = echo{mode, vrb, cat} }
}

// WithStandard sets the presentation standard of the profile that every
// message starts with.
func WithStandard(std ioformat.Standard) Option {
	return func(c *Channel) { c.base = c.base.With(std) }
}

// WithBase applies flags to the profile that every message starts with.
func WithBase(flags ...ioformat.Flag) Option {
	return func(c *Channel) { c.base = c.base.With(flags...) }
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Channel) { c.logger = l }
}

// New creates a Channel. Every message is permitted initially.
func New(opts ...Option) *Channel {
	c := &Channel{
		base:   ioformat.Default(),
		gate:   newGate(),
		echo:   echo{ioctrl.EchoBuffered, ioctrl.TMI, ioctrl.CatAll},
		stdout: newSink(os.Stdout),
		stderr: newSink(os.Stderr),
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.vrb = ioctrl.Normal
	c.cat = ioctrl.CatNormal
	c.format = c.base
	c.readSize = ioctrl.DefaultReadSize
	return c
}

func (c *Channel) permitted() bool { return c.gate.canParse(c.vrb, c.cat) }

// inject appends text to the buffer, preceded by the control sequence of the
// current attributes if they changed since the last insertion.
func (c *Channel) inject(text string) {
	if c.dirty {
		c.buf.WriteString(c.format.ControlSequence())
		c.dirty = false
	}
	c.buf.WriteString(text)
}

// Print inserts values into the current message. Control values are
// interpreted rather than rendered:
//
//   - an ioctrl.Verbosity or ioctrl.Category sets that of the message
//   - an ioctrl.Ctrl runs the directive, see Ctrl
//   - an ioctrl.Cursor inserts a cursor movement
//   - an ioctrl.ReadSize sets how many bytes of an untyped pointer are dumped
//   - an ioformat.Format replaces the whole profile
//   - any other ioformat.Flag changes one field of the profile
//
// Everything else is rendered with stringify. Print stops at the first error,
// which is an invalid flag, a value that cannot be rendered under the current
// profile, such as a memory dump in base 10, or the failure of an echo write.
// A denied message never fails on rendering.
func (c *Channel) Print(vals ...any) error {
	for _, v := range vals {
		if err := c.print(v); err != nil {
			return err
		}
	}
	return nil
}

func (c *Channel) print(v any) error {
	switch v := v.(type) {
	case ioctrl.Verbosity:
		c.Vrb(v)
	case ioctrl.Category:
		c.Cat(v)
	case ioctrl.Ctrl:
		return c.Ctrl(v)
	case ioctrl.Cursor:
		if c.permitted() {
			c.inject(c.format.CursorSequence(v))
		}
	case ioctrl.ReadSize:
		if c.permitted() {
			c.readSize = v
		}
	case ioformat.Format:
		c.setFormat(v)
	case ioformat.Flag:
		return c.Set(v)
	default:
		if !c.permitted() {
			return nil
		}
		r := stringify.Renderer{Format: c.format, ReadSize: int(c.readSize)}
		s, err := r.Check(v)
		if err != nil {
			return err
		}
		c.inject(s)
	}
	return nil
}

// Printf inserts text formatted with fmt.Sprintf.
func (c *Channel) Printf(format string, args ...any) {
	if c.permitted() {
		c.inject(fmt.Sprintf(format, args...))
	}
}

// Set applies format flags to the current message. An invalid base is
// reported even if the message is denied.
func (c *Channel) Set(flags ...ioformat.Flag) error {
	for _, flag := range flags {
		if b, ok := flag.(ioformat.Base); ok {
			if err := ioformat.CheckBase(b); err != nil {
				return err
			}
		}
	}
	if !c.permitted() {
		return nil
	}
	for _, flag := range flags {
		if flag == nil {
			continue
		}
		c.format = c.format.With(flag)
		if ioformat.IsAttribute(flag) {
			c.dirty = true
		}
	}
	return nil
}

func (c *Channel) setFormat(f ioformat.Format) {
	if f.Standard != c.format.Standard || f.Attr != c.format.Attr ||
		f.FG != c.format.FG || f.BG != c.format.BG {
		c.dirty = true
	}
	c.format = f
}

// Vrb sets the verbosity of the current message.
func (c *Channel) Vrb(v ioctrl.Verbosity) *Channel {
	c.vrb = v
	c.gate.invalidate()
	return c
}

// Cat sets the category of the current message.
func (c *Channel) Cat(cat ioctrl.Category) *Channel {
	c.cat = cat
	c.gate.invalidate()
	return c
}

// Ctrl runs a directive. Its parts run in a fixed order: Clear, CR, LF, Send,
// Flush. Clear resets the text attributes and, if the message already holds
// text, ends the styling inside the message; it also makes Send reset the
// message state afterwards.
func (c *Channel) Ctrl(d ioctrl.Ctrl) error {
	keep := true
	if d.Has(ioctrl.Clear) {
		keep = false
		c.format = c.format.ResetAttributes()
		if c.buf.Len() > 0 && c.permitted() {
			c.buf.WriteString(c.format.ControlSequence())
		}
		c.dirty = false
	}
	if d.Has(ioctrl.CR) && c.permitted() {
		c.inject("\r")
	}
	if d.Has(ioctrl.LF) && c.permitted() {
		c.inject("\n")
	}
	var err error
	if d.Has(ioctrl.Send) {
		err = c.transmit(keep)
	}
	if d.Has(ioctrl.Flush) {
		if ferr := c.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

// Send broadcasts the current message and keeps its state for the next one.
func (c *Channel) Send() error { return c.Ctrl(ioctrl.Send) }

// End broadcasts the current message and resets the message state.
func (c *Channel) End() error { return c.Ctrl(ioctrl.End) }

// Endl ends the current message with a line feed, broadcasts it, resets the
// message state and flushes the echo.
func (c *Channel) Endl() error { return c.Ctrl(ioctrl.EndL) }

// ConfigureEcho changes which messages are copied to the standard sinks, and
// how.
func (c *Channel) ConfigureEcho(mode ioctrl.EchoMode, vrb ioctrl.Verbosity, cat ioctrl.Category) {
	c.echo = echo{mode, vrb, cat}
}

// ShutUpCat suppresses the given categories.
func (c *Channel) ShutUpCat(cat ioctrl.Category) {
	if c.gate.suppress(cat) {
		c.logger.Println("all message categories have been suppressed")
		if err := c.stderr.write(ioctrl.EchoDirect, AllOffWarning); err != nil {
			c.logger.Println("write warning:", err)
		}
	}
}

// ShutUpVrb suppresses every tier more verbose than v.
func (c *Channel) ShutUpVrb(v ioctrl.Verbosity) { c.gate.limit(v) }

// SpeakUpCat permits the given categories.
func (c *Channel) SpeakUpCat(cat ioctrl.Category) { c.gate.allow(cat) }

// SpeakUpVrb permits v and every tier more essential, if they were not
// permitted already.
func (c *Channel) SpeakUpVrb(v ioctrl.Verbosity) { c.gate.raise(v) }

// SpeakUp permits every message.
func (c *Channel) SpeakUp() { c.gate.open() }

// Permits reports whether a message of the given verbosity and category would
// currently be processed.
func (c *Channel) Permits(v ioctrl.Verbosity, cat ioctrl.Category) bool {
	return v <= c.gate.maxVrb && cat.Intersects(c.gate.allowed)
}

// Window returns the most verbose tier and the categories currently
// permitted.
func (c *Channel) Window() (ioctrl.Verbosity, ioctrl.Category) {
	return c.gate.maxVrb, c.gate.allowed
}

// Format returns the format profile of the current message.
func (c *Channel) Format() ioformat.Format { return c.format }

// Verbosity returns the verbosity of the current message.
func (c *Channel) Verbosity() ioctrl.Verbosity { return c.vrb }

// Category returns the category of the current message.
func (c *Channel) Category() ioctrl.Category { return c.cat }

// Signals returns the observer points of the channel.
func (c *Channel) Signals() *Signals { return &c.signals }

// Buffer returns the text of the current message.
func (c *Channel) Buffer() string { return c.buf.String() }

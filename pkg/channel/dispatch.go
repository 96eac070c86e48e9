package channel

import (
	"bufio"
	"io"

	"src.squeak.sh/pkg/errutil"
	"src.squeak.sh/pkg/ioctrl"
)

// echo is the configuration of the copy of messages to the standard sinks.
type echo struct {
	mode ioctrl.EchoMode
	vrb  ioctrl.Verbosity
	cat  ioctrl.Category
}

func (e echo) accepts(vrb ioctrl.Verbosity, cat ioctrl.Category) bool {
	return e.mode != ioctrl.EchoNone && vrb <= e.vrb && cat.Intersects(e.cat)
}

// sink is a standard stream with an optional buffer in front of it.
type sink struct {
	w   io.Writer
	buf *bufio.Writer
}

func newSink(w io.Writer) sink {
	return sink{w, bufio.NewWriter(w)}
}

func (s sink) write(mode ioctrl.EchoMode, msg string) error {
	var err error
	if mode == ioctrl.EchoBuffered {
		_, err = s.buf.WriteString(msg)
	} else {
		_, err = io.WriteString(s.w, msg)
	}
	return err
}

func (s sink) flush() error {
	err := s.buf.Flush()
	if f, ok := s.w.(interface{ Sync() error }); ok && err == nil {
		// Sync fails on terminals and pipes; only a failed buffer flush is
		// reported.
		f.Sync()
	}
	return err
}

// transmit broadcasts the buffered message. When keep is false, the message
// state is reset afterwards. The buffer is always cleared, even if an
// observer panics.
func (c *Channel) transmit(keep bool) error {
	defer c.finish(keep)
	if c.buf.Len() == 0 {
		return nil
	}
	msg := c.buf.String()
	vrb, cat := c.vrb, c.cat

	// An observer of tier v receives everything at v or more essential.
	for v := vrb; v <= ioctrl.TMI; v++ {
		c.signals.vrb[v].emit(func(fn VrbObserver) { fn(msg, cat) })
	}
	for i, bit := range ioctrl.Categories {
		if cat.Has(bit) {
			c.signals.cat[i].emit(func(fn CatObserver) { fn(msg, vrb) })
		}
	}
	c.signals.full.emit(func(fn FullObserver) { fn(msg, vrb, cat) })
	c.signals.all.emit(func(fn AllObserver) { fn(msg) })

	return c.echoMessage(msg, vrb, cat)
}

func (c *Channel) echoMessage(msg string, vrb ioctrl.Verbosity, cat ioctrl.Category) error {
	if !c.echo.accepts(vrb, cat) {
		return nil
	}
	if cat.Has(ioctrl.CatError) {
		return c.stderr.write(c.echo.mode, msg)
	}
	return c.stdout.write(c.echo.mode, msg)
}

func (c *Channel) finish(keep bool) {
	c.buf.Reset()
	if keep {
		c.dirty = c.format.ResetAttributes() != c.format
		return
	}
	c.vrb = ioctrl.Normal
	c.cat = ioctrl.CatNormal
	c.format = c.base
	c.readSize = ioctrl.DefaultReadSize
	c.dirty = false
	c.gate.invalidate()
}

// Flush delivers the messages held by a buffered echo. It returns the errors
// of both sinks combined.
func (c *Channel) Flush() error {
	return errutil.Multi(c.stdout.flush(), c.stderr.flush())
}

package sys

import (
	"os"
	"sync"
	"sync/atomic"
)

// DefaultColumns is the width assumed when the terminal size is unknown.
const DefaultColumns = 80

// TermWidth provides the number of columns of a terminal. The value is cached
// and refreshed when the window size changes; where there is no signal for
// that, every call to Columns queries the terminal.
type TermWidth struct {
	file     *os.File
	cols     atomic.Int64
	stopOnce sync.Once
	stop     func()
	done     chan struct{}
}

// NewTermWidth returns a TermWidth for the terminal referenced by file. If
// file is not a terminal, Columns returns DefaultColumns. Close must be
// called to stop watching for size changes.
func NewTermWidth(file *os.File) *TermWidth {
	t := &TermWidth{file: file, done: make(chan struct{})}
	t.poll()
	if pollOnRead {
		t.stop = func() {}
		return t
	}
	sigCh, stop := NotifyResize()
	t.stop = stop
	go func() {
		for {
			select {
			case <-sigCh:
				t.poll()
			case <-t.done:
				return
			}
		}
	}()
	return t
}

func (t *TermWidth) poll() {
	_, col := WinSize(t.file)
	if col <= 0 {
		col = DefaultColumns
	}
	t.cols.Store(int64(col))
}

// Columns returns the number of columns.
func (t *TermWidth) Columns() int {
	if pollOnRead {
		t.poll()
	}
	return int(t.cols.Load())
}

// Refresh queries the terminal again.
func (t *TermWidth) Refresh() { t.poll() }

// Close stops watching for size changes.
func (t *TermWidth) Close() {
	t.stopOnce.Do(func() {
		t.stop()
		close(t.done)
	})
}

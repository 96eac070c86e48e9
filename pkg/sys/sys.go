// Package sys provides terminal utilities with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

const sigsChanBufferSize = 8

// NotifyResize returns a channel on which window size changes are delivered,
// and a function that stops the delivery. On systems without a window size
// signal the channel never receives.
func NotifyResize() (<-chan os.Signal, func()) { return notifyResize() }

// WinSize queries the size of the terminal referenced by the given file. It
// returns -1, -1 if the file is not a terminal.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// IsATTY determines whether the given file descriptor is a terminal,
// including a Cygwin or MSYS2 pty.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

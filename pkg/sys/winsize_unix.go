//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

const (
	sigWINCH   = unix.SIGWINCH
	pollOnRead = false
)

func winSize(file *os.File) (row, col int) {
	fd := int(file.Fd())
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1
	}

	// Some terminals, such as serial consoles, report zero.
	if ws.Col == 0 {
		ws.Col = DefaultColumns
	}
	if ws.Row == 0 {
		ws.Row = 24
	}

	return int(ws.Row), int(ws.Col)
}

package sys

import "runtime"

// DumpStack returns the stack trace of the calling goroutine, as recorded
// inside a deferred recover.
func DumpStack() string {
	for size := 4096; ; size *= 2 {
		buf := make([]byte, size)
		if n := runtime.Stack(buf, false); n < size {
			return string(buf[:n])
		}
	}
}

package stringify

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"runtime"
	"strconv"
	"sync"
	"syscall"

	"src.squeak.sh/pkg/ioformat"
)

// Kinded is implemented by errors that name their own kind.
type Kinded interface {
	error
	ErrorKind() string
}

var (
	kindsMu sync.RWMutex
	kinds   []errorKind
)

type errorKind struct {
	target error
	kind   string
}

// RegisterErrorKind makes Error tag every error that matches target with
// errors.Is as kind. Later registrations take precedence.
func RegisterErrorKind(target error, kind string) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	kinds = append(kinds, errorKind{target, kind})
}

func registeredKind(err error) (string, bool) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	for i := len(kinds) - 1; i >= 0; i-- {
		if errors.Is(err, kinds[i].target) {
			return kinds[i].kind, true
		}
	}
	return "", false
}

// Error renders err as "[KIND: message]". System errors include their code,
// as in "[SYSTEM ERROR: (2) open x: no such file or directory]". A nil error
// renders as "[ERROR: nil]".
func Error(err error) string {
	if err == nil {
		return "[ERROR: nil]"
	}
	tag, code := errorTag(err)
	if code != "" {
		return "[" + tag + ": (" + code + ") " + err.Error() + "]"
	}
	return "[" + tag + ": " + err.Error() + "]"
}

// errorTag returns the kind of err and, for system errors, its code.
func errorTag(err error) (kind, code string) {
	var kinded Kinded
	if errors.As(err, &kinded) {
		return kinded.ErrorKind(), ""
	}
	if kind, ok := registeredKind(err); ok {
		return kind, ""
	}

	var (
		errno   syscall.Errno
		rtErr   runtime.Error
		argErr  *ioformat.InvalidArgumentError
		numErr  *strconv.NumError
		pathErr *fs.PathError
	)
	switch {
	case errors.As(err, &errno):
		return "SYSTEM ERROR", strconv.FormatUint(uint64(errno), 10)
	case errors.As(err, &rtErr):
		return "RUNTIME ERROR", ""
	case errors.As(err, &argErr):
		return "INVALID ARGUMENT ERROR", ""
	case errors.As(err, &numErr):
		if errors.Is(numErr.Err, strconv.ErrRange) {
			return "OUT OF RANGE ERROR", ""
		}
		return "INVALID ARGUMENT ERROR", ""
	case errors.Is(err, errors.ErrUnsupported):
		return "UNSUPPORTED ERROR", ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "CONTEXT ERROR", ""
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.ErrClosedPipe), errors.As(err, &pathErr):
		return "IO ERROR", ""
	}
	return "ERROR", ""
}

// Package errutil contains utilities for working with errors.
package errutil

import "strings"

// Multi combines errors into one. Nil errors are dropped, and errors returned
// by Multi are flattened, so Multi(Multi(a, b), c) equals Multi(a, b, c). It
// returns nil when no error remains and the error itself when only one
// does. Otherwise the result reports every message, and errors.Is and
// errors.As look into each error.
func Multi(errs ...error) error {
	var flat multiError
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case multiError:
			flat = append(flat, err...)
		default:
			flat = append(flat, err)
		}
	}
	if len(flat) <= 1 {
		if len(flat) == 0 {
			return nil
		}
		return flat[0]
	}
	return flat
}

type multiError []error

func (me multiError) Error() string {
	msgs := make([]string, len(me))
	for i, err := range me {
		msgs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

func (me multiError) Unwrap() []error { return me }

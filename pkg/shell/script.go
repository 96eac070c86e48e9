package shell

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

var errSourceNotUTF8 = errors.New("source is not UTF-8")

// Script runs the command lines of a file, stopping at the first error or
// quit command. Lines starting with # are skipped.
func (sh *Shell) Script(fname string) error {
	code, err := readFileUTF8(fname)
	if err != nil {
		return fmt.Errorf("cannot read script %q: %w", fname, err)
	}
	for i, line := range strings.Split(code, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		quit, err := sh.Exec(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", fname, i+1, err)
		}
		if quit {
			return nil
		}
	}
	return nil
}

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// Package wcwidth computes the display width of text in a terminal.
package wcwidth

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/width"
)

var (
	overrides      = map[rune]int{}
	overridesMutex sync.RWMutex
)

// OfRune returns the number of terminal columns taken by r: 0 for control
// characters and combining marks, 2 for East Asian wide and fullwidth
// characters, and 1 otherwise.
func OfRune(r rune) int {
	overridesMutex.RLock()
	w, ok := overrides[r]
	overridesMutex.RUnlock()
	if ok {
		return w
	}
	switch {
	case r == 0, unicode.IsControl(r):
		return 0
	case unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf):
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// Of returns the number of terminal columns taken by s. Control sequences
// introduced by ESC [ take no columns.
func Of(s string) int {
	w := 0
	for i := 0; i < len(s); {
		if n := csiLen(s[i:]); n > 0 {
			i += n
			continue
		}
		r, size := decodeRune(s[i:])
		w += OfRune(r)
		i += size
	}
	return w
}

// csiLen returns the length of the control sequence at the start of s, or 0.
func csiLen(s string) int {
	if len(s) < 2 || s[0] != '\033' || s[1] != '[' {
		return 0
	}
	for i := 2; i < len(s); i++ {
		if s[i] >= 0x40 && s[i] <= 0x7e {
			return i + 1
		}
	}
	return len(s)
}

func decodeRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 1
}

// Override overrides the width of a rune. A negative width removes the
// override.
func Override(r rune, w int) {
	if w < 0 {
		Unoverride(r)
		return
	}
	overridesMutex.Lock()
	defer overridesMutex.Unlock()
	overrides[r] = w
}

// Unoverride removes the override of the width of a rune.
func Unoverride(r rune) {
	overridesMutex.Lock()
	defer overridesMutex.Unlock()
	delete(overrides, r)
}

// Trim trims s to at most w columns.
func Trim(s string, w int) string {
	used := 0
	for i, r := range s {
		used += OfRune(r)
		if used > w {
			return s[:i]
		}
	}
	return s
}

// Force trims or pads s with spaces so that it takes exactly w columns.
func Force(s string, w int) string {
	s = Trim(s, w)
	return s + strings.Repeat(" ", w-Of(s))
}

// TrimEachLine trims each line of s to at most w columns.
func TrimEachLine(s string, w int) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = Trim(lines[i], w)
	}
	return strings.Join(lines, "\n")
}

// Package decor builds banners and padded lines sized to a terminal.
//
// Every function returns a plain string; the result is meant to be printed to
// a channel like any other text.
package decor

import (
	"strings"

	"src.squeak.sh/pkg/wcwidth"
)

// Columns provides the width of the output, in columns. *sys.TermWidth
// implements it.
type Columns interface {
	Columns() int
}

// Fixed is a Columns of constant width.
type Fixed int

// Columns returns w.
func (w Fixed) Columns() int { return int(w) }

// Align is the alignment of text within a padded field.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Decor builds lines as wide as its Columns.
type Decor struct {
	cols Columns
}

// New returns a Decor sized by cols.
func New(cols Columns) Decor { return Decor{cols} }

// Width returns the current width.
func (d Decor) Width() int { return d.cols.Columns() }

// Fill returns r repeated across the whole width.
func (d Decor) Fill(r rune) string { return repeat(r, d.Width()) }

// Left returns text followed by fill up to the whole width.
func (d Decor) Left(text string, fill rune) string {
	return Pad(d.Width(), AlignLeft, text, fill)
}

// Center returns text centered in fill across the whole width.
func (d Decor) Center(text string, fill rune) string {
	return Pad(d.Width(), AlignCenter, text, fill)
}

// Right returns fill followed by text up to the whole width.
func (d Decor) Right(text string, fill rune) string {
	return Pad(d.Width(), AlignRight, text, fill)
}

// Pad pads text with fill to n columns. Text that is already n columns or
// wider is returned unchanged. When centering, the extra column of an odd
// padding goes to the right.
func Pad(n int, align Align, text string, fill rune) string {
	gap := n - wcwidth.Of(text)
	if gap <= 0 {
		return text
	}
	switch align {
	case AlignCenter:
		return repeat(fill, gap/2) + text + repeat(fill, gap-gap/2)
	case AlignRight:
		return repeat(fill, gap) + text
	default:
		return text + repeat(fill, gap)
	}
}

// repeat returns r repeated to cover n columns. A wide fill rune that cannot
// cover the last column exactly is followed by a space.
func repeat(r rune, n int) string {
	w := wcwidth.OfRune(r)
	if n <= 0 || w <= 0 {
		return ""
	}
	s := strings.Repeat(string(r), n/w)
	if rest := n % w; rest > 0 {
		s += strings.Repeat(" ", rest)
	}
	return s
}

package stringify

import "src.squeak.sh/pkg/ioformat"

var boolWords = map[ioformat.BoolStyle][2]string{
	ioformat.BoolLower:   {"false", "true"},
	ioformat.BoolUpper:   {"False", "True"},
	ioformat.BoolCaps:    {"FALSE", "TRUE"},
	ioformat.BoolNumeral: {"0", "1"},
	ioformat.BoolTest:    {"FAIL", "PASS"},
	ioformat.BoolScott:   {"nay", "yea"},
}

func boolWord(v bool, style ioformat.BoolStyle) string {
	words, ok := boolWords[style]
	if !ok {
		words = boolWords[ioformat.BoolLower]
	}
	if v {
		return words[1]
	}
	return words[0]
}

// Bool renders v in the given style. Unknown styles render as BoolLower.
func Bool(v bool, style ioformat.BoolStyle) string { return boolWord(v, style) }

// BoolLen returns the length of Bool(v, style).
func BoolLen(v bool, style ioformat.BoolStyle) int { return len(boolWord(v, style)) }

// Char renders r as a character, or under AsInt as an integer in the base
// and notation of f.
func Char(r rune, f ioformat.Format) string {
	if f.Char == ioformat.AsInt {
		return Integer(r, f.Base, f.Sign, f.Case, f.Notation)
	}
	return string(r)
}

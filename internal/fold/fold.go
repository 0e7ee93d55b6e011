// Package fold implements the ASCII-folding collaborator the spec assumes:
// a per-character fold_ascii(c) -> sequence_of_chars, and a whole-string
// folder built on top of it. Diacritics are stripped via Unicode NFD
// decomposition (golang.org/x/text/unicode/norm); a small table handles
// letters that do not decompose into a base Latin letter plus combining
// marks (ß, æ, ø, ...), mirroring how ASCII-folding filters in search
// engines are commonly built.
package fold

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// special holds single runes that fold to a short ASCII run not reachable
// by NFD decomposition alone.
var special = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'đ': "d",
	'ð': "d",
	'þ': "th",
	'ħ': "h",
	'ł': "l",
	'ŋ': "n",
	'ı': "i",
	'ĳ': "ij",
	'ẛ': "s",
}

// Rune folds a single code point to the sequence of ASCII code units it
// represents. It is the primitive the spec calls fold_ascii(c); a rune with
// no reasonable ASCII form folds to an empty sequence.
func Rune(r rune) []rune {
	if r < utf8.RuneSelf {
		return []rune{r}
	}
	if repl, ok := special[r]; ok {
		return []rune(repl)
	}

	decomposed := norm.NFD.String(string(r))
	out := make([]rune, 0, len(decomposed))
	for _, dr := range decomposed {
		if unicode.Is(unicode.Mn, dr) {
			continue
		}
		if dr < utf8.RuneSelf {
			out = append(out, dr)
		}
	}
	return out
}

// ASCII folds an entire string to its ASCII form, character by character.
func ASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		for _, fr := range Rune(r) {
			b.WriteRune(fr)
		}
	}
	return b.String()
}

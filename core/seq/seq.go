// core/seq/seq.go
package seq

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrEmpty is returned by Validate when nothing is left after normalization.
var ErrEmpty = errors.New("empty sequence")

// InvalidBaseError reports the first symbol outside the RNA alphabet.
type InvalidBaseError struct {
	Pos  int // 1-based, in the normalized sequence
	Base rune
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid base %q at %d; allowed: A C G U T N", e.Base, e.Pos)
}

// PairKind classifies a query/reference base pair.
type PairKind uint8

const (
	NoPair PairKind = iota
	Wobble
	WatsonCrick
)

// Symbol is the glyph drawn on the match line for a pair.
func (k PairKind) Symbol() byte {
	switch k {
	case WatsonCrick:
		return '|'
	case Wobble:
		return ':'
	default:
		return ' '
	}
}

// Gap fills sequence lines where one side has no base.
const Gap = '-'

// Normalize removes spaces/quotes, uppercases bases and maps T to U. A string that is
// already normalized is returned as is, without copying.
func Normalize(s string) string {
	if normalized(s) {
		return s
	}
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		r = unicode.ToUpper(r)
		if r == 'T' {
			r = 'U'
		}
		if r < unicode.MaxASCII {
			out = append(out, byte(r))
		} else {
			out = append(out, string(r)...)
		}
	}
	return string(out)
}

// normalized reports whether Normalize would leave s unchanged.
func normalized(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= unicode.MaxASCII || c == 'T' || (c >= 'a' && c <= 'z') ||
			c == '\'' || c == '"' || unicode.IsSpace(rune(c)) {
			return false
		}
	}
	return true
}

// Validate returns a normalized sequence or an error if any symbol is not A/C/G/U/N.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, ErrEmpty
	}
	pos := 0
	for _, r := range s {
		pos++
		switch r {
		case 'A', 'C', 'G', 'U', 'N':
		default:
			return "", &InvalidBaseError{Pos: pos, Base: r}
		}
	}
	return s, nil
}

// Reverse returns s read backwards (no complement).
func Reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// Pairs reports how query base a pairs with reference base b. Case-insensitive;
// T is read as U.
func Pairs(a, b byte) PairKind {
	a, b = upperU(a), upperU(b)
	switch {
	case (a == 'A' && b == 'U') || (a == 'U' && b == 'A'):
		return WatsonCrick
	case (a == 'G' && b == 'C') || (a == 'C' && b == 'G'):
		return WatsonCrick
	case (a == 'G' && b == 'U') || (a == 'U' && b == 'G'):
		return Wobble
	default:
		return NoPair
	}
}

func upperU(c byte) byte {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c == 'T' {
		return 'U'
	}
	return c
}

// ToUpper uppercases ASCII letters in place.
func ToUpper(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}

// Lower returns the lowercase form of an ASCII letter.
func Lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

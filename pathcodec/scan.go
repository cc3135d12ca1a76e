package pathcodec

import (
	stdconv "strconv"

	"github.com/tdewolff/parse/v2/strconv"
)

// token is either a command letter or a number. bad tokens are
// non-numeric garbage in number position.
type token struct {
	pos    int
	letter byte
	num    float64
	text   string
	bad    bool
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\n' || c == '\r' || c == '\t'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// tokenize splits interchange text into tokens. Numbers may carry a sign,
// decimals and an exponent. Letters are never part of a number except for
// the exponent marker, which the number scanner consumes itself.
//
// The scanner finds the extent of a number; the value is then converted
// by the standard library, which rounds correctly for every input. Encoded
// coordinates therefore decode bit for bit.
func tokenize(text string) []token {
	b := []byte(text)
	var toks []token
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case isSeparator(c):
			i++
		case isLetter(c):
			toks = append(toks, token{pos: i, letter: c})
			i++
		default:
			_, n := strconv.ParseFloat(b[i:])
			num, err := stdconv.ParseFloat(string(b[i:i+n]), 64)
			if n == 0 || err != nil {
				j := i + 1
				for j < len(b) && !isSeparator(b[j]) && !isLetter(b[j]) {
					j++
				}
				toks = append(toks, token{pos: i, text: string(b[i:j]), bad: true})
				i = j
				continue
			}
			toks = append(toks, token{pos: i, num: num, text: string(b[i : i+n])})
			i += n
		}
	}
	return toks
}

package parser

import (
	"strings"
	"unicode"
)

// Tokenize splits input on whitespace, keeping '…' and "…" together as one
// token without the quotes. A quote only opens at the start of a token and
// only its own kind closes it, so apostrophes inside words stay literal.
// An unterminated quote absorbs the rest of the line.
//
// quoted[i] reports whether tokens[i] was written in quotes; such tokens
// are always values, even when they look like flags.
func Tokenize(input string) (tokens []string, quoted []bool) {
	var current strings.Builder
	var quote rune
	var inQuotes bool

	flush := func() {
		if current.Len() > 0 || inQuotes {
			tokens = append(tokens, current.String())
			quoted = append(quoted, inQuotes)
		}
		current.Reset()
		inQuotes = false
	}

	for _, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)

		case (r == '\'' || r == '"') && current.Len() == 0 && !inQuotes:
			quote = r
			inQuotes = true

		case unicode.IsSpace(r):
			flush()

		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens, quoted
}

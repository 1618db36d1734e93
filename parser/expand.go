package parser

import (
	"strings"
	"unicode"

	"cmdpalette/grammar"
)

// Expand rewrites a leading two-letter preset ("ic") into its canonical
// "entity verb" form. The remainder of the input is kept verbatim; when
// there is no remainder a trailing space is appended so the cursor is
// ready for the next argument. Unknown first tokens pass through.
func Expand(reg *grammar.Registry, raw string) string {
	trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
	end := strings.IndexFunc(trimmed, unicode.IsSpace)
	first, rest := trimmed, ""
	if end >= 0 {
		first, rest = trimmed[:end], trimmed[end:]
	}

	preset, ok := reg.Preset(first)
	if !ok {
		return raw
	}
	if strings.TrimSpace(rest) == "" {
		return preset.Expansion + " "
	}
	return preset.Expansion + rest
}

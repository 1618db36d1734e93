package parser

import (
	"sort"
	"strings"

	"cmdpalette/model"
)

// Format regenerates the canonical command text for cmd: the full entity
// and verb names followed by every flag in --name=value form, sorted by
// name. Values that need quoting are written as a separate token, since
// a quote only opens at the start of a token. Parsing the result yields
// the same flags and idempotency key. Unresolved commands come back as
// typed.
func Format(cmd model.ParsedCommand) string {
	if cmd.Builtin {
		return strings.TrimSpace(cmd.Verb + " " + cmd.Subject)
	}
	if cmd.Entity == "" {
		return cmd.Raw
	}

	names := make([]string, 0, len(cmd.Flags))
	for name := range cmd.Flags {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := []string{cmd.Entity, cmd.Verb}
	for _, name := range names {
		v := cmd.Flags[name]
		if b, ok := v.(bool); ok && b {
			parts = append(parts, "--"+name)
			continue
		}
		value := FormatValue(v)
		if needsQuotes(value) {
			parts = append(parts, "--"+name, quote(value))
			continue
		}
		parts = append(parts, "--"+name+"="+value)
	}
	return strings.Join(parts, " ")
}

func needsQuotes(s string) bool {
	return s == "" || strings.ContainsAny(s, " \t\"'")
}

func quote(s string) string {
	if strings.Contains(s, `"`) {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}

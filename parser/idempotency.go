package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"cmdpalette/model"

	"github.com/google/uuid"
)

var keySpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:cmdpalette:command"))

// IdempotencyKey derives a deterministic key from entity, verb and flag
// values. Flags are sorted by name so insertion order never matters.
func IdempotencyKey(entity, verb string, flags map[string]any) string {
	return uuid.NewSHA1(keySpace, []byte(Canonical(entity, verb, flags))).String()
}

// Canonical returns the "entity|verb|name=value|…" string the key is
// derived from.
func Canonical(entity, verb string, flags map[string]any) string {
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)+2)
	parts = append(parts, entity, verb)
	for _, name := range names {
		parts = append(parts, name+"="+FormatValue(flags[name]))
	}
	return strings.Join(parts, "|")
}

// FormatValue renders a flag value the way it appears in keys and in
// regenerated command text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func builtinKey(cmd model.ParsedCommand) string {
	flags := map[string]any{}
	if cmd.Subject != "" {
		flags["subject"] = cmd.Subject
	}
	return IdempotencyKey("", cmd.Verb, flags)
}

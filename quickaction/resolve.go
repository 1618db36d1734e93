package quickaction

import (
	"regexp"
	"strings"
	"unicode"

	"cmdpalette/model"
)

var placeholderRegex = regexp.MustCompile(`\{([^{}\s]+)\}`)

// aliases fill a placeholder from the first present source column when
// no header matches it literally.
var aliases = []struct {
	placeholder string
	sources     []string
}{
	{"slug", []string{"slug", "id", "name", "company"}},
	{"email", []string{"email", "user", "emailaddress"}},
	{"name", []string{"name", "rolename", "role"}},
}

// identColumns are preferred, in order, when labelling a row.
var identColumns = []string{"name", "slug", "email", "company"}

// Resolve fills the {placeholders} of template from the selected row of
// table. A template without placeholders is returned as is. It reports
// false when a placeholder cannot be filled; the caller should prompt
// instead of running the command.
func Resolve(template string, table model.TableState) (string, bool) {
	if !placeholderRegex.MatchString(template) {
		return template, true
	}

	values := substitutions(table)
	if values == nil {
		return "", false
	}

	resolved := true
	out := placeholderRegex.ReplaceAllStringFunc(template, func(m string) string {
		v, ok := values[normalize(m[1:len(m)-1])]
		if !ok {
			resolved = false
			return m
		}
		return v
	})
	if !resolved {
		return "", false
	}
	return out, true
}

// substitutions maps normalized header names and aliases to the cells of
// the selected row. Empty cells are left out. It returns nil when no row
// is selected.
func substitutions(table model.TableState) map[string]string {
	row := table.SelectedRow()
	if row == nil {
		return nil
	}

	values := make(map[string]string, len(table.Headers)+len(aliases))
	for i, h := range table.Headers {
		if i >= len(row) {
			break
		}
		key := normalize(h)
		if _, ok := values[key]; ok || strings.TrimSpace(row[i]) == "" {
			continue
		}
		values[key] = row[i]
	}

	literal := make(map[string]string, len(values))
	for k, v := range values {
		literal[k] = v
	}
	for _, a := range aliases {
		if _, ok := literal[a.placeholder]; ok {
			continue
		}
		for _, src := range a.sources {
			if v, ok := literal[src]; ok {
				values[a.placeholder] = v
				break
			}
		}
	}
	return values
}

// LabelFor returns the action label followed by an identifier from the
// selected row, for display only.
func LabelFor(action model.QuickAction, table model.TableState) string {
	if !action.NeedsRow {
		return action.Label
	}
	row := table.SelectedRow()
	if row == nil {
		return action.Label
	}

	for _, col := range identColumns {
		for i, h := range table.Headers {
			if i < len(row) && normalize(h) == col && strings.TrimSpace(row[i]) != "" {
				return action.Label + " " + row[i]
			}
		}
	}
	if len(row) > 0 && strings.TrimSpace(row[0]) != "" {
		return action.Label + " " + row[0]
	}
	return action.Label
}

// normalize lowercases s and drops everything but letters and digits, so
// "Email Address" and "email_address" match {emailaddress}.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

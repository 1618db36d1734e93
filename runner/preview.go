package runner

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"cmdpalette/model"
	"cmdpalette/parser"
)

// PreviewExecutor executes nothing. List verbs return sample rows,
// filtered by any flag that names a column; every other verb echoes the
// record it would have written.
type PreviewExecutor struct{}

func (PreviewExecutor) Execute(ctx context.Context, cmd model.ParsedCommand) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if cmd.Verb == "list" {
		if sample, ok := samples[cmd.Entity]; ok {
			return listResult(cmd, sample), nil
		}
	}

	names := make([]string, 0, len(cmd.Flags))
	for name := range cmd.Flags {
		names = append(names, name)
	}
	sort.Strings(names)

	id := previewID(cmd)
	if v, ok := cmd.Flags["id"]; ok {
		id = parser.FormatValue(v)
	}
	headers := []string{"ID"}
	row := []string{id}
	for _, name := range names {
		if name == "id" {
			continue
		}
		headers = append(headers, name)
		row = append(row, parser.FormatValue(cmd.Flags[name]))
	}

	return Result{
		Message: "{info}Preview{/} {code}" + parser.Format(cmd) + "{/}",
		Headers: headers,
		Rows:    [][]string{row},
	}, nil
}

func listResult(cmd model.ParsedCommand, sample Result) Result {
	rows := make([][]string, 0, len(sample.Rows))
	for _, row := range sample.Rows {
		if matches(sample.Headers, row, cmd.Flags) {
			rows = append(rows, row)
		}
	}
	return Result{
		Message: "{success}" + plural(len(rows), cmd.Entity) + "{/}",
		Headers: sample.Headers,
		Rows:    rows,
	}
}

// matches reports whether row agrees with every string flag that names
// one of the columns.
func matches(headers, row []string, flags map[string]any) bool {
	for name, v := range flags {
		s, ok := v.(string)
		if !ok {
			continue
		}
		for i, h := range headers {
			if i < len(row) && strings.EqualFold(h, name) && !strings.EqualFold(row[i], s) {
				return false
			}
		}
	}
	return true
}

func previewID(cmd model.ParsedCommand) string {
	id := strings.ReplaceAll(cmd.IdempotencyKey, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(cmd.Entity[:min(3, len(cmd.Entity))] + "-" + id)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		noun = strings.TrimSuffix(noun, "y") + "ie"
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// Package output renders command results for display: bordered text
// tables and the palette's inline markup.
package output

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultMaxColumnWidth caps a column when RenderTable gets no limit.
const DefaultMaxColumnWidth = 40

const ellipsis = "…"

// RenderTable draws headers and rows as a fixed-width bordered table.
// Each column is as wide as its widest cell, capped at maxWidth display
// cells; longer cells are cut with an ellipsis.
func RenderTable(headers []string, rows [][]string, maxWidth int) string {
	if len(headers) == 0 {
		return ""
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxColumnWidth
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = min(runewidth.StringWidth(clean(h)), maxWidth)
	}
	for _, row := range rows {
		for i := range headers {
			widths[i] = max(widths[i], min(runewidth.StringWidth(cell(row, i)), maxWidth))
		}
	}

	var b strings.Builder
	border(&b, widths, "┌", "┬", "┐")
	line(&b, widths, headers)
	border(&b, widths, "├", "┼", "┤")
	for _, row := range rows {
		line(&b, widths, row)
	}
	border(&b, widths, "└", "┴", "┘")
	return b.String()
}

func border(b *strings.Builder, widths []int, left, mid, right string) {
	b.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			b.WriteString(mid)
		}
		b.WriteString(strings.Repeat("─", w+2))
	}
	b.WriteString(right)
	b.WriteString("\n")
}

func line(b *strings.Builder, widths []int, row []string) {
	b.WriteString("│")
	for i, w := range widths {
		text := cell(row, i)
		if runewidth.StringWidth(text) > w {
			text = runewidth.Truncate(text, w, ellipsis)
		}
		b.WriteString(" ")
		b.WriteString(runewidth.FillRight(text, w))
		b.WriteString(" │")
	}
	b.WriteString("\n")
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return clean(row[i])
}

func clean(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
}

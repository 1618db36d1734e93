package output

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
)

// tagRegex matches the markup tags: {success} {error} {warning} {info}
// {bold} {dim} {code} {link:url}, and {/} which closes the innermost one.
var tagRegex = regexp.MustCompile(`\{(success|error|warning|info|bold|dim|code|link:[^{}]*|/)\}`)

var unsafeSchemes = []string{"javascript:", "data:", "vbscript:"}

var htmlTags = map[string][2]string{
	"success": {`<span class="text-success">`, `</span>`},
	"error":   {`<span class="text-error">`, `</span>`},
	"warning": {`<span class="text-warning">`, `</span>`},
	"info":    {`<span class="text-info">`, `</span>`},
	"bold":    {`<strong>`, `</strong>`},
	"dim":     {`<span class="text-dim">`, `</span>`},
	"code":    {`<code>`, `</code>`},
}

var ansiStyles = map[string]lipgloss.Style{
	"success": lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
	"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	"info":    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	"bold":    lipgloss.NewStyle().Bold(true),
	"dim":     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	"code":    lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	"link":    lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Underline(true),
}

// FormatText renders markup as HTML. The input is escaped before tags are
// substituted, so only the markup itself can produce elements. Links with
// a javascript:, data: or vbscript: scheme get href="#". Unclosed tags are
// closed at the end; stray {/} are dropped.
func FormatText(s string) string {
	escaped := html.EscapeString(s)

	var b strings.Builder
	var open []string
	last := 0
	for _, m := range tagRegex.FindAllStringSubmatchIndex(escaped, -1) {
		b.WriteString(escaped[last:m[0]])
		last = m[1]

		tag := escaped[m[2]:m[3]]
		switch {
		case tag == "/":
			if len(open) > 0 {
				b.WriteString(open[len(open)-1])
				open = open[:len(open)-1]
			}
		case strings.HasPrefix(tag, "link:"):
			href := SafeURL(html.UnescapeString(tag[len("link:"):]))
			b.WriteString(`<a href="` + html.EscapeString(href) + `" target="_blank" rel="noopener noreferrer">`)
			open = append(open, `</a>`)
		default:
			t := htmlTags[tag]
			b.WriteString(t[0])
			open = append(open, t[1])
		}
	}
	b.WriteString(escaped[last:])

	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString(open[i])
	}
	return b.String()
}

// SafeURL returns u, or "#" when it uses a scheme that can run script.
// Whitespace and control characters are ignored when checking the scheme,
// since browsers drop them too.
func SafeURL(u string) string {
	bare := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, u)
	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(bare, scheme) {
			return "#"
		}
	}
	return strings.TrimSpace(u)
}

// FormatANSI renders markup for a terminal. Text inside a tag takes the
// innermost tag's style; safe links are followed by their URL.
func FormatANSI(s string) string {
	var b strings.Builder
	var stack []lipgloss.Style
	var links []string

	write := func(text string) {
		if text == "" {
			return
		}
		if len(stack) == 0 {
			b.WriteString(text)
			return
		}
		b.WriteString(stack[len(stack)-1].Render(text))
	}

	last := 0
	for _, m := range tagRegex.FindAllStringSubmatchIndex(s, -1) {
		write(s[last:m[0]])
		last = m[1]

		tag := s[m[2]:m[3]]
		switch {
		case tag == "/":
			n := len(stack)
			if n == 0 {
				continue
			}
			if href := links[n-1]; href != "" {
				b.WriteString(" <" + href + ">")
			}
			stack, links = stack[:n-1], links[:n-1]
		case strings.HasPrefix(tag, "link:"):
			stack = append(stack, ansiStyles["link"])
			href := SafeURL(tag[len("link:"):])
			if href == "#" {
				href = ""
			}
			links = append(links, href)
		default:
			stack = append(stack, ansiStyles[tag])
			links = append(links, "")
		}
	}
	write(s[last:])
	return b.String()
}

// Strip removes markup tags, leaving the plain text.
func Strip(s string) string {
	return tagRegex.ReplaceAllString(s, "")
}

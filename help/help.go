// Package help renders palette help text from the grammar.
package help

import (
	"fmt"
	"strings"

	"cmdpalette/grammar"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

var keyHints = [][2]string{
	{"tab", "accept suggestion"},
	{"enter", "run command"},
	{"↑/↓", "move suggestion or selected row"},
	{"alt+key", "quick action on the selected row"},
	{"esc", "clear input"},
	{"ctrl+c", "quit"},
}

// Generator builds help text for the whole grammar, one entity, or one
// verb.
type Generator struct {
	registry *grammar.Registry
	examples map[string][]string
}

func New(reg *grammar.Registry) *Generator {
	return &Generator{registry: reg, examples: DefaultExamples()}
}

// WithExamples replaces the example table.
func (g *Generator) WithExamples(examples map[string][]string) *Generator {
	g.examples = examples
	return g
}

// Help returns help for topic. An empty topic gives the overview; an
// entity name or shortcut gives every verb of that entity; "entity.verb"
// or "entity verb" gives one verb.
func (g *Generator) Help(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return g.general()
	}

	entityTok, verbTok := splitTopic(topic)
	e, ok := g.registry.Entity(entityTok)
	if !ok {
		return g.unknown(topic)
	}
	if verbTok == "" {
		return g.entity(e)
	}
	v, ok := g.registry.Verb(e.Name, verbTok)
	if !ok {
		return g.unknown(topic)
	}

	var b strings.Builder
	g.verb(&b, e, v)
	return b.String()
}

func splitTopic(topic string) (string, string) {
	if e, v, ok := strings.Cut(topic, "."); ok {
		return e, strings.TrimSpace(v)
	}
	fields := strings.Fields(topic)
	if len(fields) > 1 {
		return fields[0], fields[1]
	}
	return topic, ""
}

func (g *Generator) general() string {
	var b strings.Builder

	b.WriteString("Commands\n\n")
	entities := g.registry.Entities()
	width := 0
	for _, e := range entities {
		width = max(width, runewidth.StringWidth(entityHeading(e)))
	}
	for _, e := range entities {
		fmt.Fprintf(&b, "  %s  %s\n", runewidth.FillRight(entityHeading(e), width), strings.Join(g.registry.VerbNames(e.Name), ", "))
	}

	if builtins := g.registry.Builtins(); len(builtins) > 0 {
		b.WriteString("\nBuilt-in\n\n")
		for _, bi := range builtins {
			name := bi.Name
			if name == "help" {
				name = "help [topic]"
			}
			fmt.Fprintf(&b, "  %s  %s\n", runewidth.FillRight(name, 14), g.registry.Description(bi.Name))
		}
	}

	if presets := g.registry.Presets(); len(presets) > 0 {
		b.WriteString("\nShortcuts\n\n")
		for _, p := range presets {
			fmt.Fprintf(&b, "  %s  %s\n", runewidth.FillRight(p.Token, 4), p.Expansion)
		}
	}

	b.WriteString("\nKeys\n\n")
	for _, h := range keyHints {
		fmt.Fprintf(&b, "  %s  %s\n", runewidth.FillRight(h[0], 9), h[1])
	}

	b.WriteString("\nType \"help <entity>\" or \"help <entity>.<verb>\" for details.\n")
	return b.String()
}

func entityHeading(e *grammar.Entity) string {
	if len(e.Shortcuts) == 0 {
		return e.Name
	}
	return e.Name + " (" + strings.Join(e.Shortcuts, ", ") + ")"
}

func (g *Generator) entity(e *grammar.Entity) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s: %s\n", e.Icon, e.Name, e.Description)
	if len(e.Shortcuts) > 0 {
		fmt.Fprintf(&b, "Shortcuts: %s\n", strings.Join(e.Shortcuts, ", "))
	}
	if e.DefaultVerb != "" {
		fmt.Fprintf(&b, "Default verb: %s\n", e.DefaultVerb)
	}

	for i := range e.Verbs {
		b.WriteString("\n")
		g.verb(&b, e, &e.Verbs[i])
	}
	return b.String()
}

func (g *Generator) verb(b *strings.Builder, e *grammar.Entity, v *grammar.Verb) {
	fmt.Fprintf(b, "%s %s", e.Name, v.Name)
	if len(v.Aliases) > 0 {
		fmt.Fprintf(b, " (aliases: %s)", strings.Join(v.Aliases, ", "))
	}
	fmt.Fprintf(b, "\n  %s\n", g.registry.Description(grammar.CommandKey(e.Name, v.Name)))

	if len(v.Flags) > 0 {
		b.WriteString("  Flags:\n")
		width := 0
		for _, f := range v.Flags {
			width = max(width, runewidth.StringWidth(flagUsage(f)))
		}
		for _, f := range v.Flags {
			fmt.Fprintf(b, "    %s  %s", runewidth.FillRight(flagUsage(f), width), flagType(f))
			if notes := flagNotes(f); notes != "" {
				fmt.Fprintf(b, "  %s", notes)
			}
			if f.Description != "" {
				fmt.Fprintf(b, "  %s", f.Description)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("  Examples:\n")
	fmt.Fprintf(b, "    %s\n", canonical(e, v))
	for _, ex := range g.examples[grammar.CommandKey(e.Name, v.Name)] {
		fmt.Fprintf(b, "    %s\n", ex)
	}
}

func flagUsage(f grammar.Flag) string {
	if f.Short != "" {
		return "--" + f.Name + ", -" + f.Short
	}
	return "--" + f.Name
}

func flagType(f grammar.Flag) string {
	if len(f.Values) > 0 {
		return string(f.Type) + " (" + strings.Join(f.Values, "|") + ")"
	}
	return string(f.Type)
}

func flagNotes(f grammar.Flag) string {
	var notes []string
	if f.Required {
		notes = append(notes, "required")
	}
	if f.DefaultSource != "" {
		notes = append(notes, "default: "+f.DefaultSource)
	}
	if len(notes) == 0 {
		return ""
	}
	return "[" + strings.Join(notes, ", ") + "]"
}

// canonical spells out every required flag explicitly.
func canonical(e *grammar.Entity, v *grammar.Verb) string {
	parts := []string{e.Name, v.Name}
	for _, name := range v.Required() {
		parts = append(parts, "--"+name+"=<"+name+">")
	}
	return strings.Join(parts, " ")
}

func (g *Generator) unknown(topic string) string {
	names := g.registry.EntityNames()

	var b strings.Builder
	fmt.Fprintf(&b, "Unknown help topic: %s\n", topic)
	fmt.Fprintf(&b, "Available topics: %s\n", strings.Join(names, ", "))

	entityTok, _ := splitTopic(topic)
	if near := closest(strings.ToLower(entityTok), names); len(near) > 0 {
		fmt.Fprintf(&b, "Did you mean: %s?\n", strings.Join(near, ", "))
	}
	return b.String()
}

func closest(pattern string, names []string) []string {
	if pattern == "" {
		return nil
	}
	matches := fuzzy.Find(pattern, names)
	var out []string
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		out = append(out, matches[i].Str)
	}
	return out
}

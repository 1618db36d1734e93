// Package parser turns one line of palette input into a model.ParsedCommand.
//
// Parsing never fails: unknown commands, unknown flags and missing flag
// values are reported in ParsedCommand.Errors, and a command that still
// lacks required flags is returned with Complete=false so the palette can
// keep prompting.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cmdpalette/grammar"
	"cmdpalette/model"
)

// Parser parses input against a grammar.
type Parser struct {
	registry *grammar.Registry
	rules    Rules
}

// New creates a parser over reg using the default inference rules.
func New(reg *grammar.Registry) *Parser {
	return &Parser{registry: reg, rules: DefaultRules()}
}

// Parse expands presets, tokenizes and resolves raw.
func (p *Parser) Parse(raw string) model.ParsedCommand {
	cmd := model.ParsedCommand{
		Raw:   raw,
		Flags: make(map[string]any),
	}

	tokens, quoted := Tokenize(Expand(p.registry, raw))
	if len(tokens) == 0 {
		return cmd
	}

	verb, rest, ok := p.resolve(&cmd, tokens)
	if !ok {
		cmd.Confidence = confidence(cmd, nil)
		return cmd
	}
	if cmd.Builtin {
		cmd.Subject = strings.Join(rest, " ")
		cmd.Complete = true
		cmd.Confidence = 1
		cmd.IdempotencyKey = builtinKey(cmd)
		return cmd
	}

	cmd.ReadOnly = verb.ReadOnly
	leftover := p.extractFlags(&cmd, verb, rest, quoted[len(tokens)-len(rest):])
	cmd.Subject = strings.Join(leftover, " ")

	if rule, ok := p.rules[grammar.CommandKey(cmd.Entity, cmd.Verb)]; ok && cmd.Subject != "" {
		rule(cmd.Subject, cmd.Flags)
	}

	cmd.Complete = complete(cmd, verb)
	cmd.Confidence = confidence(cmd, verb)
	if cmd.Complete {
		cmd.IdempotencyKey = IdempotencyKey(cmd.Entity, cmd.Verb, cmd.Flags)
	}
	return cmd
}

// resolve consumes the entity and verb tokens. It returns the verb
// definition (nil for built-ins) and the unconsumed tokens.
func (p *Parser) resolve(cmd *model.ParsedCommand, tokens []string) (*grammar.Verb, []string, bool) {
	head := tokens[0]

	if ent, verbName, dotted := strings.Cut(head, "."); dotted {
		e, ok := p.registry.Entity(ent)
		if !ok {
			cmd.Errors = append(cmd.Errors, "Unknown command: "+head)
			return nil, nil, false
		}
		cmd.Entity = e.Name
		if verbName == "" {
			verbName = e.DefaultVerb
		}
		v, ok := p.registry.Verb(e.Name, verbName)
		if !ok {
			cmd.Errors = append(cmd.Errors, "Unknown verb: "+e.Name+"."+verbName)
			return nil, nil, false
		}
		cmd.Verb = v.Name
		return v, tokens[1:], true
	}

	e, ok := p.registry.Entity(head)
	if !ok {
		if b, ok := p.registry.Builtin(head); ok {
			cmd.Builtin = true
			cmd.Verb = b.Name
			return nil, tokens[1:], true
		}
		cmd.Errors = append(cmd.Errors, "Unknown command: "+head)
		return nil, nil, false
	}
	cmd.Entity = e.Name

	if len(tokens) > 1 {
		if v, ok := p.registry.Verb(e.Name, tokens[1]); ok {
			cmd.Verb = v.Name
			return v, tokens[2:], true
		}
	}
	v, ok := p.registry.Verb(e.Name, e.DefaultVerb)
	if !ok {
		cmd.Errors = append(cmd.Errors, "Unknown verb: "+e.Name+"."+e.DefaultVerb)
		return nil, nil, false
	}
	cmd.Verb = v.Name
	return v, tokens[1:], true
}

// extractFlags moves --name, --name=value and -x tokens into cmd.Flags and
// returns the tokens that are not flags or flag values. Quoted tokens are
// never flags.
func (p *Parser) extractFlags(cmd *model.ParsedCommand, verb *grammar.Verb, tokens []string, quoted []bool) []string {
	var leftover []string
	isFlag := func(i int) bool { return !quoted[i] && looksLikeFlag(tokens[i]) }

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !isFlag(i) {
			leftover = append(leftover, tok)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(tok, "-"), "=")
		var def *grammar.Flag
		var found bool
		if strings.HasPrefix(tok, "--") {
			def, found = verb.Flag(name)
		} else if len([]rune(name)) == 1 {
			def, found = verb.Shorthand(name)
		}
		if !found {
			flagTok, _, _ := strings.Cut(tok, "=")
			cmd.Errors = append(cmd.Errors, "Unknown flag: "+flagTok)
			continue
		}

		if def.Type == grammar.TypeBoolean {
			if !hasValue {
				cmd.Flags[def.Name] = true
				continue
			}
			cmd.Flags[def.Name] = coerce(def, value)
			continue
		}

		if !hasValue {
			if i+1 >= len(tokens) || isFlag(i+1) {
				cmd.Errors = append(cmd.Errors, fmt.Sprintf("Flag --%s requires a value", def.Name))
				continue
			}
			i++
			value = tokens[i]
		}
		if value == "" {
			cmd.Errors = append(cmd.Errors, fmt.Sprintf("Flag --%s requires a value", def.Name))
			continue
		}

		if def.Type == grammar.TypeEnum && len(def.Values) > 0 {
			canonical, ok := enumValue(def, value)
			if !ok {
				cmd.Errors = append(cmd.Errors, fmt.Sprintf("Invalid value for --%s: %s (expected %s)",
					def.Name, value, strings.Join(def.Values, ", ")))
				continue
			}
			value = canonical
		}
		cmd.Flags[def.Name] = coerce(def, value)
	}

	return leftover
}

// looksLikeFlag reports whether tok is a flag token. Negative numbers are
// values, not flags.
func looksLikeFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return false
	}
	return true
}

func coerce(def *grammar.Flag, raw string) any {
	switch def.Type {
	case grammar.TypeNumber:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
		return raw
	case grammar.TypeBoolean:
		return strings.EqualFold(raw, "true") || raw == "1"
	default:
		return raw
	}
}

func enumValue(def *grammar.Flag, raw string) (string, bool) {
	for _, v := range def.Values {
		if strings.EqualFold(v, raw) {
			return v, true
		}
	}
	return "", false
}

func complete(cmd model.ParsedCommand, verb *grammar.Verb) bool {
	if len(cmd.Errors) > 0 || cmd.Entity == "" || cmd.Verb == "" || verb == nil {
		return false
	}
	for _, name := range verb.Required() {
		if !cmd.Has(name) {
			return false
		}
	}
	return true
}

func confidence(cmd model.ParsedCommand, verb *grammar.Verb) float64 {
	if cmd.Entity == "" || cmd.Verb == "" || verb == nil {
		return 0
	}
	if len(cmd.Errors) > 0 {
		return 0.3
	}
	if len(verb.Flags) == 0 || cmd.Complete {
		return 1
	}
	provided := 0
	for _, f := range verb.Flags {
		if cmd.Has(f.Name) {
			provided++
		}
	}
	return math.Min(0.9, float64(provided)/float64(len(verb.Flags)))
}

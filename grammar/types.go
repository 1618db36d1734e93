// Package grammar holds the entity/verb command grammar that every other
// palette component queries.
//
// A Registry is built once from a list of Entity definitions and passed to
// the parser, the suggestion ranker and the help generator. Lookups of
// names, shortcuts and aliases are case-insensitive.
package grammar

import "strings"

// FlagType is the value type of a flag.
type FlagType string

const (
	TypeString   FlagType = "string"
	TypeNumber   FlagType = "number"
	TypeBoolean  FlagType = "boolean"
	TypeDate     FlagType = "date"
	TypeCurrency FlagType = "currency"
	TypeEnum     FlagType = "enum"
)

// Flag describes a positional argument or an optional flag. Both share one
// shape so the parser can look them up uniformly.
type Flag struct {
	Name     string
	Short    string // single character, optional
	Type     FlagType
	Required bool

	// DefaultSource is a provenance label such as "company currency",
	// never a resolved value.
	DefaultSource string

	// Values is the allowed value set for enum flags.
	Values      []string
	Description string
}

// Verb is an action an entity supports.
type Verb struct {
	Name            string
	Aliases         []string
	Description     string
	RequiresSubject bool
	Flags           []Flag

	// ReadOnly verbs change no business state, so repeating one is never
	// treated as a duplicate submission.
	ReadOnly bool
}

// Flag returns the flag called name, compared case-insensitively.
func (v *Verb) Flag(name string) (*Flag, bool) {
	for i := range v.Flags {
		if strings.EqualFold(v.Flags[i].Name, name) {
			return &v.Flags[i], true
		}
	}
	return nil, false
}

// Shorthand returns the flag whose Short equals c.
func (v *Verb) Shorthand(c string) (*Flag, bool) {
	for i := range v.Flags {
		if v.Flags[i].Short != "" && v.Flags[i].Short == c {
			return &v.Flags[i], true
		}
	}
	return nil, false
}

// Required returns the names of required flags in definition order.
func (v *Verb) Required() []string {
	var names []string
	for _, f := range v.Flags {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Entity is a top-level noun of the grammar.
type Entity struct {
	Name        string
	Shortcuts   []string
	DefaultVerb string
	Description string
	Icon        string
	Verbs       []Verb
}

// Preset is a two-letter shortcut that expands to "entity verb".
type Preset struct {
	Token     string
	Expansion string
}

// Builtin is a command that is handled by the palette itself rather than
// an entity verb.
type Builtin struct {
	Name        string
	Description string
	Icon        string
}

// CommandKey returns the "entity.verb" key shared by frecency, help
// examples and quick actions. Built-ins have no entity and are keyed by
// name alone.
func CommandKey(entity, verb string) string {
	if entity == "" {
		return verb
	}
	return entity + "." + verb
}

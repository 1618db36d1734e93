package grammar

import (
	"sort"
	"strings"
)

// Conflict records a shortcut or alias that was shadowed by an earlier
// registration.
type Conflict struct {
	Token  string
	Winner string
	Loser  string
}

// Registry indexes a grammar for constant-time resolution.
type Registry struct {
	entities []*Entity
	byName   map[string]*Entity
	verbs    map[string]map[string]*Verb // entity -> verb name or alias -> verb

	presets  []Preset
	builtins []Builtin

	descriptions map[string]string
	icons        map[string]string
	conflicts    []Conflict
}

// NewRegistry indexes entities in order. When two entities claim the same
// name or shortcut the first registration wins and the clash is recorded
// in Conflicts.
func NewRegistry(entities ...Entity) *Registry {
	r := &Registry{
		byName:       make(map[string]*Entity),
		verbs:        make(map[string]map[string]*Verb),
		descriptions: make(map[string]string),
		icons:        make(map[string]string),
	}
	for _, e := range entities {
		r.register(e)
	}
	return r
}

func (r *Registry) register(e Entity) {
	ent := e
	ent.Verbs = append([]Verb(nil), e.Verbs...)
	key := strings.ToLower(ent.Name)
	if prev, ok := r.byName[key]; ok {
		r.conflicts = append(r.conflicts, Conflict{Token: ent.Name, Winner: prev.Name, Loser: ent.Name})
		return
	}
	r.entities = append(r.entities, &ent)
	r.byName[key] = &ent
	for _, s := range ent.Shortcuts {
		sk := strings.ToLower(s)
		if prev, ok := r.byName[sk]; ok {
			r.conflicts = append(r.conflicts, Conflict{Token: s, Winner: prev.Name, Loser: ent.Name})
			continue
		}
		r.byName[sk] = &ent
	}

	verbs := make(map[string]*Verb)
	for i := range ent.Verbs {
		v := &ent.Verbs[i]
		for _, tok := range append([]string{v.Name}, v.Aliases...) {
			tk := strings.ToLower(tok)
			if prev, ok := verbs[tk]; ok {
				r.conflicts = append(r.conflicts, Conflict{
					Token:  ent.Name + " " + tok,
					Winner: CommandKey(ent.Name, prev.Name),
					Loser:  CommandKey(ent.Name, v.Name),
				})
				continue
			}
			verbs[tk] = v
		}
		r.descriptions[CommandKey(ent.Name, v.Name)] = v.Description
	}
	r.verbs[ent.Name] = verbs
	r.icons[ent.Name] = ent.Icon
}

// WithPresets sets the two-letter presets consulted by the shortcut
// expander.
func (r *Registry) WithPresets(presets ...Preset) *Registry {
	r.presets = append(r.presets, presets...)
	return r
}

// WithBuiltins sets the palette's own commands.
func (r *Registry) WithBuiltins(builtins ...Builtin) *Registry {
	r.builtins = append(r.builtins, builtins...)
	for _, b := range builtins {
		r.descriptions[b.Name] = b.Description
	}
	return r
}

// Entity resolves an entity name or shortcut.
func (r *Registry) Entity(nameOrShortcut string) (*Entity, bool) {
	e, ok := r.byName[strings.ToLower(nameOrShortcut)]
	return e, ok
}

// ResolveShortcut returns the canonical entity name for a name or shortcut.
func (r *Registry) ResolveShortcut(s string) (string, bool) {
	e, ok := r.Entity(s)
	if !ok {
		return "", false
	}
	return e.Name, true
}

// Verb resolves a verb name or alias on an entity given by name or shortcut.
func (r *Registry) Verb(entity, verbOrAlias string) (*Verb, bool) {
	e, ok := r.Entity(entity)
	if !ok {
		return nil, false
	}
	v, ok := r.verbs[e.Name][strings.ToLower(verbOrAlias)]
	return v, ok
}

// ResolveVerbAlias returns the canonical verb name for an alias.
func (r *Registry) ResolveVerbAlias(entity, alias string) (string, bool) {
	v, ok := r.Verb(entity, alias)
	if !ok {
		return "", false
	}
	return v.Name, true
}

// Entities returns entity definitions in registration order.
func (r *Registry) Entities() []*Entity {
	return r.entities
}

// EntityNames returns all entity names in registration order.
func (r *Registry) EntityNames() []string {
	names := make([]string, len(r.entities))
	for i, e := range r.entities {
		names[i] = e.Name
	}
	return names
}

// VerbNames returns the verb names of an entity in definition order.
func (r *Registry) VerbNames(entity string) []string {
	e, ok := r.Entity(entity)
	if !ok {
		return nil
	}
	names := make([]string, len(e.Verbs))
	for i, v := range e.Verbs {
		names[i] = v.Name
	}
	return names
}

// Description returns the description indexed under a command key.
func (r *Registry) Description(key string) string {
	return r.descriptions[key]
}

// Icon returns the icon of an entity, or "" if unknown.
func (r *Registry) Icon(entity string) string {
	return r.icons[entity]
}

// Preset looks up a two-letter preset token.
func (r *Registry) Preset(token string) (Preset, bool) {
	for _, p := range r.presets {
		if strings.EqualFold(p.Token, token) {
			return p, true
		}
	}
	return Preset{}, false
}

// Presets returns the presets in definition order.
func (r *Registry) Presets() []Preset {
	return r.presets
}

// Builtin looks up a built-in command by name.
func (r *Registry) Builtin(name string) (Builtin, bool) {
	for _, b := range r.builtins {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return Builtin{}, false
}

// Builtins returns the built-in commands.
func (r *Registry) Builtins() []Builtin {
	return r.builtins
}

// Conflicts returns every shadowed shortcut or alias, sorted by token.
func (r *Registry) Conflicts() []Conflict {
	out := append([]Conflict(nil), r.conflicts...)
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// Package suggest ranks autocomplete candidates for partial palette input.
//
// The ranker is pure: frecency scores are passed in through Options rather
// than read from storage, so every call is a deterministic function of its
// arguments.
package suggest

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"cmdpalette/grammar"
	"cmdpalette/model"
)

// Stage says what the user is currently choosing.
type Stage int

const (
	StageAuto   Stage = iota // infer from the input
	StageEntity              // choosing an entity or built-in
	StageVerb                // choosing a verb of an already typed entity
)

// DefaultMaxResults caps a suggestion list when Options.MaxResults is unset.
const DefaultMaxResults = 8

const (
	quickStartHistory = 3
	quickStartPresets = 3
	aliasPenalty      = 10.0
)

// Options tunes a single Suggest call.
type Options struct {
	Stage      Stage
	MaxResults int

	// Frecency maps command keys to frecency scores.
	Frecency map[string]float64
}

// Ranker produces suggestions from a grammar.
type Ranker struct {
	registry *grammar.Registry
	tail     []string
}

// New creates a ranker over reg.
func New(reg *grammar.Registry) *Ranker {
	return &Ranker{
		registry: reg,
		tail:     []string{"company list", "user invite", "user list", "help"},
	}
}

// Suggest returns at most opts.MaxResults suggestions for input, best first.
func (r *Ranker) Suggest(input string, opts Options) []model.Suggestion {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	stage, entity, partial := r.stage(input, opts.Stage)

	var out []model.Suggestion
	switch stage {
	case StageVerb:
		if entity == nil {
			return nil
		}
		out = r.verbs(entity, partial, opts.Frecency)
	default:
		if strings.TrimSpace(input) == "" {
			return truncate(r.quickStart(opts.Frecency), limit)
		}
		out = r.entities(strings.TrimSpace(input), opts.Frecency)
	}

	sortSuggestions(out)
	return truncate(dedupe(out), limit)
}

// stage works out which stage applies. In verb stage it also returns the
// resolved entity and the partial verb text.
func (r *Ranker) stage(input string, requested Stage) (Stage, *grammar.Entity, string) {
	trimmed := strings.TrimLeftFunc(input, unicode.IsSpace)
	fields := strings.Fields(trimmed)
	trailing := trimmed != "" && unicode.IsSpace(lastRune(trimmed))

	if requested == StageEntity {
		return StageEntity, nil, ""
	}

	if len(fields) == 0 || (len(fields) == 1 && !trailing) {
		if requested == StageVerb && len(fields) == 1 {
			// "invoice" with an explicit verb stage lists every verb
			e, _ := r.registry.Entity(fields[0])
			return StageVerb, e, ""
		}
		return StageEntity, nil, ""
	}

	e, ok := r.registry.Entity(fields[0])
	if !ok {
		if requested == StageVerb {
			return StageVerb, nil, ""
		}
		return StageEntity, nil, ""
	}

	switch {
	case len(fields) == 1 && trailing:
		return StageVerb, e, ""
	case len(fields) == 2 && !trailing:
		return StageVerb, e, fields[1]
	default:
		// past the verb; arguments are not completed here
		return StageVerb, nil, ""
	}
}

func (r *Ranker) entities(input string, frecency map[string]float64) []model.Suggestion {
	var out []model.Suggestion

	for _, e := range r.registry.Entities() {
		if s := Score(input, e.Name); s > 0 {
			out = append(out, model.Suggestion{
				Kind:        model.KindEntity,
				Value:       e.Name + " ",
				Label:       e.Name,
				Description: e.Description,
				Icon:        r.registry.Icon(e.Name),
				Score:       s,
			})
		}

		for _, v := range e.Verbs {
			key := grammar.CommandKey(e.Name, v.Name)
			spaced := e.Name + " " + v.Name
			s := max(Score(input, spaced), Score(input, key))
			if s <= 0 {
				continue
			}
			out = append(out, model.Suggestion{
				Kind:        model.KindCommand,
				Value:       spaced + " ",
				Label:       spaced,
				Description: r.registry.Description(grammar.CommandKey(e.Name, v.Name)),
				Icon:        r.registry.Icon(e.Name),
				Score:       s + frecency[key]*frecencyWeight,
				CommandKey:  key,
			})
		}
	}

	for _, b := range r.registry.Builtins() {
		s := Score(input, b.Name)
		if s <= 0 {
			continue
		}
		out = append(out, model.Suggestion{
			Kind:        model.KindCommand,
			Value:       b.Name + " ",
			Label:       b.Name,
			Description: r.registry.Description(b.Name),
			Icon:        b.Icon,
			Score:       s + frecency[b.Name]*frecencyWeight,
			CommandKey:  b.Name,
		})
	}

	return out
}

func (r *Ranker) verbs(e *grammar.Entity, partial string, frecency map[string]float64) []model.Suggestion {
	var out []model.Suggestion

	for _, v := range e.Verbs {
		key := grammar.CommandKey(e.Name, v.Name)

		var s float64
		if partial == "" {
			s = 1
		} else {
			s = Score(partial, v.Name)
			for _, alias := range v.Aliases {
				if as := Score(partial, alias) - aliasPenalty; as > s {
					s = as
				}
			}
		}
		if s <= 0 {
			continue
		}

		out = append(out, model.Suggestion{
			Kind:        model.KindVerb,
			Value:       e.Name + " " + v.Name + " ",
			Label:       v.Name,
			Description: r.registry.Description(grammar.CommandKey(e.Name, v.Name)),
			Icon:        r.registry.Icon(e.Name),
			Score:       s + frecency[key]*frecencyWeight,
			CommandKey:  key,
		})
	}

	return out
}

// quickStart is the fixed list shown for empty input: recent commands,
// then presets, then a static tail.
func (r *Ranker) quickStart(frecency map[string]float64) []model.Suggestion {
	var out []model.Suggestion

	for _, key := range topKeys(frecency, quickStartHistory) {
		s, ok := r.forKey(key)
		if !ok {
			continue
		}
		s.Kind = model.KindHistory
		out = append(out, s)
	}

	presets := r.registry.Presets()
	for i := 0; i < len(presets) && i < quickStartPresets; i++ {
		p := presets[i]
		s, ok := r.forCommand(p.Expansion)
		if !ok {
			continue
		}
		s.Label = p.Token + " → " + p.Expansion
		out = append(out, s)
	}

	for _, text := range r.tail {
		if s, ok := r.forCommand(text); ok {
			out = append(out, s)
		}
	}

	out = dedupe(out)
	for i := range out {
		out[i].Score = float64(len(out) - i)
	}
	return out
}

// forKey builds a suggestion for an "entity.verb" or built-in key.
func (r *Ranker) forKey(key string) (model.Suggestion, bool) {
	entity, verb, ok := strings.Cut(key, ".")
	if !ok {
		return r.forCommand(key)
	}
	return r.forCommand(entity + " " + verb)
}

// forCommand builds a suggestion for "entity verb" or a built-in name.
func (r *Ranker) forCommand(text string) (model.Suggestion, bool) {
	fields := strings.Fields(text)
	if len(fields) == 1 {
		b, ok := r.registry.Builtin(fields[0])
		if !ok {
			return model.Suggestion{}, false
		}
		return model.Suggestion{
			Kind:        model.KindCommand,
			Value:       b.Name + " ",
			Label:       b.Name,
			Description: r.registry.Description(b.Name),
			Icon:        b.Icon,
			CommandKey:  b.Name,
		}, true
	}
	if len(fields) != 2 {
		return model.Suggestion{}, false
	}

	e, ok := r.registry.Entity(fields[0])
	if !ok {
		return model.Suggestion{}, false
	}
	v, ok := r.registry.Verb(e.Name, fields[1])
	if !ok {
		return model.Suggestion{}, false
	}
	spaced := e.Name + " " + v.Name
	return model.Suggestion{
		Kind:        model.KindCommand,
		Value:       spaced + " ",
		Label:       spaced,
		Description: r.registry.Description(grammar.CommandKey(e.Name, v.Name)),
		Icon:        r.registry.Icon(e.Name),
		CommandKey:  grammar.CommandKey(e.Name, v.Name),
	}, true
}

func topKeys(frecency map[string]float64, n int) []string {
	keys := make([]string, 0, len(frecency))
	for k, s := range frecency {
		if s > 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if frecency[keys[i]] != frecency[keys[j]] {
			return frecency[keys[i]] > frecency[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// sortSuggestions orders by score, then shorter value, then alphabetically.
func sortSuggestions(s []model.Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		li, lj := utf8.RuneCountInString(s[i].Value), utf8.RuneCountInString(s[j].Value)
		if li != lj {
			return li < lj
		}
		return s[i].Value < s[j].Value
	})
}

func dedupe(s []model.Suggestion) []model.Suggestion {
	seen := make(map[string]bool, len(s))
	out := s[:0]
	for _, item := range s {
		if seen[item.Value] {
			continue
		}
		seen[item.Value] = true
		out = append(out, item)
	}
	return out
}

func truncate(s []model.Suggestion, n int) []model.Suggestion {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

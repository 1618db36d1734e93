package model

type SuggestionKind string

const (
	KindEntity  SuggestionKind = "entity"
	KindVerb    SuggestionKind = "verb"
	KindCommand SuggestionKind = "command"
	KindHistory SuggestionKind = "history"
)

// Suggestion is one autocomplete candidate. Score is only meaningful for
// ordering within a single suggestion pass.
type Suggestion struct {
	Kind        SuggestionKind `json:"kind"`
	Value       string         `json:"value"`
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Score       float64        `json:"score"`
	CommandKey  string         `json:"commandKey,omitempty"`
}

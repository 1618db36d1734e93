package model

// ParsedCommand is the structured result of parsing one line of palette
// input. It is built fresh on every parse and never mutated afterwards.
type ParsedCommand struct {
	Raw     string `json:"raw"`
	Entity  string `json:"entity,omitempty"`
	Verb    string `json:"verb,omitempty"`
	Builtin bool   `json:"builtin,omitempty"`

	// ReadOnly is copied from the verb; read-only commands are never
	// deduplicated on submission.
	ReadOnly bool `json:"readOnly,omitempty"`

	// Flags holds typed values: string, float64 or bool.
	Flags   map[string]any `json:"flags"`
	Subject string         `json:"subject,omitempty"`

	Complete       bool     `json:"complete"`
	Confidence     float64  `json:"confidence"`
	Errors         []string `json:"errors,omitempty"`
	IdempotencyKey string   `json:"idempotencyKey,omitempty"`
}

// Key returns the "entity.verb" command key used for frecency lookups.
func (c ParsedCommand) Key() string {
	if c.Entity == "" {
		return c.Verb
	}
	return c.Entity + "." + c.Verb
}

// Has reports whether flag name is present.
func (c ParsedCommand) Has(name string) bool {
	_, ok := c.Flags[name]
	return ok
}

// FrecencyEntry is one persisted usage record.
type FrecencyEntry struct {
	Command  string `json:"command"`
	Count    int    `json:"count"`
	LastUsed int64  `json:"lastUsed"` // epoch millis
}

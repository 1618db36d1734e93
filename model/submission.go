package model

import "time"

// Submission is one journaled command submission, keyed by the command's
// idempotency key.
type Submission struct {
	Key        string     `json:"key"`
	Command    string     `json:"command"` // entity.verb
	Raw        string     `json:"raw"`
	Attempts   int        `json:"attempts"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
}

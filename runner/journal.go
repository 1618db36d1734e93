package runner

import (
	"errors"
	"sync"
	"time"

	"cmdpalette/model"
)

// MemoryJournal is a Journal that lives for the process only.
type MemoryJournal struct {
	mu   sync.Mutex
	subs map[string]model.Submission
	now  func() time.Time
}

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{subs: make(map[string]model.Submission), now: time.Now}
}

func (j *MemoryJournal) Journal(sub model.Submission, window time.Duration) (bool, error) {
	if sub.Key == "" {
		return false, errors.New("journal: empty idempotency key")
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	if prev, ok := j.subs[sub.Key]; ok {
		last := prev.CreatedAt
		if prev.LastUsedAt != nil {
			last = *prev.LastUsedAt
		}
		prev.Attempts++
		prev.LastUsedAt = &now
		j.subs[sub.Key] = prev
		return now.Sub(last) < window, nil
	}
	sub.Attempts = 1
	sub.CreatedAt = now
	j.subs[sub.Key] = sub
	return false, nil
}

func (j *MemoryJournal) Forget(key string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.subs, key)
	return nil
}

var _ Journal = (*MemoryJournal)(nil)

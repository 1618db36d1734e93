// Package frecency records how often and how recently palette commands are
// used and turns that into a ranking score.
//
// Usage is persisted as one JSON blob under a single key of a Storage. Any
// read or write failure is logged and swallowed: a broken store behaves
// like an empty history rather than breaking the palette.
package frecency

import (
	"encoding/json"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"cmdpalette/model"

	"go.uber.org/zap"
)

// StorageKey is the key the usage blob is stored under.
const StorageKey = "cmdpalette.frecency"

const (
	decayDays   = 7.0
	decayFloor  = 0.2
	millisInDay = float64(24 * time.Hour / time.Millisecond)
)

// ErrNotFound is returned by a Storage when the key has never been saved.
var ErrNotFound = errors.New("frecency: key not found")

// Storage is the key/value port the store persists through.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, blob []byte) error
}

// Store tracks command usage. Each Store serialises its own
// read-modify-write cycles; separate Stores over the same Storage are
// last-write-wins.
type Store struct {
	storage Storage
	log     *zap.Logger
	now     func() time.Time
	mu      sync.Mutex
}

// NewStore creates a store over storage. A nil logger discards logs.
func NewStore(storage Storage, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{storage: storage, log: log, now: time.Now}
}

// WithClock replaces the time source.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Record increments the usage count of key and refreshes its timestamp.
func (s *Store) Record(key string) {
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.load()
	if !ok {
		return
	}
	e := entries[key]
	e.Command = key
	e.Count++
	e.LastUsed = s.now().UnixMilli()
	entries[key] = e

	blob, err := json.Marshal(entries)
	if err != nil {
		s.log.Warn("encode frecency", zap.Error(err))
		return
	}
	if err := s.storage.Save(StorageKey, blob); err != nil {
		s.log.Warn("save frecency", zap.String("key", StorageKey), zap.Error(err))
	}
}

// Scores returns the frecency score of every recorded key.
func (s *Store) Scores() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, _ := s.load()
	now := s.now()
	scores := make(map[string]float64, len(entries))
	for key, e := range entries {
		scores[key] = Score(e, now)
	}
	return scores
}

// Scored is an entry with its current score.
type Scored struct {
	model.FrecencyEntry
	Score float64 `json:"score"`
}

// Entries returns every entry, highest score first.
func (s *Store) Entries() []Scored {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, _ := s.load()
	now := s.now()
	out := make([]Scored, 0, len(entries))
	for key, e := range entries {
		e.Command = key
		out = append(out, Scored{FrecencyEntry: e, Score: Score(e, now)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Command < out[j].Command
	})
	return out
}

// Score weights an entry's count by recency: full weight when used now,
// decaying linearly to a floor of 20% after a week.
func Score(e model.FrecencyEntry, now time.Time) float64 {
	days := float64(now.UnixMilli()-e.LastUsed) / millisInDay
	if days < 0 {
		days = 0
	}
	return float64(e.Count) * math.Max(decayFloor, 1-days/decayDays)
}

// load reads the blob. The bool is false when the storage itself failed,
// in which case callers must not write back over it.
func (s *Store) load() (map[string]model.FrecencyEntry, bool) {
	entries := make(map[string]model.FrecencyEntry)

	blob, err := s.storage.Load(StorageKey)
	if errors.Is(err, ErrNotFound) {
		return entries, true
	}
	if err != nil {
		s.log.Warn("load frecency", zap.String("key", StorageKey), zap.Error(err))
		return entries, false
	}
	if len(blob) == 0 {
		return entries, true
	}
	if err := json.Unmarshal(blob, &entries); err != nil {
		s.log.Warn("decode frecency, starting fresh", zap.Error(err))
		return make(map[string]model.FrecencyEntry), true
	}
	if entries == nil {
		entries = make(map[string]model.FrecencyEntry)
	}
	return entries, true
}

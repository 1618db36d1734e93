package db

import (
	"path/filepath"
	"testing"
	"time"

	"cmdpalette/frecency"
	"cmdpalette/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := New(filepath.Join(t.TempDir(), "nested", "palette.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestKeyValue(t *testing.T) {
	d := openTestDB(t)

	_, err := d.Load(frecency.StorageKey)
	assert.ErrorIs(t, err, frecency.ErrNotFound)

	require.NoError(t, d.Save(frecency.StorageKey, []byte(`{"a":1}`)))
	require.NoError(t, d.Save(frecency.StorageKey, []byte(`{"b":2}`)))

	blob, err := d.Load(frecency.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(blob))
}

func TestBacksFrecencyStore(t *testing.T) {
	d := openTestDB(t)

	store := frecency.NewStore(d, nil)
	store.Record("invoice.create")
	store.Record("invoice.create")

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "invoice.create", entries[0].Command)
	assert.Equal(t, 2, entries[0].Count)
}

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time       { return c.t }
func (c *stepClock) add(d time.Duration) { c.t = c.t.Add(d) }

func TestJournal(t *testing.T) {
	d := openTestDB(t)
	clock := &stepClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	d.now = clock.now
	sub := model.Submission{Key: "k-1", Command: "invoice.create", Raw: "ic Acme 10"}

	dup, err := d.Journal(sub, time.Minute)
	require.NoError(t, err)
	assert.False(t, dup)

	clock.add(10 * time.Second)
	dup, err = d.Journal(sub, time.Minute)
	require.NoError(t, err)
	assert.True(t, dup, "retry inside the window")

	clock.add(2 * time.Minute)
	dup, err = d.Journal(sub, time.Minute)
	require.NoError(t, err)
	assert.False(t, dup, "resubmission after the window")

	subs, err := d.Submissions(0)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "invoice.create", subs[0].Command)
	assert.Equal(t, "ic Acme 10", subs[0].Raw)
	assert.Equal(t, 3, subs[0].Attempts)
	require.NotNil(t, subs[0].LastUsedAt)
	assert.True(t, subs[0].LastUsedAt.Equal(clock.t))
}

func TestJournalWindowSlidesWithEachRetry(t *testing.T) {
	d := openTestDB(t)
	clock := &stepClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	d.now = clock.now
	sub := model.Submission{Key: "k-1", Command: "invoice.void"}

	_, err := d.Journal(sub, time.Minute)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		clock.add(45 * time.Second)
		dup, err := d.Journal(sub, time.Minute)
		require.NoError(t, err)
		assert.True(t, dup)
	}
}

func TestJournalRejectsEmptyKey(t *testing.T) {
	d := openTestDB(t)
	_, err := d.Journal(model.Submission{Command: "help"}, time.Minute)
	assert.Error(t, err)
}

func TestForget(t *testing.T) {
	d := openTestDB(t)
	_, err := d.Journal(model.Submission{Key: "k-1", Command: "user.invite"}, time.Minute)
	require.NoError(t, err)

	require.NoError(t, d.Forget("k-1"))

	subs, err := d.Submissions(0)
	require.NoError(t, err)
	assert.Empty(t, subs)

	dup, err := d.Journal(model.Submission{Key: "k-1", Command: "user.invite"}, time.Minute)
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestSubmissionsOrder(t *testing.T) {
	d := openTestDB(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	d.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, k := range []string{"a", "b", "c"} {
		_, err := d.Journal(model.Submission{Key: k, Command: k + ".list"}, time.Minute)
		require.NoError(t, err)
	}
	_, err := d.Journal(model.Submission{Key: "a", Command: "a.list"}, time.Minute)
	require.NoError(t, err)

	subs, err := d.Submissions(0)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "a", subs[0].Key)
	assert.Equal(t, "c", subs[1].Key)
	assert.Equal(t, "b", subs[2].Key)

	limited, err := d.Submissions(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

package ui

import (
	"strings"
	"testing"

	"cmdpalette/frecency"
	"cmdpalette/grammar"
	"cmdpalette/runner"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *frecency.Store) {
	t.Helper()
	store := frecency.NewStore(frecency.NewMemoryStorage(), nil)
	d := runner.NewDispatcher(runner.PreviewExecutor{}, runner.NewMemoryJournal(), store, nil)
	a := NewApp(grammar.Default(), d, store, Settings{MaxResults: 8, MaxColumnWidth: 40})
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return a, store
}

// drive runs tea commands until the app stops returning them.
func drive(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 20, "too many commands")
		_, cmd = a.Update(cmd())
	}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func enterText(t *testing.T, a *App, text string) {
	t.Helper()
	a.input.SetValue(text)
	a.refresh()
	_, cmd := a.Update(key(tea.KeyEnter))
	drive(t, a, cmd)
}

func TestSubmitListShowsTableAndActions(t *testing.T) {
	a, store := newTestApp(t)

	enterText(t, a, "il")

	assert.False(t, a.running)
	assert.Len(t, a.table.Rows, 4)
	assert.Equal(t, 0, a.table.Selected)
	require.NotEmpty(t, a.actions)
	assert.Contains(t, store.Scores(), "invoice.list")
	assert.Empty(t, a.input.Value())
	assert.Contains(t, a.View(), "alt+v")
}

func TestQuickActionOnSelectedRow(t *testing.T) {
	a, store := newTestApp(t)
	enterText(t, a, "company list")

	_, cmd := a.Update(key(tea.KeyDown))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, a.table.Selected)

	_, cmd = a.Update(alt('s'))
	require.NotNil(t, cmd)
	drive(t, a, cmd)

	assert.Contains(t, store.Scores(), "company.switch")
	require.Len(t, a.table.Rows, 1)
	assert.Equal(t, []string{"ID", "slug"}, a.table.Headers)
	assert.Equal(t, "globex", a.table.Rows[0][1])
}

func TestQuickActionPrefillsWhenUnresolved(t *testing.T) {
	a, _ := newTestApp(t)
	enterText(t, a, "company list")
	a.table.Selected = -1

	_, cmd := a.Update(alt('s'))
	assert.Nil(t, cmd)
	assert.Equal(t, "company switch {slug}", a.input.Value())
	assert.Equal(t, "Which company?", a.status)
}

func TestQuickActionPrefillsIncompleteCommand(t *testing.T) {
	a, _ := newTestApp(t)
	enterText(t, a, "user list")

	_, cmd := a.Update(alt('g'))
	assert.Nil(t, cmd)
	assert.Equal(t, "role assign jane@acme.com ", a.input.Value())
}

func TestUnknownQuickAction(t *testing.T) {
	a, _ := newTestApp(t)
	_, cmd := a.Update(alt('z'))
	assert.Nil(t, cmd)
	assert.Equal(t, "No quick action on alt+z", a.status)
}

func TestTabAcceptsSuggestion(t *testing.T) {
	a, _ := newTestApp(t)
	a.input.SetValue("inv")
	a.refresh()

	a.Update(key(tea.KeyTab))
	assert.Equal(t, "invoice ", a.input.Value())
	require.NotEmpty(t, a.suggestions)
	assert.Equal(t, "invoice list ", a.suggestions[0].Value)
}

func TestIncompleteCommandIsNotSubmitted(t *testing.T) {
	a, store := newTestApp(t)
	a.input.SetValue("user invite nope")
	a.refresh()

	_, cmd := a.Update(key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, "Missing --email", a.err)
	assert.Equal(t, "user invite nope", a.input.Value())
	assert.Empty(t, store.Scores())
}

func TestParseErrorsAreShown(t *testing.T) {
	a, _ := newTestApp(t)
	a.input.SetValue("bogus")
	a.refresh()

	a.Update(key(tea.KeyEnter))
	assert.Equal(t, "Unknown command: bogus", a.err)
}

func TestDuplicateSubmission(t *testing.T) {
	a, _ := newTestApp(t)
	enterText(t, a, "company create Acme Inc USD")
	require.Len(t, a.table.Rows, 1)

	enterText(t, a, "co new Acme Inc USD")
	assert.Empty(t, a.table.Rows)
	assert.Contains(t, strings.Join(a.outputLines, "\n"), "Already submitted")
}

func TestReadOnlyCommandsRunEveryTime(t *testing.T) {
	a, store := newTestApp(t)

	enterText(t, a, "il")
	enterText(t, a, "il")
	assert.Len(t, a.table.Rows, 4)
	assert.NotContains(t, strings.Join(a.outputLines, "\n"), "Already submitted")
	assert.InDelta(t, 2.0, store.Scores()["invoice.list"], 1e-6)
}

func TestBuiltins(t *testing.T) {
	a, store := newTestApp(t)

	enterText(t, a, "help invoice")
	assert.Contains(t, strings.Join(a.outputLines, "\n"), "Shortcuts: inv, in, bill")
	assert.Contains(t, store.Scores(), "help")

	enterText(t, a, "il")
	enterText(t, a, "history")
	require.NotEmpty(t, a.table.Rows)
	assert.Equal(t, []string{"Command", "Uses", "Score"}, a.table.Headers)
	require.Len(t, a.actions, 1)

	enterText(t, a, "clear")
	assert.Empty(t, a.outputLines)
	assert.Empty(t, a.table.Rows)
}

func TestSuggestionCursor(t *testing.T) {
	a, _ := newTestApp(t)
	a.input.SetValue("invoice ")
	a.refresh()

	a.Update(key(tea.KeyDown))
	a.Update(key(tea.KeyDown))
	a.Update(key(tea.KeyUp))
	assert.Equal(t, 1, a.cursor)

	a.Update(key(tea.KeyEsc))
	assert.Empty(t, a.input.Value())
}

func TestLastWord(t *testing.T) {
	assert.Equal(t, "cr", lastWord("invoice cr"))
	assert.Equal(t, "", lastWord("invoice "))
	assert.Equal(t, "", lastWord(""))
}

func TestRenderTableMarksSelection(t *testing.T) {
	a, _ := newTestApp(t)
	enterText(t, a, "company list")

	out := renderTable(a.table, 40)
	assert.Contains(t, out, "acme-inc")
	assert.Equal(t, 7, len(strings.Split(out, "\n")))
}

package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultShortcutsResolve(t *testing.T) {
	r := Default()

	for _, e := range r.Entities() {
		name, ok := r.ResolveShortcut(e.Name)
		require.True(t, ok, e.Name)
		assert.Equal(t, e.Name, name)

		for _, s := range e.Shortcuts {
			t.Run(e.Name+"/"+s, func(t *testing.T) {
				name, ok := r.ResolveShortcut(s)
				require.True(t, ok)
				assert.Equal(t, e.Name, name)

				name, ok = r.ResolveShortcut(strings.ToUpper(s))
				require.True(t, ok)
				assert.Equal(t, e.Name, name)
			})
		}
	}
}

func TestDefaultVerbAliasesResolve(t *testing.T) {
	r := Default()

	for _, e := range r.Entities() {
		for _, v := range e.Verbs {
			for _, alias := range append([]string{v.Name}, v.Aliases...) {
				got, ok := r.ResolveVerbAlias(e.Name, alias)
				require.True(t, ok, "%s %s", e.Name, alias)
				assert.Equal(t, v.Name, got)
			}
		}
	}
}

func TestDefaultGrammarHasNoConflicts(t *testing.T) {
	r := Default()
	assert.Empty(t, r.Conflicts())

	for _, p := range r.Presets() {
		_, clash := r.Entity(p.Token)
		assert.False(t, clash, "preset %q shadows an entity shortcut", p.Token)
		assert.Len(t, p.Token, 2)
	}
}

func TestDefaultVerbsExist(t *testing.T) {
	r := Default()
	for _, e := range r.Entities() {
		_, ok := r.Verb(e.Name, e.DefaultVerb)
		assert.True(t, ok, "%s default verb %q", e.Name, e.DefaultVerb)
	}
}

func TestFirstRegisteredShortcutWins(t *testing.T) {
	r := NewRegistry(
		Entity{Name: "invoice", Shortcuts: []string{"i"}},
		Entity{Name: "item", Shortcuts: []string{"i", "it"}},
	)

	name, ok := r.ResolveShortcut("i")
	require.True(t, ok)
	assert.Equal(t, "invoice", name)

	name, ok = r.ResolveShortcut("it")
	require.True(t, ok)
	assert.Equal(t, "item", name)

	conflicts := r.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, Conflict{Token: "i", Winner: "invoice", Loser: "item"}, conflicts[0])
}

func TestDuplicateVerbAliasIsReported(t *testing.T) {
	r := NewRegistry(Entity{
		Name: "invoice",
		Verbs: []Verb{
			{Name: "create", Aliases: []string{"new"}},
			{Name: "draft", Aliases: []string{"new"}},
		},
	})

	got, ok := r.ResolveVerbAlias("invoice", "new")
	require.True(t, ok)
	assert.Equal(t, "create", got)
	assert.Len(t, r.Conflicts(), 1)
}

func TestSideTables(t *testing.T) {
	r := Default()

	assert.Equal(t, "Create an invoice", r.Description("invoice.create"))
	assert.Equal(t, "Show help for a topic", r.Description("help"))
	assert.Equal(t, "🧾", r.Icon("invoice"))
	assert.Empty(t, r.Icon("nope"))
	assert.Empty(t, r.Description("invoice.explode"))
}

func TestVerbFlagLookup(t *testing.T) {
	r := Default()
	v, ok := r.Verb("inv", "new")
	require.True(t, ok)
	assert.Equal(t, "create", v.Name)

	f, ok := v.Flag("AMOUNT")
	require.True(t, ok)
	assert.Equal(t, TypeNumber, f.Type)

	f, ok = v.Shorthand("d")
	require.True(t, ok)
	assert.Equal(t, "due", f.Name)

	_, ok = v.Shorthand("z")
	assert.False(t, ok)

	assert.Equal(t, []string{"customer", "amount"}, v.Required())
}

func TestNames(t *testing.T) {
	r := Default()
	assert.Equal(t,
		[]string{"company", "user", "role", "customer", "invoice", "payment", "account", "journal"},
		r.EntityNames())
	assert.Equal(t, []string{"list", "create", "assign"}, r.VerbNames("r"))
	assert.Nil(t, r.VerbNames("nope"))
}

func TestReadOnlyVerbs(t *testing.T) {
	readOnly := map[string]bool{"list": true, "show": true, "current": true, "switch": true}
	for _, e := range Default().Entities() {
		for _, v := range e.Verbs {
			assert.Equal(t, readOnly[v.Name], v.ReadOnly, CommandKey(e.Name, v.Name))
		}
	}
}

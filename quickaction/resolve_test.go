package quickaction

import (
	"testing"

	"cmdpalette/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companies(selected int) model.TableState {
	return model.TableState{
		Headers:  []string{"Slug", "Name"},
		Rows:     [][]string{{"acme-1", "Acme Inc"}, {"globex", "Globex Ltd"}},
		Selected: selected,
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		template string
		table    model.TableState
		want     string
		ok       bool
	}{
		{"slug header", "company switch {slug}", companies(0), "company switch acme-1", true},
		{"second row", "company switch {slug}", companies(1), "company switch globex", true},
		{"no selection", "company switch {slug}", companies(-1), "", false},
		{"selection out of range", "company switch {slug}", companies(5), "", false},
		{"no placeholder", "company create ", companies(-1), "company create ", true},
		{"placeholder case", "company switch {SLUG}", companies(0), "company switch acme-1", true},
		{"unknown placeholder", "invoice show {id} {amount}", companies(0), "", false},
		{
			"slug from id",
			"company switch {slug}",
			model.TableState{Headers: []string{"ID", "Company"}, Rows: [][]string{{"c-9", "Acme"}}},
			"company switch c-9",
			true,
		},
		{
			"slug from company",
			"company switch {slug}",
			model.TableState{Headers: []string{"Company", "Currency"}, Rows: [][]string{{"Acme", "USD"}}},
			"company switch Acme",
			true,
		},
		{
			"email alias",
			"user remove {email}",
			model.TableState{Headers: []string{"Email Address", "Role"}, Rows: [][]string{{"jo@acme.com", "admin"}}},
			"user remove jo@acme.com",
			true,
		},
		{
			"email from user column",
			"user remove {email}",
			model.TableState{Headers: []string{"User"}, Rows: [][]string{{"jo@acme.com"}}},
			"user remove jo@acme.com",
			true,
		},
		{
			"name from role",
			"role assign --role={name} ",
			model.TableState{Headers: []string{"Role Name", "Members"}, Rows: [][]string{{"accountant", "3"}}},
			"role assign --role=accountant ",
			true,
		},
		{
			"literal header beats alias",
			"company switch {slug}",
			model.TableState{Headers: []string{"Name", "Slug"}, Rows: [][]string{{"Acme Inc", "acme"}}},
			"company switch acme",
			true,
		},
		{
			"empty cell is unresolved",
			"invoice show {id}",
			model.TableState{Headers: []string{"ID"}, Rows: [][]string{{""}}},
			"",
			false,
		},
		{
			"values are not substituted twice",
			"invoice show {id}",
			model.TableState{Headers: []string{"ID", "Memo"}, Rows: [][]string{{"{memo}", "oops"}}},
			"invoice show {memo}",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.template, tt.table)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActionsFor(t *testing.T) {
	list := ActionsFor("company", "list")
	require.NotEmpty(t, list)
	assert.Equal(t, "s", list[0].Key)
	assert.Equal(t, "company switch {slug}", list[0].Template)

	assert.Len(t, ActionsFor("", "history"), 1)
	assert.Empty(t, ActionsFor("company", "bogus"))
	assert.Empty(t, ActionsFor("widget", "list"))

	list[0].Label = "changed"
	assert.Equal(t, "Switch", ActionsFor("company", "list")[0].Label)
}

func TestActionKeysAreUnique(t *testing.T) {
	for key, list := range actions {
		seen := map[string]bool{}
		for _, a := range list {
			assert.False(t, seen[a.Key], "%s: duplicate key %q", key, a.Key)
			seen[a.Key] = true
		}
	}
}

func TestLabelFor(t *testing.T) {
	switchAction := model.QuickAction{Label: "Switch", Template: "company switch {slug}", NeedsRow: true}

	assert.Equal(t, "Switch Acme Inc", LabelFor(switchAction, companies(0)))
	assert.Equal(t, "Switch", LabelFor(switchAction, companies(-1)))

	plain := model.QuickAction{Label: "New company", Template: "company create "}
	assert.Equal(t, "New company", LabelFor(plain, companies(0)))

	invoices := model.TableState{Headers: []string{"ID", "Amount"}, Rows: [][]string{{"INV-7", "12.00"}}}
	assert.Equal(t, "View INV-7", LabelFor(model.QuickAction{Label: "View", NeedsRow: true}, invoices))
}

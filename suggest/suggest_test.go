package suggest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"cmdpalette/grammar"
	"cmdpalette/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(s []model.Suggestion) []string {
	out := make([]string, len(s))
	for i, item := range s {
		out[i] = item.Value
	}
	return out
}

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		completion string
		want       float64
	}{
		{"prefix", "inv", "invoice", 100 + 20*3.0/7},
		{"case insensitive", "INV", "Invoice", 100 + 20*3.0/7},
		{"after dot", "cr", "invoice.create", 80 + 20*2.0/14},
		{"fuzzy boundary then inner", "ic", "invoice create", 15},
		{"fuzzy word boundary", "ic", "invoice.create", 15},
		{"no match", "xyz", "invoice", 0},
		{"empty input", "", "invoice", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.input, tt.completion), 1e-9)
		})
	}
}

func TestScorePrefersPrefix(t *testing.T) {
	assert.Greater(t, Score("inv", "invoice"), Score("inv", "invoice create"))
	assert.Greater(t, Score("inv", "invoice create"), Score("inv", "user.invite"))
	assert.Greater(t, Score("inv", "user.invite"), Score("inv", "user invite"))
}

func TestSuggestPartialEntity(t *testing.T) {
	r := New(grammar.Default())

	got := r.Suggest("inv", Options{})
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), DefaultMaxResults)
	assert.Equal(t, "invoice ", got[0].Value)
	assert.Equal(t, model.KindEntity, got[0].Kind)

	for i, s := range got {
		assert.True(t, InOrder("inv", s.Value) || strings.HasPrefix(s.Value, "inv"), s.Value)
		if i == 0 {
			continue
		}
		prev := got[i-1]
		assert.GreaterOrEqual(t, prev.Score, s.Score)
		if prev.Score == s.Score {
			assert.LessOrEqual(t, utf8.RuneCountInString(prev.Value), utf8.RuneCountInString(s.Value))
		}
	}
}

func TestSuggestNoDuplicates(t *testing.T) {
	r := New(grammar.Default())
	for _, input := range []string{"", "i", "inv", "user ", "co"} {
		got := r.Suggest(input, Options{MaxResults: 50})
		seen := map[string]bool{}
		for _, s := range got {
			assert.False(t, seen[s.Value], "duplicate %q for %q", s.Value, input)
			seen[s.Value] = true
		}
	}
}

func TestSuggestQuickStart(t *testing.T) {
	r := New(grammar.Default())

	got := r.Suggest("", Options{})
	assert.Equal(t, []string{
		"invoice create ",
		"invoice list ",
		"customer create ",
		"company list ",
		"user invite ",
		"user list ",
		"help ",
	}, values(got))
	assert.Equal(t, "ic → invoice create", got[0].Label)

	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i-1].Score, got[i].Score)
	}
}

func TestSuggestQuickStartHistoryFirst(t *testing.T) {
	r := New(grammar.Default())

	got := r.Suggest("  ", Options{Frecency: map[string]float64{
		"journal.create": 3,
		"invoice.create": 1,
		"nope.missing":   9,
	}})
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, "journal create ", got[0].Value)
	assert.Equal(t, model.KindHistory, got[0].Kind)
	assert.Equal(t, "invoice create ", got[1].Value)
	assert.Equal(t, model.KindHistory, got[1].Kind)
	assert.Len(t, got, 8)
}

func TestSuggestFrecencyBoost(t *testing.T) {
	r := New(grammar.Default())

	plain := r.Suggest("u", Options{})
	require.NotEmpty(t, plain)
	assert.Equal(t, "user ", plain[0].Value)

	boosted := r.Suggest("u", Options{Frecency: map[string]float64{"user.remove": 1}})
	require.NotEmpty(t, boosted)
	assert.Equal(t, "user remove ", boosted[0].Value)
	assert.Equal(t, "user.remove", boosted[0].CommandKey)
}

func TestSuggestVerbStage(t *testing.T) {
	r := New(grammar.Default())

	t.Run("all verbs after entity and space", func(t *testing.T) {
		got := r.Suggest("invoice ", Options{})
		assert.Equal(t, []string{
			"invoice list ",
			"invoice send ",
			"invoice show ",
			"invoice void ",
			"invoice create ",
		}, values(got))
		for _, s := range got {
			assert.Equal(t, model.KindVerb, s.Kind)
		}
	})

	t.Run("shortcut entity", func(t *testing.T) {
		got := r.Suggest("inv cr", Options{})
		require.NotEmpty(t, got)
		assert.Equal(t, "invoice create ", got[0].Value)
		assert.Equal(t, "create", got[0].Label)
		assert.Equal(t, "Create an invoice", got[0].Description)
		assert.Equal(t, "🧾", got[0].Icon)
	})

	t.Run("alias matches", func(t *testing.T) {
		got := r.Suggest("invoice ls", Options{})
		require.NotEmpty(t, got)
		assert.Equal(t, "invoice list ", got[0].Value)
	})

	t.Run("explicit stage", func(t *testing.T) {
		got := r.Suggest("payment", Options{Stage: StageVerb})
		assert.Equal(t, []string{"payment list ", "payment create "}, values(got))
	})

	t.Run("unknown entity", func(t *testing.T) {
		assert.Empty(t, r.Suggest("widget ", Options{}))
	})

	t.Run("past the verb", func(t *testing.T) {
		assert.Empty(t, r.Suggest("invoice create --amount", Options{}))
	})
}

func TestSuggestBuiltins(t *testing.T) {
	r := New(grammar.Default())

	got := r.Suggest("he", Options{})
	require.NotEmpty(t, got)
	assert.Equal(t, "help ", got[0].Value)
	assert.Equal(t, "help", got[0].CommandKey)
}

func TestSuggestMaxResults(t *testing.T) {
	r := New(grammar.Default())

	assert.Len(t, r.Suggest("e", Options{MaxResults: 2}), 2)
	assert.Len(t, r.Suggest("", Options{MaxResults: 3}), 3)
}

func TestInOrder(t *testing.T) {
	assert.True(t, InOrder("ivc", "invoice"))
	assert.True(t, InOrder("", "anything"))
	assert.False(t, InOrder("vi", "v"))
	assert.True(t, InOrder("UI", "user invite"))
}

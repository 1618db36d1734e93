package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cmdpalette/model"
	"cmdpalette/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	body := "log_file: " + filepath.Join(dir, "palette.log") + "\n" +
		"storage:\n  backend: " + backend + "\n  path: " + filepath.Join(dir, "palette.db") + "\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	cfg := writeConfig(t, "memory")

	out, err := execute(t, cfg, "parse", "ic", "Acme", "1200", "USD")
	require.NoError(t, err)

	var parsed model.ParsedCommand
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "invoice", parsed.Entity)
	assert.Equal(t, "create", parsed.Verb)
	assert.Equal(t, "Acme", parsed.Flags["customer"])
	assert.Equal(t, 1200.0, parsed.Flags["amount"])
	assert.True(t, parsed.Complete)
	assert.NotEmpty(t, parsed.IdempotencyKey)
}

func TestParseCommandCanonical(t *testing.T) {
	cfg := writeConfig(t, "memory")

	out, err := execute(t, cfg, "parse", "--canonical", "company", "create", "Acme Inc", "USD")
	require.NoError(t, err)
	assert.Equal(t, "company create --currency=USD --name \"Acme Inc\"\n", out)
}

func TestSuggestCommand(t *testing.T) {
	cfg := writeConfig(t, "memory")

	out, err := execute(t, cfg, "suggest", "--json", "inv")
	require.NoError(t, err)

	var got []model.Suggestion
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got)
	assert.Equal(t, "invoice ", got[0].Value)
	assert.LessOrEqual(t, len(got), 8)

	out, err = execute(t, cfg, "suggest", "--verbs", "--limit", "2", "--json", "payment")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 2)
	assert.Equal(t, model.KindVerb, got[0].Kind)
}

func TestRunCommand(t *testing.T) {
	cfg := writeConfig(t, "memory")

	out, err := execute(t, cfg, "run", "--plain", "company", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Running company.list")
	assert.Contains(t, out, "3 companies")
	assert.Contains(t, out, "acme-inc")
	assert.Contains(t, out, "┌")
}

func TestRunCommandRefusesIncomplete(t *testing.T) {
	cfg := writeConfig(t, "memory")

	_, err := execute(t, cfg, "run", "user", "invite")
	assert.ErrorIs(t, err, runner.ErrIncomplete)

	_, err = execute(t, cfg, "run", "help")
	assert.Error(t, err)
}

func TestRunSharesJournalAndHistory(t *testing.T) {
	cfg := writeConfig(t, "sqlite")

	out, err := execute(t, cfg, "run", "--plain", "customer", "create", "Globex")
	require.NoError(t, err)
	assert.Contains(t, out, "Preview")

	out, err = execute(t, cfg, "run", "--plain", "customer", "create", "Globex")
	require.NoError(t, err)
	assert.Contains(t, out, "Already submitted, not run again")
	assert.NotContains(t, out, "Running")

	for i := 0; i < 2; i++ {
		out, err = execute(t, cfg, "run", "--plain", "company", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "3 companies")
		assert.NotContains(t, out, "Already submitted")
	}

	out, err = execute(t, cfg, "history", "--json")
	require.NoError(t, err)
	var entries []struct {
		Command string  `json:"command"`
		Count   int     `json:"count"`
		Score   float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "company.list", entries[0].Command)
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, "customer.create", entries[1].Command)
	assert.Equal(t, 1, entries[1].Count)

	out, err = execute(t, cfg, "history", "--submissions", "--json")
	require.NoError(t, err)
	var subs []model.Submission
	require.NoError(t, json.Unmarshal([]byte(out), &subs))
	require.Len(t, subs, 1, "read-only commands are not journaled")
	assert.Equal(t, "customer.create", subs[0].Command)
	assert.Equal(t, 2, subs[0].Attempts)

	out, err = execute(t, cfg, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "customer create")
}

func TestHistorySubmissionsNeedSQLite(t *testing.T) {
	cfg := writeConfig(t, "memory")

	_, err := execute(t, cfg, "history", "--submissions")
	assert.ErrorContains(t, err, "no submission journal")
}

func TestHelpCommand(t *testing.T) {
	cfg := writeConfig(t, "memory")

	out, err := execute(t, cfg, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "Commands")

	out, err = execute(t, cfg, "help", "invoice", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "invoice create")
	assert.Contains(t, out, "Flags:")

	out, err = execute(t, cfg, "help", "parse")
	require.NoError(t, err)
	assert.Contains(t, out, "Parse palette input")
}

func TestBadConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: redis\n"), 0o600))

	_, err := execute(t, path, "parse", "company", "list")
	assert.ErrorContains(t, err, "unknown backend")
}

package ui

import (
	"context"
	"fmt"
	"strings"

	"cmdpalette/frecency"
	"cmdpalette/grammar"
	"cmdpalette/help"
	"cmdpalette/model"
	"cmdpalette/output"
	"cmdpalette/parser"
	"cmdpalette/quickaction"
	"cmdpalette/runner"
	"cmdpalette/suggest"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// Settings are the display limits taken from config.
type Settings struct {
	MaxResults     int
	MaxColumnWidth int
}

type App struct {
	registry   *grammar.Registry
	parser     *parser.Parser
	ranker     *suggest.Ranker
	help       *help.Generator
	dispatcher *runner.Dispatcher
	frecency   *frecency.Store
	settings   Settings

	// UI state
	width  int
	height int
	err    string
	status string

	// Input
	input       textinput.Model
	parsed      model.ParsedCommand
	suggestions []model.Suggestion
	cursor      int
	scores      map[string]float64

	// Output
	output      viewport.Model
	outputLines []string
	running     bool
	events      chan runner.Event
	cancel      context.CancelFunc

	// Last result table and the quick actions offered on it
	table   model.TableState
	actions []model.QuickAction
}

func NewApp(reg *grammar.Registry, dispatcher *runner.Dispatcher, store *frecency.Store, settings Settings) *App {
	input := textinput.New()
	input.Placeholder = "Type a command, e.g. ic Acme 1200 USD"
	input.Prompt = "› "
	input.Focus()

	app := &App{
		registry:   reg,
		parser:     parser.New(reg),
		ranker:     suggest.New(reg),
		help:       help.New(reg),
		dispatcher: dispatcher,
		frecency:   store,
		settings:   settings,
		input:      input,
		output:     viewport.New(80, 10),
		table:      model.TableState{Selected: -1},
	}
	app.scores = store.Scores()
	app.refresh()
	return app
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

type eventMsg runner.Event

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width - 4  // account for app padding
		a.height = msg.Height - 2 // account for app padding
		a.output.Width = a.width - 4
		a.output.Height = a.height / 3
		a.input.Width = a.width - 4
		return a, nil

	case eventMsg:
		return a.handleEvent(runner.Event(msg))

	case tea.KeyMsg:
		a.err = ""
		a.status = ""
		return a.updateKey(msg)
	}

	return a, nil
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if a.cancel != nil {
			a.cancel()
		}
		return a, tea.Quit
	}
	if msg.Alt && msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return a.quickAction(string(msg.Runes))
	}

	switch msg.String() {
	case "esc":
		a.input.SetValue("")
		a.refresh()

	case "tab":
		if len(a.suggestions) > 0 {
			a.input.SetValue(a.suggestions[a.cursor].Value)
			a.input.CursorEnd()
			a.refresh()
		}

	case "up":
		if a.browsingRows() {
			if a.table.Selected > 0 {
				a.table.Selected--
				a.setOutput()
			}
		} else if a.cursor > 0 {
			a.cursor--
		}

	case "down":
		if a.browsingRows() {
			if a.table.Selected < len(a.table.Rows)-1 {
				a.table.Selected++
				a.setOutput()
			}
		} else if a.cursor < len(a.suggestions)-1 {
			a.cursor++
		}

	case "enter":
		return a.submit(a.input.Value())

	default:
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		a.refresh()
		return a, cmd
	}

	return a, nil
}

// browsingRows reports whether up/down move the selected table row rather
// than the suggestion cursor.
func (a *App) browsingRows() bool {
	return a.input.Value() == "" && len(a.table.Rows) > 0
}

// refresh re-parses and re-ranks the current input.
func (a *App) refresh() {
	value := a.input.Value()
	a.parsed = a.parser.Parse(value)
	a.suggestions = a.ranker.Suggest(value, suggest.Options{
		MaxResults: a.settings.MaxResults,
		Frecency:   a.scores,
	})
	if a.cursor >= len(a.suggestions) {
		a.cursor = max(0, len(a.suggestions)-1)
	}
}

func (a *App) submit(text string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(text) == "" {
		return a, nil
	}

	cmd := a.parser.Parse(text)
	if cmd.Builtin {
		a.runBuiltin(cmd)
		return a, nil
	}
	if len(cmd.Errors) > 0 {
		a.err = strings.Join(cmd.Errors, "; ")
		return a, nil
	}
	if !cmd.Complete {
		a.err = "Missing " + strings.Join(a.missing(cmd), ", ")
		return a, nil
	}
	if a.running {
		a.status = "A command is still running"
		return a, nil
	}
	return a.dispatch(cmd)
}

func (a *App) dispatch(cmd model.ParsedCommand) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.running = true
	a.events = make(chan runner.Event)

	a.outputLines = []string{describeStyle.Render("› " + parser.Format(cmd)), ""}
	a.table = model.TableState{Selected: -1}
	a.actions = nil
	a.setOutput()

	a.input.SetValue("")
	a.refresh()

	go a.dispatcher.Submit(ctx, cmd, a.events)
	return a, waitForEvent(a.events)
}

func waitForEvent(ch chan runner.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventMsg{Done: true}
		}
		return eventMsg(ev)
	}
}

func (a *App) handleEvent(ev runner.Event) (tea.Model, tea.Cmd) {
	if !ev.Done {
		a.outputLines = append(a.outputLines, progressStyle.Render(ev.Line))
		a.setOutput()
		// Keep reading from channel
		return a, waitForEvent(a.events)
	}

	a.running = false
	a.events = nil
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	switch {
	case ev.Err != nil:
		a.outputLines = append(a.outputLines, errorStyle.Render("Error: "+ev.Err.Error()))
	case ev.Duplicate:
		a.outputLines = append(a.outputLines, noticeStyle.Render("Already submitted, not run again"))
	case ev.Result != nil:
		a.showResult(ev.Command, *ev.Result)
		a.scores = a.frecency.Scores()
		a.refresh()
	}
	a.setOutput()
	return a, nil
}

func (a *App) showResult(cmd model.ParsedCommand, res runner.Result) {
	if res.Message != "" {
		a.outputLines = append(a.outputLines, output.FormatANSI(res.Message))
	}
	a.table = res.Table()
	a.actions = quickaction.ActionsFor(cmd.Entity, cmd.Verb)
}

func (a *App) runBuiltin(cmd model.ParsedCommand) {
	a.frecency.Record(cmd.Key())
	a.scores = a.frecency.Scores()

	a.table = model.TableState{Selected: -1}
	a.actions = nil

	switch cmd.Verb {
	case "help":
		a.outputLines = strings.Split(strings.TrimRight(a.help.Help(cmd.Subject), "\n"), "\n")
	case "clear":
		a.outputLines = nil
	case "history":
		a.outputLines = []string{headingStyle.Render("Most used")}
		a.table = historyTable(a.frecency.Entries())
		a.actions = quickaction.ActionsFor("", cmd.Verb)
	}

	a.input.SetValue("")
	a.refresh()
	a.setOutput()
}

func historyTable(entries []frecency.Scored) model.TableState {
	t := model.TableState{Headers: []string{"Command", "Uses", "Score"}, Selected: -1}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{e.Command, fmt.Sprint(e.Count), fmt.Sprintf("%.2f", e.Score)})
	}
	if len(t.Rows) > 0 {
		t.Selected = 0
	}
	return t
}

// quickAction fires the action bound to key. When the template cannot be
// filled from the selected row, or fills into an incomplete command, the
// text is left in the input for the user to finish.
func (a *App) quickAction(key string) (tea.Model, tea.Cmd) {
	for _, act := range a.actions {
		if act.Key != key {
			continue
		}

		text, ok := quickaction.Resolve(act.Template, a.table)
		if !ok {
			a.prefill(act.Template)
			a.status = act.Prompt
			if a.status == "" {
				a.status = "Fill in the command and press enter"
			}
			return a, nil
		}

		cmd := a.parser.Parse(text)
		if cmd.Complete && !cmd.Builtin && !a.running {
			return a.dispatch(cmd)
		}
		a.prefill(text)
		return a, nil
	}

	a.status = "No quick action on alt+" + key
	return a, nil
}

func (a *App) prefill(text string) {
	a.input.SetValue(text)
	a.input.CursorEnd()
	a.refresh()
}

// missing lists the required flags cmd still lacks.
func (a *App) missing(cmd model.ParsedCommand) []string {
	verb, ok := a.registry.Verb(cmd.Entity, cmd.Verb)
	if !ok {
		return nil
	}
	var names []string
	for _, name := range verb.Required() {
		if !cmd.Has(name) {
			names = append(names, "--"+name)
		}
	}
	return names
}

func (a *App) setOutput() {
	content := strings.Join(a.outputLines, "\n")
	if len(a.table.Headers) > 0 {
		content += "\n" + renderTable(a.table, a.settings.MaxColumnWidth)
	}
	a.output.SetContent(content)
}

// renderTable draws the result table with the selected row highlighted.
func renderTable(t model.TableState, maxWidth int) string {
	lines := strings.Split(strings.TrimSuffix(output.RenderTable(t.Headers, t.Rows, maxWidth), "\n"), "\n")
	// border, header, separator, then one line per row
	const firstRow = 3
	if sel := firstRow + t.Selected; t.Selected >= 0 && sel < len(lines)-1 {
		lines[sel] = cursorStyle.Render(lines[sel])
	}
	return strings.Join(lines, "\n")
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	// Title
	b.WriteString(headingStyle.Render("cmdpalette"))
	b.WriteString("\n\n")

	// Input and live parse preview
	b.WriteString(inputStyle.Width(a.width - 4).Render(a.input.View()))
	b.WriteString("\n")
	if preview := a.renderPreview(); preview != "" {
		b.WriteString(preview)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Suggestions
	if !a.browsingRows() {
		b.WriteString(a.renderSuggestions())
	}

	// Output pane
	b.WriteString("\n")
	b.WriteString(resultsLabelStyle.Render("OUTPUT"))
	b.WriteString("\n")
	b.WriteString(resultsBoxStyle.Width(a.width - 4).Render(a.output.View()))
	b.WriteString("\n")

	if bar := a.renderActions(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
	}

	// Status/error
	if a.err != "" {
		b.WriteString(errorStyle.Render("Error: " + a.err))
		b.WriteString("\n")
	}
	if a.status != "" {
		b.WriteString(noticeStyle.Render(a.status))
		b.WriteString("\n")
	}

	// Help bar
	b.WriteString(a.renderHelp())

	return paletteStyle.Render(b.String())
}

func (a *App) renderPreview() string {
	p := a.parsed
	switch {
	case strings.TrimSpace(a.input.Value()) == "":
		return ""
	case len(p.Errors) > 0:
		return parsedErrorStyle.Render("✗ " + strings.Join(p.Errors, "; "))
	case p.Builtin:
		return progressStyle.Render("built-in " + p.Verb)
	case p.Complete:
		return parsedOKStyle.Render("✓ " + parser.Format(p))
	default:
		return parsedPartialStyle.Render("… " + parser.Format(p) + "  missing " + strings.Join(a.missing(p), ", "))
	}
}

func (a *App) renderSuggestions() string {
	if len(a.suggestions) == 0 {
		return ""
	}

	pattern := lastWord(a.input.Value())
	var lines []string
	for i, s := range a.suggestions {
		prefix := "  "
		style := suggestionStyle
		if i == a.cursor {
			prefix = "▸ "
			style = cursorStyle
		}
		label := highlight(pattern, s.Label, style)
		line := style.Render(prefix+s.Icon+" ") + label
		if s.Description != "" {
			line += describeStyle.Render("  " + s.Description)
		}
		if badge, ok := kindBadges[s.Kind]; ok {
			line += "  " + badge
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n"
}

// lastWord is the word being typed, or "" right after a space.
func lastWord(s string) string {
	if s == "" || strings.HasSuffix(s, " ") {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// highlight renders the characters of s that fuzzily match pattern in the
// match style and the rest in base.
func highlight(pattern, s string, base lipgloss.Style) string {
	if pattern == "" {
		return base.Render(s)
	}
	matches := fuzzy.Find(pattern, []string{s})
	if len(matches) == 0 {
		return base.Render(s)
	}

	hit := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, i := range matches[0].MatchedIndexes {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

func (a *App) renderActions() string {
	if len(a.actions) == 0 {
		return ""
	}
	var parts []string
	for _, act := range a.actions {
		parts = append(parts, keyStyle.Render("alt+"+act.Key)+" "+keyDescStyle.Render(quickaction.LabelFor(act, a.table)))
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderHelp() string {
	keys := []struct{ key, desc string }{
		{"tab", "complete"},
		{"enter", "run"},
		{"↑/↓", "select"},
		{"esc", "clear"},
		{"ctrl+c", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, keyStyle.Render(k.key)+" "+keyDescStyle.Render(k.desc))
	}

	return strings.Join(parts, "  ")
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cmdpalette/help"
	"cmdpalette/output"
	"cmdpalette/parser"
	"cmdpalette/runner"
	"cmdpalette/suggest"

	"github.com/spf13/cobra"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newParseCmd(p *palette) *cobra.Command {
	var canonical bool

	cmd := &cobra.Command{
		Use:   "parse <input>...",
		Short: "Parse palette input and print the structured command",
		Example: `  cmdpalette parse ic Acme 1200 USD
  cmdpalette parse --canonical "company create 'Acme Inc' USD"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := parser.New(p.registry).Parse(strings.Join(args, " "))
			if canonical {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), parser.Format(parsed))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), parsed)
		},
	}
	cmd.Flags().BoolVar(&canonical, "canonical", false, "print the canonical command line instead of JSON")
	return cmd
}

func newSuggestCmd(p *palette) *cobra.Command {
	var (
		verbs  bool
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "suggest [input]...",
		Short: "Rank completions for partial input",
		Example: `  cmdpalette suggest inv
  cmdpalette suggest --verbs invoice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := p.open(); err != nil {
				return err
			}
			opts := suggest.Options{
				MaxResults: p.cfg.Suggest.MaxResults,
				Frecency:   p.store.Scores(),
			}
			if limit > 0 {
				opts.MaxResults = limit
			}
			if verbs {
				opts.Stage = suggest.StageVerb
			}

			got := suggest.New(p.registry).Suggest(strings.Join(args, " "), opts)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), got)
			}
			rows := make([][]string, len(got))
			for i, s := range got {
				rows[i] = []string{strings.TrimSpace(s.Value), s.Label, string(s.Kind), strconv.FormatFloat(s.Score, 'f', 1, 64)}
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), output.RenderTable([]string{"Value", "Label", "Kind", "Score"}, rows, p.cfg.Output.MaxColumnWidth))
			return err
		},
	}
	cmd.Flags().BoolVar(&verbs, "verbs", false, "complete the verb of the entity already typed")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum suggestions (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// newRunCmd submits one command through the same dispatcher the palette
// uses, so history and duplicate detection are shared with the TUI.
func newRunCmd(p *palette) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "run <input>...",
		Short:   "Parse and submit a command",
		Example: `  cmdpalette run ic Acme 1200 USD`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := p.open(); err != nil {
				return err
			}
			parsed := parser.New(p.registry).Parse(strings.Join(args, " "))
			if parsed.Builtin {
				return fmt.Errorf("%q is a palette built-in; use the %s subcommand", parsed.Verb, parsed.Verb)
			}

			render := output.FormatANSI
			if plain {
				render = output.Strip
			}
			w := cmd.OutOrStdout()

			events := make(chan runner.Event)
			go p.dispatcher().Submit(cmd.Context(), parsed, events)

			var failure error
			for ev := range events {
				if !ev.Done {
					fmt.Fprintln(w, render(ev.Line))
					continue
				}
				switch {
				case ev.Err != nil:
					failure = ev.Err
				case ev.Duplicate:
					fmt.Fprintln(w, render("{warning}Already submitted, not run again{/}"))
				case ev.Result != nil:
					if ev.Result.Message != "" {
						fmt.Fprintln(w, render(ev.Result.Message))
					}
					if len(ev.Result.Headers) > 0 {
						fmt.Fprint(w, output.RenderTable(ev.Result.Headers, ev.Result.Rows, p.cfg.Output.MaxColumnWidth))
					}
				}
			}
			return failure
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "strip output markup")
	return cmd
}

func newHistoryCmd(p *palette) *cobra.Command {
	var (
		submissions bool
		limit       int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show command usage, most relevant first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := p.open(); err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if submissions {
				if p.db == nil {
					return fmt.Errorf("the %s backend keeps no submission journal", p.cfg.Storage.Backend)
				}
				subs, err := p.db.Submissions(limit)
				if err != nil {
					return fmt.Errorf("list submissions: %w", err)
				}
				if asJSON {
					return writeJSON(w, subs)
				}
				rows := make([][]string, len(subs))
				for i, s := range subs {
					last := s.CreatedAt
					if s.LastUsedAt != nil {
						last = *s.LastUsedAt
					}
					rows[i] = []string{s.Raw, s.Command, strconv.Itoa(s.Attempts), last.Local().Format(time.DateTime)}
				}
				_, err = fmt.Fprint(w, output.RenderTable([]string{"Input", "Command", "Attempts", "Last used"}, rows, p.cfg.Output.MaxColumnWidth))
				return err
			}

			entries := p.store.Entries()
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			if asJSON {
				return writeJSON(w, entries)
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{
					strings.ReplaceAll(e.Command, ".", " "),
					strconv.Itoa(e.Count),
					strconv.FormatFloat(e.Score, 'f', 2, 64),
					time.UnixMilli(e.LastUsed).Local().Format(time.DateTime),
				}
			}
			_, err := fmt.Fprint(w, output.RenderTable([]string{"Command", "Uses", "Score", "Last used"}, rows, p.cfg.Output.MaxColumnWidth))
			return err
		},
	}
	cmd.Flags().BoolVar(&submissions, "submissions", false, "list journaled submissions instead of usage (sqlite backend)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum rows")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// newHelpCmd replaces cobra's help command. Subcommand names still get
// cobra's usage text; anything else is a palette help topic.
func newHelpCmd(p *palette, root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "help [topic]",
		Short: "Show palette help for an entity, a command or a subcommand",
		Example: `  cmdpalette help
  cmdpalette help invoice
  cmdpalette help invoice create`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if sub, _, err := root.Find(args); err == nil && sub != root && sub.Name() != "help" {
					return sub.Help()
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), help.New(p.registry).Help(strings.Join(args, " ")))
			return err
		},
	}
}

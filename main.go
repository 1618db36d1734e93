package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"cmdpalette/config"
	"cmdpalette/db"
	"cmdpalette/frecency"
	"cmdpalette/grammar"
	"cmdpalette/runner"
	"cmdpalette/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// palette holds everything the subcommands share. Storage is opened on
// first use so commands that never touch history do not create files.
type palette struct {
	configPath string
	verbose    bool

	cfg      config.Config
	log      *zap.Logger
	registry *grammar.Registry

	store   *frecency.Store
	journal runner.Journal
	db      *db.DB
}

func newRootCmd() *cobra.Command {
	p := &palette{registry: grammar.Default()}

	root := &cobra.Command{
		Use:   "cmdpalette",
		Short: "Keyboard-first command palette for business operations",
		Long: `cmdpalette parses short commands like "ic Acme 1200 USD" into
structured business operations, ranks completions as you type and runs
the result. Without a subcommand it starts the interactive palette.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return p.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			p.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.runTUI(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&p.configPath, "config", "c", "", "config file (default $"+config.EnvPath+" or ~/.cmdpalette/config.yaml)")
	root.PersistentFlags().BoolVarP(&p.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Start the interactive palette",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return p.runTUI(cmd.Context())
			},
		},
		newParseCmd(p),
		newSuggestCmd(p),
		newRunCmd(p),
		newHistoryCmd(p),
	)
	root.SetHelpCommand(newHelpCmd(p, root))
	return root
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd.Name() == "tui" || !cmd.HasParent()
}

// setup loads config and builds the logger. The interactive palette owns
// the terminal, so it logs to the configured file instead of stderr.
func (p *palette) setup(cmd *cobra.Command) error {
	cfg, err := config.NewFileLoader(p.configPath).Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	p.cfg = cfg

	zc := zap.NewProductionConfig()
	level := zapcore.WarnLevel
	if isInteractive(cmd) {
		level = zapcore.InfoLevel
		if cfg.LogFile != "" {
			if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
				return fmt.Errorf("create log dir: %w", err)
			}
			zc.OutputPaths = []string{cfg.LogFile}
			zc.ErrorOutputPaths = []string{cfg.LogFile}
		}
	}
	if p.verbose || cfg.Debug {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	log, err := zc.Build()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	p.log = log.Named("cmdpalette")
	p.log.Debug("config loaded",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("storage", cfg.Storage.Path))
	return nil
}

// open wires the configured storage backend. The sqlite backend serves as
// both the frecency storage and the submission journal.
func (p *palette) open() error {
	if p.store != nil {
		return nil
	}

	var storage frecency.Storage
	switch p.cfg.Storage.Backend {
	case config.BackendSQLite:
		d, err := db.New(p.cfg.Storage.Path, p.log.Named("db"))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		p.db = d
		storage, p.journal = d, d
	case config.BackendFile:
		storage = frecency.NewFileStorage(p.cfg.Storage.Path)
		p.journal = runner.NewMemoryJournal()
	default:
		storage = frecency.NewMemoryStorage()
		p.journal = runner.NewMemoryJournal()
	}

	p.store = frecency.NewStore(storage, p.log.Named("frecency"))
	return nil
}

func (p *palette) dispatcher() *runner.Dispatcher {
	return runner.NewDispatcher(runner.PreviewExecutor{}, p.journal, p.store, p.log.Named("runner")).
		WithRetryWindow(p.cfg.Submit.RetryWindow)
}

func (p *palette) close() {
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			p.log.Warn("close database", zap.Error(err))
		}
		p.db = nil
	}
	if p.log != nil {
		_ = p.log.Sync()
	}
}

func (p *palette) runTUI(ctx context.Context) error {
	if err := p.open(); err != nil {
		return err
	}
	p.log.Info("starting palette", zap.String("config", config.NewFileLoader(p.configPath).Path()))

	app := ui.NewApp(p.registry, p.dispatcher(), p.store, ui.Settings{
		MaxResults:     p.cfg.Suggest.MaxResults,
		MaxColumnWidth: p.cfg.Output.MaxColumnWidth,
	})
	prog := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run palette: %w", err)
	}
	return nil
}

// Package runner is the submission boundary between the palette and
// whatever executes business commands.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cmdpalette/model"

	"go.uber.org/zap"
)

var (
	// ErrIncomplete is returned for commands that did not parse completely.
	ErrIncomplete = errors.New("command is incomplete")

	// ErrBuiltin is returned for built-ins, which the palette handles
	// itself.
	ErrBuiltin = errors.New("built-in commands are not dispatched")
)

// Result is what an Executor produces. Message may carry output markup.
type Result struct {
	Message string
	Headers []string
	Rows    [][]string
}

// Table returns the result as a table snapshot with the first row
// selected, or nothing selected when there are no rows.
func (r Result) Table() model.TableState {
	selected := -1
	if len(r.Rows) > 0 {
		selected = 0
	}
	return model.TableState{Headers: r.Headers, Rows: r.Rows, Selected: selected}
}

// Executor runs a complete command.
type Executor interface {
	Execute(ctx context.Context, cmd model.ParsedCommand) (Result, error)
}

// DefaultRetryWindow is how long a repeated mutating submission counts as
// a retry of the first one.
const DefaultRetryWindow = 30 * time.Second

// Journal remembers submitted idempotency keys.
type Journal interface {
	// Journal records sub and reports whether the same key was last
	// submitted less than window ago.
	Journal(sub model.Submission, window time.Duration) (bool, error)
	// Forget drops a key so the command can be submitted again.
	Forget(key string) error
}

// Recorder is told about every successfully executed command key.
type Recorder interface {
	Record(key string)
}

// Event is sent through the channel as a submission progresses. The last
// event has Done set.
type Event struct {
	Command   model.ParsedCommand
	Line      string
	Result    *Result
	Err       error
	Duplicate bool
	Done      bool
}

// Dispatcher submits parsed commands to an Executor.
type Dispatcher struct {
	exec     Executor
	journal  Journal
	recorder Recorder
	log      *zap.Logger
	window   time.Duration

	mu       sync.Mutex
	inflight map[string]bool
}

// NewDispatcher wires exec with an optional journal and usage recorder.
// A nil logger discards logs.
func NewDispatcher(exec Executor, journal Journal, recorder Recorder, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		exec:     exec,
		journal:  journal,
		recorder: recorder,
		log:      log,
		window:   DefaultRetryWindow,
		inflight: make(map[string]bool),
	}
}

// WithRetryWindow sets how long a repeated mutating submission is treated
// as a duplicate. Zero only rejects submissions still in flight.
func (d *Dispatcher) WithRetryWindow(window time.Duration) *Dispatcher {
	d.window = window
	return d
}

// claim marks key as in flight. It returns false when it already is.
func (d *Dispatcher) claim(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inflight[key] {
		return false
	}
	d.inflight[key] = true
	return true
}

func (d *Dispatcher) release(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.inflight, key)
}

// Submit executes cmd and streams its progress through out, closing out
// when done. Run it in its own goroutine.
//
// Incomplete commands and built-ins are refused. A mutating command whose
// key is still in flight, or was journaled less than the retry window
// ago, is reported as a duplicate and not executed again. Read-only
// commands always run. A failed execution is forgotten by the journal so
// it can be retried.
func (d *Dispatcher) Submit(ctx context.Context, cmd model.ParsedCommand, out chan<- Event) {
	defer close(out)

	send := func(ev Event) {
		ev.Command = cmd
		select {
		case out <- ev:
		case <-ctx.Done():
		}
	}

	if cmd.Builtin {
		send(Event{Done: true, Err: ErrBuiltin})
		return
	}
	if !cmd.Complete {
		err := ErrIncomplete
		if len(cmd.Errors) > 0 {
			err = fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(cmd.Errors, "; "))
		}
		send(Event{Done: true, Err: err})
		return
	}

	log := d.log.With(zap.String("command", cmd.Key()), zap.String("key", cmd.IdempotencyKey))

	if !cmd.ReadOnly {
		if !d.claim(cmd.IdempotencyKey) {
			log.Info("submission already in flight")
			send(Event{Done: true, Duplicate: true})
			return
		}
		defer d.release(cmd.IdempotencyKey)

		if d.journal != nil {
			dup, err := d.journal.Journal(model.Submission{
				Key:     cmd.IdempotencyKey,
				Command: cmd.Key(),
				Raw:     cmd.Raw,
			}, d.window)
			if err != nil {
				log.Warn("journal submission", zap.Error(err))
			}
			if dup {
				log.Info("duplicate submission skipped", zap.Duration("window", d.window))
				send(Event{Done: true, Duplicate: true})
				return
			}
		}
	}

	send(Event{Line: "Running " + cmd.Key()})
	log.Debug("executing")

	res, err := d.exec.Execute(ctx, cmd)
	if err != nil {
		log.Warn("execute", zap.Error(err))
		if d.journal != nil && !cmd.ReadOnly {
			if ferr := d.journal.Forget(cmd.IdempotencyKey); ferr != nil {
				log.Warn("forget submission", zap.Error(ferr))
			}
		}
		send(Event{Done: true, Err: err})
		return
	}

	if d.recorder != nil {
		d.recorder.Record(cmd.Key())
	}
	log.Info("executed", zap.Int("rows", len(res.Rows)))
	send(Event{Done: true, Result: &res})
}

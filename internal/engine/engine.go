// Package engine owns the running state machine: it serializes action
// dispatch, executes the effects each transition requests, persists the
// snapshot after every change, and runs the periodic boundary-reset
// check.
package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Engine wires the reducer to its adapters. All mutation funnels
// through Dispatch, which applies one action at a time under a mutex;
// effects run after the state swap and never block or fail a
// transition.
type Engine struct {
	mu     sync.Mutex
	state  domain.State
	closed bool

	store      ports.StateStore
	history    ports.History
	notifier   ports.Notifier
	celebrator ports.Celebrator
	git        ports.GitDetector

	workingDir string
}

// Options configures a new engine.
type Options struct {
	Store      ports.StateStore
	History    ports.History
	Notifier   ports.Notifier
	Celebrator ports.Celebrator
	Git        ports.GitDetector

	// WorkingDir is where git context is detected; empty means the
	// process working directory.
	WorkingDir string

	// RestoreSettingsOnly discards everything but the settings block
	// from the persisted snapshot, reproducing the old restore
	// behavior.
	RestoreSettingsOnly bool
}

// New loads the persisted snapshot (or defaults) and returns a ready
// engine.
func New(opts Options) (*Engine, error) {
	state, err := opts.Store.Load(domain.DefaultState())
	if err != nil {
		return nil, err
	}

	if opts.RestoreSettingsOnly {
		next := domain.DefaultState()
		next.Settings = state.Settings
		state = next
	}

	return &Engine{
		state:      state,
		store:      opts.Store,
		history:    opts.History,
		notifier:   opts.Notifier,
		celebrator: opts.Celebrator,
		git:        opts.Git,
		workingDir: opts.WorkingDir,
	}, nil
}

// State returns a snapshot of the current state.
func (e *Engine) State() domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Dispatch applies one action, persists the resulting snapshot, and
// runs the requested effects. Returns the new state.
func (e *Engine) Dispatch(action domain.Action) (domain.State, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return domain.State{}, domain.ErrEngineClosed
	}

	next, effects := domain.Apply(e.state, action, time.Now())
	e.state = next

	if err := e.store.Save(next); err != nil {
		// Persistence failures must never surface as user-visible
		// errors; the state stays live in memory.
		log.Printf("pomo: failed to save state: %v", err)
	}
	e.mu.Unlock()

	e.runEffects(effects)
	return next, nil
}

// Tick advances the running timer by one second. At zero it runs the
// completion routing instead of decrementing further.
func (e *Engine) Tick(ctx context.Context) error {
	state := e.State()
	if !state.CurrentSession.IsRunning {
		return nil
	}

	if state.CurrentSession.TimeLeft == 0 {
		return e.CompleteSession(ctx)
	}

	_, err := e.Dispatch(domain.SetTimeLeft{Seconds: state.CurrentSession.TimeLeft - 1})
	return err
}

// CompleteSession runs the full end-of-session routing for a session
// that ran to its natural end: work sessions bump the counters and
// streak, every session is archived, statistics are refreshed, and the
// cycle advances to the next mode.
func (e *Engine) CompleteSession(ctx context.Context) error {
	return e.finishSession(ctx, true)
}

// SkipSession ends the current session early. It routes exactly like a
// natural completion but the archived record is marked incomplete and
// no counters move.
func (e *Engine) SkipSession(ctx context.Context) error {
	return e.finishSession(ctx, false)
}

func (e *Engine) finishSession(ctx context.Context, completed bool) error {
	state := e.State()
	now := time.Now()

	if completed && state.CurrentSession.Mode == domain.ModeWork {
		if _, err := e.Dispatch(domain.CompletePomodoro{}); err != nil {
			return err
		}
		if _, err := e.Dispatch(domain.UpdateStreak{}); err != nil {
			return err
		}
	}

	e.archive(ctx, state, completed, now)

	_, err := e.Dispatch(domain.AdvanceSession{})
	return err
}

// archive writes the ended session to history and refreshes the
// aggregated statistics. Both are best-effort.
func (e *Engine) archive(ctx context.Context, state domain.State, completed bool, now time.Time) {
	if e.history == nil {
		return
	}

	rec := domain.NewSessionRecord(state.CurrentSession, state.Settings, completed, now)
	if e.git != nil && e.git.IsAvailable() {
		if info, err := e.git.Detect(ctx, e.workingDir); err == nil && info != nil {
			rec.GitBranch = info.Branch
			rec.GitCommit = info.Commit
		}
	}

	if err := e.history.Record(ctx, rec); err != nil {
		log.Printf("pomo: failed to archive session: %v", err)
		return
	}

	stats, err := e.history.Statistics(ctx, now)
	if err != nil {
		log.Printf("pomo: failed to aggregate statistics: %v", err)
		return
	}
	if _, err := e.Dispatch(domain.SetStatistics{Statistics: stats}); err != nil {
		log.Printf("pomo: failed to apply statistics: %v", err)
	}
}

// RunBoundaryCheck performs the reset check immediately and then once
// per interval until the context is cancelled. The production interval
// is one hour.
func (e *Engine) RunBoundaryCheck(ctx context.Context, interval time.Duration) {
	e.CheckBoundaryReset(time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			e.CheckBoundaryReset(now)
		}
	}
}

// CheckBoundaryReset compares now against the persisted last-reset
// marker: a weekday index that went backwards means a week boundary was
// crossed, a different month means a month boundary. Either dispatches
// a full stats reset. The marker is rewritten on every check.
func (e *Engine) CheckBoundaryReset(now time.Time) {
	last, ok, err := e.store.LastReset()
	if err != nil {
		log.Printf("pomo: failed to read last reset marker: %v", err)
	}

	if ok && (now.Weekday() < last.Weekday() || now.Month() != last.Month()) {
		if _, err := e.Dispatch(domain.ResetStats{}); err != nil {
			log.Printf("pomo: failed to reset stats: %v", err)
		}
	}

	if err := e.store.SetLastReset(now); err != nil {
		log.Printf("pomo: failed to write last reset marker: %v", err)
	}
}

// Close persists the final snapshot and rejects further dispatches.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return domain.ErrEngineClosed
	}
	e.closed = true

	return e.store.Save(e.state)
}

// runEffects executes transition effects. All of them are best-effort:
// failures go to stderr and never propagate.
func (e *Engine) runEffects(effects []domain.Effect) {
	for _, effect := range effects {
		switch ef := effect.(type) {
		case domain.CelebrateEffect:
			if e.celebrator != nil {
				e.celebrator.Celebrate(ef.Kind)
			}
		case domain.NotifyEffect:
			if e.notifier != nil {
				if err := e.notifier.Notify(ef.Title, ef.Body); err != nil {
					log.Printf("pomo: failed to notify: %v", err)
				}
			}
		case domain.SoundEffect:
			if e.notifier != nil {
				if err := e.notifier.Play(ef.Event); err != nil {
					log.Printf("pomo: failed to play sound: %v", err)
				}
			}
		}
	}
}

// Package ports defines the driven-port interfaces between the
// Pomodoro engine and its infrastructure adapters.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/pomo/internal/domain"
)

// StateStore persists the full reducer state snapshot plus the
// last-reset marker used by the periodic boundary check.
// This is a driven port (implemented by adapters).
type StateStore interface {
	// Load reads the persisted snapshot, backfilling any missing
	// top-level key from the given defaults. A missing or malformed
	// snapshot yields the defaults, never an error the caller must
	// treat as fatal.
	Load(defaults domain.State) (domain.State, error)

	// Save writes the full state snapshot.
	Save(state domain.State) error

	// LastReset returns the timestamp of the last boundary-reset
	// check; ok is false when none was ever recorded.
	LastReset() (t time.Time, ok bool, err error)

	// SetLastReset records the boundary-reset check timestamp.
	SetLastReset(t time.Time) error
}

// History archives ended sessions and derives aggregate statistics.
// This is a driven port (implemented by adapters).
type History interface {
	// Record persists one ended session.
	Record(ctx context.Context, rec *domain.SessionRecord) error

	// Statistics aggregates the archive into the statistics block,
	// relative to now (weekly/monthly windows, weekday buckets).
	Statistics(ctx context.Context, now time.Time) (domain.Statistics, error)

	// Recent returns archived sessions since the given time, newest
	// first.
	Recent(ctx context.Context, since time.Time) ([]*domain.SessionRecord, error)

	// Close closes the underlying store.
	Close() error
}

// Notifier delivers desktop notifications and event sounds. Failures
// are the caller's to log; they must never abort a transition.
type Notifier interface {
	Notify(title, body string) error
	Play(event string) error
	Enabled() bool
}

// Celebrator renders the celebratory effect for completions and
// achievement unlocks.
type Celebrator interface {
	Celebrate(kind domain.CelebrationKind)
}

// GitInfo is the git context captured for an archived session.
type GitInfo struct {
	Branch string
	Commit string
}

// GitDetector detects the git context of the working directory.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)
	IsAvailable() bool
}

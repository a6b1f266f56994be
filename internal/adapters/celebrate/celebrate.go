// Package celebrate renders celebration effects for completed
// pomodoros and achievement unlocks.
package celebrate

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Flash records the most recent celebration so a UI polling on its own
// tick can render it briefly. Safe for concurrent use.
type Flash struct {
	mu   sync.Mutex
	kind domain.CelebrationKind
	at   time.Time
	set  bool
}

// Ensure Flash implements ports.Celebrator.
var _ ports.Celebrator = (*Flash)(nil)

// NewFlash creates an empty flash.
func NewFlash() *Flash {
	return &Flash{}
}

// Celebrate records the celebration.
func (f *Flash) Celebrate(kind domain.CelebrationKind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kind = kind
	f.at = time.Now()
	f.set = true
}

// Take returns the pending celebration, if any, and clears it.
func (f *Flash) Take() (domain.CelebrationKind, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.set {
		return "", false
	}
	f.set = false
	return f.kind, true
}

// Age returns how long ago the last celebration was recorded.
func (f *Flash) Age() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.at.IsZero() {
		return 0
	}
	return time.Since(f.at)
}

// Printer writes celebrations to a writer, for non-interactive runs.
type Printer struct {
	Out io.Writer
}

// Ensure Printer implements ports.Celebrator.
var _ ports.Celebrator = (*Printer)(nil)

// Celebrate prints a one-line celebration.
func (p *Printer) Celebrate(kind domain.CelebrationKind) {
	switch kind {
	case domain.CelebrateAchievement:
		fmt.Fprintln(p.Out, "🏆 Achievement unlocked!")
	default:
		fmt.Fprintln(p.Out, "🎉 Pomodoro complete!")
	}
}

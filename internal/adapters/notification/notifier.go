// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/ports"
)

// Notifier handles desktop notifications and event sounds.
type Notifier struct {
	cfg *config.NotificationConfig
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, body string) error {
	if !n.Enabled() {
		return nil
	}

	return beeep.Notify(title, body, "")
}

// Play sounds the given event if sound is enabled. All events map to
// the system beep; the event name is kept so platforms with richer
// audio support can differentiate later.
func (n *Notifier) Play(event string) error {
	if n.cfg == nil || !n.cfg.Sound {
		return nil
	}

	if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
		return fmt.Errorf("failed to play %s sound: %w", event, err)
	}
	return nil
}

// Enabled returns true if notifications are enabled.
func (n *Notifier) Enabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

// NotifySessionComplete displays a notification when a session ends.
func (n *Notifier) NotifySessionComplete(mode string) error {
	title := "🍅 Pomodoro Complete!"
	body := "Great job! Time for a break."
	if mode != "work" {
		title = "☕ Break Over!"
		body = "Your break is complete. Ready to focus?"
	}
	return n.Notify(title, body)
}

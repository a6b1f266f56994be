// Package statestore persists the reducer state as a JSON snapshot on
// disk, plus the last-reset marker the boundary check compares against.
package statestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

const (
	stateFile     = "state.json"
	lastResetFile = "last_reset"
)

// Store implements ports.StateStore on a data directory.
type Store struct {
	dir string
}

// Ensure Store implements ports.StateStore.
var _ ports.StateStore = (*Store)(nil)

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load reads the snapshot. Any top-level key missing from the persisted
// JSON is backfilled from defaults, so old snapshots survive schema
// growth; a missing or unparseable file yields the defaults outright.
func (s *Store) Load(defaults domain.State) (domain.State, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, stateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("failed to read state snapshot: %w", err)
	}

	merged, err := backfill(data, defaults)
	if err != nil {
		// Corrupt snapshot: recover with defaults rather than crash.
		return defaults, nil
	}

	var state domain.State
	if err := json.Unmarshal(merged, &state); err != nil {
		return defaults, nil
	}
	sanitize(&state)
	return state, nil
}

// Save writes the full snapshot. The write goes through a temp file and
// rename so a crash mid-write can't leave a truncated snapshot.
func (s *Store) Save(state domain.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	path := filepath.Join(s.dir, stateFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace state snapshot: %w", err)
	}
	return nil
}

// LastReset reads the last boundary-reset check timestamp.
func (s *Store) LastReset() (time.Time, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, lastResetFile))
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to read last reset marker: %w", err)
	}

	t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		// Treat an unreadable marker as absent.
		return time.Time{}, false, nil
	}
	return t, true, nil
}

// SetLastReset records the boundary-reset check timestamp as RFC 3339.
func (s *Store) SetLastReset(t time.Time) error {
	data := []byte(t.Format(time.RFC3339) + "\n")
	if err := os.WriteFile(filepath.Join(s.dir, lastResetFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write last reset marker: %w", err)
	}
	return nil
}

// backfill merges the persisted top-level keys over the default ones.
func backfill(persisted []byte, defaults domain.State) ([]byte, error) {
	var loaded map[string]json.RawMessage
	if err := json.Unmarshal(persisted, &loaded); err != nil {
		return nil, err
	}

	defaultJSON, err := json.Marshal(defaults)
	if err != nil {
		return nil, err
	}
	var base map[string]json.RawMessage
	if err := json.Unmarshal(defaultJSON, &base); err != nil {
		return nil, err
	}

	for key, value := range loaded {
		base[key] = value
	}
	return json.Marshal(base)
}

// sanitize clamps restored values back into their domains; a hand-edited
// or ancient snapshot must not be able to break the invariants.
func sanitize(state *domain.State) {
	session := &state.CurrentSession
	if session.Mode != domain.ModeWork && !session.Mode.IsBreak() {
		session.Mode = domain.ModeWork
	}
	if session.TimeLeft < 0 {
		session.TimeLeft = 0
	}
	if session.EnergyLevel < 1 {
		session.EnergyLevel = 1
	}
	if session.EnergyLevel > 5 {
		session.EnergyLevel = 5
	}
	if session.FocusScore < 0 {
		session.FocusScore = 0
	}
	if session.FocusScore > 100 {
		session.FocusScore = 100
	}
	if state.TotalPomodoros < 0 {
		state.TotalPomodoros = 0
	}
	if state.WeeklyPomodoros < 0 {
		state.WeeklyPomodoros = 0
	}
	if state.MonthlyPomodoros < 0 {
		state.MonthlyPomodoros = 0
	}

	// Drop duplicate achievements, keeping first occurrence.
	seen := make(map[string]bool, len(state.Achievements))
	unique := state.Achievements[:0:0]
	for _, id := range state.Achievements {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if unique == nil {
		unique = []string{}
	}
	state.Achievements = unique
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionRecord is one archived session, written when a session ends
// (naturally, skipped, or abandoned via a cycle reset). The archive is
// the raw material the Statistics block is derived from.
type SessionRecord struct {
	ID              string
	Mode            Mode
	CompletedAt     time.Time
	DurationSeconds int
	Completed       bool // false when the session was abandoned
	FocusScore      int
	Distractions    int
	EnergyLevel     int
	GitBranch       string
	GitCommit       string
}

// NewSessionRecord builds an archive record from the session that just
// ended.
func NewSessionRecord(session CurrentSession, settings Settings, completed bool, now time.Time) *SessionRecord {
	return &SessionRecord{
		ID:              uuid.New().String(),
		Mode:            session.Mode,
		CompletedAt:     now,
		DurationSeconds: settings.ModeDuration(session.Mode) * 60,
		Completed:       completed,
		FocusScore:      session.FocusScore,
		Distractions:    session.Distractions,
		EnergyLevel:     session.EnergyLevel,
	}
}

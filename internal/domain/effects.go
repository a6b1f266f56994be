package domain

// Effect describes a side effect requested by a transition. The reducer
// only emits these; the engine's effect runner executes them, so the
// transition itself stays pure and testable.
type Effect interface {
	effectMarker()
}

// CelebrationKind selects the confetti flavor.
type CelebrationKind string

const (
	CelebratePomodoro    CelebrationKind = "pomodoro"
	CelebrateAchievement CelebrationKind = "achievement"
)

// CelebrateEffect requests a celebratory visual.
type CelebrateEffect struct {
	Kind CelebrationKind
}

func (CelebrateEffect) effectMarker() {}

// NotifyEffect requests a desktop notification. Emitted only when the
// notifications setting is on; delivery is best-effort.
type NotifyEffect struct {
	Title string
	Body  string
}

func (NotifyEffect) effectMarker() {}

// SoundEffect requests playback of the named event sound. Emitted only
// when the sound setting is on.
type SoundEffect struct {
	Event string // "work", "break" or "complete"
}

func (SoundEffect) effectMarker() {}

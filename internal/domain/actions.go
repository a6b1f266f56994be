package domain

// Action is the input to the reducer. Each action is a tagged record;
// the concrete type is the discriminator.
type Action interface {
	actionMarker()
}

// CompletePomodoro records a finished work interval: bumps the
// counters, stamps the completion time, recomputes level and
// achievements.
type CompletePomodoro struct{}

func (CompletePomodoro) actionMarker() {}

// UpdateStreak extends or resets the daily streak based on the date
// portion of the last completion.
type UpdateStreak struct{}

func (UpdateStreak) actionMarker() {}

// UnlockAchievement appends an achievement ID; a duplicate is a no-op.
type UnlockAchievement struct {
	ID string
}

func (UnlockAchievement) actionMarker() {}

// UpdateSettings shallow-merges a partial settings patch.
type UpdateSettings struct {
	Patch SettingsPatch
}

func (UpdateSettings) actionMarker() {}

// ResetStats restores everything except Settings to defaults.
type ResetStats struct{}

func (ResetStats) actionMarker() {}

// StartSession starts the clock, deriving the duration from the energy
// level when auto-adjust is enabled.
type StartSession struct{}

func (StartSession) actionMarker() {}

// PauseSession stops the clock without touching the remaining time.
type PauseSession struct{}

func (PauseSession) actionMarker() {}

// UpdateEnergyLevel sets the self-reported energy level and, with smart
// breaks enabled, adjusts the short-break duration as a side effect.
type UpdateEnergyLevel struct {
	Level int
}

func (UpdateEnergyLevel) actionMarker() {}

// LogDistraction counts a distraction and docks the focus score.
type LogDistraction struct{}

func (LogDistraction) actionMarker() {}

// UpdateFocusScore overwrites the focus score, clamped to [0,100].
type UpdateFocusScore struct {
	Score int
}

func (UpdateFocusScore) actionMarker() {}

// ToggleFocusMode flips the focus-mode setting.
type ToggleFocusMode struct{}

func (ToggleFocusMode) actionMarker() {}

// AdjustWorkDuration overwrites the work duration in minutes.
type AdjustWorkDuration struct {
	Minutes int
}

func (AdjustWorkDuration) actionMarker() {}

// SetTimeLeft overwrites the remaining seconds. The ticking driver is
// the usual caller; negative values clamp to zero.
type SetTimeLeft struct {
	Seconds int
}

func (SetTimeLeft) actionMarker() {}

// SetMode switches the session mode and reloads its full duration.
type SetMode struct {
	Mode Mode
}

func (SetMode) actionMarker() {}

// ResetCycle clears the cycle counters and returns to a stopped work
// session at its default duration.
type ResetCycle struct{}

func (ResetCycle) actionMarker() {}

// AdvanceSession performs completion routing: after a work session it
// moves to the next break per the 4-cycle rule, after a break it
// returns to work. Auto-start flags decide whether the clock keeps
// running.
type AdvanceSession struct{}

func (AdvanceSession) actionMarker() {}

// SetStatistics replaces the aggregated statistics block. Dispatched by
// analytics after the session archive changes, never by the UI.
type SetStatistics struct {
	Statistics Statistics
}

func (SetStatistics) actionMarker() {}

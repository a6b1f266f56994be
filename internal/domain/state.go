// Package domain holds the Pomodoro state machine: the state snapshot,
// the actions that transform it, and the derived level/achievement
// calculators. Everything here is pure; effects are described, not run.
package domain

import (
	"errors"
	"time"
)

var (
	ErrEngineClosed     = errors.New("engine is closed")
	ErrUnknownCatalogue = errors.New("unknown tip catalogue")
	ErrInvalidSetting   = errors.New("invalid setting")
)

// Mode is the kind of interval the timer is currently counting down.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// IsBreak reports whether the mode is a rest interval.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// Label returns a human-readable label for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeWork:
		return "Focus"
	case ModeShortBreak:
		return "Break"
	case ModeLongBreak:
		return "Rest"
	default:
		return "Unknown"
	}
}

// SessionsBeforeLong is the number of work sessions in one cycle; the
// break after the last one is a long break.
const SessionsBeforeLong = 4

// WorkingHours is the preferred working window, hours 0-23.
type WorkingHours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether the given hour falls inside the window.
func (w WorkingHours) Contains(hour int) bool {
	return hour >= w.Start && hour < w.End
}

// CustomSounds names the sound used for each timer event.
type CustomSounds struct {
	Work     string `json:"work"`
	Break    string `json:"break"`
	Complete string `json:"complete"`
}

// Settings is the user-tunable configuration block. It is mutated only
// through a settings patch, except for the smart-break coupling in
// UpdateEnergyLevel.
type Settings struct {
	WorkDuration           int          `json:"workDuration"` // minutes
	ShortBreakDuration     int          `json:"shortBreakDuration"`
	LongBreakDuration      int          `json:"longBreakDuration"`
	AutoStartBreaks        bool         `json:"autoStartBreaks"`
	AutoStartPomodoros     bool         `json:"autoStartPomodoros"`
	Notifications          bool         `json:"notifications"`
	Sound                  bool         `json:"sound"`
	SmartBreaks            bool         `json:"smartBreaks"`
	FocusMode              bool         `json:"focusMode"`
	DailyGoal              int          `json:"dailyGoal"`
	WeeklyGoal             int          `json:"weeklyGoal"`
	AutoAdjustWorkDuration bool         `json:"autoAdjustWorkDuration"`
	EnergyLevelTracking    bool         `json:"energyLevelTracking"`
	PreferredWorkingHours  WorkingHours `json:"preferredWorkingHours"`
	CustomSounds           CustomSounds `json:"customSounds"`
}

// SettingsPatch is a partial settings update. Nil fields are left
// untouched; the merge is shallow.
type SettingsPatch struct {
	WorkDuration           *int          `json:"workDuration,omitempty"`
	ShortBreakDuration     *int          `json:"shortBreakDuration,omitempty"`
	LongBreakDuration      *int          `json:"longBreakDuration,omitempty"`
	AutoStartBreaks        *bool         `json:"autoStartBreaks,omitempty"`
	AutoStartPomodoros     *bool         `json:"autoStartPomodoros,omitempty"`
	Notifications          *bool         `json:"notifications,omitempty"`
	Sound                  *bool         `json:"sound,omitempty"`
	SmartBreaks            *bool         `json:"smartBreaks,omitempty"`
	FocusMode              *bool         `json:"focusMode,omitempty"`
	DailyGoal              *int          `json:"dailyGoal,omitempty"`
	WeeklyGoal             *int          `json:"weeklyGoal,omitempty"`
	AutoAdjustWorkDuration *bool         `json:"autoAdjustWorkDuration,omitempty"`
	EnergyLevelTracking    *bool         `json:"energyLevelTracking,omitempty"`
	PreferredWorkingHours  *WorkingHours `json:"preferredWorkingHours,omitempty"`
	CustomSounds           *CustomSounds `json:"customSounds,omitempty"`
}

// Merge applies the patch on top of s and returns the result.
func (p SettingsPatch) Merge(s Settings) Settings {
	if p.WorkDuration != nil {
		s.WorkDuration = *p.WorkDuration
	}
	if p.ShortBreakDuration != nil {
		s.ShortBreakDuration = *p.ShortBreakDuration
	}
	if p.LongBreakDuration != nil {
		s.LongBreakDuration = *p.LongBreakDuration
	}
	if p.AutoStartBreaks != nil {
		s.AutoStartBreaks = *p.AutoStartBreaks
	}
	if p.AutoStartPomodoros != nil {
		s.AutoStartPomodoros = *p.AutoStartPomodoros
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.Sound != nil {
		s.Sound = *p.Sound
	}
	if p.SmartBreaks != nil {
		s.SmartBreaks = *p.SmartBreaks
	}
	if p.FocusMode != nil {
		s.FocusMode = *p.FocusMode
	}
	if p.DailyGoal != nil {
		s.DailyGoal = *p.DailyGoal
	}
	if p.WeeklyGoal != nil {
		s.WeeklyGoal = *p.WeeklyGoal
	}
	if p.AutoAdjustWorkDuration != nil {
		s.AutoAdjustWorkDuration = *p.AutoAdjustWorkDuration
	}
	if p.EnergyLevelTracking != nil {
		s.EnergyLevelTracking = *p.EnergyLevelTracking
	}
	if p.PreferredWorkingHours != nil {
		s.PreferredWorkingHours = *p.PreferredWorkingHours
	}
	if p.CustomSounds != nil {
		s.CustomSounds = *p.CustomSounds
	}
	return s
}

// CurrentSession is the live timer state.
type CurrentSession struct {
	Mode         Mode `json:"mode"`
	TimeLeft     int  `json:"timeLeft"` // seconds, never negative
	IsRunning    bool `json:"isRunning"`
	EnergyLevel  int  `json:"energyLevel"` // 1-5
	FocusScore   int  `json:"focusScore"`  // 0-100
	Distractions int  `json:"distractions"`
}

// Statistics aggregates session history. The counters are additive and
// recomputed from the archive by analytics, never inside the reducer.
type Statistics struct {
	BestFocusHours        []int          `json:"bestFocusHours"`
	AverageCompletionRate float64        `json:"averageCompletionRate"` // 0-100
	MostProductiveDays    []time.Weekday `json:"mostProductiveDays"`
	WeeklyProgress        []int          `json:"weeklyProgress"`  // 7 slots
	MonthlyProgress       []int          `json:"monthlyProgress"` // 30 slots
}

// Level is the gamification rank derived from TotalPomodoros.
type Level struct {
	Current  LevelKey `json:"current"`
	Progress int      `json:"progress"` // 0-100
}

// State is the full reducer state. Treat it as immutable: Apply returns
// a fresh value and never mutates its input.
type State struct {
	TotalPomodoros    int            `json:"totalPomodoros"`
	DailyStreak       int            `json:"dailyStreak"`
	WeeklyPomodoros   int            `json:"weeklyPomodoros"`
	MonthlyPomodoros  int            `json:"monthlyPomodoros"`
	Achievements      []string       `json:"achievements"`
	Level             Level          `json:"level"`
	LastCompletedDate *time.Time     `json:"lastCompletedDate"`
	CycleCount        int            `json:"cycleCount"`
	CompletedInCycle  int            `json:"completedInCycle"`
	Settings          Settings       `json:"settings"`
	CurrentSession    CurrentSession `json:"currentSession"`
	Statistics        Statistics     `json:"statistics"`
}

// DefaultSettings returns the out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:           25,
		ShortBreakDuration:     5,
		LongBreakDuration:      15,
		AutoStartBreaks:        false,
		AutoStartPomodoros:     false,
		Notifications:          true,
		Sound:                  true,
		SmartBreaks:            true,
		FocusMode:              false,
		DailyGoal:              8,
		WeeklyGoal:             40,
		AutoAdjustWorkDuration: true,
		EnergyLevelTracking:    true,
		PreferredWorkingHours:  WorkingHours{Start: 9, End: 17},
		CustomSounds:           CustomSounds{Work: "default", Break: "default", Complete: "default"},
	}
}

// DefaultState returns the initial state used at first launch and as
// the backfill source for incomplete snapshots.
func DefaultState() State {
	settings := DefaultSettings()
	return State{
		Achievements: []string{},
		Level:        Level{Current: LevelNovice, Progress: 0},
		Settings:     settings,
		CurrentSession: CurrentSession{
			Mode:        ModeWork,
			TimeLeft:    settings.WorkDuration * 60,
			IsRunning:   false,
			EnergyLevel: 5,
			FocusScore:  100,
		},
		Statistics: Statistics{
			BestFocusHours:     []int{},
			MostProductiveDays: []time.Weekday{},
			WeeklyProgress:     make([]int, 7),
			MonthlyProgress:    make([]int, 30),
		},
	}
}

// ModeDuration returns the configured length in minutes for a mode.
func (s Settings) ModeDuration(m Mode) int {
	switch m {
	case ModeShortBreak:
		return s.ShortBreakDuration
	case ModeLongBreak:
		return s.LongBreakDuration
	default:
		return s.WorkDuration
	}
}

// HasAchievement reports whether the achievement is already unlocked.
func (s State) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

func clampEnergy(level int) int {
	if level < 1 {
		return 1
	}
	if level > 5 {
		return 5
	}
	return level
}

func clampFocus(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

package domain

import (
	"math"
	"time"
)

// LevelKey identifies a gamification tier.
type LevelKey string

const (
	LevelNovice     LevelKey = "NOVICE"
	LevelFocused    LevelKey = "FOCUSED"
	LevelProductive LevelKey = "PRODUCTIVE"
	LevelExpert     LevelKey = "EXPERT"
	LevelMaster     LevelKey = "MASTER"
	LevelGuru       LevelKey = "GURU"
)

// LevelInfo is one row of the tier table.
type LevelInfo struct {
	Key       LevelKey
	Threshold int
	Title     string
	Icon      string
}

// Levels is the tier table, ordered by strictly increasing threshold.
// The zero-threshold tier is the floor.
var Levels = []LevelInfo{
	{LevelNovice, 0, "Novice Timer", "🌱"},
	{LevelFocused, 20, "Focused Mind", "🎯"},
	{LevelProductive, 50, "Productivity Master", "⚡"},
	{LevelExpert, 100, "Time Expert", "🎓"},
	{LevelMaster, 200, "Pomodoro Master", "👑"},
	{LevelGuru, 500, "Time Management Guru", "🌟"},
}

// LevelByKey looks up a tier's display metadata.
func LevelByKey(key LevelKey) (LevelInfo, bool) {
	for _, l := range Levels {
		if l.Key == key {
			return l, true
		}
	}
	return LevelInfo{}, false
}

// CalculateLevel maps a lifetime pomodoro count to a tier and a
// progress percentage toward the next tier. At the top tier progress is
// pinned to 100.
func CalculateLevel(totalPomodoros int) Level {
	if totalPomodoros < 0 {
		totalPomodoros = 0
	}

	idx := 0
	for i, l := range Levels {
		if totalPomodoros >= l.Threshold {
			idx = i
		}
	}

	if idx == len(Levels)-1 {
		return Level{Current: Levels[idx].Key, Progress: 100}
	}

	cur := Levels[idx].Threshold
	next := Levels[idx+1].Threshold
	progress := int(math.Round(100 * float64(totalPomodoros-cur) / float64(next-cur)))
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return Level{Current: Levels[idx].Key, Progress: progress}
}

// Achievement identifiers.
const (
	AchievementFirstPomodoro  = "FIRST_POMODORO"
	AchievementDailyStreak    = "DAILY_STREAK"
	AchievementFocusMaster    = "FOCUS_MASTER"
	AchievementEarlyBird      = "EARLY_BIRD"
	AchievementNightOwl       = "NIGHT_OWL"
	AchievementWeekendWarrior = "WEEKEND_WARRIOR"
)

// AchievementInfo is display metadata for one unlockable milestone.
type AchievementInfo struct {
	ID          string
	Title       string
	Description string
	Icon        string
}

// AchievementCatalogue lists every achievement, unlocked or not.
var AchievementCatalogue = []AchievementInfo{
	{AchievementFirstPomodoro, "First Timer", "Complete your first Pomodoro", "🎉"},
	{AchievementDailyStreak, "Consistency King", "Keep a 5-day completion streak", "📅"},
	{AchievementFocusMaster, "Focus Master", "Complete a full cycle without breaks", "🧘"},
	{AchievementEarlyBird, "Early Bird", "Complete a Pomodoro before 9 AM", "🌅"},
	{AchievementNightOwl, "Night Owl", "Complete a Pomodoro after 10 PM", "🌙"},
	{AchievementWeekendWarrior, "Weekend Warrior", "Complete 3 Pomodoros on a weekend", "💪"},
}

// CheckAchievements evaluates every unlock rule against the state at
// completion time and returns the grown achievement set plus the IDs
// unlocked by this evaluation. The set never shrinks and never holds
// duplicates; rules are independent, not mutually exclusive.
func CheckAchievements(s State, now time.Time) (all []string, unlocked []string) {
	all = append([]string(nil), s.Achievements...)

	unlock := func(id string) {
		for _, a := range all {
			if a == id {
				return
			}
		}
		all = append(all, id)
		unlocked = append(unlocked, id)
	}

	if s.TotalPomodoros == 1 {
		unlock(AchievementFirstPomodoro)
	}
	if s.DailyStreak >= 5 {
		unlock(AchievementDailyStreak)
	}
	if now.Hour() < 9 {
		unlock(AchievementEarlyBird)
	}
	if now.Hour() >= 22 {
		unlock(AchievementNightOwl)
	}
	weekday := now.Weekday()
	if (weekday == time.Saturday || weekday == time.Sunday) && s.WeeklyPomodoros >= 3 {
		unlock(AchievementWeekendWarrior)
	}

	return all, unlocked
}

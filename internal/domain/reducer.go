package domain

import "time"

// Apply runs one action against the state and returns the next state
// plus the effects the transition requests. It is pure and total: no
// I/O, no clock reads (now comes in as an argument), and an unknown
// action returns the input state unchanged with no effects.
func Apply(s State, action Action, now time.Time) (State, []Effect) {
	switch a := action.(type) {
	case CompletePomodoro:
		return applyCompletePomodoro(s, now)

	case UpdateStreak:
		return applyUpdateStreak(s, now), nil

	case UnlockAchievement:
		if s.HasAchievement(a.ID) {
			return s, nil
		}
		s.Achievements = append(append([]string(nil), s.Achievements...), a.ID)
		return s, nil

	case UpdateSettings:
		s.Settings = a.Patch.Merge(s.Settings)
		return s, nil

	case ResetStats:
		next := DefaultState()
		next.Settings = s.Settings
		return next, nil

	case StartSession:
		duration := s.Settings.WorkDuration
		if s.Settings.AutoAdjustWorkDuration {
			switch {
			case s.CurrentSession.EnergyLevel >= 4:
				duration = min(45, duration+5)
			case s.CurrentSession.EnergyLevel <= 2:
				duration = max(15, duration-5)
			}
		}
		s.CurrentSession.IsRunning = true
		s.CurrentSession.TimeLeft = duration * 60
		return s, nil

	case PauseSession:
		s.CurrentSession.IsRunning = false
		return s, nil

	case UpdateEnergyLevel:
		level := clampEnergy(a.Level)
		if s.Settings.SmartBreaks {
			switch {
			case level <= 2:
				s.Settings.ShortBreakDuration += 2
			case level >= 4:
				s.Settings.ShortBreakDuration = max(3, s.Settings.ShortBreakDuration-1)
			}
		}
		s.CurrentSession.EnergyLevel = level
		return s, nil

	case LogDistraction:
		s.CurrentSession.Distractions++
		s.CurrentSession.FocusScore = clampFocus(s.CurrentSession.FocusScore - 10)
		return s, nil

	case UpdateFocusScore:
		s.CurrentSession.FocusScore = clampFocus(a.Score)
		return s, nil

	case ToggleFocusMode:
		s.Settings.FocusMode = !s.Settings.FocusMode
		return s, nil

	case AdjustWorkDuration:
		if a.Minutes > 0 {
			s.Settings.WorkDuration = a.Minutes
		}
		return s, nil

	case SetTimeLeft:
		s.CurrentSession.TimeLeft = max(0, a.Seconds)
		return s, nil

	case SetMode:
		s.CurrentSession.Mode = a.Mode
		return s, nil

	case ResetCycle:
		s.CycleCount = 0
		s.CompletedInCycle = 0
		s.CurrentSession.Mode = ModeWork
		s.CurrentSession.TimeLeft = s.Settings.WorkDuration * 60
		s.CurrentSession.IsRunning = false
		return s, nil

	case AdvanceSession:
		return applyAdvanceSession(s), nil

	case SetStatistics:
		s.Statistics = normalizeStatistics(a.Statistics)
		return s, nil

	default:
		return s, nil
	}
}

func applyCompletePomodoro(s State, now time.Time) (State, []Effect) {
	s.TotalPomodoros++
	s.WeeklyPomodoros++
	s.MonthlyPomodoros++
	completed := now
	s.LastCompletedDate = &completed

	s.Level = CalculateLevel(s.TotalPomodoros)

	effects := []Effect{CelebrateEffect{Kind: CelebratePomodoro}}

	all, unlocked := CheckAchievements(s, now)
	s.Achievements = all
	for range unlocked {
		effects = append(effects, CelebrateEffect{Kind: CelebrateAchievement})
	}

	if s.Settings.Sound {
		effects = append(effects, SoundEffect{Event: "complete"})
	}
	if s.Settings.Notifications {
		effects = append(effects, NotifyEffect{
			Title: "Pomodoro Complete!",
			Body:  "Time for a break! Great work! 🎉",
		})
	}

	return s, effects
}

// applyUpdateStreak compares calendar dates, not wall-clock distance:
// completing twice on the same day or on consecutive days extends the
// streak, anything older resets it to 1.
func applyUpdateStreak(s State, now time.Time) State {
	if s.LastCompletedDate == nil {
		return s
	}

	today := dateOnly(now)
	last := dateOnly(*s.LastCompletedDate)

	if today.Sub(last) <= 24*time.Hour {
		s.DailyStreak++
	} else {
		s.DailyStreak = 1
	}
	return s
}

func applyAdvanceSession(s State) State {
	if s.CurrentSession.Mode == ModeWork {
		s.CycleCount = (s.CycleCount + 1) % SessionsBeforeLong
		s.CompletedInCycle++

		next := ModeShortBreak
		if s.CycleCount == 0 {
			next = ModeLongBreak
		}
		s.CurrentSession.Mode = next
		s.CurrentSession.TimeLeft = s.Settings.ModeDuration(next) * 60
		s.CurrentSession.IsRunning = s.Settings.AutoStartBreaks
		return s
	}

	s.CurrentSession.Mode = ModeWork
	s.CurrentSession.TimeLeft = s.Settings.WorkDuration * 60
	s.CurrentSession.IsRunning = s.Settings.AutoStartPomodoros
	return s
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizeStatistics(st Statistics) Statistics {
	if st.BestFocusHours == nil {
		st.BestFocusHours = []int{}
	}
	if st.MostProductiveDays == nil {
		st.MostProductiveDays = []time.Weekday{}
	}
	st.WeeklyProgress = resize(st.WeeklyProgress, 7)
	st.MonthlyProgress = resize(st.MonthlyProgress, 30)
	return st
}

func resize(slots []int, n int) []int {
	out := make([]int, n)
	copy(out, slots)
	return out
}

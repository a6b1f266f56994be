package tips

import (
	"strings"
	"time"

	"github.com/xvierd/pomo/internal/domain"
)

// CatalogueAdaptive is the closure-predicate catalogue: every tip and
// technique carries a "recommended" predicate over the full state, so
// rules can reach into statistics, goals and working hours rather than
// plain energy/focus ranges.
const CatalogueAdaptive = "adaptive"

type adaptiveTip struct {
	Tip
	applies func(domain.State, time.Time) bool
}

type adaptiveTechnique struct {
	Technique
	recommended func(domain.State, time.Time) bool
}

type adaptiveCatalogue struct {
	tips       []adaptiveTip
	techniques []adaptiveTechnique
}

// Adaptive returns the adaptive catalogue.
func Adaptive() Catalogue {
	return &adaptiveCatalogue{
		tips: []adaptiveTip{
			{
				Tip: Tip{"Recharge First", "Energy this low means rest beats grinding. Take a proper break before the next session.", CategoryEnergy},
				applies: func(s domain.State, _ time.Time) bool {
					return s.CurrentSession.EnergyLevel <= 2
				},
			},
			{
				Tip: Tip{"Silence the Noise", "Three or more distractions this session. Put the phone in another room and close extra tabs.", CategoryEnvironment},
				applies: func(s domain.State, _ time.Time) bool {
					return s.CurrentSession.Distractions >= 3
				},
			},
			{
				Tip: Tip{"Peak Hour", "This is one of your historically best focus hours. Pick your hardest task now.", CategoryFocus},
				applies: func(s domain.State, now time.Time) bool {
					for _, h := range s.Statistics.BestFocusHours {
						if h == now.Hour() {
							return true
						}
					}
					return false
				},
			},
			{
				Tip: Tip{"Protect the Flow", "Focus score is excellent. Defer anything that can wait until the break.", CategoryFocus},
				applies: func(s domain.State, _ time.Time) bool {
					return s.CurrentSession.FocusScore >= 90
				},
			},
			{
				Tip: Tip{"Reset Your Attention", "Focus has slipped below half. Stand up, stretch, and restate the task in one sentence.", CategoryMindset},
				applies: func(s domain.State, _ time.Time) bool {
					return s.CurrentSession.FocusScore < 50
				},
			},
			{
				Tip: Tip{"Step Away From the Screen", "It's break time. Breaks only work if you actually leave the work behind.", CategoryEnergy},
				applies: func(s domain.State, _ time.Time) bool {
					return strings.Contains(string(s.CurrentSession.Mode), "Break")
				},
			},
			{
				Tip: Tip{"Almost There", "You're within two pomodoros of your daily goal. Finish strong.", CategoryMindset},
				applies: func(s domain.State, _ time.Time) bool {
					remaining := s.Settings.DailyGoal - s.CompletedInCycle
					return remaining > 0 && remaining <= 2
				},
			},
			{
				Tip: Tip{"Off Hours", "You're outside your preferred working window. Keep the session light or call it a day.", CategoryEnvironment},
				applies: func(s domain.State, now time.Time) bool {
					return !s.Settings.PreferredWorkingHours.Contains(now.Hour())
				},
			},
		},
		techniques: []adaptiveTechnique{
			{
				Technique: Technique{Name: "Traditional Pomodoro", Description: "25 minutes on, 5 minutes off. The baseline that always works."},
				recommended: func(s domain.State, _ time.Time) bool {
					return s.CurrentSession.EnergyLevel == 3 && s.CurrentSession.FocusScore >= 60
				},
			},
			{
				Technique: Technique{Name: "Micro Sessions", Description: "Ten-minute sprints with generous breaks while you rebuild energy."},
				recommended: func(s domain.State, _ time.Time) bool {
					return s.CurrentSession.EnergyLevel <= 2 || s.CurrentSession.FocusScore < 40
				},
			},
			{
				Technique: Technique{Name: "Deep Block", Description: "A 50-minute block for peak hours, with a real 10-minute walk after."},
				recommended: func(s domain.State, now time.Time) bool {
					return s.CurrentSession.EnergyLevel >= 4 &&
						s.CurrentSession.FocusScore >= 80 &&
						s.Settings.PreferredWorkingHours.Contains(now.Hour())
				},
			},
			{
				Technique: Technique{Name: "Wind Down", Description: "Shorter closing sessions once the daily goal is within reach."},
				recommended: func(s domain.State, _ time.Time) bool {
					return s.Statistics.AverageCompletionRate >= 75 &&
						s.Settings.DailyGoal-s.CompletedInCycle <= 2
				},
			},
		},
	}
}

func (c *adaptiveCatalogue) Name() string { return CatalogueAdaptive }

func (c *adaptiveCatalogue) AllTips() []Tip {
	out := make([]Tip, len(c.tips))
	for i, t := range c.tips {
		out[i] = t.Tip
	}
	return out
}

// RelevantTips returns every tip whose predicate holds, in catalogue
// order.
func (c *adaptiveCatalogue) RelevantTips(state domain.State, now time.Time) []Tip {
	var out []Tip
	for _, t := range c.tips {
		if t.applies(state, now) {
			out = append(out, t.Tip)
		}
	}
	return out
}

// RecommendedTechnique returns the first technique whose recommended
// closure matches; the traditional entry is the fallback.
func (c *adaptiveCatalogue) RecommendedTechnique(state domain.State, now time.Time) Technique {
	for _, tech := range c.techniques {
		if tech.recommended(state, now) {
			return tech.Technique
		}
	}
	return c.techniques[0].Technique
}

package tips

import (
	"time"

	"github.com/xvierd/pomo/internal/domain"
)

// CatalogueClassic is the range-membership catalogue: techniques carry
// explicit energy-level lists and focus-score ranges.
const CatalogueClassic = "classic"

type classicTechnique struct {
	Technique
	energyLevels []int  // membership
	focusScore   [2]int // inclusive range
}

type classicCatalogue struct {
	tips       []Tip
	techniques []classicTechnique
}

// Classic returns the classic catalogue.
func Classic() Catalogue {
	return &classicCatalogue{
		tips: []Tip{
			{"Take Deep Breaths", "Practice deep breathing exercises to increase oxygen flow and improve focus.", CategoryFocus},
			{"Hydrate Regularly", "Keep a water bottle nearby and stay hydrated for better cognitive performance.", CategoryEnergy},
			{"Two-Minute Rule", "If a task takes less than two minutes, do it immediately rather than postponing.", CategoryTechnique},
			{"Declutter Workspace", "A clean workspace helps maintain focus and reduces visual distractions.", CategoryEnvironment},
			{"Growth Mindset", "View challenges as opportunities for learning and growth.", CategoryMindset},
		},
		techniques: []classicTechnique{
			{
				Technique:    Technique{Name: "Standard Pomodoro", Description: "Focus for 25 minutes, then take a 5-minute break."},
				energyLevels: []int{3, 4, 5},
				focusScore:   [2]int{70, 100},
			},
			{
				Technique:    Technique{Name: "Short Bursts", Description: "Work in 15-minute intervals with frequent mini-breaks."},
				energyLevels: []int{1, 2},
				focusScore:   [2]int{0, 50},
			},
			{
				Technique:    Technique{Name: "Extended Focus", Description: "Longer 45-minute sessions for deep work when energy is high."},
				energyLevels: []int{4, 5},
				focusScore:   [2]int{80, 100},
			},
		},
	}
}

func (c *classicCatalogue) Name() string { return CatalogueClassic }

func (c *classicCatalogue) AllTips() []Tip {
	return append([]Tip(nil), c.tips...)
}

// RelevantTips narrows the catalogue by successive filters: low energy
// keeps only energy tips, then a low focus score keeps only focus and
// environment tips.
func (c *classicCatalogue) RelevantTips(state domain.State, _ time.Time) []Tip {
	session := state.CurrentSession

	relevant := c.AllTips()
	if session.EnergyLevel <= 3 {
		relevant = filterTips(relevant, func(t Tip) bool {
			return t.Category == CategoryEnergy
		})
	}
	if session.FocusScore <= 70 {
		relevant = filterTips(relevant, func(t Tip) bool {
			return t.Category == CategoryFocus || t.Category == CategoryEnvironment
		})
	}
	return relevant
}

// RecommendedTechnique picks the first technique whose energy-level
// membership and focus-score range both match.
func (c *classicCatalogue) RecommendedTechnique(state domain.State, _ time.Time) Technique {
	session := state.CurrentSession

	for _, tech := range c.techniques {
		if containsInt(tech.energyLevels, session.EnergyLevel) &&
			session.FocusScore >= tech.focusScore[0] &&
			session.FocusScore <= tech.focusScore[1] {
			return tech.Technique
		}
	}
	return c.techniques[0].Technique
}

func filterTips(tips []Tip, keep func(Tip) bool) []Tip {
	out := tips[:0:0]
	for _, t := range tips {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

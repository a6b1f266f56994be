// Package tips implements the productivity tip and technique rule
// engine: stateless predicate evaluation over the current Pomodoro
// state. Two catalogues ship with different predicate styles; config
// picks one, their semantics are never merged.
package tips

import (
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/pomo/internal/domain"
)

// Category groups tips by what they help with.
type Category string

const (
	CategoryFocus       Category = "focus"
	CategoryEnergy      Category = "energy"
	CategoryTechnique   Category = "technique"
	CategoryEnvironment Category = "environment"
	CategoryMindset     Category = "mindset"
)

// Tip is one piece of productivity advice.
type Tip struct {
	Title       string
	Description string
	Category    Category
}

// Technique is a named work technique with a short pitch.
type Technique struct {
	Name        string
	Description string
}

// Catalogue is one self-contained rule set. RelevantTips returns every
// matching tip in catalogue order; RecommendedTechnique returns the
// first matching technique, falling back to the catalogue's
// traditional default when nothing matches.
type Catalogue interface {
	Name() string
	AllTips() []Tip
	RelevantTips(state domain.State, now time.Time) []Tip
	RecommendedTechnique(state domain.State, now time.Time) Technique
}

// Names lists the available catalogue names.
func Names() []string {
	return []string{CatalogueClassic, CatalogueAdaptive}
}

// ByName returns the catalogue with the given name.
func ByName(name string) (Catalogue, error) {
	switch name {
	case CatalogueClassic, "":
		return Classic(), nil
	case CatalogueAdaptive:
		return Adaptive(), nil
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", domain.ErrUnknownCatalogue, name, Names())
	}
}

// Search does a fuzzy title search over the catalogue's full tip list.
func Search(c Catalogue, query string) []Tip {
	all := c.AllTips()
	titles := make([]string, len(all))
	for i, tip := range all {
		titles[i] = tip.Title
	}

	matches := fuzzy.Find(query, titles)
	results := make([]Tip, 0, len(matches))
	for _, m := range matches {
		results = append(results, all[m.Index])
	}
	return results
}

package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomo/internal/adapters/celebrate"
	"github.com/xvierd/pomo/internal/adapters/statestore"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/engine"
	"github.com/xvierd/pomo/internal/tips"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	store, err := statestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("statestore.New() error = %v", err)
	}
	eng, err := engine.New(engine.Options{Store: store})
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}

	model := NewModel(context.Background(), eng, tips.Classic(), celebrate.NewFlash(), config.DefaultThemeConfig())
	model.width = 80
	model.height = 24
	return model
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{25 * 60, "25:00"},
		{5 * 60, "05:00"},
		{90, "01:30"},
		{0, "00:00"},
	}

	for _, tt := range tests {
		if got := formatClock(tt.seconds); got != tt.want {
			t.Errorf("formatClock(%d) = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}

func TestModel_View(t *testing.T) {
	model := newTestModel(t)

	view := model.View()

	if view == "" || view == "Loading..." {
		t.Fatalf("View() = %q, want rendered timer", view)
	}
	if !strings.Contains(view, "Focus") {
		t.Error("View() should show the work mode label")
	}
	if !strings.Contains(view, "PAUSED") {
		t.Error("View() should show the pause badge while stopped")
	}
}

func TestModel_View_ZeroWidthShowsLoading(t *testing.T) {
	model := newTestModel(t)
	model.width = 0

	if got := model.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}

func TestModel_SpaceTogglesRunning(t *testing.T) {
	model := newTestModel(t)

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m := next.(Model)
	if !m.state.CurrentSession.IsRunning {
		t.Fatal("space should start the session")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = next.(Model)
	if m.state.CurrentSession.IsRunning {
		t.Error("second space should pause the session")
	}
}

func TestModel_DistractionKey(t *testing.T) {
	model := newTestModel(t)

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m := next.(Model)

	if m.state.CurrentSession.Distractions != 1 {
		t.Errorf("Distractions = %d, want 1", m.state.CurrentSession.Distractions)
	}
	if m.state.CurrentSession.FocusScore != 90 {
		t.Errorf("FocusScore = %d, want 90", m.state.CurrentSession.FocusScore)
	}
}

func TestModel_EnergyEntry(t *testing.T) {
	model := newTestModel(t)

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	m := next.(Model)
	if !m.energyMode {
		t.Fatal("e should arm energy entry")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = next.(Model)
	if m.energyMode {
		t.Error("energy entry should disarm after a digit")
	}
	if m.state.CurrentSession.EnergyLevel != 2 {
		t.Errorf("EnergyLevel = %d, want 2", m.state.CurrentSession.EnergyLevel)
	}
}

func TestModel_ModeKeyReloadsDuration(t *testing.T) {
	model := newTestModel(t)

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m := next.(Model)

	if m.state.CurrentSession.Mode != domain.ModeShortBreak {
		t.Errorf("Mode = %v, want shortBreak", m.state.CurrentSession.Mode)
	}
	if m.state.CurrentSession.TimeLeft != 5*60 {
		t.Errorf("TimeLeft = %d, want %d", m.state.CurrentSession.TimeLeft, 5*60)
	}
}

func TestModel_ResetNeedsConfirmation(t *testing.T) {
	model := newTestModel(t)
	model.state.CycleCount = 2

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m := next.(Model)
	if !m.confirmReset {
		t.Fatal("first r should only arm the confirmation")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if m.confirmReset {
		t.Error("second r should clear the confirmation")
	}
	if m.state.CycleCount != 0 {
		t.Errorf("CycleCount = %d, want 0 after reset", m.state.CycleCount)
	}
}

func TestRenderBigTime_NarrowFallback(t *testing.T) {
	out := renderBigTime("25:00", "#7C6FE0", 20)
	if strings.Count(out, "\n") != 0 {
		t.Error("narrow terminals should get a single-line clock")
	}

	out = renderBigTime("25:00", "#7C6FE0", 80)
	if strings.Count(out, "\n") != 4 {
		t.Errorf("wide terminals should get 5 glyph lines, got %d newlines", strings.Count(out, "\n"))
	}
}

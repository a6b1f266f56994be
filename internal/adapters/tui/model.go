// Package tui provides the terminal timer interface using the
// Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomo/internal/adapters/celebrate"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/engine"
	"github.com/xvierd/pomo/internal/tips"
)

// tickMsg drives the 1-second timer.
type tickMsg time.Time

// tipMsg drives the 5-minute tip refresh.
type tipMsg time.Time

const (
	tipInterval = 5 * time.Minute
	flashTicks  = 3 // seconds the celebration banner stays visible
)

// Model is the Bubbletea model for the timer view. All session state
// lives in the engine; the model only holds display state.
type Model struct {
	engine    *engine.Engine
	catalogue tips.Catalogue
	flash     *celebrate.Flash
	theme     config.ThemeConfig
	ctx       context.Context

	state     domain.State
	tip       *tips.Tip
	technique tips.Technique
	tipIndex  int

	progress progress.Model
	width    int
	height   int

	flashLeft int
	flashKind domain.CelebrationKind

	energyMode   bool
	confirmReset bool
}

// NewModel creates the timer model.
func NewModel(ctx context.Context, eng *engine.Engine, catalogue tips.Catalogue, flash *celebrate.Flash, theme config.ThemeConfig) Model {
	m := Model{
		engine:    eng,
		catalogue: catalogue,
		flash:     flash,
		theme:     theme,
		ctx:       ctx,
		state:     eng.State(),
		progress:  progress.New(progress.WithDefaultGradient()),
	}
	m.refreshTip(time.Now())
	return m
}

// Init starts the tick and tip drivers. Both stop with the program, so
// no transition can fire against a dismissed view.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tipCmd())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 4

	case tickMsg:
		if err := m.engine.Tick(m.ctx); err != nil {
			return m, tea.Quit
		}
		m.state = m.engine.State()

		if m.flash != nil {
			if kind, ok := m.flash.Take(); ok {
				m.flashKind = kind
				m.flashLeft = flashTicks
			}
		}
		if m.flashLeft > 0 {
			m.flashLeft--
		}
		return m, tickCmd()

	case tipMsg:
		m.refreshTip(time.Time(msg))
		return m, tipCmd()
	}

	var cmd tea.Cmd
	newProgress, cmd := m.progress.Update(msg)
	if p, ok := newProgress.(progress.Model); ok {
		m.progress = p
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Energy entry: e arms it, 1-5 records the level.
	if m.energyMode {
		switch key := msg.String(); key {
		case "1", "2", "3", "4", "5":
			m.dispatch(domain.UpdateEnergyLevel{Level: int(key[0] - '0')})
		}
		m.energyMode = false
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case " ":
		if m.state.CurrentSession.IsRunning {
			m.dispatch(domain.PauseSession{})
		} else {
			m.dispatch(domain.StartSession{})
		}
		m.confirmReset = false

	case "s":
		if err := m.engine.SkipSession(m.ctx); err != nil {
			return m, tea.Quit
		}
		m.state = m.engine.State()
		m.refreshTip(time.Now())

	case "m":
		// Manual mode switch reloads the new mode's full duration.
		next := nextMode(m.state.CurrentSession.Mode)
		m.dispatch(domain.SetMode{Mode: next})
		m.dispatch(domain.SetTimeLeft{Seconds: m.state.Settings.ModeDuration(next) * 60})

	case "d":
		m.dispatch(domain.LogDistraction{})

	case "e":
		if m.state.Settings.EnergyLevelTracking {
			m.energyMode = true
		}

	case "f":
		m.dispatch(domain.ToggleFocusMode{})

	case "r":
		if m.confirmReset {
			m.dispatch(domain.ResetCycle{})
			m.confirmReset = false
		} else {
			m.confirmReset = true
		}

	case "esc":
		m.confirmReset = false

	default:
		m.confirmReset = false
	}
	return m, nil
}

// dispatch sends one action to the engine and refreshes the displayed
// state. A closed engine means the program is shutting down.
func (m *Model) dispatch(action domain.Action) {
	state, err := m.engine.Dispatch(action)
	if err != nil {
		return
	}
	m.state = state
}

// refreshTip rotates through the tips currently relevant to the state
// and recomputes the recommended technique.
func (m *Model) refreshTip(now time.Time) {
	if m.catalogue == nil {
		return
	}

	state := m.engine.State()
	relevant := m.catalogue.RelevantTips(state, now)
	if len(relevant) == 0 {
		m.tip = nil
	} else {
		m.tipIndex = (m.tipIndex + 1) % len(relevant)
		tip := relevant[m.tipIndex]
		m.tip = &tip
	}
	m.technique = m.catalogue.RecommendedTechnique(state, now)
}

// View renders the timer.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	session := m.state.CurrentSession
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorPaused))

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Pomo — %s", m.theme.IconApp, session.Mode.Label())))

	sections = append(sections, statusStyle.Render(m.cycleDots()))

	// Big clock
	sections = append(sections, "")
	sections = append(sections, renderBigTime(formatClock(session.TimeLeft), m.timerColor(), m.width))

	if !session.IsRunning {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "")
		sections = append(sections, pauseBadge)
	}

	// Progress toward the full mode duration
	total := m.state.Settings.ModeDuration(session.Mode) * 60
	if total > 0 {
		done := float64(total-session.TimeLeft) / float64(total)
		sections = append(sections, "")
		sections = append(sections, m.progress.ViewAs(done))
	}

	// Session chips
	chips := fmt.Sprintf("energy %d/5 · focus %d · distractions %d",
		session.EnergyLevel, session.FocusScore, session.Distractions)
	if m.state.Settings.FocusMode {
		chips += " · focus mode"
	}
	sections = append(sections, helpStyle.Render(chips))

	// Celebration flash
	if m.flashLeft > 0 {
		flashStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorWork))
		if m.flashKind == domain.CelebrateAchievement {
			sections = append(sections, flashStyle.Render("🏆 Achievement unlocked!"))
		} else {
			sections = append(sections, flashStyle.Render("🎉 Pomodoro complete!"))
		}
	}

	// Tip panel
	if m.tip != nil {
		sections = append(sections, "")
		tipStyle := lipgloss.NewStyle().Italic(true).Faint(true)
		sections = append(sections, tipStyle.Render(fmt.Sprintf("💡 %s — %s", m.tip.Title, m.tip.Description)))
	}
	if m.technique.Name != "" {
		sections = append(sections, helpStyle.Render("Try: "+m.technique.Name))
	}

	// Streak and level footer
	sections = append(sections, "")
	if level, ok := domain.LevelByKey(m.state.Level.Current); ok {
		footer := fmt.Sprintf("%s %s · %d pomodoros · streak %d",
			level.Icon, level.Title, m.state.TotalPomodoros, m.state.DailyStreak)
		sections = append(sections, helpStyle.Render(footer))
	}

	sections = append(sections, "")
	switch {
	case m.confirmReset:
		sections = append(sections, helpStyle.Render("Reset cycle? [r] confirm  [esc] cancel"))
	case m.energyMode:
		sections = append(sections, helpStyle.Render("Energy level? [1-5]"))
	default:
		action := "[space] start"
		if session.IsRunning {
			action = "[space] pause"
		}
		help := action + "  [s]kip  [m]ode  [d]istraction  [f]ocus  [r]eset  [q]uit"
		if m.state.Settings.EnergyLevelTracking {
			help = action + "  [s]kip  [m]ode  [d]istraction  [e]nergy  [f]ocus  [r]eset  [q]uit"
		}
		sections = append(sections, helpStyle.Render(help))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// cycleDots renders the position inside the 4-session cycle.
func (m Model) cycleDots() string {
	var b strings.Builder
	for i := 0; i < domain.SessionsBeforeLong; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i < m.state.CycleCount {
			b.WriteRune('●')
		} else {
			b.WriteRune('○')
		}
	}
	return b.String()
}

func (m Model) timerColor() lipgloss.Color {
	if !m.state.CurrentSession.IsRunning {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	if m.state.CurrentSession.Mode.IsBreak() {
		return lipgloss.Color(m.theme.ColorBreak)
	}
	return lipgloss.Color(m.theme.ColorWork)
}

func nextMode(m domain.Mode) domain.Mode {
	switch m {
	case domain.ModeWork:
		return domain.ModeShortBreak
	case domain.ModeShortBreak:
		return domain.ModeLongBreak
	default:
		return domain.ModeWork
	}
}

// tickCmd emits one tickMsg after a second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// tipCmd emits one tipMsg after the tip refresh interval.
func tipCmd() tea.Cmd {
	return tea.Tick(tipInterval, func(t time.Time) tea.Msg {
		return tipMsg(t)
	})
}

// formatClock formats remaining seconds as MM:SS.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Run starts the timer view and blocks until it exits. The context
// cancels the program from outside.
func Run(ctx context.Context, eng *engine.Engine, catalogue tips.Catalogue, flash *celebrate.Flash, theme config.ThemeConfig) error {
	model := NewModel(ctx, eng, catalogue, flash, theme)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

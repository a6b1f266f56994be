package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a dashboard of progress, level and statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := app.engine.State()

		fmt.Println()
		renderDashboard(state)
		return nil
	},
}

func renderDashboard(state domain.State) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(app.config.Theme.ColorWork))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(app.config.Theme.ColorHelp))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(app.config.Theme.ColorBreak))

	fmt.Printf("  %s\n", titleStyle.Render(fmt.Sprintf("%s Your Pomodoro Stats", app.config.Theme.IconStats)))
	fmt.Printf("  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	// Level
	if level, ok := domain.LevelByKey(state.Level.Current); ok {
		fmt.Printf("  %s %s  %s\n", level.Icon, titleStyle.Render(level.Title),
			dimStyle.Render(fmt.Sprintf("%d%% to next level", state.Level.Progress)))
		fmt.Printf("  %s\n\n", progressBar(state.Level.Progress, 30))
	}

	// Counters
	fmt.Printf("  Total: %s  Week: %s  Month: %s  Streak: %s days\n\n",
		valueStyle.Render(fmt.Sprintf("%d", state.TotalPomodoros)),
		valueStyle.Render(fmt.Sprintf("%d", state.WeeklyPomodoros)),
		valueStyle.Render(fmt.Sprintf("%d", state.MonthlyPomodoros)),
		valueStyle.Render(fmt.Sprintf("%d", state.DailyStreak)))

	// Goals
	fmt.Printf("  Weekly goal: %d/%d\n\n", state.WeeklyPomodoros, state.Settings.WeeklyGoal)

	// Archive-derived statistics
	stats := state.Statistics
	if stats.AverageCompletionRate > 0 {
		fmt.Printf("  Completion rate: %s\n", valueStyle.Render(fmt.Sprintf("%.0f%%", stats.AverageCompletionRate)))
	}
	if len(stats.BestFocusHours) > 0 {
		hours := make([]string, len(stats.BestFocusHours))
		for i, h := range stats.BestFocusHours {
			hours[i] = fmt.Sprintf("%02d:00", h)
		}
		fmt.Printf("  Best focus hours: %s\n", strings.Join(hours, ", "))
	}
	if len(stats.MostProductiveDays) > 0 {
		days := make([]string, len(stats.MostProductiveDays))
		for i, d := range stats.MostProductiveDays {
			days[i] = d.String()
		}
		fmt.Printf("  Most productive: %s\n", strings.Join(days, ", "))
	}

	// Last 7 days, today first
	if len(stats.WeeklyProgress) == 7 {
		fmt.Printf("\n  %s\n", dimStyle.Render("Last 7 days (today first):"))
		for i, count := range stats.WeeklyProgress {
			bar := strings.Repeat("█", count)
			if bar == "" {
				bar = dimStyle.Render("·")
			}
			fmt.Printf("   -%dd %s %d\n", i, bar, count)
		}
	}
	fmt.Println()
}

// progressBar renders a simple filled/empty bar for a 0-100 value.
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

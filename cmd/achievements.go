package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/domain"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and which ones you've unlocked",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := app.engine.State()

		unlockedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(app.config.Theme.ColorWork))
		lockedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(app.config.Theme.ColorHelp))

		fmt.Println()
		for _, a := range domain.AchievementCatalogue {
			if state.HasAchievement(a.ID) {
				fmt.Printf("  %s %s — %s\n", a.Icon, unlockedStyle.Render(a.Title), a.Description)
			} else {
				fmt.Printf("  🔒 %s\n", lockedStyle.Render(fmt.Sprintf("%s — %s", a.Title, a.Description)))
			}
		}
		fmt.Printf("\n  %d of %d unlocked\n\n", len(state.Achievements), len(domain.AchievementCatalogue))
		return nil
	},
}

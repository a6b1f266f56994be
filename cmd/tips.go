package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/tips"
)

var tipsCatalogue string

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Show productivity tips relevant to your current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogue, err := resolveCatalogue()
		if err != nil {
			return err
		}

		state := app.engine.State()
		now := time.Now()

		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(app.config.Theme.ColorWork))
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(app.config.Theme.ColorHelp))

		relevant := catalogue.RelevantTips(state, now)
		fmt.Println()
		if len(relevant) == 0 {
			fmt.Println("  No tips apply right now. Carry on.")
		}
		for _, tip := range relevant {
			fmt.Printf("  💡 %s %s\n", titleStyle.Render(tip.Title), dimStyle.Render("("+string(tip.Category)+")"))
			fmt.Printf("     %s\n", tip.Description)
		}

		technique := catalogue.RecommendedTechnique(state, now)
		fmt.Printf("\n  Recommended technique: %s\n", titleStyle.Render(technique.Name))
		fmt.Printf("  %s\n\n", technique.Description)
		return nil
	},
}

var tipsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search tips by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogue, err := resolveCatalogue()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		results := tips.Search(catalogue, query)
		if len(results) == 0 {
			fmt.Printf("No tips match %q.\n", query)
			return nil
		}

		fmt.Println()
		for _, tip := range results {
			fmt.Printf("  💡 %s\n     %s\n", tip.Title, tip.Description)
		}
		fmt.Println()
		return nil
	},
}

// resolveCatalogue honors --catalogue over the configured one.
func resolveCatalogue() (tips.Catalogue, error) {
	if tipsCatalogue == "" {
		return app.catalogue, nil
	}
	return tips.ByName(tipsCatalogue)
}

func init() {
	tipsCmd.PersistentFlags().StringVarP(&tipsCatalogue, "catalogue", "c", "",
		fmt.Sprintf("Tip catalogue to use (%s)", strings.Join(tips.Names(), ", ")))
	tipsCmd.AddCommand(tipsSearchCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/domain"
)

var (
	resetCycle bool
	resetYes   bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset statistics (or just the current cycle)",
	Long: `Reset all statistics, counters and achievements to their defaults.
Settings are kept. With --cycle only the current 4-session cycle is
cleared and everything else stays.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if resetCycle {
			if _, err := app.engine.Dispatch(domain.ResetCycle{}); err != nil {
				return err
			}
			fmt.Println("Cycle reset. Back to a fresh work session.")
			return nil
		}

		if !resetYes {
			fmt.Print("Reset all stats and achievements? Settings are kept. [y/N] ")
			var answer string
			_, _ = fmt.Scanln(&answer)
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Println("Nothing reset.")
				return nil
			}
		}

		if _, err := app.engine.Dispatch(domain.ResetStats{}); err != nil {
			return err
		}
		fmt.Println("Stats reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetCycle, "cycle", false, "Reset only the current session cycle")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
}

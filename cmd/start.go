package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/domain"
)

var startDuration int

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a work session and open the timer",
	Long: `Start a new Pomodoro work session immediately and open the timer
view. With auto-adjust enabled the session length follows your
reported energy level; --duration overrides it outright.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if startDuration != 0 {
			if startDuration < 0 {
				return fmt.Errorf("%w: duration must be positive", domain.ErrInvalidSetting)
			}
			if _, err := app.engine.Dispatch(domain.AdjustWorkDuration{Minutes: startDuration}); err != nil {
				return err
			}
		}

		return runTimer(true)
	},
}

func init() {
	startCmd.Flags().IntVarP(&startDuration, "duration", "d", 0, "Work duration in minutes (overrides settings)")
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/adapters/git"
	"github.com/xvierd/pomo/internal/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session without opening the timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := app.engine.State()
		session := state.CurrentSession

		running := "paused"
		if session.IsRunning {
			running = "running"
		}

		fmt.Printf("%s %s session (%s)\n", app.config.Theme.IconApp, session.Mode.Label(), running)
		fmt.Printf("   Remaining: %02d:%02d\n", session.TimeLeft/60, session.TimeLeft%60)
		fmt.Printf("   Energy: %d/5  Focus: %d/100  Distractions: %d\n",
			session.EnergyLevel, session.FocusScore, session.Distractions)
		fmt.Printf("   Cycle: %d of %d sessions toward the long break\n",
			state.CycleCount, domain.SessionsBeforeLong)

		if state.Settings.FocusMode {
			fmt.Println("   Focus mode is on")
		}

		if app.git != nil && app.git.IsAvailable() {
			if info, err := app.git.Detect(context.Background(), ""); err == nil && info != nil {
				fmt.Printf("   Git: %s (%s)\n", info.Branch, git.ShortCommit(info.Commit))
			}
		}

		fmt.Printf("\n%s Today: %d pomodoros · streak %d days · goal %d/day\n",
			app.config.Theme.IconStats, state.CompletedInCycle, state.DailyStreak, state.Settings.DailyGoal)
		return nil
	},
}

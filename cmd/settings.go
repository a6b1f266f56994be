package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change session settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := app.engine.State().Settings

		fmt.Println()
		fmt.Printf("  work               %d min\n", s.WorkDuration)
		fmt.Printf("  short-break        %d min\n", s.ShortBreakDuration)
		fmt.Printf("  long-break         %d min\n", s.LongBreakDuration)
		fmt.Printf("  auto-start-breaks  %v\n", s.AutoStartBreaks)
		fmt.Printf("  auto-start-work    %v\n", s.AutoStartPomodoros)
		fmt.Printf("  notifications      %v\n", s.Notifications)
		fmt.Printf("  sound              %v\n", s.Sound)
		fmt.Printf("  smart-breaks       %v\n", s.SmartBreaks)
		fmt.Printf("  auto-adjust        %v\n", s.AutoAdjustWorkDuration)
		fmt.Printf("  energy-tracking    %v\n", s.EnergyLevelTracking)
		fmt.Printf("  daily-goal         %d\n", s.DailyGoal)
		fmt.Printf("  weekly-goal        %d\n", s.WeeklyGoal)
		fmt.Printf("  working-hours      %02d:00-%02d:00\n", s.PreferredWorkingHours.Start, s.PreferredWorkingHours.End)
		fmt.Println("\n  Change one with: pomo settings set <key> <value>")
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := buildPatch(args[0], args[1])
		if err != nil {
			return err
		}

		state, err := app.engine.Dispatch(domain.UpdateSettings{Patch: patch})
		if err != nil {
			return err
		}

		fmt.Printf("Updated. Work %dm, breaks %dm/%dm.\n",
			state.Settings.WorkDuration,
			state.Settings.ShortBreakDuration,
			state.Settings.LongBreakDuration)
		return nil
	},
}

// buildPatch translates a key/value pair into a settings patch.
func buildPatch(key, value string) (domain.SettingsPatch, error) {
	var patch domain.SettingsPatch

	intVal := func(min int) (*int, error) {
		n, err := strconv.Atoi(value)
		if err != nil || n < min {
			return nil, fmt.Errorf("%w: %s needs an integer >= %d", domain.ErrInvalidSetting, key, min)
		}
		return &n, nil
	}
	boolVal := func() (*bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s needs true or false", domain.ErrInvalidSetting, key)
		}
		return &b, nil
	}

	var err error
	switch key {
	case "work":
		patch.WorkDuration, err = intVal(1)
	case "short-break":
		patch.ShortBreakDuration, err = intVal(1)
	case "long-break":
		patch.LongBreakDuration, err = intVal(1)
	case "auto-start-breaks":
		patch.AutoStartBreaks, err = boolVal()
	case "auto-start-work":
		patch.AutoStartPomodoros, err = boolVal()
	case "notifications":
		patch.Notifications, err = boolVal()
	case "sound":
		patch.Sound, err = boolVal()
	case "smart-breaks":
		patch.SmartBreaks, err = boolVal()
	case "auto-adjust":
		patch.AutoAdjustWorkDuration, err = boolVal()
	case "energy-tracking":
		patch.EnergyLevelTracking, err = boolVal()
	case "daily-goal":
		patch.DailyGoal, err = intVal(1)
	case "weekly-goal":
		patch.WeeklyGoal, err = intVal(1)
	case "working-hours":
		patch.PreferredWorkingHours, err = parseHours(value)
	default:
		return patch, fmt.Errorf("%w: unknown key %q", domain.ErrInvalidSetting, key)
	}
	return patch, err
}

// parseHours parses a "9-17" style window.
func parseHours(value string) (*domain.WorkingHours, error) {
	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: working-hours needs start-end, e.g. 9-17", domain.ErrInvalidSetting)
	}
	start, err1 := strconv.Atoi(parts[0])
	end, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || start < 0 || end > 24 || start >= end {
		return nil, fmt.Errorf("%w: working-hours needs 0 <= start < end <= 24", domain.ErrInvalidSetting)
	}
	return &domain.WorkingHours{Start: start, End: end}, nil
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/internal/ui"
	"github.com/daykeep/daykeep/plan"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change planning settings",
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)

	flags := settingsCmd.Flags()
	flags.String("theme", "", "light or dark")
	flags.Int("capacity", 0, "daily capacity in minutes")
	flags.Int("aging", 0, "days before an inbox task counts as aging")
	flags.String("workday-start", "", "working hours start (HH:mm)")
	flags.String("workday-end", "", "working hours end (HH:mm)")
}

func runSettings(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !hasChangedFlags(cmd, "theme", "capacity", "aging", "workday-start", "workday-end") {
		state := a.State()
		fmt.Printf("theme:     %s\n", state.Theme)
		fmt.Printf("capacity:  %s\n", ui.FormatMinutes(state.DailyCapacityMinutes))
		fmt.Printf("aging:     %d days\n", state.TaskAgingDays)
		fmt.Printf("workday:   %s-%s\n", state.WorkingHours.Start, state.WorkingHours.End)
		return nil
	}

	flags := cmd.Flags()
	if theme := stringIfChanged(flags, "theme"); theme != nil {
		if *theme != "light" && *theme != "dark" {
			return fmt.Errorf("invalid theme %q: use light or dark", *theme)
		}
		a.Dispatch(plan.SetTheme{Theme: *theme})
	}

	update := plan.SetCapacitySettings{
		DailyCapacityMinutes: intIfChanged(flags, "capacity"),
		TaskAgingDays:        intIfChanged(flags, "aging"),
	}
	if update.DailyCapacityMinutes != nil && *update.DailyCapacityMinutes <= 0 {
		return fmt.Errorf("capacity must be positive")
	}
	if update.TaskAgingDays != nil && *update.TaskAgingDays <= 0 {
		return fmt.Errorf("aging must be positive")
	}

	start := stringIfChanged(flags, "workday-start")
	end := stringIfChanged(flags, "workday-end")
	if start != nil || end != nil {
		hours := a.State().WorkingHours
		if start != nil {
			if !validClock(*start) {
				return fmt.Errorf("workday-start must be HH:mm")
			}
			hours.Start = *start
		}
		if end != nil {
			if !validClock(*end) {
				return fmt.Errorf("workday-end must be HH:mm")
			}
			hours.End = *end
		}
		update.WorkingHours = &hours
	}

	if update.DailyCapacityMinutes != nil || update.TaskAgingDays != nil || update.WorkingHours != nil {
		a.Dispatch(update)
	}
	fmt.Println("Settings updated.")
	return nil
}

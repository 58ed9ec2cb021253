package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/internal/ui"
	"github.com/daykeep/daykeep/plan"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's progress",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats := plan.Stats(a.State(), time.Now())

	fmt.Printf("Tasks:        %d done, %d still due\n", stats.TasksCompleted, stats.TasksDue)
	fmt.Printf("Habits:       %d/%d\n", stats.HabitsCompleted, stats.HabitsTotal)
	fmt.Printf("Streak:       %d days\n", stats.CurrentStreak)
	fmt.Printf("Productivity: %d%%\n", stats.ProductivityScore)
	fmt.Printf("Capacity:     %s of %s", ui.FormatMinutes(stats.ScheduledMinutes), ui.FormatMinutes(stats.AvailableMinutes))
	if stats.IsOverbooked {
		fmt.Printf("  %s", warnStyle.Render("OVERBOOKED"))
	}
	fmt.Println()
	return nil
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/internal/ui"
	"github.com/daykeep/daykeep/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the daily planning ritual",
	Args:  cobra.NoArgs,
	RunE:  runPlan,
}

// plan confirm
var planConfirmCmd = &cobra.Command{
	Use:   "confirm <id>",
	Short: "Commit a task to today's capacity",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanConfirm,
}

// plan unconfirm
var planUnconfirmCmd = &cobra.Command{
	Use:   "unconfirm <id>",
	Short: "Release a task from today's capacity",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanUnconfirm,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planConfirmCmd, planUnconfirmCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state := a.State()
	now := time.Now()
	stats := plan.Stats(state, now)

	fmt.Printf("Today: %s committed of %s available",
		ui.FormatMinutes(stats.ScheduledMinutes), ui.FormatMinutes(stats.AvailableMinutes))
	if stats.IsOverbooked {
		fmt.Printf("  %s", warnStyle.Render("OVERBOOKED"))
	}
	fmt.Println()
	fmt.Println()

	printTaskSection("Due today", plan.TodayTasks(state, now), now)
	printTaskSection("Overdue", plan.OverdueTasks(state, now), now)
	printTaskSection("Aging in inbox", plan.AgingTasks(state, now), now)
	return nil
}

func printTaskSection(heading string, tasks []plan.Task, now time.Time) {
	if len(tasks) == 0 {
		return
	}
	fmt.Printf("%s:\n", heading)
	for _, t := range tasks {
		confirmed := " "
		if t.ConfirmedForToday {
			confirmed = "*"
		}
		est := ""
		if t.EstimatedDuration > 0 {
			est = "  " + dimStyle.Render(ui.FormatMinutes(t.EstimatedDuration))
		}
		carried := ""
		if t.CarriedOverFrom != "" {
			carried = "  " + dimStyle.Render("carried from "+t.CarriedOverFrom)
		}
		fmt.Printf("  %s %s  %s%s%s\n", confirmed, shortID(t.ID), ui.Cell(t.Title), est, carried)
	}
	fmt.Println()
}

func runPlanConfirm(cmd *cobra.Command, args []string) error {
	return setConfirmed(args[0], true)
}

func runPlanUnconfirm(cmd *cobra.Command, args []string) error {
	return setConfirmed(args[0], false)
}

func setConfirmed(ref string, confirmed bool) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := resolveTask(a.State(), ref)
	if err != nil {
		return err
	}

	state := a.Dispatch(plan.UpdateTask{ID: task.ID, Updates: plan.TaskUpdates{ConfirmedForToday: &confirmed}})
	stats := plan.Stats(state, time.Now())
	if confirmed {
		fmt.Printf("Committed: %s\n", task.Title)
	} else {
		fmt.Printf("Released: %s\n", task.Title)
	}
	if stats.IsOverbooked {
		fmt.Printf("%s: %s committed of %s available\n",
			warnStyle.Render("Overbooked"),
			ui.FormatMinutes(stats.ScheduledMinutes), ui.FormatMinutes(stats.AvailableMinutes))
	}
	return nil
}

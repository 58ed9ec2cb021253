package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/internal/dates"
	"github.com/daykeep/daykeep/internal/ui"
	"github.com/daykeep/daykeep/plan"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage habits",
}

// habit add
var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Start tracking a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitAdd,
}

// habit list
var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits with streaks",
	Args:  cobra.NoArgs,
	RunE:  runHabitList,
}

// habit done
var habitDoneCmd = &cobra.Command{
	Use:   "done <name>",
	Short: "Mark a habit completed for today",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitDone,
}

// habit freeze
var habitFreezeCmd = &cobra.Command{
	Use:   "freeze <name>",
	Short: "Spend a streak freeze to protect the current streak",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitFreeze,
}

// habit delete
var habitDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Stop tracking a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitDelete,
}

func init() {
	rootCmd.AddCommand(habitCmd)
	habitCmd.AddCommand(habitAddCmd, habitListCmd, habitDoneCmd, habitFreezeCmd, habitDeleteCmd)

	addFlags := habitAddCmd.Flags()
	addFlags.String("description", "", "habit description")
	addFlags.String("frequency", "daily", "daily, weekdays, weekends, or custom")
	addFlags.IntSlice("days", nil, "weekdays for custom frequency (0=Sunday)")
	addFlags.Int("goal", 0, "target completions")
	addFlags.Int("freezes", plan.DefaultMaxFreezes, "streak freeze allowance")
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	flags := cmd.Flags()
	description, _ := flags.GetString("description")
	frequency, _ := flags.GetString("frequency")
	days, _ := flags.GetIntSlice("days")
	goal, _ := flags.GetInt("goal")
	freezes, _ := flags.GetInt("freezes")

	f := plan.Frequency(frequency)
	if !f.IsValid() {
		return fmt.Errorf("invalid frequency %q", frequency)
	}
	if f == plan.FrequencyCustom && len(days) == 0 {
		return fmt.Errorf("custom frequency needs --days")
	}

	a.Dispatch(plan.AddHabit{
		Name:        args[0],
		Description: description,
		Frequency:   f,
		CustomDays:  days,
		Goal:        goal,
		MaxFreezes:  freezes,
	})
	fmt.Printf("Tracking habit: %s\n", args[0])
	return nil
}

func runHabitList(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state := a.State()
	if len(state.Habits) == 0 {
		fmt.Println("No habits.")
		return nil
	}

	today := dates.ISO(time.Now())
	table := ui.NewTable("NAME", "FREQUENCY", "STREAK", "BEST", "FREEZES", "TODAY")
	for _, h := range state.Habits {
		done := ""
		if h.CompletedOn(today) {
			done = completedStyle.Render("done")
		}
		table.AddRow(
			ui.Cell(h.Name),
			string(h.Frequency),
			strconv.Itoa(h.CurrentStreak),
			strconv.Itoa(h.LongestStreak),
			fmt.Sprintf("%d/%d", h.StreakFreezes, h.MaxFreezes),
			done,
		)
	}
	fmt.Print(table.String())
	return nil
}

func runHabitDone(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	habit, err := resolveHabit(a.State(), args[0])
	if err != nil {
		return err
	}

	today := dates.ISO(time.Now())
	if habit.CompletedOn(today) {
		fmt.Printf("%s is already done today.\n", habit.Name)
		return nil
	}

	state := a.Dispatch(plan.CompleteHabit{ID: habit.ID, Date: today})
	updated, _ := state.HabitByID(habit.ID)
	fmt.Printf("%s: streak %d", updated.Name, updated.CurrentStreak)
	if updated.CurrentStreak == updated.LongestStreak && updated.CurrentStreak > 1 {
		fmt.Print(" (personal best)")
	}
	fmt.Println()
	return nil
}

func runHabitFreeze(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	habit, err := resolveHabit(a.State(), args[0])
	if err != nil {
		return err
	}
	if habit.StreakFreezes == 0 {
		return fmt.Errorf("%s has no streak freezes left", habit.Name)
	}

	state := a.Dispatch(plan.UseStreakFreeze{ID: habit.ID})
	updated, _ := state.HabitByID(habit.ID)
	fmt.Printf("Froze %s: %d/%d freezes left\n", updated.Name, updated.StreakFreezes, updated.MaxFreezes)
	return nil
}

func runHabitDelete(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	habit, err := resolveHabit(a.State(), args[0])
	if err != nil {
		return err
	}

	a.Dispatch(plan.DeleteHabit{ID: habit.ID})
	fmt.Printf("Stopped tracking: %s\n", habit.Name)
	return nil
}

// resolveHabit finds a habit by id, id prefix, or exact name.
func resolveHabit(state plan.State, ref string) (plan.Habit, error) {
	if h, ok := state.HabitByID(ref); ok {
		return h, nil
	}

	var matches []plan.Habit
	for _, h := range state.Habits {
		if strings.HasPrefix(h.ID, ref) || h.Name == ref {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return plan.Habit{}, fmt.Errorf("habit not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return plan.Habit{}, fmt.Errorf("habit reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

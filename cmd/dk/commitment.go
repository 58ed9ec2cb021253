package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/internal/ui"
	"github.com/daykeep/daykeep/plan"
)

var commitmentCmd = &cobra.Command{
	Use:   "commitment",
	Short: "Manage fixed commitments that reduce daily capacity",
}

// commitment add
var commitmentAddCmd = &cobra.Command{
	Use:   "add <name> <start> <end>",
	Short: "Add a recurring commitment (times are HH:mm)",
	Args:  cobra.ExactArgs(3),
	RunE:  runCommitmentAdd,
}

// commitment list
var commitmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fixed commitments",
	Args:  cobra.NoArgs,
	RunE:  runCommitmentList,
}

// commitment delete
var commitmentDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a commitment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommitmentDelete,
}

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func init() {
	rootCmd.AddCommand(commitmentCmd)
	commitmentCmd.AddCommand(commitmentAddCmd, commitmentListCmd, commitmentDeleteCmd)

	commitmentAddCmd.Flags().IntSlice("days", []int{1, 2, 3, 4, 5}, "weekdays it recurs on (0=Sunday)")
}

func runCommitmentAdd(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name, start, end := args[0], args[1], args[2]
	if !validClock(start) || !validClock(end) {
		return fmt.Errorf("times must be HH:mm")
	}
	days, _ := cmd.Flags().GetIntSlice("days")
	for _, d := range days {
		if d < 0 || d > 6 {
			return fmt.Errorf("invalid weekday %d: use 0 (Sunday) through 6 (Saturday)", d)
		}
	}

	a.Dispatch(plan.AddFixedCommitment{Name: name, StartTime: start, EndTime: end, Days: days})
	fmt.Printf("Added commitment: %s %s-%s on %s\n", name, start, end, formatDays(days))
	return nil
}

func runCommitmentList(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state := a.State()
	if len(state.FixedCommitments) == 0 {
		fmt.Println("No commitments.")
		return nil
	}

	table := ui.NewTable("NAME", "START", "END", "DAYS")
	for _, c := range state.FixedCommitments {
		table.AddRow(ui.Cell(c.Name), c.StartTime, c.EndTime, formatDays(c.Days))
	}
	fmt.Print(table.String())
	return nil
}

func runCommitmentDelete(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, c := range a.State().FixedCommitments {
		if c.ID == args[0] || c.Name == args[0] {
			a.Dispatch(plan.DeleteFixedCommitment{ID: c.ID})
			fmt.Printf("Removed commitment: %s\n", c.Name)
			return nil
		}
	}
	return fmt.Errorf("commitment not found: %s", args[0])
}

func formatDays(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(weekdayNames) {
			names = append(names, weekdayNames[d])
		}
	}
	return strings.Join(names, ",")
}

func validClock(value string) bool {
	var h, m int
	if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
		return false
	}
	return h >= 0 && h <= 23 && m >= 0 && m <= 59
}

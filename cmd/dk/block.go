package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/internal/ui"
	"github.com/daykeep/daykeep/plan"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage time blocks",
}

// block add
var blockAddCmd = &cobra.Command{
	Use:   "add <start> <end> <title>",
	Short: "Block out a span of the day (times are HH:mm)",
	Args:  cobra.ExactArgs(3),
	RunE:  runBlockAdd,
}

// block list
var blockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List time blocks",
	Args:  cobra.NoArgs,
	RunE:  runBlockList,
}

// block delete
var blockDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a time block",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlockDelete,
}

func init() {
	rootCmd.AddCommand(blockCmd)
	blockCmd.AddCommand(blockAddCmd, blockListCmd, blockDeleteCmd)

	blockAddCmd.Flags().String("task", "", "task id this block works on")
}

func runBlockAdd(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	start, end := args[0], args[1]
	if !validClock(start) || !validClock(end) {
		return fmt.Errorf("times must be HH:mm")
	}

	action := plan.AddTimeBlock{StartTime: start, EndTime: end, Title: args[2]}
	if taskRef, _ := cmd.Flags().GetString("task"); taskRef != "" {
		task, err := resolveTask(a.State(), taskRef)
		if err != nil {
			return err
		}
		action.TaskID = task.ID
	}

	a.Dispatch(action)
	fmt.Printf("Blocked %s-%s: %s\n", start, end, args[2])
	return nil
}

func runBlockList(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state := a.State()
	if len(state.TimeBlocks) == 0 {
		fmt.Println("No time blocks.")
		return nil
	}

	blocks := append([]plan.TimeBlock(nil), state.TimeBlocks...)
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].StartTime < blocks[j].StartTime })

	table := ui.NewTable("ID", "START", "END", "TITLE", "TASK")
	for _, b := range blocks {
		taskTitle := ""
		if b.TaskID != "" {
			if t, ok := state.TaskByID(b.TaskID); ok {
				taskTitle = ui.Cell(t.Title)
			}
		}
		table.AddRow(shortID(b.ID), b.StartTime, b.EndTime, ui.Cell(b.Title), taskTitle)
	}
	fmt.Print(table.String())
	return nil
}

func runBlockDelete(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, b := range a.State().TimeBlocks {
		if b.ID == args[0] || shortID(b.ID) == args[0] {
			a.Dispatch(plan.DeleteTimeBlock{ID: b.ID})
			fmt.Printf("Removed block %s-%s\n", b.StartTime, b.EndTime)
			return nil
		}
	}
	return fmt.Errorf("time block not found: %s", args[0])
}

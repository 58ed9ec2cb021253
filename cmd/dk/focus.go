package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/plan"
)

var focusCmd = &cobra.Command{
	Use:   "focus [task]",
	Short: "Enter focus mode on a task; with no argument, show current focus",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFocus,
}

// focus off
var focusOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Leave focus mode",
	Args:  cobra.NoArgs,
	RunE:  runFocusOff,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.AddCommand(focusOffCmd)
}

func runFocus(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		state := a.State()
		if !state.FocusMode {
			fmt.Println("Not in focus mode.")
			return nil
		}
		if t, ok := state.TaskByID(state.CurrentTaskID); ok {
			fmt.Printf("Focusing on: %s\n", t.Title)
		} else {
			fmt.Println("In focus mode with no task selected.")
		}
		return nil
	}

	task, err := resolveTask(a.State(), args[0])
	if err != nil {
		return err
	}

	a.Dispatch(plan.SetFocusMode{Enabled: true})
	a.Dispatch(plan.SetCurrentTask{ID: task.ID})
	fmt.Printf("Focusing on: %s\n", task.Title)
	return nil
}

func runFocusOff(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Dispatch(plan.SetCurrentTask{ID: ""})
	a.Dispatch(plan.SetFocusMode{Enabled: false})
	fmt.Println("Focus mode off.")
	return nil
}

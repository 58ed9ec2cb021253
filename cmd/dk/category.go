package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/internal/ui"
	"github.com/daykeep/daykeep/plan"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

func init() {
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state := a.State()
	byCategory := plan.TasksByCategory(state)

	table := ui.NewTable("ID", "NAME", "TASKS")
	for _, c := range state.Categories {
		table.AddRow(c.ID, c.Name, fmt.Sprintf("%d", len(byCategory[c.ID])))
	}
	fmt.Print(table.String())
	return nil
}

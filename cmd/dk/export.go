package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/daykeep/daykeep/export"
	"github.com/daykeep/daykeep/plan"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all data as JSON (or tasks as CSV)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON export, merging into current data",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().Bool("csv", false, "export tasks as CSV instead of the full JSON document")
	importCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state := a.State()
	asCSV, _ := cmd.Flags().GetBool("csv")

	var data []byte
	if asCSV {
		data, err = export.CSV(state)
	} else {
		data, err = export.JSON(state, time.Now())
	}
	if err != nil {
		return err
	}

	if len(args) == 0 {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("Exported to %s\n", args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	doc, err := export.ParseJSON(data)
	if errors.Is(err, export.ErrInvalidFormat) {
		return fmt.Errorf("%s is not a daykeep export", args[0])
	}
	if err != nil {
		return err
	}

	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// Import concatenates rather than deduplicating, so importing the
	// same file twice doubles the data. Warn before proceeding when a
	// human is at the terminal.
	skipPrompt, _ := cmd.Flags().GetBool("yes")
	if !skipPrompt && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Printf("Import %d tasks, %d lists, %d habits? Existing records are kept; duplicates are not detected. [y/n]: ",
			len(doc.Tasks), len(doc.TodoLists), len(doc.Habits))
		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			return err
		}
		if response != "y" && response != "Y" && response != "yes" {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	state := a.Dispatch(plan.ImportData{
		Tasks:      doc.Tasks,
		TodoLists:  doc.TodoLists,
		Habits:     doc.Habits,
		Categories: doc.Categories,
	})
	fmt.Printf("Imported: now %d tasks, %d lists, %d habits.\n",
		len(state.Tasks), len(state.TodoLists), len(state.Habits))
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/plan"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage todo lists",
}

// todo add
var todoAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a todo list",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoAdd,
}

// todo list
var todoListCmd = &cobra.Command{
	Use:   "list [name]",
	Short: "Show todo lists, or the items of one list",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTodoList,
}

// todo item
var todoItemCmd = &cobra.Command{
	Use:   "item <list> <text>",
	Short: "Add an item to a list",
	Args:  cobra.ExactArgs(2),
	RunE:  runTodoItem,
}

// todo toggle
var todoToggleCmd = &cobra.Command{
	Use:   "toggle <list> <item-number>",
	Short: "Check or uncheck an item",
	Args:  cobra.ExactArgs(2),
	RunE:  runTodoToggle,
}

// todo remove
var todoRemoveCmd = &cobra.Command{
	Use:   "remove <list> <item-number>",
	Short: "Remove an item from a list",
	Args:  cobra.ExactArgs(2),
	RunE:  runTodoRemove,
}

// todo archive
var todoArchiveCmd = &cobra.Command{
	Use:   "archive <list>",
	Short: "Archive a list without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoArchive,
}

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoAddCmd, todoListCmd, todoItemCmd, todoToggleCmd, todoRemoveCmd, todoArchiveCmd)

	todoAddCmd.Flags().String("color", "", "display color")
	todoListCmd.Flags().Bool("archived", false, "include archived lists")
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	color, _ := cmd.Flags().GetString("color")
	a.Dispatch(plan.AddTodoList{Name: args[0], Color: color})
	fmt.Printf("Created list: %s\n", args[0])
	return nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state := a.State()

	if len(args) == 1 {
		list, err := resolveTodoList(state, args[0])
		if err != nil {
			return err
		}
		printTodoList(list)
		return nil
	}

	includeArchived, _ := cmd.Flags().GetBool("archived")
	shown := 0
	for _, list := range state.TodoLists {
		if list.Archived && !includeArchived {
			continue
		}
		done := 0
		for _, item := range list.Items {
			if item.Completed {
				done++
			}
		}
		label := list.Name
		if list.Archived {
			label += dimStyle.Render(" (archived)")
		}
		fmt.Printf("%s  %d/%d\n", label, done, len(list.Items))
		shown++
	}
	if shown == 0 {
		fmt.Println("No lists.")
	}
	return nil
}

func printTodoList(list plan.TodoList) {
	fmt.Println(list.Name)
	if len(list.Items) == 0 {
		fmt.Println("  (empty)")
		return
	}
	for i, item := range list.Items {
		mark := " "
		text := item.Text
		if item.Completed {
			mark = "x"
			text = dimStyle.Render(text)
		}
		fmt.Printf("  %2d [%s] %s\n", i+1, mark, text)
	}
}

func runTodoItem(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := resolveTodoList(a.State(), args[0])
	if err != nil {
		return err
	}

	a.Dispatch(plan.AddTodoItem{ListID: list.ID, Text: args[1]})
	fmt.Printf("Added to %s: %s\n", list.Name, args[1])
	return nil
}

func runTodoToggle(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	list, item, err := resolveTodoItem(a.State(), args[0], args[1])
	if err != nil {
		return err
	}

	a.Dispatch(plan.ToggleTodoItem{ListID: list.ID, ItemID: item.ID})
	if item.Completed {
		fmt.Printf("Unchecked: %s\n", item.Text)
	} else {
		fmt.Printf("Checked: %s\n", item.Text)
	}
	return nil
}

func runTodoRemove(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	list, item, err := resolveTodoItem(a.State(), args[0], args[1])
	if err != nil {
		return err
	}

	a.Dispatch(plan.DeleteTodoItem{ListID: list.ID, ItemID: item.ID})
	fmt.Printf("Removed: %s\n", item.Text)
	return nil
}

func runTodoArchive(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := resolveTodoList(a.State(), args[0])
	if err != nil {
		return err
	}
	if list.Archived {
		fmt.Printf("%s is already archived.\n", list.Name)
		return nil
	}

	a.Dispatch(plan.ArchiveTodoList{ID: list.ID})
	fmt.Printf("Archived: %s\n", list.Name)
	return nil
}

// resolveTodoList finds a list by id, id prefix, or exact name.
func resolveTodoList(state plan.State, ref string) (plan.TodoList, error) {
	if l, ok := state.TodoListByID(ref); ok {
		return l, nil
	}

	var matches []plan.TodoList
	for _, l := range state.TodoLists {
		if strings.HasPrefix(l.ID, ref) || l.Name == ref {
			matches = append(matches, l)
		}
	}
	switch len(matches) {
	case 0:
		return plan.TodoList{}, fmt.Errorf("todo list not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return plan.TodoList{}, fmt.Errorf("list reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveTodoItem finds an item by its 1-based position as printed by
// "todo list".
func resolveTodoItem(state plan.State, listRef, itemRef string) (plan.TodoList, plan.TodoItem, error) {
	list, err := resolveTodoList(state, listRef)
	if err != nil {
		return plan.TodoList{}, plan.TodoItem{}, err
	}

	var n int
	if _, err := fmt.Sscanf(itemRef, "%d", &n); err != nil || n < 1 || n > len(list.Items) {
		return plan.TodoList{}, plan.TodoItem{}, fmt.Errorf("no item %q in %s", itemRef, list.Name)
	}
	return list, list.Items[n-1], nil
}

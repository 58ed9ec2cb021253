package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/internal/dates"
	"github.com/daykeep/daykeep/internal/markdown"
	"github.com/daykeep/daykeep/internal/ui"
	"github.com/daykeep/daykeep/plan"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

// task add
var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Capture a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

// task list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runTaskList,
}

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

// task update
var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update task fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUpdate,
}

// task complete
var taskCompleteCmd = &cobra.Command{
	Use:     "complete <id>",
	Short:   "Mark a task completed",
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskComplete,
}

// task skip
var taskSkipCmd = &cobra.Command{
	Use:   "skip <id>",
	Short: "Skip a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskSkip,
}

// task reschedule
var taskRescheduleCmd = &cobra.Command{
	Use:   "reschedule <id> <date>",
	Short: "Move a task's due date (date is YYYY-MM-DD, 'today', or 'tomorrow')",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskReschedule,
}

// task delete
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskShowCmd, taskUpdateCmd,
		taskCompleteCmd, taskSkipCmd, taskRescheduleCmd, taskDeleteCmd)

	addFlags := taskAddCmd.Flags()
	addFlags.String("description", "", "task description (markdown)")
	addFlags.String("priority", "medium", "low, medium, or high")
	addFlags.String("type", "soft", "hard or soft")
	addFlags.String("due", "", "due date (YYYY-MM-DD, 'today', or 'tomorrow')")
	addFlags.Int("duration", 0, "estimated duration in minutes")
	addFlags.String("category", "", "category id")

	listFlags := taskListCmd.Flags()
	listFlags.String("location", "", "filter by inbox, scheduled, or someday")
	listFlags.String("status", "", "filter by status")
	listFlags.Bool("today", false, "tasks due today")
	listFlags.Bool("overdue", false, "tasks past due")
	listFlags.Bool("upcoming", false, "tasks due after today")
	listFlags.Bool("aging", false, "stale inbox tasks")
	listFlags.Bool("completed", false, "completed tasks")

	updateFlags := taskUpdateCmd.Flags()
	updateFlags.String("title", "", "new title")
	updateFlags.String("description", "", "new description")
	updateFlags.String("priority", "", "low, medium, or high")
	updateFlags.String("type", "", "hard or soft")
	updateFlags.String("status", "", "new status")
	updateFlags.String("location", "", "inbox, scheduled, or someday")
	updateFlags.String("due", "", "due date (YYYY-MM-DD)")
	updateFlags.Int("duration", 0, "estimated duration in minutes")
	updateFlags.String("category", "", "category id")
	updateFlags.Int("order", 0, "sort order")
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	flags := cmd.Flags()
	description, _ := flags.GetString("description")
	priority, _ := flags.GetString("priority")
	taskType, _ := flags.GetString("type")
	duration, _ := flags.GetInt("duration")
	category, _ := flags.GetString("category")

	if p := plan.Priority(priority); !p.IsValid() {
		return fmt.Errorf("invalid priority %q", priority)
	}
	if t := plan.TaskType(taskType); !t.IsValid() {
		return fmt.Errorf("invalid task type %q", taskType)
	}

	action := plan.AddTask{
		Title:             args[0],
		Description:       description,
		Priority:          plan.Priority(priority),
		Type:              plan.TaskType(taskType),
		EstimatedDuration: duration,
		Category:          category,
	}

	if due, _ := flags.GetString("due"); due != "" {
		dueDate, err := parseDay(due)
		if err != nil {
			return err
		}
		action.DueDate = &dueDate
		action.Location = plan.LocationScheduled
	}

	state := a.Dispatch(action)
	created := state.Tasks[len(state.Tasks)-1]
	fmt.Printf("Added task %s: %s\n", shortID(created.ID), created.Title)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	state := a.State()
	now := time.Now()
	flags := cmd.Flags()

	today, _ := flags.GetBool("today")
	overdue, _ := flags.GetBool("overdue")
	upcoming, _ := flags.GetBool("upcoming")
	aging, _ := flags.GetBool("aging")
	completed, _ := flags.GetBool("completed")

	var tasks []plan.Task
	switch {
	case today:
		tasks = plan.TodayTasks(state, now)
	case overdue:
		tasks = plan.OverdueTasks(state, now)
	case upcoming:
		tasks = plan.UpcomingTasks(state, now)
	case aging:
		tasks = plan.AgingTasks(state, now)
	case completed:
		tasks = plan.CompletedTasks(state)
	default:
		tasks = state.Tasks
	}

	if location, _ := flags.GetString("location"); location != "" {
		l := plan.Location(location)
		if !l.IsValid() {
			return fmt.Errorf("invalid location %q", location)
		}
		tasks = filterByLocation(tasks, l)
	}
	if status, _ := flags.GetString("status"); status != "" {
		st := plan.Status(status)
		if !st.IsValid() {
			return fmt.Errorf("invalid status %q", status)
		}
		tasks = filterByStatus(tasks, st)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	table := ui.NewTable("ID", "TITLE", "STATUS", "PRIORITY", "DUE", "EST")
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = ui.FormatDay(*t.DueDate, now)
		}
		est := ""
		if t.EstimatedDuration > 0 {
			est = ui.FormatMinutes(t.EstimatedDuration)
		}
		table.AddRow(shortID(t.ID), ui.Cell(t.Title), styleStatus(t.Status), stylePriority(t.Priority), due, est)
	}
	fmt.Print(table.String())
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := resolveTask(a.State(), args[0])
	if err != nil {
		return err
	}

	now := time.Now()
	fmt.Printf("%s\n", task.Title)
	fmt.Printf("  id:        %s\n", task.ID)
	fmt.Printf("  status:    %s\n", styleStatus(task.Status))
	fmt.Printf("  priority:  %s\n", stylePriority(task.Priority))
	fmt.Printf("  type:      %s\n", task.Type)
	fmt.Printf("  location:  %s\n", task.Location)
	if task.DueDate != nil {
		fmt.Printf("  due:       %s\n", ui.FormatDay(*task.DueDate, now))
	}
	if task.EstimatedDuration > 0 {
		fmt.Printf("  estimate:  %s\n", ui.FormatMinutes(task.EstimatedDuration))
	}
	if task.Category != "" {
		fmt.Printf("  category:  %s\n", categoryName(a.State(), task.Category))
	}
	if task.RescheduleCount > 0 {
		fmt.Printf("  rescheduled %d times", task.RescheduleCount)
		if task.CarriedOverFrom != "" {
			fmt.Printf(", most recently from %s", task.CarriedOverFrom)
		}
		fmt.Println()
	}
	if task.Description != "" {
		fmt.Println()
		fmt.Println(markdown.Render(78, task.Description))
	}
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	if !hasChangedFlags(cmd, "title", "description", "priority", "type", "status", "location", "due", "duration", "category", "order") {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := resolveTask(a.State(), args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	updates := plan.TaskUpdates{
		Title:             stringIfChanged(flags, "title"),
		Description:       stringIfChanged(flags, "description"),
		EstimatedDuration: intIfChanged(flags, "duration"),
		Category:          stringIfChanged(flags, "category"),
		Order:             intIfChanged(flags, "order"),
	}
	if v := stringIfChanged(flags, "priority"); v != nil {
		p := plan.Priority(*v)
		if !p.IsValid() {
			return fmt.Errorf("invalid priority %q", *v)
		}
		updates.Priority = &p
	}
	if v := stringIfChanged(flags, "type"); v != nil {
		t := plan.TaskType(*v)
		if !t.IsValid() {
			return fmt.Errorf("invalid task type %q", *v)
		}
		updates.Type = &t
	}
	if v := stringIfChanged(flags, "status"); v != nil {
		st := plan.Status(*v)
		if !st.IsValid() {
			return fmt.Errorf("invalid status %q", *v)
		}
		updates.Status = &st
	}
	if v := stringIfChanged(flags, "location"); v != nil {
		l := plan.Location(*v)
		if !l.IsValid() {
			return fmt.Errorf("invalid location %q", *v)
		}
		updates.Location = &l
	}
	if v := stringIfChanged(flags, "due"); v != nil {
		due, err := parseDay(*v)
		if err != nil {
			return err
		}
		updates.DueDate = &due
	}

	a.Dispatch(plan.UpdateTask{ID: task.ID, Updates: updates})
	fmt.Printf("Updated task %s\n", shortID(task.ID))
	return nil
}

func runTaskComplete(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := resolveTask(a.State(), args[0])
	if err != nil {
		return err
	}
	if task.Status == plan.StatusCompleted {
		fmt.Printf("Task %s is already completed.\n", shortID(task.ID))
		return nil
	}

	a.Dispatch(plan.CompleteTask{ID: task.ID})
	fmt.Printf("Completed: %s\n", task.Title)
	return nil
}

func runTaskSkip(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := resolveTask(a.State(), args[0])
	if err != nil {
		return err
	}
	if task.Type == plan.TypeHard {
		return fmt.Errorf("task %s is hard and cannot be skipped; complete or reschedule it", shortID(task.ID))
	}

	a.Dispatch(plan.SkipTask{ID: task.ID})
	fmt.Printf("Skipped: %s\n", task.Title)
	return nil
}

func runTaskReschedule(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := resolveTask(a.State(), args[0])
	if err != nil {
		return err
	}
	newDate, err := parseDay(args[1])
	if err != nil {
		return err
	}

	state := a.Dispatch(plan.RescheduleTask{ID: task.ID, NewDate: newDate})
	updated, _ := state.TaskByID(task.ID)
	fmt.Printf("Rescheduled %s to %s", task.Title, dates.ISO(newDate))
	if updated.RescheduleCount > 1 {
		fmt.Printf(" (%d reschedules)", updated.RescheduleCount)
	}
	fmt.Println()
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := resolveTask(a.State(), args[0])
	if err != nil {
		return err
	}

	a.Dispatch(plan.DeleteTask{ID: task.ID})
	fmt.Printf("Deleted: %s\n", task.Title)
	return nil
}

// resolveTask finds a task by full id, unique id prefix, or exact
// title.
func resolveTask(state plan.State, ref string) (plan.Task, error) {
	if t, ok := state.TaskByID(ref); ok {
		return t, nil
	}

	var matches []plan.Task
	for _, t := range state.Tasks {
		if strings.HasPrefix(t.ID, ref) || t.Title == ref {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return plan.Task{}, fmt.Errorf("task not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return plan.Task{}, fmt.Errorf("task reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

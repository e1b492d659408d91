package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Harshpandey2165/taskmanager--v1/task"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage your tasks",
}

// task list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runTaskList,
}

var (
	taskListCompleted bool
	taskListActive    bool
	taskListJSON      bool
)

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show detailed information about a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskShowJSON bool

// task add
var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a new task",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTaskAdd,
}

var (
	taskAddTitle       string
	taskAddDescription string
	taskAddPriority    string
	taskAddDue         string
)

// task edit
var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var (
	taskEditTitle       string
	taskEditDescription string
	taskEditPriority    string
	taskEditDue         string
)

// task done
var taskDoneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark one or more tasks as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskDone,
}

// task reopen
var taskReopenCmd = &cobra.Command{
	Use:   "reopen <id>...",
	Short: "Mark one or more completed tasks as pending",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskReopen,
}

// task rm
var taskRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskRm,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskListCmd, taskShowCmd, taskAddCmd, taskEditCmd, taskDoneCmd, taskReopenCmd, taskRmCmd)

	// task list flags
	taskListCmd.Flags().BoolVar(&taskListCompleted, "completed", false, "Show only completed tasks")
	taskListCmd.Flags().BoolVar(&taskListActive, "active", false, "Show only pending tasks")
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output as JSON")

	// task show flags
	taskShowCmd.Flags().BoolVar(&taskShowJSON, "json", false, "Output as JSON")

	// task add flags
	taskAddCmd.Flags().StringVarP(&taskAddTitle, "title", "t", "", "Task title")
	taskAddCmd.Flags().StringVarP(&taskAddDescription, "description", "d", "", "Task description")
	taskAddCmd.Flags().StringVarP(&taskAddPriority, "priority", "p", string(task.PriorityLow), "Priority (low, medium, high)")
	taskAddCmd.Flags().StringVar(&taskAddDue, "due", "", "Due date (YYYY-MM-DD)")

	// task edit flags
	taskEditCmd.Flags().StringVarP(&taskEditTitle, "title", "t", "", "New title")
	taskEditCmd.Flags().StringVarP(&taskEditDescription, "description", "d", "", "New description")
	taskEditCmd.Flags().StringVarP(&taskEditPriority, "priority", "p", "", "New priority (low, medium, high)")
	taskEditCmd.Flags().StringVar(&taskEditDue, "due", "", "New due date (YYYY-MM-DD)")
}

func runTaskList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if taskListCompleted && taskListActive {
		return fmt.Errorf("--completed and --active are mutually exclusive")
	}

	if _, err := a.requireUser(cmd.Context()); err != nil {
		return err
	}

	tasks := a.tasks.Tasks()
	switch {
	case taskListCompleted:
		tasks = a.tasks.Completed()
	case taskListActive:
		tasks = a.tasks.Active()
	}

	if taskListJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	printTaskTable(a, tasks)
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	id, err := a.resolveTaskID(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.tasks.Get(ctx, id); err != nil {
		return reported(err)
	}
	shown := a.tasks.Buffer()

	if taskShowJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(shown)
	}

	printTaskDetail(a, shown)
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if _, err := a.requireUser(ctx); err != nil {
		return err
	}

	title := taskAddTitle
	if len(args) > 0 {
		title = args[0]
	}
	priority := task.Priority(taskAddPriority)
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority %q (want low, medium, or high)", taskAddPriority)
	}

	before := taskIDSet(a.tasks.Tasks())

	a.tasks.OpenForAdd()
	a.tasks.SetTitle(title)
	a.tasks.SetDescription(taskAddDescription)
	a.tasks.SetPriority(priority)
	a.tasks.SetDueDate(taskAddDue)
	if err := a.tasks.Create(ctx, a.tasks.Buffer()); err != nil {
		return reported(err)
	}

	for _, t := range a.tasks.Tasks() {
		if !before[t.ID] {
			fmt.Fprintf(a.out, "%s  %s\n", t.ID, t.Title)
		}
	}
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	id, err := a.resolveTaskID(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.tasks.Get(ctx, id); err != nil {
		return reported(err)
	}

	if cmd.Flags().Changed("title") {
		a.tasks.SetTitle(taskEditTitle)
	}
	if cmd.Flags().Changed("description") {
		a.tasks.SetDescription(taskEditDescription)
	}
	if cmd.Flags().Changed("priority") {
		priority := task.Priority(taskEditPriority)
		if !priority.IsValid() {
			return fmt.Errorf("invalid priority %q (want low, medium, or high)", taskEditPriority)
		}
		a.tasks.SetPriority(priority)
	}
	if cmd.Flags().Changed("due") {
		a.tasks.SetDueDate(taskEditDue)
	}

	return reported(a.tasks.Update(ctx, a.tasks.Buffer()))
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	return setTasksCompleted(cmd, args, true)
}

func runTaskReopen(cmd *cobra.Command, args []string) error {
	return setTasksCompleted(cmd, args, false)
}

func setTasksCompleted(cmd *cobra.Command, args []string, completed bool) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	ids, err := a.resolveTaskIDs(ctx, args)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := a.tasks.Get(ctx, id); err != nil {
			return reported(err)
		}
		a.tasks.SetCompleted(completed)
		if err := a.tasks.Update(ctx, a.tasks.Buffer()); err != nil {
			return reported(err)
		}
	}
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	ids, err := a.resolveTaskIDs(ctx, args)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := a.tasks.Delete(ctx, id); err != nil {
			return reported(err)
		}
	}
	return nil
}

// resolveTaskID fetches the collection and matches ref against it as a
// full ID or unique prefix.
func (a *app) resolveTaskID(ctx context.Context, ref string) (string, error) {
	ids, err := a.resolveTaskIDs(ctx, []string{ref})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

func (a *app) resolveTaskIDs(ctx context.Context, refs []string) ([]string, error) {
	if _, err := a.requireUser(ctx); err != nil {
		return nil, err
	}

	tasks := a.tasks.Tasks()
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, err := matchTaskID(tasks, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func matchTaskID(tasks []task.Task, ref string) (string, error) {
	needle := strings.ToLower(ref)
	match := ""
	for _, t := range tasks {
		id := strings.ToLower(t.ID)
		if id == needle {
			return t.ID, nil
		}
		if strings.HasPrefix(id, needle) {
			if match != "" {
				return "", fmt.Errorf("task ID %q is ambiguous", ref)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no task matches %q", ref)
	}
	return match, nil
}

func taskIDSet(tasks []task.Task) map[string]bool {
	ids := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		ids[t.ID] = true
	}
	return ids
}

// Task commands: add, list, update, done, delete.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumamontes/tarefitas/internal/usecase"
	"github.com/lumamontes/tarefitas/pkg/types"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var (
	taskTitle       string
	taskDescription string
	taskStatus      string
	taskDueDate     string
	taskEnergyTag   string
	taskListAll     bool
)

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new task",
	Long: `Add creates a new task with the given title.

Example:
  tarefitas task add --title "Water the plants"
  tarefitas task add --title "File taxes" --due 2026-09-15 --energy low`,
	RunE: runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, most recently touched first",
	RunE:  runTaskList,
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an existing task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUpdate,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task between completed and active",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task and its subtasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

func init() {
	taskAddCmd.Flags().StringVar(&taskTitle, "title", "", "task title (required)")
	taskAddCmd.Flags().StringVar(&taskDescription, "description", "", "task description")
	taskAddCmd.Flags().StringVar(&taskDueDate, "due", "", "due date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVar(&taskEnergyTag, "energy", "", "energy tag (free-form label)")
	_ = taskAddCmd.MarkFlagRequired("title")

	taskListCmd.Flags().BoolVar(&taskListAll, "all", false, "include deleted tasks")

	taskUpdateCmd.Flags().StringVar(&taskTitle, "title", "", "new title")
	taskUpdateCmd.Flags().StringVar(&taskDescription, "description", "", "new description (empty clears)")
	taskUpdateCmd.Flags().StringVar(&taskStatus, "status", "", "new status (active, completed, archived)")
	taskUpdateCmd.Flags().StringVar(&taskDueDate, "due", "", "new due date (empty clears)")
	taskUpdateCmd.Flags().StringVar(&taskEnergyTag, "energy", "", "new energy tag (empty clears)")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	in := usecase.CreateTaskInput{Title: taskTitle}
	if cmd.Flags().Changed("description") {
		in.Description = &taskDescription
	}
	if cmd.Flags().Changed("due") {
		in.DueDate = &taskDueDate
	}
	if cmd.Flags().Changed("energy") {
		in.EnergyTag = &taskEnergyTag
	}

	t, err := svc.CreateTask(in)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	if flagJSON {
		return printJSON(t)
	}
	fmt.Printf("Created task %s\n", t.ID)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	var (
		tasks []types.Task
		err   error
	)
	if taskListAll {
		tasks, err = store.Tasks().ListAll()
	} else {
		tasks, err = store.Tasks().List()
	}
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	if flagJSON {
		return printJSON(tasks)
	}
	printTaskTable(tasks)
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	in := usecase.UpdateTaskInput{}
	if cmd.Flags().Changed("title") {
		in.Title = &taskTitle
	}
	if cmd.Flags().Changed("description") {
		in.Description = &taskDescription
	}
	if cmd.Flags().Changed("status") {
		in.Status = &taskStatus
	}
	if cmd.Flags().Changed("due") {
		in.DueDate = &taskDueDate
	}
	if cmd.Flags().Changed("energy") {
		in.EnergyTag = &taskEnergyTag
	}

	t, err := svc.UpdateTask(args[0], in)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if flagJSON {
		return printJSON(t)
	}
	fmt.Printf("Updated task %s\n", t.ID)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	t, err := svc.ToggleTaskComplete(args[0])
	if err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}
	if flagJSON {
		return printJSON(t)
	}
	fmt.Printf("Task %s is now %s\n", t.ID, t.Status)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	if err := svc.DeleteTask(args[0]); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	fmt.Printf("Deleted task %s\n", args[0])
	return nil
}

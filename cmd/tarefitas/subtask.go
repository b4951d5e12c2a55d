// Subtask commands: add, list, toggle, reorder, delete.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumamontes/tarefitas/internal/usecase"
)

var subtaskCmd = &cobra.Command{
	Use:   "subtask",
	Short: "Manage subtasks of a task",
}

var (
	subtaskTaskID string
	subtaskTitle  string
)

var subtaskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a subtask to a task",
	RunE:  runSubtaskAdd,
}

var subtaskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a task's subtasks in display order",
	RunE:  runSubtaskList,
}

var subtaskToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a subtask's done flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubtaskToggle,
}

var subtaskReorderCmd = &cobra.Command{
	Use:   "reorder <id>...",
	Short: "Reorder a task's subtasks to the given id sequence",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSubtaskReorder,
}

var subtaskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a subtask",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubtaskDelete,
}

func init() {
	subtaskAddCmd.Flags().StringVar(&subtaskTaskID, "task", "", "parent task id (required)")
	subtaskAddCmd.Flags().StringVar(&subtaskTitle, "title", "", "subtask title (required)")
	_ = subtaskAddCmd.MarkFlagRequired("task")
	_ = subtaskAddCmd.MarkFlagRequired("title")

	subtaskListCmd.Flags().StringVar(&subtaskTaskID, "task", "", "parent task id (required)")
	_ = subtaskListCmd.MarkFlagRequired("task")

	subtaskReorderCmd.Flags().StringVar(&subtaskTaskID, "task", "", "parent task id (required)")
	_ = subtaskReorderCmd.MarkFlagRequired("task")

	subtaskCmd.AddCommand(subtaskAddCmd)
	subtaskCmd.AddCommand(subtaskListCmd)
	subtaskCmd.AddCommand(subtaskToggleCmd)
	subtaskCmd.AddCommand(subtaskReorderCmd)
	subtaskCmd.AddCommand(subtaskDeleteCmd)
}

func runSubtaskAdd(cmd *cobra.Command, args []string) error {
	sub, err := svc.AddSubtask(usecase.AddSubtaskInput{
		TaskID: subtaskTaskID,
		Title:  subtaskTitle,
	})
	if err != nil {
		return fmt.Errorf("add subtask: %w", err)
	}
	if flagJSON {
		return printJSON(sub)
	}
	fmt.Printf("Created subtask %s\n", sub.ID)
	return nil
}

func runSubtaskList(cmd *cobra.Command, args []string) error {
	subtasks, err := store.Subtasks().ListByTask(subtaskTaskID)
	if err != nil {
		return fmt.Errorf("list subtasks: %w", err)
	}
	if flagJSON {
		return printJSON(subtasks)
	}
	printSubtaskTable(subtasks)
	return nil
}

func runSubtaskToggle(cmd *cobra.Command, args []string) error {
	sub, err := svc.ToggleSubtask(args[0])
	if err != nil {
		return fmt.Errorf("toggle subtask: %w", err)
	}
	if flagJSON {
		return printJSON(sub)
	}
	state := "open"
	if sub.Done {
		state = "done"
	}
	fmt.Printf("Subtask %s is now %s\n", sub.ID, state)
	return nil
}

func runSubtaskReorder(cmd *cobra.Command, args []string) error {
	if err := svc.ReorderSubtasks(subtaskTaskID, args); err != nil {
		return fmt.Errorf("reorder subtasks: %w", err)
	}
	fmt.Println("Reordered subtasks")
	return nil
}

func runSubtaskDelete(cmd *cobra.Command, args []string) error {
	if err := svc.DeleteSubtask(args[0]); err != nil {
		return fmt.Errorf("delete subtask: %w", err)
	}
	fmt.Printf("Deleted subtask %s\n", args[0])
	return nil
}

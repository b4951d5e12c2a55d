// Shared output helpers for tarefitas CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lumamontes/tarefitas/pkg/types"
)

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// fmtMillis renders a unix-millisecond timestamp for table output.
func fmtMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printTaskTable prints tasks in a human-readable table format.
func printTaskTable(tasks []types.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tDUE\tUPDATED")
	fmt.Fprintln(w, "--\t-----\t------\t---\t-------")
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = *t.DueDate
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID), truncate(t.Title, 40), t.Status, due, fmtMillis(t.UpdatedAt))
	}
	w.Flush()
	fmt.Print(sb.String())
}

// printSubtaskTable prints subtasks in display order.
func printSubtaskTable(subtasks []types.Subtask) {
	if len(subtasks) == 0 {
		fmt.Println("No subtasks found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tDONE\tORDER")
	fmt.Fprintln(w, "--\t-----\t----\t-----")
	for _, s := range subtasks {
		done := " "
		if s.Done {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t%s\t[%s]\t%d\n",
			shortID(s.ID), truncate(s.Title, 40), done, s.SortOrder)
	}
	w.Flush()
	fmt.Print(sb.String())
}

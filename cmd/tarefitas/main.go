// Package main provides the tarefitas CLI, a thin shell over the
// persistence layer: task, subtask and preference commands plus
// whole-store export, import and reset.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Backup commands: export, import, reset.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumamontes/tarefitas/internal/backup"
)

var (
	exportOutput string
	importMode   string
	resetForce   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole store to a backup file",
	Long: `Export writes every row, deleted ones included, to a versioned
JSON backup file.

Example:
  tarefitas export
  tarefitas export --output my-backup.json`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore the store from a backup file",
	Long: `Import validates a backup file and applies it with the chosen
strategy.

replace discards the current data and loads the file verbatim.
merge keeps whichever copy of each row was written last; ties go
to the file being imported.

Example:
  tarefitas import backup.json --mode merge
  tarefitas import backup.json --mode replace`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all data and restore default settings",
	RunE:  runReset,
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output file (default: tarefitas-backup-<date>.json)")

	importCmd.Flags().StringVar(&importMode, "mode", string(backup.ModeMerge), "restore strategy: replace or merge")

	resetCmd.Flags().BoolVar(&resetForce, "force", false, "skip the confirmation check")
}

func runExport(cmd *cobra.Command, args []string) error {
	snap, err := backup.Export(store)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	raw, err := backup.Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	path := exportOutput
	if path == "" {
		path = fmt.Sprintf("tarefitas-backup-%s.json", time.Now().Format("2006-01-02"))
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	fmt.Printf("Exported %d tasks, %d subtasks, %d preferences to %s\n",
		len(snap.Data.Tasks), len(snap.Data.Subtasks), len(snap.Data.Prefs), path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	mode := backup.Mode(importMode)
	if mode != backup.ModeReplace && mode != backup.ModeMerge {
		return fmt.Errorf("unknown restore mode %q (want replace or merge)", importMode)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}
	snap, err := backup.Decode(raw)
	if err != nil {
		return err
	}
	if err := backup.Restore(store, signals, snap, mode); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	fmt.Printf("Imported %s in %s mode\n", args[0], mode)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetForce {
		return fmt.Errorf("reset erases all data; pass --force to proceed")
	}
	if err := backup.Reset(store, signals); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Println("Store reset to defaults")
	return nil
}

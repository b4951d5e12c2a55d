// Preference commands: get, set, list.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumamontes/tarefitas/pkg/types"
)

var prefCmd = &cobra.Command{
	Use:   "pref",
	Short: "Manage user preferences",
}

var prefGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a preference value",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefGet,
}

var prefSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a preference value",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefSet,
}

var prefListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all preferences",
	RunE:  runPrefList,
}

func init() {
	prefCmd.AddCommand(prefGetCmd)
	prefCmd.AddCommand(prefSetCmd)
	prefCmd.AddCommand(prefListCmd)
}

func runPrefGet(cmd *cobra.Command, args []string) error {
	p, err := store.Prefs().Get(args[0])
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("no preference named %q", args[0])
	}
	if err != nil {
		return fmt.Errorf("get preference: %w", err)
	}
	if flagJSON {
		return printJSON(p)
	}
	fmt.Println(p.Value)
	return nil
}

func runPrefSet(cmd *cobra.Command, args []string) error {
	if err := svc.SetPreference(args[0], args[1]); err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	fmt.Printf("Set %s\n", args[0])
	return nil
}

func runPrefList(cmd *cobra.Command, args []string) error {
	prefs, err := store.Prefs().ListAll()
	if err != nil {
		return fmt.Errorf("list preferences: %w", err)
	}
	if flagJSON {
		return printJSON(prefs)
	}
	for _, p := range prefs {
		fmt.Printf("%s=%s\n", p.Key, p.Value)
	}
	return nil
}

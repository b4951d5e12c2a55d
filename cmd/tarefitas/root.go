// Root command for the tarefitas CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/lumamontes/tarefitas/internal/bus"
	"github.com/lumamontes/tarefitas/internal/paths"
	"github.com/lumamontes/tarefitas/internal/sqlite"
	"github.com/lumamontes/tarefitas/internal/usecase"
	"github.com/lumamontes/tarefitas/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

// Shared per-invocation state, initialized by PersistentPreRunE.
var (
	store   *sqlite.Store
	signals *bus.Bus
	svc     *usecase.Service
)

var rootCmd = &cobra.Command{
	Use:     "tarefitas",
	Short:   "Tarefitas is a local-first task manager",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configDataDir = cfg.GetString(cfgKeyDataDir)

		dataDir, err := paths.ResolveDataDir(flagDataDir, configDataDir)
		if err != nil {
			return err
		}

		store, err = sqlite.Acquire(types.Config{DataDir: dataDir})
		if err != nil {
			return err
		}
		signals = bus.New()
		svc = usecase.New(store, signals)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		store = nil
		return sqlite.Release()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(subtaskCmd)
	rootCmd.AddCommand(prefCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
}

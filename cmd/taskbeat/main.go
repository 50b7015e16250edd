// Package main is the entry point for the taskbeat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhutton/taskbeat/internal/config"
	"github.com/mhutton/taskbeat/internal/logging"
)

// Version is set at build time.
var Version = "dev"

func main() {
	initLogging()

	rootCmd := &cobra.Command{
		Use:   "taskbeat",
		Short: "Track recurring tasks bound to work items",
		Long: `Taskbeat tracks recurring obligations bound to issue-tracker work items.

It records completion dates per work item, derives whether each task is
on time, due, or late from its repeat interval, and keeps the tracker's
due-date field in sync with the computed schedule.`,
	}

	rootCmd.AddCommand(
		newActivateCmd(),
		newDeactivateCmd(),
		newDoneCmd(),
		newUndoCmd(),
		newSetCmd(),
		newListCmd(),
		newCategoriesCmd(),
		newShowCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogging initializes the logger from config.
func initLogging() {
	cfg, err := config.Get()
	if err != nil {
		_ = logging.Init(nil)
		return
	}

	lc := logging.LoggingConfig{
		Level:      cfg.Logging.Level,
		FilePath:   cfg.Logging.FilePath,
		JSON:       cfg.Logging.JSON,
		Console:    cfg.Logging.Console,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	}

	if err := logging.InitFromLogConfig(lc); err != nil {
		_ = logging.Init(nil)
	}
}

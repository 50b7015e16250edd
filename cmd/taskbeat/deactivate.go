package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate ISSUE-KEY",
		Short: "Stop tracking a task, keeping its history",
		Long: `Stop tracking a task. The completion history is retained so the task
can be reactivated later; the work item's due date is cleared.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newTaskService()
			if err != nil {
				return err
			}
			defer cleanup()

			return svc.Deactivate(context.Background(), args[0])
		},
	}
}

package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newUndoCmd() *cobra.Command {
	var undoDate string

	cmd := &cobra.Command{
		Use:   "undo ISSUE-KEY",
		Short: "Remove a recorded completion from a tracked task",
		Long: `Remove a completion date from a tracked task's history and resync the
work item's due date. Removing a date that is not in the history is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newTaskService()
			if err != nil {
				return err
			}
			defer cleanup()

			return svc.UndoDone(context.Background(), args[0], undoDate)
		},
	}

	cmd.Flags().StringVar(&undoDate, "date", "", "Completion date to remove (YYYY-MM-DD)")
	cmd.MarkFlagRequired("date")

	return cmd
}

package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate ISSUE-KEY",
		Short: "Start tracking a work item as a recurring task",
		Long: `Start tracking a work item as a recurring task.

A previously deactivated task is reactivated with its completion history
retained; a brand new one starts with an empty history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newTaskService()
			if err != nil {
				return err
			}
			defer cleanup()

			return svc.Activate(context.Background(), args[0])
		},
	}
}

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhutton/taskbeat/internal/dateutil"
)

func newDoneCmd() *cobra.Command {
	var doneDate string

	cmd := &cobra.Command{
		Use:   "done ISSUE-KEY",
		Short: "Record a completion for a tracked task",
		Long: `Record a completion date for a tracked task and resync the work item's
due date. Recording a date that is already in the history is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := doneDate
			if date == "" {
				date = time.Now().Format(dateutil.DateFormat)
			}

			svc, cleanup, err := newTaskService()
			if err != nil {
				return err
			}
			defer cleanup()

			return svc.MarkDone(context.Background(), args[0], date)
		},
	}

	cmd.Flags().StringVar(&doneDate, "date", "", "Completion date (YYYY-MM-DD, default today)")

	return cmd
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhutton/taskbeat/internal/status"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ISSUE-KEY",
		Short: "Show stored metadata and schedule status for one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newTaskService()
			if err != nil {
				return err
			}
			defer cleanup()

			meta, err := svc.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			if meta == nil {
				return fmt.Errorf("%s is not tracked", args[0])
			}

			snap := status.Classify(meta.RepeatGoalEnabled, meta.DaysRepeat, meta.History)

			fmt.Printf("Key:        %s\n", meta.IssueKey)
			fmt.Printf("Active:     %t\n", meta.IsActive)
			if meta.Category != "" {
				fmt.Printf("Category:   %s\n", meta.Category)
			}
			if meta.RepeatGoalEnabled && meta.DaysRepeat > 0 {
				fmt.Printf("Repeats:    every %d days\n", meta.DaysRepeat)
			} else {
				fmt.Printf("Repeats:    no goal\n")
			}
			fmt.Printf("Last done:  %s\n", snap.LastDateText)
			fmt.Printf("Next due:   %s\n", snap.NextDateText)
			fmt.Printf("Schedule:   %s (%s)\n", snap.DaysText, snap.Category)
			if len(meta.History) > 0 {
				fmt.Printf("History:    %s\n", strings.Join(meta.History, ", "))
			}
			return nil
		},
	}
}

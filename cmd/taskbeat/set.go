package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhutton/taskbeat/internal/task"
)

func newSetCmd() *cobra.Command {
	var (
		setCategory string
		setEvery    int
		setGoal     bool
	)

	cmd := &cobra.Command{
		Use:   "set ISSUE-KEY",
		Short: "Update settings of a tracked task",
		Long: `Update settings of a tracked task. Only the flags you pass are applied;
everything else is left as it was.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch task.SettingsPatch
			if cmd.Flags().Changed("category") {
				patch.Category = &setCategory
			}
			if cmd.Flags().Changed("every") {
				patch.DaysRepeat = &setEvery
			}
			if cmd.Flags().Changed("goal") {
				patch.RepeatGoalEnabled = &setGoal
			}

			if patch.IsZero() {
				return fmt.Errorf("nothing to update: pass at least one of --category, --every, --goal")
			}

			svc, cleanup, err := newTaskService()
			if err != nil {
				return err
			}
			defer cleanup()

			return svc.UpdateSettings(context.Background(), args[0], patch)
		},
	}

	cmd.Flags().StringVar(&setCategory, "category", "", "Category label (max 100 characters)")
	cmd.Flags().IntVar(&setEvery, "every", 0, "Repeat interval in days")
	cmd.Flags().BoolVar(&setGoal, "goal", false, "Enable or disable the recurrence goal")

	return cmd
}

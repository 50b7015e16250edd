package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the distinct categories of active tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newTaskService()
			if err != nil {
				return err
			}
			defer cleanup()

			categories, err := svc.ListCategories(context.Background())
			if err != nil {
				return err
			}

			for _, c := range categories {
				fmt.Println(c)
			}
			return nil
		},
	}
}

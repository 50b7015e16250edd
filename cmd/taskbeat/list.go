package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mhutton/taskbeat/internal/status"
	"github.com/mhutton/taskbeat/internal/task"
)

var (
	listJSON     bool
	listCategory string
)

// listRow pairs an enriched task with its computed schedule state.
type listRow struct {
	task.Task
	ScheduleStatus status.Category `json:"scheduleStatus"`
	StatusText     string          `json:"statusText"`
	NextDateText   string          `json:"nextDateText"`
	LastDateText   string          `json:"lastDateText"`

	dueIn int
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active tasks with their schedule status",
		Long:  `List all active tasks enriched with live issue data and schedule status.`,
		RunE:  runList,
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newTaskService()
	if err != nil {
		return err
	}
	defer cleanup()

	enriched, err := svc.ListActiveEnriched(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	rows := make([]listRow, 0, len(enriched))
	for _, t := range enriched {
		if listCategory != "" && t.Category != listCategory {
			continue
		}

		snap := status.Classify(t.RepeatGoalEnabled, t.DaysRepeat, t.History)
		rows = append(rows, listRow{
			Task:           t,
			ScheduleStatus: snap.Category,
			StatusText:     snap.DaysText,
			NextDateText:   snap.NextDateText,
			LastDateText:   snap.LastDateText,
			dueIn:          snap.DueInDays,
		})
	}

	sortRows(rows)

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("No active tasks.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tCATEGORY\tPROJECT\tSTATE\tLAST DONE\tNEXT DUE\tSCHEDULE")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.IssueKey, r.Name, r.Category, r.Project, r.Status,
			r.LastDateText, r.NextDateText, r.StatusText)
	}
	return w.Flush()
}

// sortRows orders late tasks first, then on-time by due distance, with
// goalless tasks last.
func sortRows(rows []listRow) {
	rank := map[status.Category]int{
		status.CategoryLate:   0,
		status.CategoryOnTime: 1,
		status.CategoryNoGoal: 2,
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rank[rows[i].ScheduleStatus], rank[rows[j].ScheduleStatus]
		if ri != rj {
			return ri < rj
		}
		if rows[i].dueIn != rows[j].dueIn {
			return rows[i].dueIn < rows[j].dueIn
		}
		return rows[i].IssueKey < rows[j].IssueKey
	})
}

package root

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"smarttodo/internal/filter"
)

var (
	flagListCategory string
	flagListPriority string
	flagListStatus   string
	flagListDue      string
	flagListSearch   string
	flagListJSON     bool
)

type listItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Priority    *int64 `json:"priority,omitempty"`
	Due         string `json:"due,omitempty"`
	Completed   bool   `json:"completed"`
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, with the same filters the TUI offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			tasks, err := store.Load()
			if err != nil {
				return fmt.Errorf("load tasks: %w", err)
			}

			criteria, err := listCriteria()
			if err != nil {
				return err
			}
			visible := filter.Apply(criteria, tasks)

			if flagListJSON {
				items := make([]listItem, 0, len(visible))
				for _, t := range visible {
					item := listItem{
						ID:          t.ID,
						Name:        t.Name,
						Description: t.Description,
						Category:    t.Category,
						Due:         t.DueText(),
						Completed:   t.Completed,
					}
					if t.Priority.Valid {
						p := t.Priority.Int64
						item.Priority = &p
					}
					items = append(items, item)
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			tw := tablewriter.NewWriter(os.Stdout)
			tw.SetHeader([]string{"ID", "NAME", "CATEGORY", "PRIORITY", "DUE", "DONE"})
			for _, t := range visible {
				done := ""
				if t.Completed {
					done = "x"
				}
				tw.Append([]string{
					fmt.Sprintf("%d", t.ID),
					t.Name,
					t.Category,
					t.PriorityText(),
					t.DueText(),
					done,
				})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&flagListCategory, "category", "", "only tasks in this category")
	cmd.Flags().StringVar(&flagListPriority, "priority", "", "only tasks with this priority")
	cmd.Flags().StringVar(&flagListStatus, "status", "", "completed | pending")
	cmd.Flags().StringVar(&flagListDue, "due", "", "only tasks due on this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagListSearch, "search", "", "keyword search across fields")
	cmd.Flags().BoolVar(&flagListJSON, "json", false, "output JSON")

	return cmd
}

func listCriteria() (filter.Criteria, error) {
	c := filter.Criteria{
		Category: flagListCategory,
		Priority: flagListPriority,
		Keyword:  flagListSearch,
	}
	switch flagListStatus {
	case "":
		c.Completion = filter.AllTasks
	case "completed", "done":
		c.Completion = filter.Completed
	case "pending", "open":
		c.Completion = filter.NotCompleted
	default:
		return c, fmt.Errorf("--status: unknown value %q", flagListStatus)
	}
	if flagListDue != "" {
		day, err := time.Parse(time.DateOnly, flagListDue)
		if err != nil {
			return c, fmt.Errorf("--due: %w", err)
		}
		c.Due = sql.NullTime{Time: day, Valid: true}
	}
	return c, nil
}

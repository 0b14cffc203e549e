package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"smarttodo/internal/task"
	"smarttodo/internal/ui"
)

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove completed or overdue tasks",
	}
	cmd.AddCommand(newClearCompletedCmd(), newClearOverdueCmd())
	return cmd
}

func newClearCompletedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completed",
		Short: "Remove every completed task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(func(t task.Task) bool { return t.Completed }, "completed")
		},
	}
}

func newClearOverdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "Remove every task due before today",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := time.Now()
			return runClear(func(t task.Task) bool { return t.OverdueAt(today) }, "overdue")
		},
	}
}

// runClear mirrors the TUI semantics: no write when nothing was removed.
func runClear(pred func(task.Task) bool, what string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tasks, err := store.Load()
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println(ui.Muted.Render("No tasks."))
		return nil
	}

	collection := task.NewCollection(tasks)
	removed := collection.RemoveIf(pred)
	if removed == 0 {
		fmt.Println(ui.Muted.Render("No " + what + " tasks."))
		return nil
	}
	if err := store.Save(collection.Tasks()); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	fmt.Println(ui.Good.Render(fmt.Sprintf("Removed %d %s task(s).", removed, what)))
	return nil
}

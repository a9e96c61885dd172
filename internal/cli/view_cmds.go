package cli

import (
	"fmt"

	"github.com/alexanderramin/studyslots/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all tasks in the order they were added",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Planner.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, app.Planner.Catalog(), app.now()))
			return nil
		},
	}
}

func newUnscheduledCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unscheduled",
		Short: "Show incomplete tasks without a slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Planner.Unscheduled(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUnscheduled(tasks, app.Planner.Catalog(), app.now()))
			return nil
		},
	}
}

func newSlotsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "Show the daily slot catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(app.Planner.Catalog()))
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"io"

	"github.com/alexanderramin/studyslots/internal/cli/formatter"
	"github.com/alexanderramin/studyslots/internal/service"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Place unscheduled tasks and show the schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Planner.Build(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !quiet {
				fmt.Fprint(out, formatter.FormatSchedule(res.Schedule))
				fmt.Fprintln(out)
			}
			printBuildOutcome(out, res)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the summary line")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Toggle a task's completion and rebuild the schedule",
		Long:  "Toggle a task's completion. Either way its slot is released and the schedule is rebuilt.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			task, res, err := app.Planner.ToggleComplete(ctx, id)
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("task %s not found", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatTaskToggled(task))
			printBuildOutcome(out, res)
			return nil
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a task and rebuild the schedule",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			task, res, err := app.Planner.Delete(ctx, id)
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("task %s not found", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatTaskDeleted(task))
			printBuildOutcome(out, res)
			return nil
		},
	}
}

// printBuildOutcome prints the summary line and names tasks whose stored slot
// no longer exists in the catalog.
func printBuildOutcome(w io.Writer, res *service.BuildResult) {
	if res == nil {
		return
	}
	for _, t := range res.Reopened {
		fmt.Fprintf(w, "%s %s\n", formatter.StyleYellow.Render("Slot removed, rescheduling"), formatter.Bold(t.Title))
	}
	fmt.Fprintln(w, formatter.FormatBuildSummary(len(res.Placed), len(res.Unscheduled)))
}

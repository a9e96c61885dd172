package cli

import (
	"fmt"

	"github.com/alexanderramin/studyslots/internal/cli/formatter"
	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		title    string
		subject  string
		hours    int
		minutes  int
		due      string
		priority priorityFlag
		schedule bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a study task",
		Long: "Add a study task. Without --title on a terminal, an interactive form asks for each field.\n" +
			"Adding does not place the task; pass --schedule or run \"schedule\" afterwards.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var in domain.TaskInput
			if title == "" && app.interactive() {
				vals := addFormValues{Priority: priority.String()}
				if err := newAddTaskForm(&vals).Run(); err != nil {
					return err
				}
				var err error
				if in, err = vals.input(app.now()); err != nil {
					return err
				}
			} else {
				dueDate, err := parseDue(due, app.now())
				if err != nil {
					return err
				}
				in = domain.TaskInput{
					Title:       title,
					Subject:     subject,
					DurationMin: domain.DurationFromParts(hours, minutes),
					DueDate:     dueDate,
					Priority:    priority.value,
				}
			}

			task, err := app.Planner.Add(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatTaskAdded(task))

			if !schedule {
				return nil
			}
			res, err := app.Planner.Build(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatBuildSummary(len(res.Placed), len(res.Unscheduled)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&subject, "subject", "", "subject (default \"General\")")
	cmd.Flags().IntVar(&hours, "hours", 0, "duration hours")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "duration minutes")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().Var(&priority, "priority", "priority: low, medium, high")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "build the schedule after adding")

	return cmd
}

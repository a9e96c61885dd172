package cli

import (
	"time"

	"github.com/alexanderramin/studyslots/internal/clock"
	"github.com/alexanderramin/studyslots/internal/service"
	"github.com/spf13/cobra"
)

// App holds the planner and the terminal facts CLI commands depend on.
type App struct {
	Planner service.PlannerService
	Clock   clock.Clock

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "studyslots" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyslots",
		Short:         "Study task planner that fills daily time slots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newUnscheduledCmd(app),
		newScheduleCmd(app),
		newDoneCmd(app),
		newDeleteCmd(app),
		newSlotsCmd(app),
		newBoardCmd(app),
	)

	return root
}

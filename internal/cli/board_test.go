package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/studyslots/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoardDriver(t *testing.T, app *App, w, h int) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newBoardModel(context.Background(), app), teatest.WithSize(w, h))
	d.DrainInit()
	return d
}

func TestBoard_InitBuildsAndRenders(t *testing.T) {
	app := testApp(t)
	seedTask(t, app, "Chemistry notes", 90, 1)

	d := newBoardDriver(t, app, 100, 40)

	view := d.View()
	assert.Contains(t, view, "studyslots")
	assert.Contains(t, view, "Monday, March 10, 2025")
	assert.Contains(t, view, "Chemistry notes")
	assert.Contains(t, view, "Placed 1 task.")
	assert.Contains(t, view, "All tasks have been scheduled!")
	assert.Contains(t, view, "r: rebuild")

	assert.True(t, onlyTask(t, app).IsScheduled(), "opening the board persists the build")
}

func TestBoard_RebuildPicksUpNewTasks(t *testing.T) {
	app := testApp(t)
	d := newBoardDriver(t, app, 100, 40)
	assert.Contains(t, d.View(), "Nothing scheduled yet.")

	seedTask(t, app, "Late addition", 30, 2)
	d.PressKey('r')

	view := d.View()
	assert.Contains(t, view, "Late addition")
	assert.Contains(t, view, "Placed 1 task.")
}

func TestBoard_QuitKeys(t *testing.T) {
	for _, name := range []string{"q", "esc"} {
		t.Run(name, func(t *testing.T) {
			d := newBoardDriver(t, testApp(t), 80, 24)
			if name == "q" {
				d.PressKey('q')
			} else {
				d.PressEsc()
			}
			assert.True(t, d.Quitting)
		})
	}
}

func TestBoard_ShowsBuildError(t *testing.T) {
	app := &App{Planner: &stubPlanner{buildErr: errors.New("disk full")}}

	d := newBoardDriver(t, app, 80, 24)

	view := d.View()
	assert.Contains(t, view, "Error: disk full")
	assert.Contains(t, view, "Build failed")
}

func TestBoard_ScrollsLongSchedules(t *testing.T) {
	app := testApp(t)
	for i := 0; i < 12; i++ {
		seedTask(t, app, fmt.Sprintf("Task %02d", i), 200, i)
	}

	d := newBoardDriver(t, app, 100, 12)
	require.Contains(t, d.View(), "[TOP]")

	d.PressPgDown()
	assert.NotContains(t, d.View(), "[TOP]")
}

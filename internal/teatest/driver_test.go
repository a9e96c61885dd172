package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type loadedMsg string

// counterModel loads a label in Init and counts key presses until q.
type counterModel struct {
	label   string
	presses int
	width   int
}

func (m counterModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return loadedMsg("ready") },
		nil,
	)
}

func (m counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case loadedMsg:
		m.label = string(msg)
	case tea.KeyMsg:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		m.presses++
	}
	return m, nil
}

func (m counterModel) View() string { return m.label }

func TestDriver_DrainsInitBatch(t *testing.T) {
	d := New(t, counterModel{}, WithSize(80, 24))
	d.DrainInit()

	assert.Equal(t, "ready", d.View())
	assert.Equal(t, 80, d.Model.(counterModel).width)
}

func TestDriver_StopsAfterQuit(t *testing.T) {
	d := New(t, counterModel{})
	d.PressDown()
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d.PressDown()
	assert.Equal(t, 1, d.Model.(counterModel).presses, "sends after quit are ignored")
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/studyslots/internal/cli/formatter"
	"github.com/alexanderramin/studyslots/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// boardChromeLines is the height taken by the header and status bar.
const boardChromeLines = 4

type boardKeyMap struct {
	Rebuild key.Binding
	Quit    key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Rebuild: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rebuild")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardBuiltMsg carries the outcome of a background build.
type boardBuiltMsg struct {
	result *service.BuildResult
	err    error
}

// boardModel shows the built schedule in a scrollable viewport.
type boardModel struct {
	ctx    context.Context
	app    *App
	keys   boardKeyMap
	vp     viewport.Model
	width  int
	result *service.BuildResult
	err    error
	status string
}

func newBoardModel(ctx context.Context, app *App) boardModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = boardViewportKeyMap()
	return boardModel{
		ctx:    ctx,
		app:    app,
		keys:   defaultBoardKeyMap(),
		vp:     vp,
		status: "Building schedule...",
	}
}

// boardViewportKeyMap leaves letter keys free for the board's own bindings.
func boardViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.rebuild()
}

func (m boardModel) rebuild() tea.Cmd {
	ctx, planner := m.ctx, m.app.Planner
	return func() tea.Msg {
		res, err := planner.Build(ctx)
		return boardBuiltMsg{result: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-boardChromeLines, 1)
		m.vp.SetContent(m.content())
		return m, nil

	case boardBuiltMsg:
		m.result, m.err = msg.result, msg.err
		if msg.err != nil {
			m.status = "Build failed"
		} else {
			m.status = formatter.FormatBuildSummary(len(msg.result.Placed), len(msg.result.Unscheduled))
		}
		m.vp.SetContent(m.content())
		m.vp.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Rebuild):
			m.status = "Rebuilding..."
			return m, m.rebuild()
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m boardModel) content() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: " + m.err.Error())
	}
	if m.result == nil {
		return ""
	}
	return formatter.FormatSchedule(m.result.Schedule) + "\n" +
		formatter.FormatUnscheduled(m.result.Unscheduled, m.app.Planner.Catalog(), m.app.now())
}

func (m boardModel) View() string {
	width := max(m.width, 20)
	sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(strings.Repeat("─", width))

	header := formatter.Header("studyslots")
	if m.result != nil {
		header += "  " + formatter.Dim(formatter.LongDate(m.result.Schedule.Today))
	}

	hints := []string{m.status}
	if m.vp.TotalLineCount() > m.vp.Height {
		hints = append(hints, boardScrollIndicator(m.vp), formatter.Dim("↑↓ pgup/pgdn: scroll"))
	}
	for _, b := range []key.Binding{m.keys.Rebuild, m.keys.Quit} {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}

	return header + "\n" + sep + "\n" + m.vp.View() + "\n" + sep + "\n" + strings.Join(hints, "  ")
}

func boardScrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Browse the schedule interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("board needs an interactive terminal; use \"schedule\" instead")
			}
			p := tea.NewProgram(newBoardModel(cmd.Context(), app),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			_, err := p.Run()
			return err
		},
	}
}

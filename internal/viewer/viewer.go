// Package viewer shows a rendered spectrogram in the terminal until the user
// quits.
package viewer

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spectrel/internal/render"
)

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

// Model is the bubbletea model of the plot window. The image is rescaled to
// the full terminal on every resize.
type Model struct {
	img        image.Image
	status     string
	showStatus bool

	width  int
	height int
	plot   string
}

// New returns a model for img. status is shown below the plot when
// showStatus is set.
func New(img image.Image, status string, showStatus bool) Model {
	return Model{img: img, status: status, showStatus: showStatus}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := m.height
		if m.showStatus {
			rows--
		}
		m.plot = render.Terminal(m.img, m.width, rows)
	}

	return m, nil
}

func (m Model) View() string {
	if !m.showStatus {
		return m.plot
	}
	return m.plot + "\n" + statusStyle.MaxWidth(m.width).Render(m.status)
}

// Run shows the model until the user quits.
func Run(m Model, altScreen bool) error {
	var opts []tea.ProgramOption
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

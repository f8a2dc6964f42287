// Package tui runs the demo session inside a Bubble Tea program: rounds
// scroll in a viewport, commands are typed into a prompt below it and a
// sidebar shows the current generator settings.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/pcg128/internal/demo"
)

const (
	paneLog = iota
	paneInput
)

const sidebarWidth = 26

// Model is the Bubble Tea model wrapping a demo session.
type Model struct {
	session *demo.Session
	logger  *log.Logger

	// UI components
	outputViewport viewport.Model
	commandInput   textinput.Model

	output      string
	focusedPane int
	quitting    bool

	// Dimensions
	width  int
	height int
}

// New creates the model and renders the first run of the session.
func New(logger *log.Logger, session *demo.Session) *Model {
	// sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Placeholder = "x, tas, r<N>, trace or enter to run again"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(focusedBorder).Bold(true)
	ti.Prompt = "> "

	m := &Model{
		session:        session,
		logger:         logger.WithPrefix("tui"),
		outputViewport: vp,
		commandInput:   ti,
		focusedPane:    paneInput,
	}
	m.apply(session.Handle(""))
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Output returns everything currently shown in the output pane.
func (m *Model) Output() string {
	return m.output
}

// Quitting reports whether the session asked to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		m.resize()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == paneLog {
				m.focusedPane = paneInput
				m.commandInput.Focus()
			} else {
				m.focusedPane = paneLog
				m.commandInput.Blur()
			}
		case "enter":
			if m.focusedPane == paneInput {
				line := m.commandInput.Value()
				m.commandInput.SetValue("")
				if m.run(line) {
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "home", "g":
			if m.focusedPane == paneLog {
				m.outputViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == paneLog {
				m.outputViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == paneInput {
		m.commandInput, cmd = m.commandInput.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		// scrolling keys only reach the viewport when it has focus
		m.outputViewport, cmd = m.outputViewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// run hands one command line to the session and reports whether it quit.
func (m *Model) run(line string) bool {
	m.logger.Debug("Command", "line", strings.TrimSpace(line))
	res := m.session.Handle(line)
	if res.Quit {
		m.quitting = true
		return true
	}
	m.apply(res)
	return false
}

func (m *Model) apply(res demo.Result) {
	if res.Clear {
		m.output = res.Output
	} else {
		m.output += res.Output
	}
	m.outputViewport.SetContent(m.output)
	if res.Clear {
		m.outputViewport.GotoTop()
	} else {
		m.outputViewport.GotoBottom()
	}
}

func (m *Model) resize() {
	// borders take two columns and two rows per pane, the input pane is one
	// line high
	m.outputViewport.Width = max(1, m.width-sidebarWidth-4)
	m.outputViewport.Height = max(1, m.height-3-2)
	m.commandInput.Width = max(1, m.width-6)
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	outputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderFor(paneLog)).
		Width(m.outputViewport.Width).
		Height(m.outputViewport.Height)

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blurredBorder).
		Width(sidebarWidth - 2).
		Height(m.outputViewport.Height)

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderFor(paneInput)).
		Width(max(1, m.width-2))

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		outputStyle.Render(m.outputViewport.View()),
		sidebarStyle.Render(m.renderSidebar()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, inputStyle.Render(m.commandInput.View()))
}

func (m *Model) borderFor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return focusedBorder
	}
	return blurredBorder
}

func (m *Model) renderSidebar() string {
	s := m.session.Settings()
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" PCG 128/64 "))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %d\n", InfoStyle.Render("rounds:"), s.Rounds)
	fmt.Fprintf(&b, "%s %t\n", InfoStyle.Render("fixed seed:"), s.FixedSeed)
	fmt.Fprintf(&b, "%s %t\n", InfoStyle.Render("tracing:"), s.Trace)
	if s.FixedSeed {
		fmt.Fprintf(&b, "%s %s\n", InfoStyle.Render("seed:"), SettingStyle.Render(s.Seed.String()))
		fmt.Fprintf(&b, "%s %s\n", InfoStyle.Render("sequence:"), SettingStyle.Render(s.Sequence.String()))
	}

	b.WriteString("\n")
	for _, line := range []string{"x     exit", "tas   toggle seed", "r<N>  set rounds", "trace toggle trace", "tab   scroll output"} {
		b.WriteString(HelpStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
